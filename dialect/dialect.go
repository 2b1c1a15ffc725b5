package dialect

// Dialect abstracts the syntax differences between supported SQL engines:
// identifier quoting, bind placeholder format, literal rendering for debug
// output, and the self-reference used in upsert assignments.
type Dialect interface {
	QuoteIdentifier(name string) string

	// Placeholder returns the bind marker for the n-th parameter (1-based).
	// Engines with purely positional markers ignore n.
	Placeholder(n int) string

	// RenderValue renders v as an inline SQL literal. Debug use only, never
	// for statements sent to a server.
	RenderValue(v any) string

	// ExcludedRef returns the expression referring to the value that would
	// have been inserted for column, inside an upsert assignment.
	ExcludedRef(column string) string

	SupportsReturning() bool
}
