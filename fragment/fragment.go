package fragment

import "github.com/strataworks/sqlcraft/dialect"

// Fragment is a renderable SQL sub-expression: a piece of SQL text plus the
// bind values it contributes, in placeholder order. Fragments are pure: a
// render never mutates the fragment and repeated renders with the same
// arguments produce identical output.
type Fragment interface {
	// RenderSQL renders the fragment's SQL text. pos is the 1-based number
	// of the first placeholder the fragment may emit; dialects with numbered
	// placeholders use it to keep numbering contiguous when fragments are
	// concatenated.
	RenderSQL(d dialect.Dialect, pos int) (string, error)

	// Params returns the bind values in the order their placeholders appear
	// in the rendered text.
	Params() []any
}
