package query

import "strings"

// statement is the (sql, params) accumulator shared by the builders. A build
// renders fragment by fragment into it; the params slice grows in lock-step
// with the placeholders written to the text buffer, which is the only thing
// that keeps positional binding correct.
type statement struct {
	sb    strings.Builder
	args  []any
	built bool
}

func (s *statement) appendSQL(sql string) {
	s.sb.WriteString(sql)
}

func (s *statement) appendArgs(args []any) {
	s.args = append(s.args, args...)
}

// resetBuffer zeroes the accumulator. Builds always start from an empty
// buffer; a stale buffer is never patched incrementally.
func (s *statement) resetBuffer() {
	s.sb.Reset()
	s.args = s.args[:0]
	s.built = false
}

// nextPos is the 1-based index of the next placeholder to be emitted.
func (s *statement) nextPos() int {
	return len(s.args) + 1
}
