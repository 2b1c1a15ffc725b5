package fragment

import (
	"fmt"
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
)

// Raw is a verbatim SQL expression with `?` bind markers. At render time each
// marker is rewritten to the dialect's placeholder form. The rewrite is
// textual and does not understand quoted literals, so markers must only
// appear where a bind value is intended.
type Raw struct {
	expr string
	args []any
}

func NewRaw(expr string, args ...any) *Raw {
	return &Raw{expr: expr, args: args}
}

func (r *Raw) RenderSQL(d dialect.Dialect, pos int) (string, error) {
	markers := strings.Count(r.expr, "?")
	if markers != len(r.args) {
		return "", fmt.Errorf("expression %q has %d bind markers, got %d values", r.expr, markers, len(r.args))
	}

	var sb strings.Builder
	rest := r.expr
	for {
		idx := strings.IndexByte(rest, '?')
		if idx < 0 {
			sb.WriteString(rest)
			return sb.String(), nil
		}
		sb.WriteString(rest[:idx])
		sb.WriteString(d.Placeholder(pos))
		pos++
		rest = rest[idx+1:]
	}
}

func (r *Raw) Params() []any {
	return r.args
}
