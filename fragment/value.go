package fragment

import (
	"fmt"
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
)

// ValueRows renders one or more parenthesized placeholder groups for a
// VALUES clause: `($1, $2), ($3, $4)`. Every row must have the same arity;
// the mismatch is reported at render time.
type ValueRows struct {
	rows [][]any
}

// AddRow appends a copy of vals; later mutation of the caller's slice does
// not reach the fragment.
func (v *ValueRows) AddRow(vals []any) *ValueRows {
	row := make([]any, len(vals))
	copy(row, vals)
	v.rows = append(v.rows, row)
	return v
}

func (v *ValueRows) Len() int {
	return len(v.rows)
}

func (v *ValueRows) RenderSQL(d dialect.Dialect, pos int) (string, error) {
	if len(v.rows) == 0 {
		return "", fmt.Errorf("value list is empty")
	}

	arity := len(v.rows[0])
	var sb strings.Builder
	for i, row := range v.rows {
		if len(row) != arity {
			return "", fmt.Errorf("value row %d has %d values, want %d", i, len(row), arity)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(pos))
			pos++
		}
		sb.WriteByte(')')
	}
	return sb.String(), nil
}

func (v *ValueRows) Params() []any {
	var flat []any
	for _, row := range v.rows {
		flat = append(flat, row...)
	}
	return flat
}
