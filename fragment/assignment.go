package fragment

import (
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
)

type assignment struct {
	column   string
	value    any
	hasValue bool
}

// AssignmentList renders the SET list of an upsert clause. Each entry is
// either `col = <param>` or, when no value was supplied, a self-reference to
// the would-be inserted value in the dialect's form (MySQL `VALUES(col)`,
// Postgres `EXCLUDED.col`).
type AssignmentList struct {
	items []assignment
}

// Set appends `column = value`.
func (l *AssignmentList) Set(column string, value any) *AssignmentList {
	l.items = append(l.items, assignment{column: column, value: value, hasValue: true})
	return l
}

// SetExcluded appends `column = <excluded ref>`.
func (l *AssignmentList) SetExcluded(column string) *AssignmentList {
	l.items = append(l.items, assignment{column: column})
	return l
}

func (l *AssignmentList) Len() int {
	return len(l.items)
}

func (l *AssignmentList) RenderSQL(d dialect.Dialect, pos int) (string, error) {
	var sb strings.Builder
	for i, a := range l.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.QuoteIdentifier(a.column))
		sb.WriteString(" = ")
		if a.hasValue {
			sb.WriteString(d.Placeholder(pos))
			pos++
		} else {
			sb.WriteString(d.ExcludedRef(a.column))
		}
	}
	return sb.String(), nil
}

func (l *AssignmentList) Params() []any {
	var params []any
	for _, a := range l.items {
		if a.hasValue {
			params = append(params, a.value)
		}
	}
	return params
}
