package fragment

import (
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
)

// Column identifies one column, optionally table-qualified and aliased.
type Column struct {
	Table string
	Name  string
	Alias string
}

// ColumnList renders a comma-separated list of quoted column identifiers.
// It doubles as the conflict-target list of an ON CONFLICT clause.
type ColumnList struct {
	cols []Column
}

func (l *ColumnList) Add(names ...string) *ColumnList {
	for _, name := range names {
		l.cols = append(l.cols, Column{Name: name})
	}
	return l
}

func (l *ColumnList) AddColumn(col Column) *ColumnList {
	l.cols = append(l.cols, col)
	return l
}

func (l *ColumnList) Len() int {
	return len(l.cols)
}

// Names returns the bare column names in list order.
func (l *ColumnList) Names() []string {
	names := make([]string, len(l.cols))
	for i, c := range l.cols {
		names[i] = c.Name
	}
	return names
}

func (l *ColumnList) RenderSQL(d dialect.Dialect, _ int) (string, error) {
	var sb strings.Builder
	for i, c := range l.cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		if c.Table != "" {
			sb.WriteString(d.QuoteIdentifier(c.Table))
			sb.WriteByte('.')
		}
		sb.WriteString(d.QuoteIdentifier(c.Name))
		if c.Alias != "" && c.Alias != c.Name {
			sb.WriteString(" AS ")
			sb.WriteString(d.QuoteIdentifier(c.Alias))
		}
	}
	return sb.String(), nil
}

func (l *ColumnList) Params() []any {
	return nil
}
