package fragment

import (
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
)

// TableRef identifies one target table, optionally schema-qualified and
// aliased.
type TableRef struct {
	Schema string
	Name   string
	Alias  string
}

// TableList renders a comma-separated list of table references.
type TableList struct {
	refs []TableRef
}

func (l *TableList) Add(schema, name, alias string) *TableList {
	l.refs = append(l.refs, TableRef{Schema: schema, Name: name, Alias: alias})
	return l
}

func (l *TableList) Len() int {
	return len(l.refs)
}

// RenderSQL renders nothing for an empty list; the statement that owns the
// list is responsible for treating that as a caller error.
func (l *TableList) RenderSQL(d dialect.Dialect, _ int) (string, error) {
	var sb strings.Builder
	for i, t := range l.refs {
		if i > 0 {
			sb.WriteString(", ")
		}
		if t.Schema != "" {
			sb.WriteString(d.QuoteIdentifier(t.Schema))
			sb.WriteByte('.')
		}
		sb.WriteString(d.QuoteIdentifier(t.Name))
		if t.Alias != "" && t.Alias != t.Name {
			sb.WriteString(" AS ")
			sb.WriteString(d.QuoteIdentifier(t.Alias))
		}
	}
	return sb.String(), nil
}

func (l *TableList) Params() []any {
	return nil
}
