package query

import (
	"strconv"
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
	"github.com/strataworks/sqlcraft/fragment"
)

// SelectBuilder assembles a SELECT statement. It implements
// fragment.Fragment, so a SelectBuilder plugs directly into
// InsertBuilder.Select as the data source of an INSERT ... SELECT and
// renders with whatever placeholder offset the outer statement has reached.
type SelectBuilder struct {
	dialect  dialect.Dialect
	columns  *fragment.ColumnList
	from     *fragment.TableList
	wheres   []fragment.Fragment
	orderBy  []orderTerm
	limit    *int
	offset   *int
	distinct bool
}

type orderTerm struct {
	column string
	desc   bool
}

func NewSelect(d dialect.Dialect) *SelectBuilder {
	return &SelectBuilder{dialect: d}
}

func (s *SelectBuilder) Columns(names ...string) *SelectBuilder {
	if s.columns == nil {
		s.columns = &fragment.ColumnList{}
	}
	s.columns.Add(names...)
	return s
}

func (s *SelectBuilder) Distinct() *SelectBuilder {
	s.distinct = true
	return s
}

func (s *SelectBuilder) From(table string, alias ...string) *SelectBuilder {
	if s.from == nil {
		s.from = &fragment.TableList{}
	}
	a := ""
	if len(alias) > 0 {
		a = alias[0]
	}
	schemaName, name := splitQualified(table)
	s.from.Add(schemaName, name, a)
	return s
}

// Where appends a raw condition with `?` bind markers. Conditions are joined
// with AND.
func (s *SelectBuilder) Where(expr string, args ...any) *SelectBuilder {
	s.wheres = append(s.wheres, fragment.NewRaw(expr, args...))
	return s
}

func (s *SelectBuilder) WhereEq(column string, value any) *SelectBuilder {
	s.wheres = append(s.wheres, eqCond{column: column, value: value})
	return s
}

func (s *SelectBuilder) OrderByAsc(columns ...string) *SelectBuilder {
	for _, c := range columns {
		s.orderBy = append(s.orderBy, orderTerm{column: c})
	}
	return s
}

func (s *SelectBuilder) OrderByDesc(columns ...string) *SelectBuilder {
	for _, c := range columns {
		s.orderBy = append(s.orderBy, orderTerm{column: c, desc: true})
	}
	return s
}

func (s *SelectBuilder) Limit(n int) *SelectBuilder {
	s.limit = &n
	return s
}

func (s *SelectBuilder) Offset(n int) *SelectBuilder {
	s.offset = &n
	return s
}

// RenderSQL implements fragment.Fragment.
func (s *SelectBuilder) RenderSQL(d dialect.Dialect, pos int) (string, error) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}
	if s.columns == nil || s.columns.Len() == 0 {
		sb.WriteByte('*')
	} else {
		cols, err := s.columns.RenderSQL(d, pos)
		if err != nil {
			return "", err
		}
		sb.WriteString(cols)
	}

	if s.from != nil && s.from.Len() > 0 {
		sb.WriteString(" FROM ")
		from, err := s.from.RenderSQL(d, pos)
		if err != nil {
			return "", err
		}
		sb.WriteString(from)
	}

	for i, w := range s.wheres {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		cond, err := w.RenderSQL(d, pos)
		if err != nil {
			return "", err
		}
		sb.WriteString(cond)
		pos += len(w.Params())
	}

	for i, o := range s.orderBy {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(d.QuoteIdentifier(o.column))
		if o.desc {
			sb.WriteString(" DESC")
		}
	}

	if s.limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*s.limit))
	}
	if s.offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(*s.offset))
	}

	return sb.String(), nil
}

// Params implements fragment.Fragment. Only WHERE conditions bind values;
// LIMIT and OFFSET render inline.
func (s *SelectBuilder) Params() []any {
	var params []any
	for _, w := range s.wheres {
		params = append(params, w.Params()...)
	}
	return params
}

// ToSQL renders the statement standalone, with placeholders numbered from 1.
func (s *SelectBuilder) ToSQL() (string, []any, error) {
	sql, err := s.RenderSQL(s.dialect, 1)
	if err != nil {
		return "", nil, err
	}
	return sql, s.Params(), nil
}

type eqCond struct {
	column string
	value  any
}

func (c eqCond) RenderSQL(d dialect.Dialect, pos int) (string, error) {
	return d.QuoteIdentifier(c.column) + " = " + d.Placeholder(pos), nil
}

func (c eqCond) Params() []any {
	return []any{c.value}
}
