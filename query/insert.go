package query

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/strataworks/sqlcraft/dialect"
	"github.com/strataworks/sqlcraft/fragment"
	"github.com/strataworks/sqlcraft/schema"
)

// InsertBuilder assembles an INSERT statement from independently built
// fragments: target table(s), column list, value rows or a sub-select, and
// an optional conflict clause. Building is deferred: every mutator marks the
// builder dirty and the next terminal call re-renders the whole statement
// into a fresh buffer. An InsertBuilder is owned by a single goroutine.
type InsertBuilder struct {
	statement

	dialect  dialect.Dialect
	executor Executor
	errs     []error

	target   *fragment.TableList
	columns  *fragment.ColumnList
	values   *fragment.ValueRows
	subquery fragment.Fragment
	conflict *fragment.ColumnList
	updates  *fragment.AssignmentList
}

// NewInsert creates an InsertBuilder. exec may be nil for builders that are
// only rendered, never executed.
func NewInsert(d dialect.Dialect, exec Executor) *InsertBuilder {
	return &InsertBuilder{dialect: d, executor: exec}
}

func (b *InsertBuilder) dirty() {
	b.built = false
}

// addErr records a deferred error and invalidates any memoized build so the
// next terminal call surfaces it instead of a stale buffer.
func (b *InsertBuilder) addErr(err error) {
	b.errs = append(b.errs, err)
	b.built = false
}

// Into appends a target table. table may be schema-qualified ("app.users").
func (b *InsertBuilder) Into(table string, alias ...string) *InsertBuilder {
	if b.target == nil {
		b.target = &fragment.TableList{}
	}
	a := ""
	if len(alias) > 0 {
		a = alias[0]
	}
	schemaName, name := splitQualified(table)
	b.target.Add(schemaName, name, a)
	b.dirty()
	return b
}

// Columns appends column identifiers to the column list.
func (b *InsertBuilder) Columns(names ...string) *InsertBuilder {
	if b.columns == nil {
		b.columns = &fragment.ColumnList{}
	}
	b.columns.Add(names...)
	b.dirty()
	return b
}

// Values appends one or more value rows. Accepted shapes:
//
//	map[string]any            one keyed row
//	[]map[string]any          a batch of keyed rows
//	[]any                     one positional row, or a batch when the
//	                          elements are map[string]any
//	[][]any                   a batch of positional rows
//	struct, *struct, []struct a row per struct, mapped via db tags
//
// When columns is supplied it is applied first. Otherwise keyed and struct
// input derives the column list from the first row: struct rows keep field
// declaration order, map rows use sorted key order (Go maps are unordered).
// Positional input leaves the column list untouched. Derivation only happens
// while the column list is still empty; later rows are bound to the existing
// columns.
func (b *InsertBuilder) Values(data any, columns ...string) *InsertBuilder {
	if len(columns) > 0 {
		b.Columns(columns...)
	}
	switch v := data.(type) {
	case map[string]any:
		b.addKeyedRows([]map[string]any{v})
	case []map[string]any:
		if len(v) == 0 {
			b.addErr(fmt.Errorf("query: empty batch of value rows"))
		} else {
			b.addKeyedRows(v)
		}
	case []any:
		if len(v) == 0 {
			b.addErr(fmt.Errorf("query: empty value row"))
		} else if _, keyed := v[0].(map[string]any); keyed {
			rows := make([]map[string]any, 0, len(v))
			for _, e := range v {
				m, ok := e.(map[string]any)
				if !ok {
					b.addErr(fmt.Errorf("query: mixed keyed and positional rows in one batch"))
					return b
				}
				rows = append(rows, m)
			}
			b.addKeyedRows(rows)
		} else {
			b.addRow(v)
		}
	case [][]any:
		for _, row := range v {
			b.addRow(row)
		}
	default:
		if err := b.addStructRows(data); err != nil {
			b.addErr(err)
		}
	}
	b.dirty()
	return b
}

// Model derives the target table from the struct's type name (when no target
// was set) and appends the struct as a value row.
func (b *InsertBuilder) Model(v any) *InsertBuilder {
	if b.target == nil || b.target.Len() == 0 {
		name, err := schema.TableName(v)
		if err != nil {
			b.addErr(err)
			return b
		}
		b.Into(name)
	}
	return b.Values(v)
}

// Select installs sub as the data source, turning this into an
// INSERT ... SELECT. A present sub-query suppresses the VALUES clause
// entirely; previously appended value rows are ignored, not merged.
func (b *InsertBuilder) Select(sub fragment.Fragment) *InsertBuilder {
	b.subquery = sub
	b.dirty()
	return b
}

// OnDuplicateKeyUpdate appends one upsert assignment. With a value the
// assignment is `column = <param>`; without one it is a self-reference to
// the would-be inserted value in the dialect's form. The MySQL
// ON DUPLICATE KEY UPDATE clause is rendered unless a conflict target is
// also present, in which case the Postgres ON CONFLICT form wins.
func (b *InsertBuilder) OnDuplicateKeyUpdate(column string, value ...any) *InsertBuilder {
	if b.updates == nil {
		b.updates = &fragment.AssignmentList{}
	}
	if len(value) > 0 {
		b.updates.Set(column, value[0])
	} else {
		b.updates.SetExcluded(column)
	}
	b.dirty()
	return b
}

// OnConflictDoUpdate appends indexColumn to the conflict target. The
// optional trailing arguments are an assignment column and its value,
// delegated to OnDuplicateKeyUpdate. With no assignments at all the clause
// renders as ON CONFLICT(...) DO NOTHING.
func (b *InsertBuilder) OnConflictDoUpdate(indexColumn string, columnValue ...any) *InsertBuilder {
	if len(columnValue) > 0 {
		if _, ok := columnValue[0].(string); !ok {
			b.addErr(fmt.Errorf("query: assignment column must be a string, got %T", columnValue[0]))
			return b
		}
	}
	if b.conflict == nil {
		b.conflict = &fragment.ColumnList{}
	}
	b.conflict.Add(indexColumn)
	if len(columnValue) > 0 {
		b.OnDuplicateKeyUpdate(columnValue[0].(string), columnValue[1:]...)
	}
	b.dirty()
	return b
}

// build renders the statement into the accumulator. Memoized on the built
// flag; any mutator clears it. A failed build leaves the flag clear so the
// next call re-renders from scratch.
func (b *InsertBuilder) build() error {
	if b.built {
		return nil
	}
	if len(b.errs) > 0 {
		return b.errs[0]
	}
	b.resetBuffer()

	b.appendSQL("INSERT INTO ")
	if b.target != nil {
		if err := b.render(b.target); err != nil {
			return err
		}
	}

	if b.columns != nil && b.columns.Len() > 0 {
		b.appendSQL(" (")
		if err := b.render(b.columns); err != nil {
			return err
		}
		b.appendSQL(")")
	}

	if b.subquery != nil {
		b.appendSQL(" ")
		if err := b.render(b.subquery); err != nil {
			return err
		}
	} else if b.values != nil {
		b.appendSQL(" VALUES ")
		if err := b.render(b.values); err != nil {
			return err
		}
	}

	if b.conflict != nil {
		b.appendSQL(" ON CONFLICT(")
		if err := b.render(b.conflict); err != nil {
			return err
		}
		b.appendSQL(")")
		if b.updates != nil && b.updates.Len() > 0 {
			b.appendSQL(" DO UPDATE SET ")
			if err := b.render(b.updates); err != nil {
				return err
			}
		} else {
			// Absent assignments contribute an empty parameter sequence,
			// never a fault.
			b.appendSQL(" DO NOTHING")
		}
	} else if b.updates != nil && b.updates.Len() > 0 {
		b.appendSQL(" ON DUPLICATE KEY UPDATE ")
		if err := b.render(b.updates); err != nil {
			return err
		}
	}

	b.built = true
	return nil
}

// render appends one fragment's SQL and parameters in lock-step.
func (b *InsertBuilder) render(f fragment.Fragment) error {
	sql, err := f.RenderSQL(b.dialect, b.nextPos())
	if err != nil {
		return err
	}
	b.appendSQL(sql)
	b.appendArgs(f.Params())
	return nil
}

// ToSQL builds (if needed) and returns the statement text with its bind
// parameters in placeholder order. Repeated calls without intervening
// mutation return identical results.
func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if err := b.build(); err != nil {
		return "", nil, err
	}
	args := make([]any, len(b.args))
	copy(args, b.args)
	return b.sb.String(), args, nil
}

// DebugSQL renders the statement with parameters inlined as literals. Debug
// use only; the output is never sent to a server.
func (b *InsertBuilder) DebugSQL() (string, error) {
	sql, args, err := b.ToSQL()
	if err != nil {
		return "", err
	}
	if b.dialect.Placeholder(1) == b.dialect.Placeholder(2) {
		// Anonymous markers: substitute left to right.
		for _, a := range args {
			sql = strings.Replace(sql, b.dialect.Placeholder(1), b.dialect.RenderValue(a), 1)
		}
		return sql, nil
	}
	// Numbered markers: substitute highest first so $1 never matches inside $10.
	for i := len(args); i >= 1; i-- {
		sql = strings.ReplaceAll(sql, b.dialect.Placeholder(i), b.dialect.RenderValue(args[i-1]))
	}
	return sql, nil
}

// Exec builds the statement and forwards it to the executor. A sequence
// name appends a RETURNING clause for it and the returned value is the
// value of that column; the memoized buffer is not modified.
func (b *InsertBuilder) Exec(ctx context.Context, sequence ...string) (any, error) {
	if b.executor == nil {
		return nil, ErrNoExecutor
	}
	if err := b.build(); err != nil {
		return nil, err
	}

	sql := b.sb.String()
	seq := ""
	if len(sequence) > 0 && sequence[0] != "" {
		seq = sequence[0]
		sql += " RETURNING " + seq
	}
	args := make([]any, len(b.args))
	copy(args, b.args)
	return b.executor.Insert(ctx, sql, args, seq)
}

func (b *InsertBuilder) addRow(row []any) {
	if b.values == nil {
		b.values = &fragment.ValueRows{}
	}
	b.values.AddRow(row)
}

func (b *InsertBuilder) columnNames() []string {
	if b.columns == nil {
		return nil
	}
	return b.columns.Names()
}

// addKeyedRows binds map rows to the column list, deriving it from the first
// row's sorted keys when still empty. Values are picked per column; a key
// missing from a row binds NULL.
func (b *InsertBuilder) addKeyedRows(rows []map[string]any) {
	cols := b.columnNames()
	if len(cols) == 0 {
		cols = sortedKeys(rows[0])
		b.Columns(cols...)
	}
	for _, m := range rows {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = m[c]
		}
		b.addRow(row)
	}
}

// addStructRows maps a struct, pointer to struct, or slice of either into
// keyed rows via db tags.
func (b *InsertBuilder) addStructRows(data any) error {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("query: nil value row")
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return b.addStructRow(v)
	case reflect.Slice:
		if v.Len() == 0 {
			return fmt.Errorf("query: empty batch of value rows")
		}
		for i := 0; i < v.Len(); i++ {
			ev := v.Index(i)
			for ev.Kind() == reflect.Pointer {
				if ev.IsNil() {
					return fmt.Errorf("query: nil value row at index %d", i)
				}
				ev = ev.Elem()
			}
			if ev.Kind() != reflect.Struct {
				return fmt.Errorf("query: unsupported value row type %s", ev.Type())
			}
			if err := b.addStructRow(ev); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("query: unsupported values input %T", data)
	}
}

func (b *InsertBuilder) addStructRow(v reflect.Value) error {
	cols, vals, err := schema.Map(v.Interface())
	if err != nil {
		return err
	}
	if len(b.columnNames()) == 0 {
		// Field declaration order becomes the column order.
		b.Columns(cols...)
	}
	row := make(map[string]any, len(cols))
	for i, c := range cols {
		row[c] = vals[i]
	}
	b.addKeyedRows([]map[string]any{row})
	return nil
}

func splitQualified(table string) (schemaName, name string) {
	if i := strings.IndexByte(table, '.'); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
