package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// fieldInfo is the parsed mapping of one exported struct field.
type fieldInfo struct {
	index  int
	column string
	gen    string
}

type structMeta struct {
	fields []fieldInfo
}

var metaCache sync.Map // reflect.Type -> *structMeta

// metaFor parses and caches the db-tag mapping of a struct type. Tag format:
//
//	db:"column_name"         explicit column name
//	db:"-"                   skip the field
//	db:",gen=uuid"           auto-generate when zero (uuid or ulid)
//
// An empty or missing name derives the snake_case form of the field name.
func metaFor(t reflect.Type) (*structMeta, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: expected struct, got %s", t.Kind())
	}
	if cached, ok := metaCache.Load(t); ok {
		return cached.(*structMeta), nil
	}

	meta := &structMeta{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag := f.Tag.Get("db")
		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = ColumnName(f.Name)
		}

		info := fieldInfo{index: i, column: name}
		for _, opt := range strings.Split(opts, ",") {
			if g, ok := strings.CutPrefix(opt, "gen="); ok {
				info.gen = g
			}
		}
		meta.fields = append(meta.fields, info)
	}

	metaCache.Store(t, meta)
	return meta, nil
}

// Map returns the column names and values of v's mapped fields, in field
// declaration order. Zero-valued fields carrying a gen option are assigned a
// freshly generated id, written back into the struct when v is addressable.
func Map(v any) ([]string, []any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil, fmt.Errorf("schema: nil struct")
		}
		rv = rv.Elem()
	}

	meta, err := metaFor(rv.Type())
	if err != nil {
		return nil, nil, err
	}

	cols := make([]string, 0, len(meta.fields))
	vals := make([]any, 0, len(meta.fields))
	for _, f := range meta.fields {
		fv := rv.Field(f.index)
		val := fv.Interface()

		if f.gen != "" && fv.IsZero() {
			generated, err := GenerateID(f.gen)
			if err != nil {
				return nil, nil, fmt.Errorf("schema: column %s: %w", f.column, err)
			}
			val = generated
			if fv.CanSet() && reflect.TypeOf(generated).AssignableTo(fv.Type()) {
				fv.Set(reflect.ValueOf(generated))
			}
		}

		cols = append(cols, f.column)
		vals = append(vals, val)
	}
	return cols, vals, nil
}

// TableName derives the table name for v's struct type. A TableName() string
// method on the type wins; otherwise the pluralized snake_case of the type
// name is used.
func TableName(v any) (string, error) {
	if named, ok := v.(interface{ TableName() string }); ok {
		return named.TableName(), nil
	}

	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return "", fmt.Errorf("schema: cannot derive table name from %T", v)
	}
	if t.Name() == "" {
		return "", fmt.Errorf("schema: cannot derive table name from anonymous struct")
	}
	return tableNameFor(t.Name()), nil
}
