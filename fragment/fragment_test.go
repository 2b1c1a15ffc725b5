package fragment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataworks/sqlcraft/dialect"
)

func TestTableList(t *testing.T) {
	pg := dialect.NewPostgresDialect()

	t.Run("empty list renders nothing", func(t *testing.T) {
		l := &TableList{}
		sql, err := l.RenderSQL(pg, 1)
		require.NoError(t, err)
		assert.Empty(t, sql)
	})

	t.Run("qualified and aliased", func(t *testing.T) {
		l := (&TableList{}).Add("app", "users", "u").Add("", "audit", "")
		sql, err := l.RenderSQL(pg, 1)
		require.NoError(t, err)
		assert.Equal(t, `"app"."users" AS "u", "audit"`, sql)
		assert.Nil(t, l.Params())
	})
}

func TestColumnList(t *testing.T) {
	pg := dialect.NewPostgresDialect()

	l := (&ColumnList{}).Add("id", "name")
	l.AddColumn(Column{Table: "u", Name: "email", Alias: "contact"})

	sql, err := l.RenderSQL(pg, 1)
	require.NoError(t, err)
	assert.Equal(t, `"id", "name", "u"."email" AS "contact"`, sql)
	assert.Equal(t, []string{"id", "name", "email"}, l.Names())
}

func TestValueRows(t *testing.T) {
	pg := dialect.NewPostgresDialect()
	my := dialect.NewMySQLDialect()

	t.Run("placeholder groups with offset", func(t *testing.T) {
		v := (&ValueRows{}).AddRow([]any{1, "a"}).AddRow([]any{2, "b"})
		sql, err := v.RenderSQL(pg, 5)
		require.NoError(t, err)
		assert.Equal(t, `($5, $6), ($7, $8)`, sql)
		assert.Equal(t, []any{1, "a", 2, "b"}, v.Params())
	})

	t.Run("anonymous markers ignore the offset", func(t *testing.T) {
		v := (&ValueRows{}).AddRow([]any{1, 2})
		sql, err := v.RenderSQL(my, 9)
		require.NoError(t, err)
		assert.Equal(t, `(?, ?)`, sql)
	})

	t.Run("empty list is a render error", func(t *testing.T) {
		_, err := (&ValueRows{}).RenderSQL(pg, 1)
		assert.Error(t, err)
	})

	t.Run("arity mismatch is a render error", func(t *testing.T) {
		v := (&ValueRows{}).AddRow([]any{1, 2}).AddRow([]any{3})
		_, err := v.RenderSQL(pg, 1)
		assert.Error(t, err)
	})

	t.Run("rows are detached from the caller's slice", func(t *testing.T) {
		row := []any{1, "a"}
		v := (&ValueRows{}).AddRow(row)
		row[0] = 99
		assert.Equal(t, []any{1, "a"}, v.Params())
	})
}

func TestAssignmentList(t *testing.T) {
	pg := dialect.NewPostgresDialect()
	my := dialect.NewMySQLDialect()

	l := (&AssignmentList{}).Set("name", "bob").SetExcluded("age")

	t.Run("postgres excluded reference", func(t *testing.T) {
		sql, err := l.RenderSQL(pg, 4)
		require.NoError(t, err)
		assert.Equal(t, `"name" = $4, "age" = EXCLUDED."age"`, sql)
		assert.Equal(t, []any{"bob"}, l.Params())
	})

	t.Run("mysql values reference", func(t *testing.T) {
		sql, err := l.RenderSQL(my, 1)
		require.NoError(t, err)
		assert.Equal(t, "`name` = ?, `age` = VALUES(`age`)", sql)
	})
}

func TestRaw(t *testing.T) {
	pg := dialect.NewPostgresDialect()

	t.Run("markers rewrite to numbered placeholders", func(t *testing.T) {
		r := NewRaw("a = ? AND b IN (?, ?)", 1, 2, 3)
		sql, err := r.RenderSQL(pg, 7)
		require.NoError(t, err)
		assert.Equal(t, `a = $7 AND b IN ($8, $9)`, sql)
		assert.Equal(t, []any{1, 2, 3}, r.Params())
	})

	t.Run("marker count must match args", func(t *testing.T) {
		_, err := NewRaw("a = ?", 1, 2).RenderSQL(pg, 1)
		assert.Error(t, err)

		_, err = NewRaw("a = ? AND b = ?", 1).RenderSQL(pg, 1)
		assert.Error(t, err)
	})
}
