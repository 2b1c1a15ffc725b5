package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostgres(t *testing.T) {
	d := NewPostgresDialect()

	assert.Equal(t, `"users"`, d.QuoteIdentifier("users"))
	assert.Equal(t, "$1", d.Placeholder(1))
	assert.Equal(t, "$12", d.Placeholder(12))
	assert.Equal(t, `EXCLUDED."name"`, d.ExcludedRef("name"))
	assert.True(t, d.SupportsReturning())
}

func TestMySQL(t *testing.T) {
	d := NewMySQLDialect()

	assert.Equal(t, "`users`", d.QuoteIdentifier("users"))
	assert.Equal(t, "?", d.Placeholder(1))
	assert.Equal(t, "?", d.Placeholder(12))
	assert.Equal(t, "VALUES(`name`)", d.ExcludedRef("name"))
	assert.False(t, d.SupportsReturning())
}

func TestTiDB(t *testing.T) {
	d := NewTiDBDialect()

	// TiDB keeps MySQL quoting and placeholders.
	assert.Equal(t, "`users`", d.QuoteIdentifier("users"))
	assert.Equal(t, "?", d.Placeholder(3))
	assert.False(t, d.SupportsReturning())
}

func TestRenderValue(t *testing.T) {
	d := NewPostgresDialect()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "NULL"},
		{"string", "it's", "'it''s'"},
		{"bool true", true, "TRUE"},
		{"bool false", false, "FALSE"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"time", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), "'2024-03-01 10:30:00.000000'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.RenderValue(tt.value))
		})
	}
}
