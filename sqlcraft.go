// Package sqlcraft assembles parameterized SQL statements from composable
// fragments and hands them to a pluggable executor. The heavy lifting lives
// in the subpackages; this package only bundles the common entry points.
package sqlcraft

import (
	"github.com/strataworks/sqlcraft/dialect"
	"github.com/strataworks/sqlcraft/query"
)

// Insert starts an INSERT builder without an executor; use ToSQL to render.
func Insert(d dialect.Dialect) *query.InsertBuilder {
	return query.NewInsert(d, nil)
}

// InsertWith starts an INSERT builder wired to an executor.
func InsertWith(d dialect.Dialect, exec query.Executor) *query.InsertBuilder {
	return query.NewInsert(d, exec)
}

// Select starts a SELECT builder, usable standalone or as the sub-query of
// an INSERT ... SELECT.
func Select(d dialect.Dialect) *query.SelectBuilder {
	return query.NewSelect(d)
}

// Postgres returns the PostgreSQL dialect.
func Postgres() dialect.Dialect {
	return dialect.NewPostgresDialect()
}

// MySQL returns the MySQL dialect.
func MySQL() dialect.Dialect {
	return dialect.NewMySQLDialect()
}

// TiDB returns the TiDB dialect.
func TiDB() dialect.Dialect {
	return dialect.NewTiDBDialect()
}
