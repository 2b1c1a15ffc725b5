package connector

import (
	"context"
	"database/sql"

	"github.com/strataworks/sqlcraft/dialect"
	"github.com/strataworks/sqlcraft/query"
)

// Connection is an established database connection that statement builders
// execute through.
type Connection interface {
	// DB exposes the connection as a database/sql handle.
	DB() *sql.DB
	// Executor returns the executor builders are wired to.
	Executor() query.Executor
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() Stats
	Close() error
}

// Stats captures connection pool statistics.
type Stats struct {
	OpenConnections int
	InUse           int
	Idle            int
}
