package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/strataworks/sqlcraft/cache"
	"github.com/strataworks/sqlcraft/dialect"
)

// SQL dispatches statements over database/sql, keeping prepared statements
// in an LRU keyed by statement text.
type SQL struct {
	db    *sql.DB
	d     dialect.Dialect
	stmts *cache.StatementCache
}

func NewSQL(db *sql.DB, d dialect.Dialect) *SQL {
	return &SQL{db: db, d: d, stmts: cache.NewStatementCache(256)}
}

// Insert implements query.Executor. With a sequence name the statement is
// expected to carry a RETURNING clause and its value is scanned back;
// otherwise the driver's last-insert id is returned where available.
func (e *SQL) Insert(ctx context.Context, query string, args []any, sequence string) (any, error) {
	stmt, err := e.stmts.GetOrPrepare(ctx, e.db, cache.Fingerprint(query), query)
	if err != nil {
		return nil, err
	}

	if sequence != "" {
		if !e.d.SupportsReturning() {
			return nil, fmt.Errorf("database: dialect has no RETURNING support for sequence %q", sequence)
		}
		var out any
		if err := stmt.QueryRowContext(ctx, args...).Scan(&out); err != nil {
			return nil, err
		}
		return out, nil
	}

	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		// Drivers without insert-id support (postgres) still count as success.
		return int64(0), nil
	}
	return id, nil
}

// Close releases the prepared-statement cache. The *sql.DB stays open; it is
// owned by the caller.
func (e *SQL) Close() error {
	return e.stmts.Close()
}
