package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pgx dispatches statements over a pgx connection pool. pgx prepares and
// caches statements itself, so no statement cache sits in front of it.
type Pgx struct {
	pool *pgxpool.Pool
}

func NewPgx(pool *pgxpool.Pool) *Pgx {
	return &Pgx{pool: pool}
}

// Insert implements query.Executor. Postgres has no last-insert id; without
// a sequence name the affected row count is returned.
func (e *Pgx) Insert(ctx context.Context, query string, args []any, sequence string) (any, error) {
	if sequence != "" {
		var out any
		if err := e.pool.QueryRow(ctx, query, args...).Scan(&out); err != nil {
			return nil, err
		}
		return out, nil
	}

	tag, err := e.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return tag.RowsAffected(), nil
}
