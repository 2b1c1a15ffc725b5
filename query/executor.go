package query

import (
	"context"
	"errors"
)

// Executor dispatches a built statement to a database. Implementations live
// in the database package; builders never touch the transport directly.
type Executor interface {
	// Insert executes an INSERT statement. When sequence is non-empty the
	// statement carries a RETURNING clause for it and the returned value is
	// the value of that column; otherwise the driver's last-insert id is
	// returned where the driver supports one.
	Insert(ctx context.Context, sql string, args []any, sequence string) (any, error)
}

// ErrNoExecutor is returned by Exec on a builder that was constructed
// without an executor.
var ErrNoExecutor = errors.New("query: no executor configured")
