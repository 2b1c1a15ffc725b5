package connector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/strataworks/sqlcraft/database"
	"github.com/strataworks/sqlcraft/dialect"
	"github.com/strataworks/sqlcraft/query"
)

// PostgresConnection is a pgxpool-backed Connection.
type PostgresConnection struct {
	config  Config
	pool    *pgxpool.Pool
	dialect dialect.Dialect
}

// ConnectPostgres opens a PostgreSQL connection pool, retrying per
// cfg.Retry when configured.
func ConnectPostgres(ctx context.Context, cfg Config) (*PostgresConnection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &PostgresConnection{
		config:  cfg,
		dialect: dialect.NewPostgresDialect(),
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if cfg.Retry != nil {
		if err := retryConnect(ctx, cfg.Retry, p.connect); err != nil {
			return nil, fmt.Errorf("connector: connect after %d retries: %w", cfg.Retry.MaxRetries, err)
		}
		return p, nil
	}
	if err := p.connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PostgresConnection) connect(ctx context.Context) error {
	if p.pool != nil {
		return nil
	}

	cfg := p.config
	if cfg.Pool.MaxOpen <= 0 {
		cfg.Pool.MaxOpen = 10
	}
	if cfg.Pool.MaxIdle < 0 {
		cfg.Pool.MaxIdle = 5
	}
	if cfg.Pool.MaxLifetime == 0 {
		cfg.Pool.MaxLifetime = time.Hour
	}
	if cfg.Pool.MaxIdleTime == 0 {
		cfg.Pool.MaxIdleTime = 30 * time.Minute
	}

	poolCfg, err := pgxpool.ParseConfig(p.buildDSN())
	if err != nil {
		return err
	}
	poolCfg.MaxConns = int32(cfg.Pool.MaxOpen)
	poolCfg.MinConns = int32(cfg.Pool.MaxIdle)
	poolCfg.MaxConnLifetime = cfg.Pool.MaxLifetime
	poolCfg.MaxConnIdleTime = cfg.Pool.MaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return err
	}
	p.pool = pool
	return nil
}

func (p *PostgresConnection) buildDSN() string {
	return NewDSNBuilder("postgres").
		Auth(p.config.Username, p.config.Password).
		Host(p.config.Host, p.config.Port).
		Database(p.config.Database).
		Param("sslmode", p.config.SSLMode).
		Params(p.config.Params).
		Build()
}

// DB exposes the pool as a database/sql handle via the pgx stdlib adapter.
func (p *PostgresConnection) DB() *sql.DB {
	return stdlib.OpenDBFromPool(p.pool)
}

// Executor returns a pgx-native executor over the pool.
func (p *PostgresConnection) Executor() query.Executor {
	return database.NewPgx(p.pool)
}

// Insert starts an InsertBuilder wired to this connection.
func (p *PostgresConnection) Insert(table string) *query.InsertBuilder {
	return query.NewInsert(p.dialect, p.Executor()).Into(table)
}

func (p *PostgresConnection) Dialect() dialect.Dialect {
	return p.dialect
}

func (p *PostgresConnection) Health(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("connector: not connected")
	}
	return p.pool.Ping(ctx)
}

func (p *PostgresConnection) Stats() Stats {
	if p.pool == nil {
		return Stats{}
	}
	s := p.pool.Stat()
	return Stats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

func (p *PostgresConnection) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}
