package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryTimeout = 5 * time.Second

type DB struct {
	*pgxpool.Pool
	queryTimeout  time.Duration
	reportTimeout time.Duration
}

// Option tunes a DB built by NewPostgreSQLDB
type Option func(*DB)

// WithQueryTimeout bounds every single-row and mutation call
func WithQueryTimeout(d time.Duration) Option {
	return func(db *DB) {
		if d > 0 {
			db.queryTimeout = d
		}
	}
}

// WithReportTimeout bounds range scans used by summaries
func WithReportTimeout(d time.Duration) Option {
	return func(db *DB) {
		if d > 0 {
			db.reportTimeout = d
		}
	}
}

func NewPostgreSQLDB(ctx context.Context, dsn string, opts ...Option) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	db := &DB{Pool: pool, queryTimeout: defaultQueryTimeout, reportTimeout: 6 * defaultQueryTimeout}
	for _, opt := range opts {
		opt(db)
	}

	pingCtx, cancel := db.WithTimeout(ctx)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return db, nil
}

// WithTimeout derives the context a single store call runs under
func (db *DB) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.queryTimeout)
}

// WithReportTimeout derives the context an aggregation scan runs under
func (db *DB) WithReportTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.reportTimeout)
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
