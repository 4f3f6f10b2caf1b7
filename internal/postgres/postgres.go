package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tutordesk/tutordesk/internal/config"
	ierr "github.com/tutordesk/tutordesk/internal/errors"
	"github.com/tutordesk/tutordesk/internal/logger"
)

// IClient is the transactional surface services depend on
type IClient interface {
	// WithTx runs fn inside a transaction carried by the context passed to fn.
	// Nested calls become savepoints of the outer transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	Rebind(query string) string
}

// NewDB opens the pool and waits for the server with exponential backoff
func NewDB(cfg *config.Configuration, log *logger.Logger) (*DB, error) {
	pg := cfg.Postgres

	var db *sqlx.DB
	connect := func() error {
		conn, err := sqlx.Connect("postgres", pg.GetDSN())
		if err != nil {
			log.Warnw("postgres not reachable yet", "host", pg.Host, "error", err)
			return err
		}
		db = conn
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pg.ConnectRetries)
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Could not connect to the database").
			Mark(ierr.ErrDatabase)
	}

	if pg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pg.MaxOpenConns)
	}
	if pg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pg.MaxIdleConns)
	}
	if pg.ConnMaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Infow("connected to postgres", "host", pg.Host, "dbname", pg.DBName)
	return &DB{DB: db, logger: log}, nil
}

// NewFromSQLX wraps an existing connection, mostly for tests
func NewFromSQLX(db *sqlx.DB, log *logger.Logger) *DB {
	return &DB{DB: db, logger: log}
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns either the transaction from context or the base DB
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}

// Ping is used by the health endpoint
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
