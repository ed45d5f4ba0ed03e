// Package postgres implements repository.Store on PostgreSQL through a pgx
// connection pool. Units of work run at serializable isolation; a transaction
// that loses a race is reported as a conflict and nothing it wrote is kept.
package postgres

import (
	"context"
	_ "embed"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

//go:embed schema.sql
var schema string

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Options tunes the pool.
type Options struct {
	// StatementTimeout bounds every statement server side; zero leaves the
	// server default.
	StatementTimeout time.Duration
}

// Store is the PostgreSQL implementation of repository.Store.
type Store struct {
	*queries
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// Open connects to url, checks the connection and applies the schema.
func Open(ctx context.Context, url string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.NewInvalidInputError("postgres url", nil, err.Error())
	}
	if opts.StatementTimeout > 0 {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(opts.StatementTimeout.Milliseconds(), 10)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.NewDatabaseError("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewDatabaseError("ping", err)
	}

	s := NewStore(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing pool. The schema is not applied.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{queries: &queries{db: pool}, pool: pool}
}

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return errors.NewDatabaseError("apply schema", err)
	}
	return nil
}

// WithinTx runs fn in a serializable transaction, committing only if fn
// succeeds. fn must use the Queries it is handed, not the Store.
func (s *Store) WithinTx(ctx context.Context, fn func(q repository.Queries) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return handleError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&queries{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return handleError("commit transaction", err)
	}
	return nil
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// queries implements repository.Queries over either the pool or a transaction
type queries struct {
	db dbtx
}
