package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"momentum/internal/errors"
	"momentum/internal/repository"
	"momentum/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// DefaultBusyTimeout is how long a statement waits on a locked database.
const DefaultBusyTimeout = 5 * time.Second

// Options tunes how the database is opened.
type Options struct {
	BusyTimeout time.Duration
}

func pragmas(opts Options) []string {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = DefaultBusyTimeout
	}
	return []string{
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busy.Milliseconds()),
	}
}

// Store is the sqlite implementation of repository.Store.
//
// The pool is capped at one connection: transactions are serialised, which
// makes check-then-write sequences inside WithinTx race free, and an
// in-memory database survives for the lifetime of the Store.
type Store struct {
	*queries
	db *sql.DB
}

var _ repository.Store = (*Store)(nil)

// New opens the database at dsn and applies pending migrations
func New(dsn string) (*Store, error) {
	return NewWithContext(context.Background(), dsn)
}

// NewWithContext is New with a caller supplied context for setup
func NewWithContext(ctx context.Context, dsn string) (*Store, error) {
	return Open(ctx, dsn, Options{})
}

// Open opens the database at dsn with opts and applies pending migrations
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas(opts) {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("set pragma", err)
		}
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &Store{queries: &queries{db: db}, db: db}, nil
}

// WithinTx runs fn inside a transaction, committing only if fn succeeds.
// fn must use the Queries it is handed, not the Store.
func (s *Store) WithinTx(ctx context.Context, fn func(q repository.Queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(&queries{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// queries implements repository.Queries over either the pool or a transaction
type queries struct {
	db DBTX
}

// ownedActivity restricts alias a to live activities owned by the user bound
// to the trailing placeholder.
const ownedActivity = `
	JOIN team_memberships m ON m.team_id = a.team_id AND m.user_id = a.user_id AND m.role = 'OWNER'
	WHERE a.deleted_at IS NULL AND a.user_id = ?`
