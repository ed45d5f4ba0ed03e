package postgres

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"momentum/internal/errors"
)

const (
	uniqueViolation      = "23505"
	checkViolation       = "23514"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	queryCanceled        = "57014"
)

// handleError converts pgx errors to structured app errors. Lost races and
// constraint violations become conflicts.
func handleError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation, checkViolation, serializationFailure, deadlockDetected:
			return errors.NewConflictError(operation, err)
		case queryCanceled:
			return errors.NewTimeoutError(operation, err)
		}
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

// exec runs a statement and returns how many rows it changed
func exec(ctx context.Context, db dbtx, operation, query string, args ...any) (int64, error) {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, handleError(operation, err)
	}
	return tag.RowsAffected(), nil
}

// querySingle scans one row, reporting a missing row as not found
func querySingle[T any](ctx context.Context, db dbtx, query string, scan func(pgx.Row) (*T, error), entity, id string, args ...any) (*T, error) {
	v, err := scan(db.QueryRow(ctx, query, args...))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, errors.NewNotFoundError(entity, id)
		}
		return nil, handleError("get "+entity, err)
	}
	return v, nil
}

// queryOptional scans one row, returning nil when there is none
func queryOptional[T any](ctx context.Context, db dbtx, query string, scan func(pgx.Row) (*T, error), entity string, args ...any) (*T, error) {
	v, err := scan(db.QueryRow(ctx, query, args...))
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, handleError("get "+entity, err)
	}
	return v, nil
}

// queryMultiple scans every returned row
func queryMultiple[T any](ctx context.Context, db dbtx, query string, scan func(pgx.Row) (*T, error), entity string, args ...any) ([]*T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, handleError("list "+entity, err)
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, handleError("scan "+entity, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("list "+entity, err)
	}
	return out, nil
}
