package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"momentum/internal/errors"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HandleDatabaseError converts driver errors to structured app errors.
// Constraint violations (the open-entry and live-position unique indexes)
// become conflicts; an expired deadline or busy_timeout becomes a timeout.
func HandleDatabaseError(operation string, err error) error {
	switch {
	case isConstraintViolation(err):
		return errors.NewConflictError(operation, err)
	case stderrors.Is(err, context.DeadlineExceeded) || isBusy(err):
		return errors.NewTimeoutError(operation, err)
	}
	return errors.NewDatabaseError(operation, err)
}

func isBusy(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_BUSY
	}
	return false
}

func isConstraintViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// rowsAffected returns the number of rows changed by result
func rowsAffected(result sql.Result) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}
	return rows, nil
}

// ExecuteWithRowsAffected executes a query and returns how many rows it changed
func ExecuteWithRowsAffected(ctx context.Context, db DBTX, operation string, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, HandleDatabaseError(operation, err)
	}
	return rowsAffected(result)
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db DBTX, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryOptional is QuerySingle that returns nil instead of a not-found error
func QueryOptional[T any](ctx context.Context, db DBTX, query string, scanFunc func(Scanner) (*T, error), entityType string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db DBTX, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}
