package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

func TestHandleDatabaseError(t *testing.T) {
	err := HandleDatabaseError("list tasks", stderrors.New("disk I/O error"))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	assert.Contains(t, err.Error(), "list tasks")
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestHandleDatabaseError_ConstraintViolationIsConflict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `INSERT INTO teams (id, name, created_at) VALUES ('dup', 'x', ?)`, ts)
	require.NoError(t, err)
	_, rawErr := store.db.ExecContext(ctx, `INSERT INTO teams (id, name, created_at) VALUES ('dup', 'y', ?)`, ts)
	require.Error(t, rawErr)

	err = HandleDatabaseError("create team", rawErr)
	assert.True(t, errors.IsInvalidState(err))
	assert.Equal(t, "CONFLICT", errors.GetErrorCode(err))
}

func TestHandleDatabaseError_DeadlineIsTimeout(t *testing.T) {
	err := HandleDatabaseError("list activities", fmt.Errorf("query: %w", context.DeadlineExceeded))

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
	assert.Equal(t, "TIMEOUT", errors.GetErrorCode(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHandleDatabaseError_BusyIsTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momentum.db")
	ctx := context.Background()
	store, err := Open(ctx, path, Options{BusyTimeout: time.Millisecond})
	require.NoError(t, err)
	defer store.Close()

	locker, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer locker.Close()
	locker.SetMaxOpenConns(1)
	_, err = locker.ExecContext(ctx, "BEGIN EXCLUSIVE")
	require.NoError(t, err)
	defer locker.ExecContext(ctx, "ROLLBACK")

	_, rawErr := store.db.ExecContext(ctx, `INSERT INTO teams (id, name, created_at) VALUES ('t1', 'x', ?)`, ts)
	require.Error(t, rawErr)

	err = HandleDatabaseError("create team", rawErr)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout), "got %v", err)
}

func TestQuerySingle_NoRowsIsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := QuerySingle(context.Background(), store.db,
		`SELECT id, name, created_at FROM teams WHERE id = ?`, ScanTeam, "team", "missing", "missing")

	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "team not found: missing")
}

func TestQueryOptional_NoRowsIsNil(t *testing.T) {
	store := newTestStore(t)

	team, err := QueryOptional(context.Background(), store.db,
		`SELECT id, name, created_at FROM teams WHERE id = ?`, ScanTeam, "team", "missing")

	assert.NoError(t, err)
	assert.Nil(t, team)
}

func TestQueryMultiple_EmptyResult(t *testing.T) {
	store := newTestStore(t)

	teams, err := QueryMultiple(context.Background(), store.db,
		`SELECT id, name, created_at FROM teams`, func(r Rows) ([]*repository.Team, error) {
			return scanAll(r, ScanTeam)
		}, "teams")

	assert.NoError(t, err)
	assert.Empty(t, teams)
}

func TestExecuteWithRowsAffected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := ExecuteWithRowsAffected(ctx, store.db, "noop", `UPDATE teams SET name = 'x' WHERE id = ?`, "missing")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = ExecuteWithRowsAffected(ctx, store.db, "bad", `UPDATE nope SET x = 1`)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
}

var _ DBTX = (*sql.DB)(nil)
var _ DBTX = (*sql.Tx)(nil)
