package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestLoad(t *testing.T) {
	migrations, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "000001_init", migrations[0].Name)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE activities")
	assert.Contains(t, migrations[0].Down, "DROP TABLE IF EXISTS activities")
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))

	for _, table := range []string{"teams", "team_memberships", "activities", "tasks", "time_entries"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestRunMigrations_OpenEntryIndex(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, RunMigrations(ctx, db))

	_, err := db.Exec(`
		INSERT INTO teams (id, name, created_at) VALUES ('team', 'Personal', '2024-01-01T00:00:00.000000000Z');
		INSERT INTO activities (id, name, user_id, team_id, created_at) VALUES ('a1', 'Focus', 'u1', 'team', '2024-01-01T00:00:00.000000000Z');
		INSERT INTO tasks (id, activity_id, name, duration_ms, position, created_at) VALUES ('t1', 'a1', 'Read', 60000, 0, '2024-01-01T00:00:00.000000000Z');
		INSERT INTO time_entries (id, task_id, started_at) VALUES ('e1', 't1', '2024-01-01T10:00:00.000000000Z');
	`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO time_entries (id, task_id, started_at) VALUES ('e2', 't1', '2024-01-01T10:05:00.000000000Z')`)
	assert.Error(t, err, "a second open entry for the same task must be rejected")

	_, err = db.Exec(`UPDATE time_entries SET stopped_at = '2024-01-01T10:01:00.000000000Z' WHERE id = 'e1'`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO time_entries (id, task_id, started_at) VALUES ('e2', 't1', '2024-01-01T10:05:00.000000000Z')`)
	assert.NoError(t, err)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, RunMigrations(ctx, db))

	require.NoError(t, Rollback(ctx, db))
	assert.False(t, tableExists(t, db, "activities"))

	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "activities"))
}
