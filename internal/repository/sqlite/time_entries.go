package sqlite

import (
	"context"
	"time"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

// CreateTimeEntry appends an entry to a live, owned task. A second open entry
// for the same task violates uq_time_entries_open and surfaces as a conflict.
func (q *queries) CreateTimeEntry(ctx context.Context, e *repository.TimeEntry, userID string) error {
	query := `
	INSERT INTO time_entries (id, task_id, started_at, stopped_at)
	SELECT ?, ?, ?, ?
	WHERE EXISTS (SELECT 1 FROM tasks t` + ownedTask + ` AND t.id = ?)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "create time entry", query,
		e.ID, e.TaskID, FormatTimeForDB(e.StartedAt), FormatTimePtrForDB(e.StoppedAt),
		userID, e.TaskID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("task", e.TaskID)
	}
	return nil
}

// FindOwnedTimeEntry returns an entry of a live, owned task
func (q *queries) FindOwnedTimeEntry(ctx context.Context, id, userID string) (*repository.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id` + ownedTask + ` AND e.id = ?`
	return QuerySingle(ctx, q.db, query, ScanTimeEntry, "time entry", id, userID, id)
}

// FindOpenTimeEntry returns the task's open entry, or nil if it has none
func (q *queries) FindOpenTimeEntry(ctx context.Context, taskID, userID string) (*repository.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id` + ownedTask + ` AND e.task_id = ? AND e.stopped_at IS NULL`
	return QueryOptional(ctx, q.db, query, ScanTimeEntry, "time entry", userID, taskID)
}

// ListActivityTimeEntries lists the entries of every live task of an owned
// activity in chronological order.
func (q *queries) ListActivityTimeEntries(ctx context.Context, activityID, userID string) ([]*repository.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id` + ownedTask + ` AND t.activity_id = ?
	ORDER BY e.started_at ASC, e.id ASC`
	return QueryMultiple(ctx, q.db, query, ScanTimeEntries, "time entries", userID, activityID)
}

// StopTimeEntry closes an open entry. Stopping a closed entry is an invalid
// state transition; the stored stop time is never rewritten.
func (q *queries) StopTimeEntry(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE time_entries SET stopped_at = ?
	WHERE id = ? AND stopped_at IS NULL AND task_id IN (SELECT t.id FROM tasks t` + ownedTask + `)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "stop time entry", query, FormatTimeForDB(at), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := q.FindOwnedTimeEntry(ctx, id, userID); err != nil {
			return err
		}
		return errors.NewInvalidStateError("time entry", id, "already stopped")
	}
	return nil
}
