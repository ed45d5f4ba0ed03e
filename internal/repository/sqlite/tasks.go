package sqlite

import (
	"context"
	"time"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

// ownedTask restricts alias t to live tasks of live activities owned by the
// user bound to the trailing placeholder.
const ownedTask = `
	JOIN activities a ON a.id = t.activity_id` + ownedActivity + ` AND t.deleted_at IS NULL`

// CreateTask inserts the task only if its parent activity is live and owned
func (q *queries) CreateTask(ctx context.Context, t *repository.Task, userID string) error {
	query := `
	INSERT INTO tasks (id, activity_id, name, duration_ms, position, completed_at, deleted_at, created_at)
	SELECT ?, ?, ?, ?, ?, NULL, NULL, ?
	WHERE EXISTS (SELECT 1 FROM activities a` + ownedActivity + ` AND a.id = ?)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "create task", query,
		t.ID, t.ActivityID, t.Name, t.DurationMs, t.Position, FormatTimeForDB(t.CreatedAt),
		userID, t.ActivityID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("activity", t.ActivityID)
	}
	return nil
}

// FindOwnedTask returns a live task whose activity is owned by userID
func (q *queries) FindOwnedTask(ctx context.Context, id, userID string) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t` + ownedTask + ` AND t.id = ?`
	return QuerySingle(ctx, q.db, query, ScanTask, "task", id, userID, id)
}

// ListTasks lists the live tasks of an owned activity ordered by position
func (q *queries) ListTasks(ctx context.Context, activityID, userID string) ([]*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t` + ownedTask + ` AND t.activity_id = ?
	ORDER BY t.position ASC`
	return QueryMultiple(ctx, q.db, query, ScanTasks, "tasks", userID, activityID)
}

// MarkTaskCompleted sets completed_at once
func (q *queries) MarkTaskCompleted(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE tasks SET completed_at = ?
	WHERE id = ? AND completed_at IS NULL AND id IN (SELECT t.id FROM tasks t` + ownedTask + `)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "complete task", query, FormatTimeForDB(at), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := q.FindOwnedTask(ctx, id, userID); err != nil {
			return err
		}
		return errors.NewInvalidStateError("task", id, "already completed")
	}
	return nil
}

// SoftDeleteTask hides the task and frees its position
func (q *queries) SoftDeleteTask(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE tasks SET deleted_at = ?
	WHERE id = ? AND id IN (SELECT t.id FROM tasks t` + ownedTask + `)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "delete task", query, FormatTimeForDB(at), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("task", id)
	}
	return nil
}
