package postgres

import (
	"context"
	"fmt"
	"time"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

// ownedActivity restricts alias a to live activities owned by the user bound
// to placeholder $n.
func ownedActivity(n int) string {
	return fmt.Sprintf(`
	JOIN team_memberships m ON m.team_id = a.team_id AND m.user_id = a.user_id AND m.role = 'OWNER'
	WHERE a.deleted_at IS NULL AND a.user_id = $%d`, n)
}

// ownedTask restricts alias t to live tasks of live activities owned by the
// user bound to placeholder $n.
func ownedTask(n int) string {
	return `
	JOIN activities a ON a.id = t.activity_id` + ownedActivity(n) + ` AND t.deleted_at IS NULL`
}

// Teams

func (q *queries) CreateTeam(ctx context.Context, team *repository.Team, ownerUserID string) error {
	if _, err := exec(ctx, q.db, "create team",
		`INSERT INTO teams (id, name, created_at) VALUES ($1, $2, $3)`,
		team.ID, team.Name, team.CreatedAt.UTC(),
	); err != nil {
		return err
	}
	_, err := exec(ctx, q.db, "create team membership",
		`INSERT INTO team_memberships (team_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)`,
		team.ID, ownerUserID, string(repository.RoleOwner), team.CreatedAt.UTC(),
	)
	return err
}

func (q *queries) FindOwnerTeam(ctx context.Context, userID string) (*repository.Team, error) {
	query := `
	SELECT t.id, t.name, t.created_at
	FROM teams t
	JOIN team_memberships m ON m.team_id = t.id
	WHERE m.user_id = $1 AND m.role = 'OWNER'
	ORDER BY t.created_at ASC, t.id ASC
	LIMIT 1`
	return querySingle(ctx, q.db, query, scanTeam, "team", "owned by "+userID, userID)
}

// Activities

func (q *queries) CreateActivity(ctx context.Context, a *repository.Activity) error {
	query := `
	INSERT INTO activities (id, name, description, user_id, team_id, source_activity_id, created_at)
	SELECT $1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::timestamptz
	WHERE EXISTS (
		SELECT 1 FROM team_memberships
		WHERE team_id = $5::text AND user_id = $4::text AND role = 'OWNER'
	)`
	n, err := exec(ctx, q.db, "create activity", query,
		a.ID, a.Name, a.Description, a.UserID, a.TeamID, a.SourceActivityID, a.CreatedAt.UTC())
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("team", a.TeamID)
	}
	return nil
}

func (q *queries) FindOwnedActivity(ctx context.Context, id, userID string) (*repository.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a` + ownedActivity(1) + ` AND a.id = $2`
	return querySingle(ctx, q.db, query, scanOneActivity, "activity", id, userID, id)
}

func (q *queries) ListOwnedActivities(ctx context.Context, userID string, filter repository.ActivityFilter) ([]*repository.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a` + ownedActivity(1)
	if filter.Completed != nil {
		if *filter.Completed {
			query += ` AND a.completed_at IS NOT NULL`
		} else {
			query += ` AND a.completed_at IS NULL`
		}
	}
	query += ` ORDER BY a.created_at DESC, a.id ASC`
	return queryMultiple(ctx, q.db, query, scanOneActivity, "activities", userID)
}

func (q *queries) MarkActivityCompleted(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE activities SET completed_at = $1
	WHERE id = $2 AND completed_at IS NULL AND id IN (SELECT a.id FROM activities a` + ownedActivity(3) + `)`
	n, err := exec(ctx, q.db, "complete activity", query, at.UTC(), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := q.FindOwnedActivity(ctx, id, userID); err != nil {
			return err
		}
		return errors.NewInvalidStateError("activity", id, "already completed")
	}
	return nil
}

func (q *queries) SoftDeleteActivity(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE activities SET deleted_at = $1
	WHERE id = $2 AND id IN (SELECT a.id FROM activities a` + ownedActivity(3) + `)`
	n, err := exec(ctx, q.db, "delete activity", query, at.UTC(), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("activity", id)
	}
	return nil
}

func (q *queries) TopSourceActivities(ctx context.Context, userID string, limit int) ([]*repository.SourceCount, error) {
	query := `
	SELECT ` + activityColumns + `, COUNT(c.id) AS clones
	FROM activities c
	JOIN activities a ON a.id = c.source_activity_id` + ownedActivity(1) + `
	AND c.user_id = a.user_id AND c.deleted_at IS NULL
	GROUP BY a.id
	ORDER BY clones DESC, a.created_at DESC, a.id ASC
	LIMIT $2`
	return queryMultiple(ctx, q.db, query, scanSourceCount, "source activities", userID, limit)
}

// Tasks

func (q *queries) CreateTask(ctx context.Context, t *repository.Task, userID string) error {
	query := `
	INSERT INTO tasks (id, activity_id, name, duration_ms, position, created_at)
	SELECT $1::text, $2::text, $3::text, $4::bigint, $5::integer, $6::timestamptz
	WHERE EXISTS (SELECT 1 FROM activities a` + ownedActivity(7) + ` AND a.id = $2::text)`
	n, err := exec(ctx, q.db, "create task", query,
		t.ID, t.ActivityID, t.Name, t.DurationMs, t.Position, t.CreatedAt.UTC(), userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("activity", t.ActivityID)
	}
	return nil
}

func (q *queries) FindOwnedTask(ctx context.Context, id, userID string) (*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t` + ownedTask(1) + ` AND t.id = $2`
	return querySingle(ctx, q.db, query, scanTask, "task", id, userID, id)
}

func (q *queries) ListTasks(ctx context.Context, activityID, userID string) ([]*repository.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t` + ownedTask(1) + ` AND t.activity_id = $2
	ORDER BY t.position ASC`
	return queryMultiple(ctx, q.db, query, scanTask, "tasks", userID, activityID)
}

func (q *queries) MarkTaskCompleted(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE tasks SET completed_at = $1
	WHERE id = $2 AND completed_at IS NULL AND id IN (SELECT t.id FROM tasks t` + ownedTask(3) + `)`
	n, err := exec(ctx, q.db, "complete task", query, at.UTC(), id, userID)
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

func (q *queries) SoftDeleteTask(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE tasks SET deleted_at = $1
	WHERE id = $2 AND id IN (SELECT t.id FROM tasks t` + ownedTask(3) + `)`
	n, err := exec(ctx, q.db, "delete task", query, at.UTC(), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("task", id)
	}
	return nil
}

// Time entries

func (q *queries) CreateTimeEntry(ctx context.Context, e *repository.TimeEntry, userID string) error {
	query := `
	INSERT INTO time_entries (id, task_id, started_at, stopped_at)
	SELECT $1::text, $2::text, $3::timestamptz, $4::timestamptz
	WHERE EXISTS (SELECT 1 FROM tasks t` + ownedTask(5) + ` AND t.id = $2::text)`
	n, err := exec(ctx, q.db, "create time entry", query,
		e.ID, e.TaskID, e.StartedAt.UTC(), utc(e.StoppedAt), userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("task", e.TaskID)
	}
	return nil
}

func (q *queries) FindOwnedTimeEntry(ctx context.Context, id, userID string) (*repository.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id` + ownedTask(1) + ` AND e.id = $2`
	return querySingle(ctx, q.db, query, scanTimeEntry, "time entry", id, userID, id)
}

func (q *queries) FindOpenTimeEntry(ctx context.Context, taskID, userID string) (*repository.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id` + ownedTask(1) + ` AND e.task_id = $2 AND e.stopped_at IS NULL`
	return queryOptional(ctx, q.db, query, scanTimeEntry, "time entry", userID, taskID)
}

func (q *queries) ListActivityTimeEntries(ctx context.Context, activityID, userID string) ([]*repository.TimeEntry, error) {
	query := `
	SELECT ` + timeEntryColumns + `
	FROM time_entries e
	JOIN tasks t ON t.id = e.task_id` + ownedTask(1) + ` AND t.activity_id = $2
	ORDER BY e.started_at ASC, e.id ASC`
	return queryMultiple(ctx, q.db, query, scanTimeEntry, "time entries", userID, activityID)
}

func (q *queries) StopTimeEntry(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE time_entries SET stopped_at = $1
	WHERE id = $2 AND stopped_at IS NULL AND task_id IN (SELECT t.id FROM tasks t` + ownedTask(3) + `)`
	n, err := exec(ctx, q.db, "stop time entry", query, at.UTC(), id, userID)
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
