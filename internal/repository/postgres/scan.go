package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"

	"momentum/internal/repository"
)

const (
	activityColumns  = `a.id, a.name, a.description, a.user_id, a.team_id, a.source_activity_id, a.completed_at, a.deleted_at, a.created_at`
	taskColumns      = `t.id, t.activity_id, t.name, t.duration_ms, t.position, t.completed_at, t.deleted_at, t.created_at`
	timeEntryColumns = `e.id, e.task_id, e.started_at, e.stopped_at`
)

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func scanTeam(row pgx.Row) (*repository.Team, error) {
	var t repository.Team
	if err := row.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func scanActivity(row pgx.Row, extra ...any) (*repository.Activity, error) {
	var a repository.Activity
	dest := []any{&a.ID, &a.Name, &a.Description, &a.UserID, &a.TeamID, &a.SourceActivityID, &a.CompletedAt, &a.DeletedAt, &a.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	a.CompletedAt = utc(a.CompletedAt)
	a.DeletedAt = utc(a.DeletedAt)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func scanOneActivity(row pgx.Row) (*repository.Activity, error) {
	return scanActivity(row)
}

func scanSourceCount(row pgx.Row) (*repository.SourceCount, error) {
	var clones int64
	a, err := scanActivity(row, &clones)
	if err != nil {
		return nil, err
	}
	return &repository.SourceCount{Activity: *a, Clones: int(clones)}, nil
}

func scanTask(row pgx.Row) (*repository.Task, error) {
	var (
		t        repository.Task
		position int32
	)
	if err := row.Scan(&t.ID, &t.ActivityID, &t.Name, &t.DurationMs, &position, &t.CompletedAt, &t.DeletedAt, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Position = int(position)
	t.CompletedAt = utc(t.CompletedAt)
	t.DeletedAt = utc(t.DeletedAt)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func scanTimeEntry(row pgx.Row) (*repository.TimeEntry, error) {
	var e repository.TimeEntry
	if err := row.Scan(&e.ID, &e.TaskID, &e.StartedAt, &e.StoppedAt); err != nil {
		return nil, err
	}
	e.StartedAt = e.StartedAt.UTC()
	e.StoppedAt = utc(e.StoppedAt)
	return &e, nil
}
