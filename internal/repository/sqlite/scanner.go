package sqlite

import (
	"database/sql"

	"momentum/internal/repository"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

const activityColumns = `a.id, a.name, a.description, a.user_id, a.team_id, a.source_activity_id, a.completed_at, a.deleted_at, a.created_at`

// ScanActivity scans a single activity selected with activityColumns
func ScanActivity(scanner Scanner) (*repository.Activity, error) {
	return scanActivity(scanner)
}

func scanActivity(scanner Scanner, extra ...interface{}) (*repository.Activity, error) {
	var (
		a                                 repository.Activity
		description, source               sql.NullString
		completedAt, deletedAt, createdAt sql.NullString
	)
	dest := []interface{}{&a.ID, &a.Name, &description, &a.UserID, &a.TeamID, &source, &completedAt, &deletedAt, &createdAt}
	if err := scanner.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	var err error
	a.Description = nullString(description)
	a.SourceActivityID = nullString(source)
	if a.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, err
	}
	if a.DeletedAt, err = ParseNullTimeFromDB(deletedAt); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = ParseTimeFromDB(createdAt.String); err != nil {
		return nil, err
	}
	return &a, nil
}

// ScanActivities scans multiple activities from database rows
func ScanActivities(rows Rows) ([]*repository.Activity, error) {
	return scanAll(rows, ScanActivity)
}

// ScanSourceCounts scans activity columns followed by a clone count
func ScanSourceCounts(rows Rows) ([]*repository.SourceCount, error) {
	return scanAll(rows, func(s Scanner) (*repository.SourceCount, error) {
		var clones int
		a, err := scanActivity(s, &clones)
		if err != nil {
			return nil, err
		}
		return &repository.SourceCount{Activity: *a, Clones: clones}, nil
	})
}

const taskColumns = `t.id, t.activity_id, t.name, t.duration_ms, t.position, t.completed_at, t.deleted_at, t.created_at`

// ScanTask scans a single task selected with taskColumns
func ScanTask(scanner Scanner) (*repository.Task, error) {
	var (
		t                                 repository.Task
		completedAt, deletedAt, createdAt sql.NullString
	)
	if err := scanner.Scan(&t.ID, &t.ActivityID, &t.Name, &t.DurationMs, &t.Position, &completedAt, &deletedAt, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if t.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, err
	}
	if t.DeletedAt, err = ParseNullTimeFromDB(deletedAt); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = ParseTimeFromDB(createdAt.String); err != nil {
		return nil, err
	}
	return &t, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*repository.Task, error) {
	return scanAll(rows, ScanTask)
}

const timeEntryColumns = `e.id, e.task_id, e.started_at, e.stopped_at`

// ScanTimeEntry scans a single time entry selected with timeEntryColumns
func ScanTimeEntry(scanner Scanner) (*repository.TimeEntry, error) {
	var (
		e         repository.TimeEntry
		startedAt string
		stoppedAt sql.NullString
	)
	if err := scanner.Scan(&e.ID, &e.TaskID, &startedAt, &stoppedAt); err != nil {
		return nil, err
	}

	var err error
	if e.StartedAt, err = ParseTimeFromDB(startedAt); err != nil {
		return nil, err
	}
	if e.StoppedAt, err = ParseNullTimeFromDB(stoppedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// ScanTimeEntries scans multiple time entries from database rows
func ScanTimeEntries(rows Rows) ([]*repository.TimeEntry, error) {
	return scanAll(rows, ScanTimeEntry)
}

// ScanTeam scans a single team
func ScanTeam(scanner Scanner) (*repository.Team, error) {
	var (
		t         repository.Team
		createdAt string
	)
	if err := scanner.Scan(&t.ID, &t.Name, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if t.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var out []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
