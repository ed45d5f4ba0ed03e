// Package repository defines the persistence contract shared by the sqlite and
// postgres stores.
//
// Every accessor that touches an activity, task or time entry takes the acting
// user id and only sees rows whose activity belongs to that user through an
// OWNER membership of the activity's team. Soft-deleted rows are never
// returned. A row that fails either filter is reported as not found.
package repository

import (
	"context"
	"time"
)

// Queries is the set of operations available both on a Store and inside a
// unit of work.
type Queries interface {
	// Teams
	CreateTeam(ctx context.Context, team *Team, ownerUserID string) error
	FindOwnerTeam(ctx context.Context, userID string) (*Team, error)

	// Activities
	CreateActivity(ctx context.Context, activity *Activity) error
	FindOwnedActivity(ctx context.Context, id, userID string) (*Activity, error)
	ListOwnedActivities(ctx context.Context, userID string, filter ActivityFilter) ([]*Activity, error)
	MarkActivityCompleted(ctx context.Context, id, userID string, at time.Time) error
	SoftDeleteActivity(ctx context.Context, id, userID string, at time.Time) error
	TopSourceActivities(ctx context.Context, userID string, limit int) ([]*SourceCount, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task, userID string) error
	FindOwnedTask(ctx context.Context, id, userID string) (*Task, error)
	ListTasks(ctx context.Context, activityID, userID string) ([]*Task, error)
	MarkTaskCompleted(ctx context.Context, id, userID string, at time.Time) error
	SoftDeleteTask(ctx context.Context, id, userID string, at time.Time) error

	// Time entries
	CreateTimeEntry(ctx context.Context, entry *TimeEntry, userID string) error
	FindOwnedTimeEntry(ctx context.Context, id, userID string) (*TimeEntry, error)
	FindOpenTimeEntry(ctx context.Context, taskID, userID string) (*TimeEntry, error)
	ListActivityTimeEntries(ctx context.Context, activityID, userID string) ([]*TimeEntry, error)
	StopTimeEntry(ctx context.Context, id, userID string, at time.Time) error
}

// Store is a Queries backed by a database connection that can also run a
// function inside a single transaction. If fn returns an error the
// transaction is rolled back and none of its writes are visible.
type Store interface {
	Queries
	WithinTx(ctx context.Context, fn func(q Queries) error) error
	Close() error
}
