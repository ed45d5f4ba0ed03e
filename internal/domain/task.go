package domain

import (
	"time"

	"momentum/internal/errors"
)

// TaskState is the derived running state of a task.
type TaskState string

const (
	TaskIdle      TaskState = "idle"
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
)

// Task is a unit of work inside an activity with an allotted Duration.
// Elapsed and remaining time are never stored; they are derived from
// TimeEntries, which are kept in chronological order.
type Task struct {
	ID          string
	ActivityID  string
	Name        string
	Duration    time.Duration
	Position    int
	CompletedAt *time.Time
	DeletedAt   *time.Time
	CreatedAt   time.Time
	TimeEntries []TimeEntry
}

// IsDeleted reports whether the task was soft deleted.
func (t Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// IsCompleted reports whether the task was marked completed.
func (t Task) IsCompleted() bool {
	return t.CompletedAt != nil
}

// OpenEntry returns the task's open entry, or nil if it is not running.
func (t Task) OpenEntry() *TimeEntry {
	for i := range t.TimeEntries {
		if t.TimeEntries[i].IsOpen() {
			return &t.TimeEntries[i]
		}
	}
	return nil
}

// IsRunning reports whether the task has an open time entry.
func (t Task) IsRunning() bool {
	return t.OpenEntry() != nil
}

// State derives the task state. Completion wins over a running entry.
func (t Task) State() TaskState {
	switch {
	case t.IsCompleted():
		return TaskCompleted
	case t.IsRunning():
		return TaskRunning
	default:
		return TaskIdle
	}
}

// CanStart returns an InvalidState error unless the task is idle.
func (t Task) CanStart() error {
	if t.IsDeleted() {
		return errors.NewNotFoundError("task", t.ID)
	}
	switch t.State() {
	case TaskCompleted:
		return errors.NewInvalidStateError("task", t.ID, "already completed")
	case TaskRunning:
		return errors.NewInvalidStateError("task", t.ID, "already running")
	}
	return nil
}

// CanStop returns an InvalidState error unless the task is running.
func (t Task) CanStop() error {
	if t.IsDeleted() {
		return errors.NewNotFoundError("task", t.ID)
	}
	if !t.IsRunning() {
		return errors.NewInvalidStateError("task", t.ID, "not running")
	}
	return nil
}

// CanComplete returns an InvalidState error if the task is already completed.
// A running task may be completed; its open entry is closed first.
func (t Task) CanComplete() error {
	if t.IsDeleted() {
		return errors.NewNotFoundError("task", t.ID)
	}
	if t.IsCompleted() {
		return errors.NewInvalidStateError("task", t.ID, "already completed")
	}
	return nil
}

func (t Task) String() string {
	return t.Name
}
