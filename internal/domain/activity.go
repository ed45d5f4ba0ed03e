package domain

import (
	"sort"
	"time"

	"momentum/internal/errors"
)

// ActivityState is the derived state of an activity.
type ActivityState string

const (
	ActivityIdle      ActivityState = "idle"
	ActivityRunning   ActivityState = "running"
	ActivityCompleted ActivityState = "completed"
)

// Activity is an ordered list of tasks owned by a user within a team.
// SourceActivityID links a clone back to the activity it was copied from.
type Activity struct {
	ID               string
	Name             string
	Description      *string
	UserID           string
	TeamID           string
	SourceActivityID *string
	CompletedAt      *time.Time
	DeletedAt        *time.Time
	CreatedAt        time.Time
	Tasks            []Task
}

// IsDeleted reports whether the activity was soft deleted.
func (a Activity) IsDeleted() bool {
	return a.DeletedAt != nil
}

// IsCompleted reports whether the activity was marked completed.
func (a Activity) IsCompleted() bool {
	return a.CompletedAt != nil
}

// IsClone reports whether the activity was created from a template.
func (a Activity) IsClone() bool {
	return a.SourceActivityID != nil
}

// LiveTasks returns the non-deleted tasks ordered by position.
func (a Activity) LiveTasks() []Task {
	live := make([]Task, 0, len(a.Tasks))
	for _, t := range a.Tasks {
		if !t.IsDeleted() {
			live = append(live, t)
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].Position < live[j].Position })
	return live
}

// RunningTask returns the first live task with an open entry, if any.
func (a Activity) RunningTask() *Task {
	for _, t := range a.LiveTasks() {
		if t.IsRunning() {
			t := t
			return &t
		}
	}
	return nil
}

// IsRunning is true when the activity is not completed and any live task
// has an open time entry.
func (a Activity) IsRunning() bool {
	return !a.IsCompleted() && a.RunningTask() != nil
}

// State derives the activity state.
func (a Activity) State() ActivityState {
	switch {
	case a.IsCompleted():
		return ActivityCompleted
	case a.IsRunning():
		return ActivityRunning
	default:
		return ActivityIdle
	}
}

// AllTasksCompleted reports whether every live task is completed. An
// activity without live tasks trivially satisfies it.
func (a Activity) AllTasksCompleted() bool {
	for _, t := range a.LiveTasks() {
		if !t.IsCompleted() {
			return false
		}
	}
	return true
}

// NextPosition is one past the highest live position, or 0 when empty.
func (a Activity) NextPosition() int {
	return NextPosition(a.Tasks)
}

// NextPosition is one past the highest position among live tasks.
func NextPosition(tasks []Task) int {
	next := 0
	for _, t := range tasks {
		if !t.IsDeleted() && t.Position >= next {
			next = t.Position + 1
		}
	}
	return next
}

// CanAddTask rejects deleted and completed activities.
func (a Activity) CanAddTask() error {
	if a.IsDeleted() {
		return errors.NewNotFoundError("activity", a.ID)
	}
	if a.IsCompleted() {
		return errors.NewInvalidStateError("activity", a.ID, "already completed")
	}
	return nil
}

// CanComplete rejects deleted or completed activities and activities with
// unfinished live tasks.
func (a Activity) CanComplete() error {
	if a.IsDeleted() {
		return errors.NewNotFoundError("activity", a.ID)
	}
	if a.IsCompleted() {
		return errors.NewInvalidStateError("activity", a.ID, "already completed")
	}
	if !a.AllTasksCompleted() {
		return errors.NewInvalidStateError("activity", a.ID, "has unfinished tasks")
	}
	return nil
}

func (a Activity) String() string {
	return a.Name
}
