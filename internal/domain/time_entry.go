package domain

import (
	"time"
)

// TimeEntry is one start/stop interval of work on a task.
// A nil StoppedAt means the entry is open and the task is running.
type TimeEntry struct {
	ID        string
	TaskID    string
	StartedAt time.Time
	StoppedAt *time.Time
}

// NewTimeEntry opens an entry for taskID at startedAt.
func NewTimeEntry(id, taskID string, startedAt time.Time) TimeEntry {
	return TimeEntry{
		ID:        id,
		TaskID:    taskID,
		StartedAt: startedAt,
	}
}

// IsOpen reports whether the entry has not been stopped.
func (te TimeEntry) IsOpen() bool {
	return te.StoppedAt == nil
}

// Stop returns a copy of the entry closed at stoppedAt. A stop time earlier
// than the start is moved up to the start so the interval is never negative.
func (te TimeEntry) Stop(stoppedAt time.Time) TimeEntry {
	if stoppedAt.Before(te.StartedAt) {
		stoppedAt = te.StartedAt
	}
	te.StoppedAt = &stoppedAt
	return te
}

// Elapsed is the length of the interval, measuring an open entry up to now.
// Entries that start after now contribute zero.
func (te TimeEntry) Elapsed(now time.Time) time.Duration {
	end := now
	if te.StoppedAt != nil {
		end = *te.StoppedAt
	}
	if d := end.Sub(te.StartedAt); d > 0 {
		return d
	}
	return 0
}
