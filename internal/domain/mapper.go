package domain

import (
	"time"

	"momentum/internal/repository"
)

// ActivityMapper converts between domain and repository Activity models.
type ActivityMapper struct{}

// ToRepository drops the task graph; tasks are persisted separately.
func (m *ActivityMapper) ToRepository(a Activity) repository.Activity {
	return repository.Activity{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		UserID:           a.UserID,
		TeamID:           a.TeamID,
		SourceActivityID: a.SourceActivityID,
		CompletedAt:      a.CompletedAt,
		DeletedAt:        a.DeletedAt,
		CreatedAt:        a.CreatedAt,
	}
}

func (m *ActivityMapper) FromRepository(row repository.Activity) Activity {
	return Activity{
		ID:               row.ID,
		Name:             row.Name,
		Description:      row.Description,
		UserID:           row.UserID,
		TeamID:           row.TeamID,
		SourceActivityID: row.SourceActivityID,
		CompletedAt:      row.CompletedAt,
		DeletedAt:        row.DeletedAt,
		CreatedAt:        row.CreatedAt,
	}
}

func (m *ActivityMapper) FromRepositorySlice(rows []*repository.Activity) []Activity {
	out := make([]Activity, len(rows))
	for i, row := range rows {
		out[i] = m.FromRepository(*row)
	}
	return out
}

// TaskMapper converts between domain and repository Task models.
// Durations are stored as whole milliseconds.
type TaskMapper struct{}

func (m *TaskMapper) ToRepository(t Task) repository.Task {
	return repository.Task{
		ID:          t.ID,
		ActivityID:  t.ActivityID,
		Name:        t.Name,
		DurationMs:  t.Duration.Milliseconds(),
		Position:    t.Position,
		CompletedAt: t.CompletedAt,
		DeletedAt:   t.DeletedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *TaskMapper) FromRepository(row repository.Task) Task {
	return Task{
		ID:          row.ID,
		ActivityID:  row.ActivityID,
		Name:        row.Name,
		Duration:    time.Duration(row.DurationMs) * time.Millisecond,
		Position:    row.Position,
		CompletedAt: row.CompletedAt,
		DeletedAt:   row.DeletedAt,
		CreatedAt:   row.CreatedAt,
	}
}

func (m *TaskMapper) FromRepositorySlice(rows []*repository.Task) []Task {
	out := make([]Task, len(rows))
	for i, row := range rows {
		out[i] = m.FromRepository(*row)
	}
	return out
}

// TimeEntryMapper converts between domain and repository TimeEntry models.
type TimeEntryMapper struct{}

func (m *TimeEntryMapper) ToRepository(e TimeEntry) repository.TimeEntry {
	return repository.TimeEntry{
		ID:        e.ID,
		TaskID:    e.TaskID,
		StartedAt: e.StartedAt,
		StoppedAt: e.StoppedAt,
	}
}

func (m *TimeEntryMapper) FromRepository(row repository.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:        row.ID,
		TaskID:    row.TaskID,
		StartedAt: row.StartedAt,
		StoppedAt: row.StoppedAt,
	}
}

func (m *TimeEntryMapper) FromRepositorySlice(rows []*repository.TimeEntry) []TimeEntry {
	out := make([]TimeEntry, len(rows))
	for i, row := range rows {
		out[i] = m.FromRepository(*row)
	}
	return out
}

// Mapper bundles the per-entity mappers.
type Mapper struct {
	Activity  *ActivityMapper
	Task      *TaskMapper
	TimeEntry *TimeEntryMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Activity:  &ActivityMapper{},
		Task:      &TaskMapper{},
		TimeEntry: &TimeEntryMapper{},
	}
}

// Assemble builds an activity aggregate from its rows. Entries are attached
// to their task in the order given; entries of unknown tasks are dropped.
func (m *Mapper) Assemble(activity *repository.Activity, tasks []*repository.Task, entries []*repository.TimeEntry) Activity {
	a := m.Activity.FromRepository(*activity)
	a.Tasks = m.Task.FromRepositorySlice(tasks)

	index := make(map[string]int, len(a.Tasks))
	for i, t := range a.Tasks {
		index[t.ID] = i
	}
	for _, row := range entries {
		if i, ok := index[row.TaskID]; ok {
			a.Tasks[i].TimeEntries = append(a.Tasks[i].TimeEntries, m.TimeEntry.FromRepository(*row))
		}
	}
	return a
}
