package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/domain"
	"momentum/internal/services"
)

var now = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func closedEntry(id string, start time.Time, d time.Duration) domain.TimeEntry {
	stopped := start.Add(d)
	return domain.TimeEntry{ID: id, TaskID: "t1", StartedAt: start, StoppedAt: &stopped}
}

func TestPresenter_Task(t *testing.T) {
	p := NewPresenter(DisplayOptions{})
	task := domain.Task{
		ID:       "t1",
		Name:     "Warm up",
		Duration: time.Minute,
		TimeEntries: []domain.TimeEntry{
			closedEntry("e1", now.Add(-time.Hour), 40*time.Second),
			domain.NewTimeEntry("e2", "t1", now.Add(-30*time.Second)),
		},
	}

	view := p.Task(task, now)

	assert.Equal(t, "01:00", view.Duration)
	assert.Equal(t, "01:10", view.Elapsed)
	assert.Equal(t, "00:00", view.Remaining)
	assert.Equal(t, "00:10", view.Overrun)
	assert.True(t, view.Running)
	assert.Equal(t, domain.TaskRunning, view.State)
	require.Len(t, view.Entries, 2)
	assert.False(t, view.Entries[0].Running)
	assert.Equal(t, "00:40", view.Entries[0].Elapsed)
	assert.True(t, view.Entries[1].Running)
	assert.Equal(t, "running", p.RunningStatus())
}

func TestPresenter_TaskWithHours(t *testing.T) {
	p := NewPresenter(DisplayOptions{WithHours: true, RunningStatus: "in progress"})
	view := p.Task(domain.Task{Duration: 61*time.Minute + time.Second}, now)

	assert.Equal(t, "01:01:01", view.Duration)
	assert.Equal(t, "01:01:01", view.Remaining)
	assert.Empty(t, view.Overrun)
	assert.Equal(t, "in progress", p.RunningStatus())
}

func TestPresenter_Activity(t *testing.T) {
	p := NewPresenter(DefaultDisplayOptions())
	deleted := now.Add(-time.Minute)
	desc := "morning"
	src := "template-1"
	activity := domain.Activity{
		ID:               "a1",
		Name:             "Routine",
		Description:      &desc,
		SourceActivityID: &src,
		Tasks: []domain.Task{
			{ID: "t1", Duration: time.Minute, TimeEntries: []domain.TimeEntry{closedEntry("e1", now.Add(-time.Hour), 40*time.Second)}},
			{ID: "t2", Duration: 30 * time.Second, Position: 1},
			{ID: "gone", Duration: time.Hour, Position: 2, DeletedAt: &deleted},
		},
	}

	view := p.Activity(activity, now)

	assert.Equal(t, "morning", view.Description)
	assert.Equal(t, "template-1", view.SourceID)
	assert.Equal(t, "01:30", view.Total)
	assert.Equal(t, "00:40", view.Elapsed)
	assert.Equal(t, "00:50", view.Remaining)
	assert.Equal(t, "50 seconds", view.RemainingHuman)
	assert.InDelta(t, 55.55, view.Progress, 0.01)
	assert.Equal(t, domain.ActivityIdle, view.State)
	assert.False(t, view.Running)
	assert.Empty(t, view.RunningTaskID)
	assert.Len(t, view.Tasks, 2, "deleted tasks are not shown")

	activity.SourceActivityID = nil
	assert.Empty(t, p.Activity(activity, now).SourceID, "originals have no source")
}

func TestPresenter_Contributions(t *testing.T) {
	p := NewPresenter(DefaultDisplayOptions())
	window := domain.ContributionWindow{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC),
	}
	counts := domain.ContributionMap{"2024-05-01": 2, "2024-05-02": 1}

	view := p.Contributions(services.Contributions{Window: window, Counts: counts, Max: 2, Total: 3})

	require.Len(t, view.Weeks, 3)
	first := view.Weeks[0]
	assert.Equal(t, DayCell{Date: "2024-04-29"}, first[0])
	assert.Equal(t, DayCell{Date: "2024-05-01", Count: 2, Intensity: 4, InWindow: true}, first[2])
	assert.Equal(t, DayCell{Date: "2024-05-02", Count: 1, Intensity: 2, InWindow: true}, first[3])
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 2, view.Max)
}
