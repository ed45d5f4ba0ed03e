package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"momentum/internal/domain"
)

var t0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func closed(start time.Time, d time.Duration) domain.TimeEntry {
	return domain.NewTimeEntry("e", "t", start).Stop(start.Add(d))
}

func TestSumElapsed(t *testing.T) {
	now := t0.Add(10 * time.Minute)

	tests := []struct {
		name     string
		entries  []domain.TimeEntry
		expected time.Duration
	}{
		{"no entries", nil, 0},
		{"closed entries", []domain.TimeEntry{closed(t0, time.Minute), closed(t0.Add(2*time.Minute), 30*time.Second)}, 90 * time.Second},
		{"open entry measured to now", []domain.TimeEntry{domain.NewTimeEntry("e", "t", t0.Add(4*time.Minute))}, 6 * time.Minute},
		{"future start counts zero", []domain.TimeEntry{domain.NewTimeEntry("e", "t", now.Add(time.Hour))}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SumElapsed(tt.entries, now))
		})
	}
}

func TestTaskElapsed_Monotone(t *testing.T) {
	open := domain.Task{Duration: time.Minute, TimeEntries: []domain.TimeEntry{domain.NewTimeEntry("e", "t", t0)}}
	stopped := domain.Task{Duration: time.Minute, TimeEntries: []domain.TimeEntry{closed(t0, 20*time.Second)}}

	prev := time.Duration(-1)
	for i := 0; i < 5; i++ {
		now := t0.Add(time.Duration(i) * 15 * time.Second)
		e := TaskElapsed(open, now)
		assert.GreaterOrEqual(t, e, prev)
		prev = e

		assert.Equal(t, 20*time.Second, TaskElapsed(stopped, now.Add(time.Hour)), "closed entries ignore now")
	}
}

func TestTaskRemaining(t *testing.T) {
	fresh := domain.Task{Duration: 45 * time.Second}
	assert.Equal(t, 45*time.Second, TaskRemaining(fresh, t0), "no entries leaves the whole duration")

	over := domain.Task{Duration: time.Minute, TimeEntries: []domain.TimeEntry{closed(t0, 90*time.Second)}}
	assert.Equal(t, time.Duration(0), TaskRemaining(over, t0))
	assert.Equal(t, 30*time.Second, Overrun(over.Duration, TaskElapsed(over, t0)))
	assert.Equal(t, time.Duration(0), Overrun(time.Minute, time.Second))
}

func TestActivityFigures(t *testing.T) {
	deleted := t0
	a := domain.Activity{Tasks: []domain.Task{
		{ID: "t1", Position: 0, Duration: time.Minute, TimeEntries: []domain.TimeEntry{closed(t0, 90*time.Second)}},
		{ID: "t2", Position: 1, Duration: time.Minute, TimeEntries: []domain.TimeEntry{closed(t0, 30*time.Second)}},
		{ID: "gone", Position: 2, Duration: time.Hour, DeletedAt: &deleted},
	}}

	assert.Equal(t, 2*time.Minute, ActivityTotalDuration(a))
	assert.Equal(t, 2*time.Minute, ActivityElapsed(a, t0))
	assert.Equal(t, 30*time.Second, ActivityRemaining(a, t0), "overrun on t1 does not reduce t2")
	assert.InDelta(t, 25.0, ActivityProgress(a, t0), 0.0001)
}

func TestActivityProgress_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, ActivityProgress(domain.Activity{}, t0))

	untouched := domain.Activity{Tasks: []domain.Task{{Duration: time.Minute}}}
	assert.Equal(t, 100.0, ActivityProgress(untouched, t0))
}
