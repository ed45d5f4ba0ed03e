package timecalc

import (
	"time"

	"momentum/internal/domain"
)

// SumElapsed adds up the entries, measuring open ones up to now. Each entry
// contributes at least zero, so clock skew cannot make the sum negative.
func SumElapsed(entries []domain.TimeEntry, now time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Elapsed(now)
	}
	return total
}

// Remaining is duration minus elapsed, floored at zero.
func Remaining(duration, elapsed time.Duration) time.Duration {
	if r := duration - elapsed; r > 0 {
		return r
	}
	return 0
}

// Overrun is how far elapsed exceeds duration, zero otherwise.
func Overrun(duration, elapsed time.Duration) time.Duration {
	if o := elapsed - duration; o > 0 {
		return o
	}
	return 0
}

// TaskElapsed is the total time tracked on the task.
func TaskElapsed(t domain.Task, now time.Time) time.Duration {
	return SumElapsed(t.TimeEntries, now)
}

// TaskRemaining is the task's allotted duration not yet used.
func TaskRemaining(t domain.Task, now time.Time) time.Duration {
	return Remaining(t.Duration, TaskElapsed(t, now))
}

// ActivityTotalDuration sums the allotted durations of live tasks.
func ActivityTotalDuration(a domain.Activity) time.Duration {
	var total time.Duration
	for _, t := range a.LiveTasks() {
		total += t.Duration
	}
	return total
}

// ActivityElapsed sums the tracked time of live tasks.
func ActivityElapsed(a domain.Activity, now time.Time) time.Duration {
	var total time.Duration
	for _, t := range a.LiveTasks() {
		total += TaskElapsed(t, now)
	}
	return total
}

// ActivityRemaining sums the remaining time of live tasks. Overrun on one
// task does not eat into another task's remaining time.
func ActivityRemaining(a domain.Activity, now time.Time) time.Duration {
	var total time.Duration
	for _, t := range a.LiveTasks() {
		total += TaskRemaining(t, now)
	}
	return total
}

// ActivityProgress is the remaining share of the activity's total duration
// as a percentage in [0, 100]. An activity with no allotted time reports 0.
func ActivityProgress(a domain.Activity, now time.Time) float64 {
	total := ActivityTotalDuration(a)
	if total <= 0 {
		return 0
	}
	pct := float64(ActivityRemaining(a, now)) / float64(total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
