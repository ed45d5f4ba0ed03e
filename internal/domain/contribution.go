package domain

import (
	"math"
	"time"
)

// DayLayout formats the UTC calendar day used as a contribution key.
const DayLayout = "2006-01-02"

// MaxIntensity is the highest shade of the contribution calendar.
const MaxIntensity = 4

// DayKey returns the UTC calendar day of t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ContributionWindow is an inclusive range of UTC days.
type ContributionWindow struct {
	Start time.Time
	End   time.Time
}

// ContributionWindowFor spans from the first day of the month twelve months
// before now up to and including now's day.
func ContributionWindowFor(now time.Time) ContributionWindow {
	today := startOfDay(now)
	return ContributionWindow{
		Start: time.Date(today.Year(), today.Month()-12, 1, 0, 0, 0, 0, time.UTC),
		End:   today,
	}
}

// Contains reports whether t falls on a day inside the window.
func (w ContributionWindow) Contains(t time.Time) bool {
	d := startOfDay(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days lists every day in the window in order.
func (w ContributionWindow) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CalendarDay is one cell of the rendered calendar.
type CalendarDay struct {
	Date     time.Time
	InWindow bool
}

// Week is a Monday-first column of the calendar.
type Week [7]CalendarDay

// Weeks lays the window out in Monday-first weeks. Cells before Start in the
// first week and after End in the last week are marked out of window.
func (w ContributionWindow) Weeks() []Week {
	offset := (int(w.Start.Weekday()) + 6) % 7
	monday := w.Start.AddDate(0, 0, -offset)

	var weeks []Week
	for wk := monday; !wk.After(w.End); wk = wk.AddDate(0, 0, 7) {
		var week Week
		for i := range week {
			d := wk.AddDate(0, 0, i)
			week[i] = CalendarDay{Date: d, InWindow: w.Contains(d)}
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// ContributionMap counts completed activities per UTC day. It is sparse:
// days without completions are absent and read as zero.
type ContributionMap map[string]int

// BuildContributionMap counts the live activities completed inside window.
func BuildContributionMap(activities []Activity, window ContributionWindow) ContributionMap {
	out := make(ContributionMap)
	for _, a := range activities {
		if a.IsDeleted() || a.CompletedAt == nil || !window.Contains(*a.CompletedAt) {
			continue
		}
		out[DayKey(*a.CompletedAt)]++
	}
	return out
}

// Count returns the completions recorded on day.
func (c ContributionMap) Count(day time.Time) int {
	return c[DayKey(day)]
}

// Max returns the highest daily count, 0 for an empty map.
func (c ContributionMap) Max() int {
	highest := 0
	for _, n := range c {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// Total returns the number of completions in the map.
func (c ContributionMap) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Intensity buckets count relative to maxCount into 0..MaxIntensity.
// Zero counts are always 0; any positive count is at least 1.
func Intensity(count, maxCount int) int {
	if count <= 0 {
		return 0
	}
	if maxCount < 1 {
		maxCount = 1
	}
	level := int(math.Ceil(float64(count) / float64(maxCount) * MaxIntensity))
	if level > MaxIntensity {
		return MaxIntensity
	}
	return level
}
