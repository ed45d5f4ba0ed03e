// Package timecalc holds the pure time arithmetic behind elapsed, remaining
// and progress figures. Nothing here reads the wall clock; callers pass now.
package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// FormatClock renders d as MM:SS, or HH:MM:SS when withHours is set.
// Fractions of a second are truncated and negative durations render as zero.
// Without hours the minute field is not capped at 59.
func FormatClock(d time.Duration, withHours bool) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	seconds := total % 60

	if !withHours {
		return fmt.Sprintf("%02d:%02d", total/60, seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, seconds)
}

// FormatHHMMSS is FormatClock(d, true)
func FormatHHMMSS(d time.Duration) string {
	return FormatClock(d, true)
}

// FormatMMSS is FormatClock(d, false)
func FormatMMSS(d time.Duration) string {
	return FormatClock(d, false)
}

// FormatHuman renders d as words, e.g. "1 hour 1 minute 1 second".
// Zero fields are omitted; a zero duration renders as "0 seconds".
func FormatHuman(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	parts := []struct {
		n    int64
		unit string
	}{
		{total / 86400, "day"},
		{(total / 3600) % 24, "hour"},
		{(total / 60) % 60, "minute"},
		{total % 60, "second"},
	}

	var out []string
	for _, p := range parts {
		if p.n == 0 {
			continue
		}
		unit := p.unit
		if p.n != 1 {
			unit += "s"
		}
		out = append(out, fmt.Sprintf("%d %s", p.n, unit))
	}
	if len(out) == 0 {
		return "0 seconds"
	}
	return strings.Join(out, " ")
}
