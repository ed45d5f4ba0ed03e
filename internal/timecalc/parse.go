package timecalc

import (
	"strconv"
	"strings"
	"time"
)

// DefaultMaxMinutes caps the minute field of a clock input.
const DefaultMaxMinutes = 999

// MaxSeconds caps the second field of a clock input.
const MaxSeconds = 59

// ClockLimits bounds the fields accepted by ParseClock.
type ClockLimits struct {
	MaxMinutes int
	MaxSeconds int
}

// DefaultClockLimits returns the limits used when none are configured.
func DefaultClockLimits() ClockLimits {
	return ClockLimits{MaxMinutes: DefaultMaxMinutes, MaxSeconds: MaxSeconds}
}

// ParseClock reads a duration typed as "MM:SS" or as a run of digits whose
// last two digits are seconds ("130" is 1:30). Each field is read from its
// leading digits and clamped to [0, limit]; a field without leading digits
// or with a minus sign reads as zero.
func ParseClock(s string, limits ClockLimits) (minutes, seconds int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}

	var minPart, secPart string
	if i := strings.LastIndex(s, ":"); i >= 0 {
		minPart, secPart = s[:i], s[i+1:]
	} else if len(s) > 2 {
		minPart, secPart = s[:len(s)-2], s[len(s)-2:]
	} else {
		secPart = s
	}

	return clampField(minPart, limits.MaxMinutes), clampField(secPart, limits.MaxSeconds)
}

// ParseClockDuration is ParseClock converted to a duration
func ParseClockDuration(s string, limits ClockLimits) time.Duration {
	return ClockDuration(ParseClock(s, limits))
}

// ClockDuration converts clock fields into a duration.
func ClockDuration(minutes, seconds int) time.Duration {
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

func clampField(s string, limit int) int {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); end >= 0 {
		s = s[:end]
	}
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// too many digits to fit an int
		return limit
	}
	if n > limit {
		return limit
	}
	return n
}
