package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name      string
		d         time.Duration
		withHours bool
		expected  string
	}{
		{"zero with hours", 0, true, "00:00:00"},
		{"zero without hours", 0, false, "00:00"},
		{"hour minute second", 3661 * time.Second, true, "01:01:01"},
		{"minutes not capped", 3661 * time.Second, false, "61:01"},
		{"fraction truncated", 59*time.Second + 999*time.Millisecond, false, "00:59"},
		{"negative is zero", -5 * time.Second, true, "00:00:00"},
		{"over a day", 25 * time.Hour, true, "25:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatClock(tt.d, tt.withHours))
		})
	}
}

func TestFormatShorthands(t *testing.T) {
	assert.Equal(t, "00:01:30", FormatHHMMSS(90*time.Second))
	assert.Equal(t, "01:30", FormatMMSS(90*time.Second))
}

func TestFormatHuman(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0 seconds"},
		{-time.Minute, "0 seconds"},
		{time.Second, "1 second"},
		{3661 * time.Second, "1 hour 1 minute 1 second"},
		{2 * time.Hour, "2 hours"},
		{26*time.Hour + 30*time.Second, "1 day 2 hours 30 seconds"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatHuman(tt.d), "FormatHuman(%s)", tt.d)
	}
}
