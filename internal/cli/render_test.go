package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/api"
)

func TestPrinter_Contributions(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, time.RFC3339, "running")

	// one week, Wednesday and Thursday in window
	week := []api.DayCell{
		{Date: "2024-04-29"},
		{Date: "2024-04-30"},
		{Date: "2024-05-01", Count: 2, Intensity: 4, InWindow: true},
		{Date: "2024-05-02", Count: 1, Intensity: 2, InWindow: true},
		{Date: "2024-05-03"},
		{Date: "2024-05-04"},
		{Date: "2024-05-05"},
	}
	p.Contributions(api.ContributionsView{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Total: 3,
		Max:   2,
		Weeks: [][]api.DayCell{week},
	})

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, "3 activities completed between 2024-05-01 and 2024-05-02", lines[0])
	assert.Equal(t, "Mon  ", lines[2])
	assert.Equal(t, "Wed █", lines[4])
	assert.Equal(t, "Thu ▒", lines[5])
	assert.Contains(t, out.String(), "busiest day: 2")
}

func TestPrinter_ActivityMarksOverrun(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, time.RFC3339, "running")

	p.Activity(api.ActivityView{
		ID:    "a1",
		Name:  "Routine",
		State: "running",
		Tasks: []api.TaskView{
			{ID: "t1", Name: "Warm up", State: "running", Duration: "01:00", Elapsed: "01:10", Remaining: "00:00", Overrun: "00:10"},
		},
	})

	assert.Contains(t, out.String(), "+00:10")
	assert.Contains(t, out.String(), "1   t1")
}

func TestPrinter_TimeEntry(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, "15:04", "ticking")
	start := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

	p.TimeEntry("Started", api.TimeEntryView{ID: "e1", StartedAt: start, Elapsed: "00:00", Running: true})

	assert.Equal(t, "Started: 09:00 - ticking (00:00) [e1]\n", out.String())
}

func TestPrinter_EmptyTemplates(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out, time.RFC3339, "running").Templates(nil)
	assert.Equal(t, "No activities have been cloned yet\n", out.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 24))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
}
