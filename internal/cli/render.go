package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"momentum/internal/api"
	"momentum/internal/errors"
)

// Output formats accepted by --format
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

const ruleWidth = 75

// intensityGlyphs index by contribution intensity 0..4
var intensityGlyphs = []string{"·", "░", "▒", "▓", "█"}

// Printer renders views as text
type Printer struct {
	out           io.Writer
	timeFormat    string
	runningStatus string
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer, timeFormat, runningStatus string) *Printer {
	return &Printer{out: out, timeFormat: timeFormat, runningStatus: runningStatus}
}

func (p *Printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) rule(ch string) {
	fmt.Fprintln(p.out, strings.Repeat(ch, ruleWidth))
}

func (p *Printer) stamp(t time.Time) string {
	return t.Local().Format(p.timeFormat)
}

func (p *Printer) stopStamp(stopped *time.Time) string {
	if stopped == nil {
		return p.runningStatus
	}
	return p.stamp(*stopped)
}

// JSON writes v as indented JSON
func (p *Printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Activities prints one line per activity in the requested format
func (p *Printer) Activities(activities []api.ActivityView, format string) error {
	switch format {
	case FormatJSON:
		return p.JSON(activities)
	case FormatCSV:
		return p.activitiesCSV(activities)
	case FormatTable, "":
	default:
		return errors.NewInvalidInputError("format", format, "must be one of table, json, csv")
	}

	if len(activities) == 0 {
		p.printf("No activities found\n")
		return nil
	}

	p.printf("%-36s  %-24s  %-9s  %-9s  %s\n", "ID", "Name", "State", "Remaining", "Progress")
	p.rule("-")
	for _, a := range activities {
		p.printf("%-36s  %-24s  %-9s  %-9s  %5.1f%%\n", a.ID, truncate(a.Name, 24), a.State, a.Remaining, a.Progress)
	}
	return nil
}

func (p *Printer) activitiesCSV(activities []api.ActivityView) error {
	writer := csv.NewWriter(p.out)

	header := []string{"ID", "Name", "State", "Tasks", "Total", "Elapsed", "Remaining", "Progress", "Created", "Completed", "Source"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range activities {
		completed := ""
		if a.CompletedAt != nil {
			completed = a.CompletedAt.Format(time.RFC3339)
		}
		row := []string{
			a.ID,
			a.Name,
			string(a.State),
			strconv.Itoa(len(a.Tasks)),
			a.Total,
			a.Elapsed,
			a.Remaining,
			fmt.Sprintf("%.2f", a.Progress),
			a.CreatedAt.Format(time.RFC3339),
			completed,
			a.SourceID,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Activity prints the detail view of one activity and its tasks
func (p *Printer) Activity(a api.ActivityView) {
	title := fmt.Sprintf("Activity: %s", a.Name)
	p.printf("\n%s\n", title)
	p.printf("%s\n", strings.Repeat("=", len(title)))
	p.printf("ID:        %s\n", a.ID)
	if a.Description != "" {
		p.printf("About:     %s\n", a.Description)
	}
	if a.SourceID != "" {
		p.printf("Cloned:    from %s\n", a.SourceID)
	}
	p.printf("State:     %s\n", a.State)
	p.printf("Created:   %s\n", p.stamp(a.CreatedAt))
	if a.CompletedAt != nil {
		p.printf("Completed: %s\n", p.stamp(*a.CompletedAt))
	}
	p.printf("Time:      %s of %s elapsed, %s left (%s)\n", a.Elapsed, a.Total, a.Remaining, a.RemainingHuman)
	p.printf("Progress:  %.1f%% remaining\n", a.Progress)

	if len(a.Tasks) == 0 {
		p.printf("\nNo tasks yet\n")
		return
	}

	p.printf("\n%-3s %-36s  %-24s  %-9s  %-9s  %-9s  %s\n", "#", "Task ID", "Name", "State", "Duration", "Elapsed", "Remaining")
	p.rule("-")
	for _, t := range a.Tasks {
		remaining := t.Remaining
		if t.Overrun != "" {
			remaining = "+" + t.Overrun
		}
		p.printf("%-3d %-36s  %-24s  %-9s  %-9s  %-9s  %s\n", t.Position+1, t.ID, truncate(t.Name, 24), t.State, t.Duration, t.Elapsed, remaining)
	}
}

// Task prints a one-line summary of a task
func (p *Printer) Task(prefix string, t api.TaskView) {
	p.printf("%s: %s (%s) [%s]\n", prefix, t.Name, t.Duration, t.ID)
}

// TimeEntry prints one interval of tracked work
func (p *Printer) TimeEntry(prefix string, e api.TimeEntryView) {
	p.printf("%s: %s - %s (%s) [%s]\n", prefix, p.stamp(e.StartedAt), p.stopStamp(e.StoppedAt), e.Elapsed, e.ID)
}

// Contributions prints the completion calendar, one row per weekday
func (p *Printer) Contributions(c api.ContributionsView) {
	p.printf("%d activities completed between %s and %s\n\n", c.Total, c.Start.Format("2006-01-02"), c.End.Format("2006-01-02"))

	weekdays := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for day, label := range weekdays {
		var row strings.Builder
		for _, week := range c.Weeks {
			if day >= len(week) || !week[day].InWindow {
				row.WriteString(" ")
				continue
			}
			row.WriteString(intensityGlyphs[clampIntensity(week[day].Intensity)])
		}
		p.printf("%s %s\n", label, row.String())
	}

	p.printf("\nLess %s More (busiest day: %d)\n", strings.Join(intensityGlyphs, ""), c.Max)
}

// Templates prints source activities ranked by clone count
func (p *Printer) Templates(templates []api.TemplateView) {
	if len(templates) == 0 {
		p.printf("No activities have been cloned yet\n")
		return
	}
	p.printf("%-4s %-36s  %-24s  %s\n", "Rank", "ID", "Name", "Clones")
	p.rule("-")
	for i, t := range templates {
		p.printf("%-4d %-36s  %-24s  %d\n", i+1, t.ActivityID, truncate(t.Name, 24), t.Clones)
	}
}

func clampIntensity(i int) int {
	switch {
	case i < 0:
		return 0
	case i >= len(intensityGlyphs):
		return len(intensityGlyphs) - 1
	default:
		return i
	}
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
