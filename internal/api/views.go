// Package api is the presentation-facing facade over the services. It
// derives everything a screen shows (clock strings, progress, running
// state) from the aggregates at a single instant.
package api

import (
	"time"

	"momentum/internal/domain"
	"momentum/internal/services"
	"momentum/internal/timecalc"
)

// DisplayOptions controls how durations are rendered
type DisplayOptions struct {
	WithHours     bool
	RunningStatus string
}

// DefaultDisplayOptions renders MM:SS clocks and "running" for open entries
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{RunningStatus: "running"}
}

// TimeEntryView is one interval of tracked work
type TimeEntryView struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"task_id"`
	StartedAt time.Time  `json:"started_at"`
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
	Elapsed   string     `json:"elapsed"`
	Running   bool       `json:"running"`
}

// TaskView is a task with its derived figures
type TaskView struct {
	ID         string           `json:"id"`
	ActivityID string           `json:"activity_id"`
	Name       string           `json:"name"`
	Position   int              `json:"position"`
	State      domain.TaskState `json:"state"`
	Duration   string           `json:"duration"`
	Elapsed    string           `json:"elapsed"`
	Remaining  string           `json:"remaining"`
	Overrun    string           `json:"overrun,omitempty"`
	Running    bool             `json:"running"`
	Entries    []TimeEntryView  `json:"entries"`
}

// ActivityView is an activity with its tasks and derived figures
type ActivityView struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	SourceID       string               `json:"source_id,omitempty"`
	State          domain.ActivityState `json:"state"`
	Running        bool                 `json:"running"`
	RunningTaskID  string               `json:"running_task_id,omitempty"`
	Total          string               `json:"total"`
	Elapsed        string               `json:"elapsed"`
	Remaining      string               `json:"remaining"`
	RemainingHuman string               `json:"remaining_human"`
	Progress       float64              `json:"progress"`
	CreatedAt      time.Time            `json:"created_at"`
	CompletedAt    *time.Time           `json:"completed_at,omitempty"`
	Tasks          []TaskView           `json:"tasks"`
}

// DayCell is one calendar day of the contribution view
type DayCell struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Intensity int    `json:"intensity"`
	InWindow  bool   `json:"in_window"`
}

// ContributionsView is the completion calendar laid out in weeks
type ContributionsView struct {
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
	Total int         `json:"total"`
	Max   int         `json:"max"`
	Weeks [][]DayCell `json:"weeks"`
}

// TemplateView is a source activity ranked by clone count
type TemplateView struct {
	ActivityID string `json:"activity_id"`
	Name       string `json:"name"`
	Clones     int    `json:"clones"`
}

// Presenter turns aggregates into views at a given instant
type Presenter struct {
	display DisplayOptions
}

// NewPresenter creates a presenter with the given display options
func NewPresenter(display DisplayOptions) *Presenter {
	if display.RunningStatus == "" {
		display.RunningStatus = DefaultDisplayOptions().RunningStatus
	}
	return &Presenter{display: display}
}

func (p *Presenter) clock(d time.Duration) string {
	return timecalc.FormatClock(d, p.display.WithHours)
}

// RunningStatus is the label shown in place of a stop time
func (p *Presenter) RunningStatus() string {
	return p.display.RunningStatus
}

// TimeEntry renders e, measuring an open entry up to now
func (p *Presenter) TimeEntry(e domain.TimeEntry, now time.Time) TimeEntryView {
	return TimeEntryView{
		ID:        e.ID,
		TaskID:    e.TaskID,
		StartedAt: e.StartedAt,
		StoppedAt: e.StoppedAt,
		Elapsed:   p.clock(e.Elapsed(now)),
		Running:   e.IsOpen(),
	}
}

// Task renders t with elapsed, remaining and overrun at now
func (p *Presenter) Task(t domain.Task, now time.Time) TaskView {
	elapsed := timecalc.TaskElapsed(t, now)
	view := TaskView{
		ID:         t.ID,
		ActivityID: t.ActivityID,
		Name:       t.Name,
		Position:   t.Position,
		State:      t.State(),
		Duration:   p.clock(t.Duration),
		Elapsed:    p.clock(elapsed),
		Remaining:  p.clock(timecalc.Remaining(t.Duration, elapsed)),
		Running:    t.IsRunning(),
		Entries:    make([]TimeEntryView, 0, len(t.TimeEntries)),
	}
	if over := timecalc.Overrun(t.Duration, elapsed); over > 0 {
		view.Overrun = p.clock(over)
	}
	for _, e := range t.TimeEntries {
		view.Entries = append(view.Entries, p.TimeEntry(e, now))
	}
	return view
}

// Activity renders a with its live tasks at now
func (p *Presenter) Activity(a domain.Activity, now time.Time) ActivityView {
	remaining := timecalc.ActivityRemaining(a, now)
	view := ActivityView{
		ID:             a.ID,
		Name:           a.Name,
		State:          a.State(),
		Running:        a.IsRunning(),
		Total:          p.clock(timecalc.ActivityTotalDuration(a)),
		Elapsed:        p.clock(timecalc.ActivityElapsed(a, now)),
		Remaining:      p.clock(remaining),
		RemainingHuman: timecalc.FormatHuman(remaining),
		Progress:       timecalc.ActivityProgress(a, now),
		CreatedAt:      a.CreatedAt,
		CompletedAt:    a.CompletedAt,
		Tasks:          []TaskView{},
	}
	if a.Description != nil {
		view.Description = *a.Description
	}
	if a.IsClone() {
		view.SourceID = *a.SourceActivityID
	}
	if running := a.RunningTask(); running != nil {
		view.RunningTaskID = running.ID
	}
	for _, t := range a.LiveTasks() {
		view.Tasks = append(view.Tasks, p.Task(t, now))
	}
	return view
}

// Contributions lays c out as Monday-first weeks with per-day intensity
func (p *Presenter) Contributions(c services.Contributions) ContributionsView {
	view := ContributionsView{
		Start: c.Window.Start,
		End:   c.Window.End,
		Total: c.Total,
		Max:   c.Max,
	}
	for _, week := range c.Window.Weeks() {
		cells := make([]DayCell, 0, len(week))
		for _, day := range week {
			cell := DayCell{Date: domain.DayKey(day.Date), InWindow: day.InWindow}
			if day.InWindow {
				cell.Count = c.Counts.Count(day.Date)
				cell.Intensity = domain.Intensity(cell.Count, c.Max)
			}
			cells = append(cells, cell)
		}
		view.Weeks = append(view.Weeks, cells)
	}
	return view
}

// Template renders one ranked source activity
func (p *Presenter) Template(u services.TemplateUsage) TemplateView {
	return TemplateView{ActivityID: u.Activity.ID, Name: u.Activity.Name, Clones: u.Clones}
}
