package api

import (
	"context"
	"strings"
	"time"

	"momentum/internal/errors"
	"momentum/internal/repository"
	"momentum/internal/services"
	"momentum/internal/timecalc"
)

// ListFilter selects which activities ListActivities returns
type ListFilter string

const (
	ListAll       ListFilter = "all"
	ListOpen      ListFilter = "open"
	ListCompleted ListFilter = "completed"
)

// ParseListFilter maps a user-supplied filter name, defaulting to ListAll
func ParseListFilter(s string) (ListFilter, error) {
	switch f := ListFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", ListAll:
		return ListAll, nil
	case ListOpen, ListCompleted:
		return f, nil
	default:
		return "", errors.NewInvalidInputError("filter", s, "must be one of all, open, completed")
	}
}

func (f ListFilter) repository() repository.ActivityFilter {
	switch f {
	case ListOpen:
		completed := false
		return repository.ActivityFilter{Completed: &completed}
	case ListCompleted:
		completed := true
		return repository.ActivityFilter{Completed: &completed}
	default:
		return repository.ActivityFilter{}
	}
}

// BusinessAPI is every workflow the command line offers, acting as one user
type BusinessAPI interface {
	// ========== Activity Workflows ==========

	CreateActivity(ctx context.Context, name, description string) (*ActivityView, error)
	GetActivity(ctx context.Context, id string) (*ActivityView, error)
	ListActivities(ctx context.Context, filter ListFilter) ([]ActivityView, error)
	CompleteActivity(ctx context.Context, id string) (*ActivityView, error)
	DeleteActivity(ctx context.Context, id string) error

	// CloneActivity copies the activity's live tasks into a new activity
	CloneActivity(ctx context.Context, id string) (*ActivityView, error)

	// ========== Task Workflows ==========

	// AddTask appends a task whose duration is typed as a clock ("MM:SS" or digits)
	AddTask(ctx context.Context, activityID, name, clock string) (*TaskView, error)
	StartTask(ctx context.Context, taskID string) (*TimeEntryView, error)
	StopTask(ctx context.Context, taskID string) (*TimeEntryView, error)
	StopTimeEntry(ctx context.Context, entryID string) (*TimeEntryView, error)
	CompleteTask(ctx context.Context, taskID string) (*TaskView, error)
	DeleteTask(ctx context.Context, taskID string) error

	// ========== Reporting ==========

	Contributions(ctx context.Context) (*ContributionsView, error)
	TopTemplates(ctx context.Context, limit int) ([]TemplateView, error)

	// RunningStatus is the label for an entry that has not stopped
	RunningStatus() string
}

// Options configures the facade
type Options struct {
	UserID      string
	Display     DisplayOptions
	ClockLimits timecalc.ClockLimits
	Now         func() time.Time
}

type businessAPIImpl struct {
	services  *services.ServiceContainer
	presenter *Presenter
	userID    string
	limits    timecalc.ClockLimits
	now       func() time.Time
}

// NewBusinessAPI creates the facade acting as opts.UserID
func NewBusinessAPI(container *services.ServiceContainer, opts Options) BusinessAPI {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClockLimits == (timecalc.ClockLimits{}) {
		opts.ClockLimits = timecalc.DefaultClockLimits()
	}
	return &businessAPIImpl{
		services:  container,
		presenter: NewPresenter(opts.Display),
		userID:    opts.UserID,
		limits:    opts.ClockLimits,
		now:       opts.Now,
	}
}

func (b *businessAPIImpl) RunningStatus() string {
	return b.presenter.RunningStatus()
}

// ========== Activity Workflows ==========

func (b *businessAPIImpl) CreateActivity(ctx context.Context, name, description string) (*ActivityView, error) {
	var desc *string
	if description != "" {
		desc = &description
	}
	activity, err := b.services.ActivityService.CreateActivity(ctx, b.userID, name, desc)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Activity(*activity, b.now())
	return &view, nil
}

func (b *businessAPIImpl) GetActivity(ctx context.Context, id string) (*ActivityView, error) {
	activity, err := b.services.ActivityService.GetActivity(ctx, b.userID, id)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Activity(*activity, b.now())
	return &view, nil
}

func (b *businessAPIImpl) ListActivities(ctx context.Context, filter ListFilter) ([]ActivityView, error) {
	activities, err := b.services.ActivityService.ListActivities(ctx, b.userID, filter.repository())
	if err != nil {
		return nil, err
	}
	now := b.now()
	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, b.presenter.Activity(a, now))
	}
	return views, nil
}

func (b *businessAPIImpl) CompleteActivity(ctx context.Context, id string) (*ActivityView, error) {
	activity, err := b.services.ActivityService.CompleteActivity(ctx, b.userID, id)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Activity(*activity, b.now())
	return &view, nil
}

func (b *businessAPIImpl) DeleteActivity(ctx context.Context, id string) error {
	return b.services.ActivityService.SoftDeleteActivity(ctx, b.userID, id)
}

func (b *businessAPIImpl) CloneActivity(ctx context.Context, id string) (*ActivityView, error) {
	clone, err := b.services.ActivityService.CloneActivity(ctx, b.userID, id)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Activity(*clone, b.now())
	return &view, nil
}

// ========== Task Workflows ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, activityID, name, clock string) (*TaskView, error) {
	duration := timecalc.ParseClockDuration(clock, b.limits)
	task, err := b.services.TaskService.CreateTask(ctx, b.userID, activityID, name, duration)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Task(*task, b.now())
	return &view, nil
}

func (b *businessAPIImpl) StartTask(ctx context.Context, taskID string) (*TimeEntryView, error) {
	entry, err := b.services.TaskService.StartTask(ctx, b.userID, taskID)
	if err != nil {
		return nil, err
	}
	view := b.presenter.TimeEntry(*entry, b.now())
	return &view, nil
}

func (b *businessAPIImpl) StopTask(ctx context.Context, taskID string) (*TimeEntryView, error) {
	entry, err := b.services.TaskService.StopTask(ctx, b.userID, taskID)
	if err != nil {
		return nil, err
	}
	view := b.presenter.TimeEntry(*entry, b.now())
	return &view, nil
}

func (b *businessAPIImpl) StopTimeEntry(ctx context.Context, entryID string) (*TimeEntryView, error) {
	entry, err := b.services.TaskService.StopTimeEntry(ctx, b.userID, entryID)
	if err != nil {
		return nil, err
	}
	view := b.presenter.TimeEntry(*entry, b.now())
	return &view, nil
}

func (b *businessAPIImpl) CompleteTask(ctx context.Context, taskID string) (*TaskView, error) {
	task, err := b.services.TaskService.CompleteTask(ctx, b.userID, taskID)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Task(*task, b.now())
	return &view, nil
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, taskID string) error {
	return b.services.TaskService.DeleteTask(ctx, b.userID, taskID)
}

// ========== Reporting ==========

func (b *businessAPIImpl) Contributions(ctx context.Context) (*ContributionsView, error) {
	c, err := b.services.ReportingService.Contributions(ctx, b.userID)
	if err != nil {
		return nil, err
	}
	view := b.presenter.Contributions(*c)
	return &view, nil
}

func (b *businessAPIImpl) TopTemplates(ctx context.Context, limit int) ([]TemplateView, error) {
	usages, err := b.services.ReportingService.TopTemplates(ctx, b.userID, limit)
	if err != nil {
		return nil, err
	}
	views := make([]TemplateView, 0, len(usages))
	for _, u := range usages {
		views = append(views, b.presenter.Template(u))
	}
	return views, nil
}
