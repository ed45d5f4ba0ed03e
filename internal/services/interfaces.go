package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"momentum/internal/domain"
	"momentum/internal/observability"
	"momentum/internal/repository"
	"momentum/internal/validation"
)

// Contributions is the completion calendar of one user.
type Contributions struct {
	Window domain.ContributionWindow
	Counts domain.ContributionMap
	Max    int
	Total  int
}

// TemplateUsage is a source activity and how many live clones it has.
type TemplateUsage struct {
	Activity domain.Activity
	Clones   int
}

// TeamService manages the teams that own activities
type TeamService interface {
	// EnsurePersonalTeam returns the user's oldest owned team, creating one
	// if the user owns none.
	EnsurePersonalTeam(ctx context.Context, userID string) (*repository.Team, error)
}

// ActivityService handles the activity lifecycle and template cloning
type ActivityService interface {
	CreateActivity(ctx context.Context, userID, name string, description *string) (*domain.Activity, error)
	GetActivity(ctx context.Context, userID, id string) (*domain.Activity, error)
	ListActivities(ctx context.Context, userID string, filter repository.ActivityFilter) ([]domain.Activity, error)
	CompleteActivity(ctx context.Context, userID, id string) (*domain.Activity, error)
	SoftDeleteActivity(ctx context.Context, userID, id string) error
	CloneActivity(ctx context.Context, userID, sourceID string) (*domain.Activity, error)
}

// TaskService handles tasks and the time entries that track them
type TaskService interface {
	CreateTask(ctx context.Context, userID, activityID, name string, duration time.Duration) (*domain.Task, error)
	StartTask(ctx context.Context, userID, taskID string) (*domain.TimeEntry, error)
	StopTask(ctx context.Context, userID, taskID string) (*domain.TimeEntry, error)
	StopTimeEntry(ctx context.Context, userID, entryID string) (*domain.TimeEntry, error)
	CompleteTask(ctx context.Context, userID, taskID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// ReportingService aggregates completed work
type ReportingService interface {
	Contributions(ctx context.Context, userID string) (*Contributions, error)
	TopTemplates(ctx context.Context, userID string, limit int) ([]TemplateUsage, error)
}

// Dependencies are shared by every service. Zero values are replaced by
// defaults: a nop logger, no metrics, the wall clock and random uuids.
type Dependencies struct {
	Store   repository.Store
	Logger  zerolog.Logger
	Metrics *observability.Metrics
	Rules   validation.Rules
	Now     func() time.Time
	NewID   func() string
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = uuid.NewString
	}
	if d.Rules == (validation.Rules{}) {
		d.Rules = validation.DefaultRules()
	}
	return d
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TeamService      TeamService
	ActivityService  ActivityService
	TaskService      TaskService
	ReportingService ReportingService
}

// NewServiceContainer wires every service to the same dependencies
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	return &ServiceContainer{
		TeamService:      NewTeamService(deps),
		ActivityService:  NewActivityService(deps),
		TaskService:      NewTaskService(deps),
		ReportingService: NewReportingService(deps),
	}
}
