package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"momentum/internal/domain"
	"momentum/internal/errors"
	"momentum/internal/observability"
	"momentum/internal/repository"
)

// base carries what every service needs
type base struct {
	store   repository.Store
	logger  zerolog.Logger
	metrics *observability.Metrics
	now     func() time.Time
	newID   func() string
	mapper  *domain.Mapper
}

func newBase(deps Dependencies, component string) base {
	deps = deps.withDefaults()
	return base{
		store:   deps.Store,
		logger:  deps.Logger.With().Str("component", component).Logger(),
		metrics: deps.Metrics,
		now:     deps.Now,
		newID:   deps.NewID,
		mapper:  domain.NewMapper(),
	}
}

// fail records err against operation and returns it. Caller mistakes are
// logged at debug, everything else at error. App errors that do not already
// name a store operation are tagged with the service operation.
func (b *base) fail(operation string, err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		if _, tagged := appErr.GetContext("operation"); !tagged {
			appErr.WithContext("operation", operation)
		}
	}
	b.metrics.RecordError(operation, errors.GetErrorCode(err))
	if errors.ShouldLogError(err) {
		b.logger.Error().Err(err).Str("operation", operation).Msg("operation failed")
	} else {
		b.logger.Debug().Err(err).Str("operation", operation).Msg("operation rejected")
	}
	return err
}

// loadActivity assembles an owned, live activity with its live tasks and
// their time entries.
func (b *base) loadActivity(ctx context.Context, q repository.Queries, userID, id string) (domain.Activity, error) {
	row, err := q.FindOwnedActivity(ctx, id, userID)
	if err != nil {
		return domain.Activity{}, err
	}
	tasks, err := q.ListTasks(ctx, id, userID)
	if err != nil {
		return domain.Activity{}, err
	}
	entries, err := q.ListActivityTimeEntries(ctx, id, userID)
	if err != nil {
		return domain.Activity{}, err
	}
	return b.mapper.Assemble(row, tasks, entries), nil
}

// loadTask assembles the activity owning taskID and returns it with the task
func (b *base) loadTask(ctx context.Context, q repository.Queries, userID, taskID string) (domain.Activity, domain.Task, error) {
	row, err := q.FindOwnedTask(ctx, taskID, userID)
	if err != nil {
		return domain.Activity{}, domain.Task{}, err
	}
	activity, err := b.loadActivity(ctx, q, userID, row.ActivityID)
	if err != nil {
		return domain.Activity{}, domain.Task{}, err
	}
	for _, t := range activity.Tasks {
		if t.ID == taskID {
			return activity, t, nil
		}
	}
	return domain.Activity{}, domain.Task{}, errors.NewNotFoundError("task", taskID)
}

// stopEntry closes entry at now, or at its start if the clock reads earlier
func (b *base) stopEntry(ctx context.Context, q repository.Queries, userID string, entry domain.TimeEntry, now time.Time) (domain.TimeEntry, error) {
	stopped := entry.Stop(now)
	if err := q.StopTimeEntry(ctx, entry.ID, userID, *stopped.StoppedAt); err != nil {
		return domain.TimeEntry{}, err
	}
	return stopped, nil
}
