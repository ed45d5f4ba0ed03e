package services

import (
	"context"

	"momentum/internal/domain"
	"momentum/internal/errors"
	"momentum/internal/repository"
	"momentum/internal/validation"
)

type activityServiceImpl struct {
	base
	validator *validation.ActivityValidator
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(deps Dependencies) ActivityService {
	deps = deps.withDefaults()
	return &activityServiceImpl{
		base:      newBase(deps, "activity"),
		validator: validation.NewActivityValidator(deps.Rules),
	}
}

// CreateActivity creates an empty activity in the user's oldest owned team
func (s *activityServiceImpl) CreateActivity(ctx context.Context, userID, name string, description *string) (*domain.Activity, error) {
	name, description, err := s.validator.ValidateActivity(name, description)
	if err != nil {
		return nil, s.fail("create activity", err)
	}

	now := s.now().UTC()
	var created domain.Activity
	err = s.store.WithinTx(ctx, func(q repository.Queries) error {
		team, err := q.FindOwnerTeam(ctx, userID)
		if err != nil {
			return err
		}

		created = domain.Activity{
			ID:          s.newID(),
			Name:        name,
			Description: description,
			UserID:      userID,
			TeamID:      team.ID,
			CreatedAt:   now,
		}
		row := s.mapper.Activity.ToRepository(created)
		return q.CreateActivity(ctx, &row)
	})
	if err != nil {
		return nil, s.fail("create activity", err)
	}

	s.metrics.RecordActivity("created")
	s.logger.Debug().Str("activity_id", created.ID).Msg("activity created")
	return &created, nil
}

// GetActivity returns the full aggregate of an owned, live activity
func (s *activityServiceImpl) GetActivity(ctx context.Context, userID, id string) (*domain.Activity, error) {
	if err := s.validator.ValidateActivityID(id); err != nil {
		return nil, s.fail("get activity", err)
	}

	activity, err := s.loadActivity(ctx, s.store, userID, id)
	if err != nil {
		return nil, s.fail("get activity", err)
	}
	return &activity, nil
}

// ListActivities returns the user's live activities, newest first, each
// assembled with its tasks and time entries.
func (s *activityServiceImpl) ListActivities(ctx context.Context, userID string, filter repository.ActivityFilter) ([]domain.Activity, error) {
	rows, err := s.store.ListOwnedActivities(ctx, userID, filter)
	if err != nil {
		return nil, s.fail("list activities", err)
	}

	activities := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		activity, err := s.loadActivity(ctx, s.store, userID, row.ID)
		if errors.IsNotFound(err) {
			// deleted since the listing
			continue
		}
		if err != nil {
			return nil, s.fail("list activities", err)
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

// CompleteActivity marks the activity completed once every live task is
func (s *activityServiceImpl) CompleteActivity(ctx context.Context, userID, id string) (*domain.Activity, error) {
	if err := s.validator.ValidateActivityID(id); err != nil {
		return nil, s.fail("complete activity", err)
	}

	now := s.now().UTC()
	var completed domain.Activity
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		activity, err := s.loadActivity(ctx, q, userID, id)
		if err != nil {
			return err
		}
		if err := activity.CanComplete(); err != nil {
			return err
		}
		if err := q.MarkActivityCompleted(ctx, id, userID, now); err != nil {
			return err
		}
		activity.CompletedAt = &now
		completed = activity
		return nil
	})
	if err != nil {
		return nil, s.fail("complete activity", err)
	}

	s.metrics.RecordActivity("completed")
	s.logger.Debug().Str("activity_id", id).Msg("activity completed")
	return &completed, nil
}

// SoftDeleteActivity hides the activity. Deleting it again reports not found.
func (s *activityServiceImpl) SoftDeleteActivity(ctx context.Context, userID, id string) error {
	if err := s.validator.ValidateActivityID(id); err != nil {
		return s.fail("delete activity", err)
	}

	now := s.now().UTC()
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		return q.SoftDeleteActivity(ctx, id, userID, now)
	})
	if err != nil {
		return s.fail("delete activity", err)
	}

	s.metrics.RecordActivity("deleted")
	s.logger.Debug().Str("activity_id", id).Msg("activity deleted")
	return nil
}

// CloneActivity copies an owned, live activity and its live tasks, in
// position order and without time entries, into a new uncompleted activity
// that records its source. Either everything is copied or nothing is.
func (s *activityServiceImpl) CloneActivity(ctx context.Context, userID, sourceID string) (*domain.Activity, error) {
	if err := s.validator.ValidateActivityID(sourceID); err != nil {
		return nil, s.fail("clone activity", err)
	}

	now := s.now().UTC()
	var clone domain.Activity
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		source, err := s.loadActivity(ctx, q, userID, sourceID)
		if err != nil {
			return err
		}

		clone = domain.Activity{
			ID:               s.newID(),
			Name:             source.Name,
			Description:      source.Description,
			UserID:           userID,
			TeamID:           source.TeamID,
			SourceActivityID: &source.ID,
			CreatedAt:        now,
		}
		row := s.mapper.Activity.ToRepository(clone)
		if err := q.CreateActivity(ctx, &row); err != nil {
			return err
		}

		for _, t := range source.LiveTasks() {
			task := domain.Task{
				ID:         s.newID(),
				ActivityID: clone.ID,
				Name:       t.Name,
				Duration:   t.Duration,
				Position:   t.Position,
				CreatedAt:  now,
			}
			taskRow := s.mapper.Task.ToRepository(task)
			if err := q.CreateTask(ctx, &taskRow, userID); err != nil {
				return err
			}
			clone.Tasks = append(clone.Tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("clone activity", err)
	}

	s.metrics.RecordClone(len(clone.Tasks))
	s.logger.Debug().
		Str("activity_id", clone.ID).
		Str("source_activity_id", sourceID).
		Int("tasks", len(clone.Tasks)).
		Msg("activity cloned")
	return &clone, nil
}
