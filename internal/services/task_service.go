package services

import (
	"context"
	"time"

	"momentum/internal/domain"
	"momentum/internal/errors"
	"momentum/internal/repository"
	"momentum/internal/validation"
)

type taskServiceImpl struct {
	base
	validator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(deps Dependencies) TaskService {
	deps = deps.withDefaults()
	return &taskServiceImpl{
		base:      newBase(deps, "task"),
		validator: validation.NewTaskValidator(deps.Rules),
	}
}

// CreateTask appends a task after the activity's last live task
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID, activityID, name string, duration time.Duration) (*domain.Task, error) {
	name, err := s.validator.ValidateTask(name, duration)
	if err != nil {
		return nil, s.fail("create task", err)
	}
	// durations are stored in whole milliseconds
	duration = duration.Truncate(time.Millisecond)

	now := s.now().UTC()
	var created domain.Task
	err = s.store.WithinTx(ctx, func(q repository.Queries) error {
		activity, err := s.loadActivity(ctx, q, userID, activityID)
		if err != nil {
			return err
		}
		if err := activity.CanAddTask(); err != nil {
			return err
		}

		created = domain.Task{
			ID:         s.newID(),
			ActivityID: activity.ID,
			Name:       name,
			Duration:   duration,
			Position:   activity.NextPosition(),
			CreatedAt:  now,
		}
		row := s.mapper.Task.ToRepository(created)
		return q.CreateTask(ctx, &row, userID)
	})
	if err != nil {
		return nil, s.fail("create task", err)
	}

	s.logger.Debug().Str("task_id", created.ID).Int("position", created.Position).Msg("task created")
	return &created, nil
}

// StartTask opens a time entry on an idle task. Any other task of the same
// activity that is running is stopped first, so an activity runs one task
// at a time.
func (s *taskServiceImpl) StartTask(ctx context.Context, userID, taskID string) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return nil, s.fail("start task", err)
	}

	now := s.now().UTC()
	var (
		started domain.TimeEntry
		stopped []domain.TimeEntry
	)
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		activity, task, err := s.loadTask(ctx, q, userID, taskID)
		if err != nil {
			return err
		}
		if activity.IsCompleted() {
			return errors.NewInvalidStateError("activity", activity.ID, "already completed")
		}
		if err := task.CanStart(); err != nil {
			return err
		}

		for _, other := range activity.LiveTasks() {
			if open := other.OpenEntry(); open != nil {
				entry, err := s.stopEntry(ctx, q, userID, *open, now)
				if err != nil {
					return err
				}
				stopped = append(stopped, entry)
			}
		}

		started = domain.NewTimeEntry(s.newID(), task.ID, now)
		row := s.mapper.TimeEntry.ToRepository(started)
		return q.CreateTimeEntry(ctx, &row, userID)
	})
	if err != nil {
		return nil, s.fail("start task", err)
	}

	for _, e := range stopped {
		s.metrics.RecordEntryStopped(e.Elapsed(now))
	}
	s.metrics.RecordEntryStarted()
	s.logger.Debug().Str("task_id", taskID).Str("time_entry_id", started.ID).Int("stopped", len(stopped)).Msg("task started")
	return &started, nil
}

// StopTask closes the task's open time entry
func (s *taskServiceImpl) StopTask(ctx context.Context, userID, taskID string) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return nil, s.fail("stop task", err)
	}

	now := s.now().UTC()
	var stopped domain.TimeEntry
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		_, task, err := s.loadTask(ctx, q, userID, taskID)
		if err != nil {
			return err
		}
		if err := task.CanStop(); err != nil {
			return err
		}
		row, err := q.FindOpenTimeEntry(ctx, task.ID, userID)
		if err != nil {
			return err
		}
		if row == nil {
			return errors.NewInvalidStateError("task", taskID, "not running")
		}
		stopped, err = s.stopEntry(ctx, q, userID, s.mapper.TimeEntry.FromRepository(*row), now)
		return err
	})
	if err != nil {
		return nil, s.fail("stop task", err)
	}

	s.metrics.RecordEntryStopped(stopped.Elapsed(now))
	s.logger.Debug().Str("task_id", taskID).Str("time_entry_id", stopped.ID).Msg("task stopped")
	return &stopped, nil
}

// StopTimeEntry closes a specific open entry. The stop time is never earlier
// than the entry's start.
func (s *taskServiceImpl) StopTimeEntry(ctx context.Context, userID, entryID string) (*domain.TimeEntry, error) {
	if err := s.validator.ValidateTimeEntryID(entryID); err != nil {
		return nil, s.fail("stop time entry", err)
	}

	now := s.now().UTC()
	var stopped domain.TimeEntry
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		row, err := q.FindOwnedTimeEntry(ctx, entryID, userID)
		if err != nil {
			return err
		}
		entry := s.mapper.TimeEntry.FromRepository(*row)
		if !entry.IsOpen() {
			return errors.NewInvalidStateError("time entry", entryID, "already stopped")
		}
		stopped, err = s.stopEntry(ctx, q, userID, entry, now)
		return err
	})
	if err != nil {
		return nil, s.fail("stop time entry", err)
	}

	s.metrics.RecordEntryStopped(stopped.Elapsed(now))
	s.logger.Debug().Str("time_entry_id", entryID).Msg("time entry stopped")
	return &stopped, nil
}

// CompleteTask marks the task completed, closing its open entry at now
func (s *taskServiceImpl) CompleteTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return nil, s.fail("complete task", err)
	}

	now := s.now().UTC()
	var (
		completed domain.Task
		closed    *domain.TimeEntry
	)
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		activity, task, err := s.loadTask(ctx, q, userID, taskID)
		if err != nil {
			return err
		}
		if activity.IsCompleted() {
			return errors.NewInvalidStateError("activity", activity.ID, "already completed")
		}
		if err := task.CanComplete(); err != nil {
			return err
		}

		if open := task.OpenEntry(); open != nil {
			entry, err := s.stopEntry(ctx, q, userID, *open, now)
			if err != nil {
				return err
			}
			*open = entry
			closed = &entry
		}
		if err := q.MarkTaskCompleted(ctx, taskID, userID, now); err != nil {
			return err
		}
		task.CompletedAt = &now
		completed = task
		return nil
	})
	if err != nil {
		return nil, s.fail("complete task", err)
	}

	if closed != nil {
		s.metrics.RecordEntryStopped(closed.Elapsed(now))
	}
	s.logger.Debug().Str("task_id", taskID).Msg("task completed")
	return &completed, nil
}

// DeleteTask soft deletes a task of an uncompleted activity, closing its
// open entry first. Its position becomes free for new tasks.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return s.fail("delete task", err)
	}

	now := s.now().UTC()
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		activity, task, err := s.loadTask(ctx, q, userID, taskID)
		if err != nil {
			return err
		}
		if err := activity.CanAddTask(); err != nil {
			return err
		}
		if open := task.OpenEntry(); open != nil {
			if _, err := s.stopEntry(ctx, q, userID, *open, now); err != nil {
				return err
			}
		}
		return q.SoftDeleteTask(ctx, taskID, userID, now)
	})
	if err != nil {
		return s.fail("delete task", err)
	}

	s.logger.Debug().Str("task_id", taskID).Msg("task deleted")
	return nil
}
