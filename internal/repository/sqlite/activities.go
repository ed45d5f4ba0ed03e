package sqlite

import (
	"context"
	"time"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

// CreateActivity inserts the activity only if its user owns the target team
func (q *queries) CreateActivity(ctx context.Context, a *repository.Activity) error {
	query := `
	INSERT INTO activities (id, name, description, user_id, team_id, source_activity_id, completed_at, deleted_at, created_at)
	SELECT ?, ?, ?, ?, ?, ?, NULL, NULL, ?
	WHERE EXISTS (
		SELECT 1 FROM team_memberships
		WHERE team_id = ? AND user_id = ? AND role = 'OWNER'
	)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "create activity", query,
		a.ID, a.Name, a.Description, a.UserID, a.TeamID, a.SourceActivityID, FormatTimeForDB(a.CreatedAt),
		a.TeamID, a.UserID,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("team", a.TeamID)
	}
	return nil
}

// FindOwnedActivity returns a live activity owned by userID
func (q *queries) FindOwnedActivity(ctx context.Context, id, userID string) (*repository.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a` + ownedActivity + ` AND a.id = ?`
	return QuerySingle(ctx, q.db, query, ScanActivity, "activity", id, userID, id)
}

// ListOwnedActivities lists live activities owned by userID, newest first
func (q *queries) ListOwnedActivities(ctx context.Context, userID string, filter repository.ActivityFilter) ([]*repository.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities a` + ownedActivity
	if filter.Completed != nil {
		if *filter.Completed {
			query += ` AND a.completed_at IS NOT NULL`
		} else {
			query += ` AND a.completed_at IS NULL`
		}
	}
	query += ` ORDER BY a.created_at DESC, a.id ASC`

	return QueryMultiple(ctx, q.db, query, ScanActivities, "activities", userID)
}

// MarkActivityCompleted sets completed_at once. Completing an already
// completed activity is an invalid state transition.
func (q *queries) MarkActivityCompleted(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE activities SET completed_at = ?
	WHERE id = ? AND completed_at IS NULL AND id IN (SELECT a.id FROM activities a` + ownedActivity + `)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "complete activity", query, FormatTimeForDB(at), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := q.FindOwnedActivity(ctx, id, userID); err != nil {
			return err
		}
		return errors.NewInvalidStateError("activity", id, "already completed")
	}
	return nil
}

// SoftDeleteActivity hides the activity from every subsequent query
func (q *queries) SoftDeleteActivity(ctx context.Context, id, userID string, at time.Time) error {
	query := `
	UPDATE activities SET deleted_at = ?
	WHERE id = ? AND id IN (SELECT a.id FROM activities a` + ownedActivity + `)`

	n, err := ExecuteWithRowsAffected(ctx, q.db, "delete activity", query, FormatTimeForDB(at), id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewNotFoundError("activity", id)
	}
	return nil
}

// TopSourceActivities ranks the user's live activities by how many live
// activities were cloned from them.
func (q *queries) TopSourceActivities(ctx context.Context, userID string, limit int) ([]*repository.SourceCount, error) {
	query := `
	SELECT ` + activityColumns + `, COUNT(c.id) AS clones
	FROM activities c
	JOIN activities a ON a.id = c.source_activity_id` + ownedActivity + `
	AND c.user_id = a.user_id AND c.deleted_at IS NULL
	GROUP BY a.id
	ORDER BY clones DESC, a.created_at DESC, a.id ASC
	LIMIT ?`

	return QueryMultiple(ctx, q.db, query, ScanSourceCounts, "source activities", userID, limit)
}
