package sqlite

import (
	"context"

	"momentum/internal/repository"
)

// CreateTeam inserts a team and an OWNER membership for ownerUserID
func (q *queries) CreateTeam(ctx context.Context, team *repository.Team, ownerUserID string) error {
	if _, err := q.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)`,
		team.ID, team.Name, FormatTimeForDB(team.CreatedAt),
	); err != nil {
		return HandleDatabaseError("create team", err)
	}

	if _, err := q.db.ExecContext(ctx,
		`INSERT INTO team_memberships (team_id, user_id, role, created_at) VALUES (?, ?, ?, ?)`,
		team.ID, ownerUserID, string(repository.RoleOwner), FormatTimeForDB(team.CreatedAt),
	); err != nil {
		return HandleDatabaseError("create team membership", err)
	}
	return nil
}

// FindOwnerTeam returns the oldest team the user owns
func (q *queries) FindOwnerTeam(ctx context.Context, userID string) (*repository.Team, error) {
	query := `
	SELECT t.id, t.name, t.created_at
	FROM teams t
	JOIN team_memberships m ON m.team_id = t.id
	WHERE m.user_id = ? AND m.role = 'OWNER'
	ORDER BY t.created_at ASC, t.id ASC
	LIMIT 1`

	return QuerySingle(ctx, q.db, query, ScanTeam, "team", "owned by "+userID, userID)
}
