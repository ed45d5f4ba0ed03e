package services

import (
	"context"

	"momentum/internal/errors"
	"momentum/internal/repository"
)

// PersonalTeamName names the team created for a user who owns none.
const PersonalTeamName = "Personal"

type teamServiceImpl struct {
	base
}

// NewTeamService creates a new TeamService instance
func NewTeamService(deps Dependencies) TeamService {
	return &teamServiceImpl{base: newBase(deps, "team")}
}

func (s *teamServiceImpl) EnsurePersonalTeam(ctx context.Context, userID string) (*repository.Team, error) {
	if userID == "" {
		return nil, s.fail("ensure team", errors.NewInvalidInputError("user id", userID, "must not be empty"))
	}

	var team *repository.Team
	err := s.store.WithinTx(ctx, func(q repository.Queries) error {
		existing, err := q.FindOwnerTeam(ctx, userID)
		if err == nil {
			team = existing
			return nil
		}
		if !errors.IsNotFound(err) {
			return err
		}

		team = &repository.Team{ID: s.newID(), Name: PersonalTeamName, CreatedAt: s.now().UTC()}
		if err := q.CreateTeam(ctx, team, userID); err != nil {
			return err
		}
		s.logger.Debug().Str("team_id", team.ID).Str("user_id", userID).Msg("created personal team")
		return nil
	})
	if err != nil {
		return nil, s.fail("ensure team", err)
	}
	return team, nil
}
