package team

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/domain/repositories"
)

// Service handles team membership and team-level integration settings.
type Service interface {
	Create(ctx context.Context, owner *entities.User, name string) (*entities.Team, error)
	// Invite adds an existing user, looked up by email, to the caller's
	// team.
	Invite(ctx context.Context, inviter *entities.User, email string) (*entities.User, error)
	SetWebhook(ctx context.Context, user *entities.User, webhookURL string) (*entities.Team, error)
	MyTeam(ctx context.Context, user *entities.User) (*entities.Team, error)
}

type teamService struct {
	teams  repositories.TeamRepository
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewService creates a new team service
func NewService(teams repositories.TeamRepository, users repositories.UserRepository, logger *zap.Logger) Service {
	return &teamService{
		teams:  teams,
		users:  users,
		logger: logger,
	}
}

func (s *teamService) Create(ctx context.Context, owner *entities.User, name string) (*entities.Team, error) {
	if owner.HasTeam() {
		return nil, entities.ErrAlreadyInTeam
	}

	team := entities.NewTeam(name, owner.ID)
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	owner.TeamID = &team.ID
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to join owner to team: %w", err)
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("owner_id", owner.ID.String()))
	return team, nil
}

func (s *teamService) Invite(ctx context.Context, inviter *entities.User, email string) (*entities.User, error) {
	if !inviter.HasTeam() {
		return nil, entities.ErrNoTeam
	}

	invitee, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if invitee.HasTeam() {
		return nil, entities.ErrAlreadyInTeam
	}

	invitee.TeamID = inviter.TeamID
	if err := s.users.Update(ctx, invitee); err != nil {
		return nil, fmt.Errorf("failed to add member to team: %w", err)
	}

	s.logger.Info("member invited",
		zap.String("team_id", inviter.TeamID.String()),
		zap.String("user_id", invitee.ID.String()))
	return invitee, nil
}

func (s *teamService) SetWebhook(ctx context.Context, user *entities.User, webhookURL string) (*entities.Team, error) {
	team, err := s.requireTeam(ctx, user)
	if err != nil {
		return nil, err
	}

	if webhookURL == "" {
		team.WebhookURL = nil
	} else {
		team.WebhookURL = &webhookURL
	}
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team webhook: %w", err)
	}

	return team, nil
}

func (s *teamService) MyTeam(ctx context.Context, user *entities.User) (*entities.Team, error) {
	return s.requireTeam(ctx, user)
}

func (s *teamService) requireTeam(ctx context.Context, user *entities.User) (*entities.Team, error) {
	if user.TeamID == nil {
		return nil, entities.ErrNoTeam
	}

	team, err := s.teams.FindByID(ctx, *user.TeamID)
	if err != nil {
		if errors.Is(err, entities.ErrTeamNotFound) {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	return team, nil
}
