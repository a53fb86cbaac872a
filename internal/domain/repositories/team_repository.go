package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// TeamRepository defines persistence operations for teams
type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	// FindByID returns the team with its members preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	Update(ctx context.Context, team *entities.Team) error
}
