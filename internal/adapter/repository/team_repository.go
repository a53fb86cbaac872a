package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// TeamRepository implements the team repository interface using GORM
type TeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{
		db: db,
	}
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// FindByID finds a team by ID with members preloaded
func (r *TeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var team entities.Team
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id = ?", id).
		First(&team).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team by ID: %w", err)
	}
	return &team, nil
}

// Update updates a team
func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	if err := r.db.WithContext(ctx).Save(team).Error; err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}
