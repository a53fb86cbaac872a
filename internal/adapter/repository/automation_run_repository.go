package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// AutomationRunRepository implements the automation run repository
// interface using GORM
type AutomationRunRepository struct {
	db *gorm.DB
}

// NewAutomationRunRepository creates a new automation run repository
func NewAutomationRunRepository(db *gorm.DB) *AutomationRunRepository {
	return &AutomationRunRepository{
		db: db,
	}
}

// Create persists an automation run audit record
func (r *AutomationRunRepository) Create(ctx context.Context, run *entities.AutomationRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create automation run: %w", err)
	}
	return nil
}

// ListByUser returns the user's automation runs, newest first
func (r *AutomationRunRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AutomationRun, error) {
	var runs []*entities.AutomationRun
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list automation runs: %w", err)
	}
	return runs, nil
}
