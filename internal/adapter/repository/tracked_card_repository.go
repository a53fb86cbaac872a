package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// TrackedCardRepository implements the tracked card repository
// interface using GORM
type TrackedCardRepository struct {
	db *gorm.DB
}

// NewTrackedCardRepository creates a new tracked card repository
func NewTrackedCardRepository(db *gorm.DB) *TrackedCardRepository {
	return &TrackedCardRepository{
		db: db,
	}
}

// CreateBatch persists all records inside one transaction so a partial
// batch is never committed.
func (r *TrackedCardRepository) CreateBatch(ctx context.Context, cards []*entities.TrackedCard) error {
	if len(cards) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, card := range cards {
			if err := tx.Create(card).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create tracked cards: %w", err)
	}
	return nil
}

// ListByUser returns all cards tracked for the given user
func (r *TrackedCardRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.TrackedCard, error) {
	var cards []*entities.TrackedCard
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracked cards: %w", err)
	}
	return cards, nil
}
