package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// CredentialRepository implements the credential repository interface
// using GORM
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

// SaveTrello upserts the user's Trello credential
func (r *CredentialRepository) SaveTrello(ctx context.Context, cred *entities.TrelloCredential) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "trello_username", "updated_at"}),
		}).
		Create(cred).Error; err != nil {
		return fmt.Errorf("failed to save trello credential: %w", err)
	}
	return nil
}

// TrelloByUser finds the user's Trello credential
func (r *CredentialRepository) TrelloByUser(ctx context.Context, userID uuid.UUID) (*entities.TrelloCredential, error) {
	var cred entities.TrelloCredential
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cred).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to find trello credential: %w", err)
	}
	return &cred, nil
}

// DeleteTrello removes the user's Trello credential
func (r *CredentialRepository) DeleteTrello(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.TrelloCredential{}).Error; err != nil {
		return fmt.Errorf("failed to delete trello credential: %w", err)
	}
	return nil
}

// SaveJira upserts the user's Jira credential
func (r *CredentialRepository) SaveJira(ctx context.Context, cred *entities.JiraCredential) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"base_url", "username", "api_token", "updated_at"}),
		}).
		Create(cred).Error; err != nil {
		return fmt.Errorf("failed to save jira credential: %w", err)
	}
	return nil
}

// JiraByUser finds the user's Jira credential
func (r *CredentialRepository) JiraByUser(ctx context.Context, userID uuid.UUID) (*entities.JiraCredential, error) {
	var cred entities.JiraCredential
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cred).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, entities.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("failed to find jira credential: %w", err)
	}
	return &cred, nil
}

// DeleteJira removes the user's Jira credential
func (r *CredentialRepository) DeleteJira(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entities.JiraCredential{}).Error; err != nil {
		return fmt.Errorf("failed to delete jira credential: %w", err)
	}
	return nil
}
