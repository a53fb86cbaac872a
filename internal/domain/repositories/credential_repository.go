package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// CredentialRepository defines persistence operations for integration
// credentials. Lookups return entities.ErrCredentialNotFound when the
// user has not connected the integration.
type CredentialRepository interface {
	SaveTrello(ctx context.Context, cred *entities.TrelloCredential) error
	TrelloByUser(ctx context.Context, userID uuid.UUID) (*entities.TrelloCredential, error)
	DeleteTrello(ctx context.Context, userID uuid.UUID) error

	SaveJira(ctx context.Context, cred *entities.JiraCredential) error
	JiraByUser(ctx context.Context, userID uuid.UUID) (*entities.JiraCredential, error)
	DeleteJira(ctx context.Context, userID uuid.UUID) error
}
