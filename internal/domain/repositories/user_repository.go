package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error

	// ListWithTrelloCredentials returns every user holding a Trello
	// credential, with the credential preloaded. Used by the poll
	// worker.
	ListWithTrelloCredentials(ctx context.Context) ([]*entities.User, error)
}
