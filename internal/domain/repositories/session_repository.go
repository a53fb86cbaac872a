package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// SessionRepository defines persistence operations for auth sessions
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error)
	Update(ctx context.Context, session *entities.Session) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}
