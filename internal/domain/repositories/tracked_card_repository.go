package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// TrackedCardRepository defines persistence operations for tracked
// task-board cards.
type TrackedCardRepository interface {
	// CreateBatch persists all records in a single transaction. Either
	// every record is committed or none of them are.
	CreateBatch(ctx context.Context, cards []*entities.TrackedCard) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.TrackedCard, error)
}

// AutomationRunRepository defines persistence operations for fan-out
// audit records.
type AutomationRunRepository interface {
	Create(ctx context.Context, run *entities.AutomationRun) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AutomationRun, error)
}
