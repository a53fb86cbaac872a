package tracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/repositories"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
)

// CardFetcher reads a card's current state from the task board.
type CardFetcher interface {
	GetCard(ctx context.Context, token, cardID string) (*trello.Card, error)
}

// DriftState classifies a tracked card on one poll pass.
type DriftState string

const (
	StateUnchanged   DriftState = "unchanged"
	StateMoved       DriftState = "moved"
	StateUnreachable DriftState = "unreachable"
)

// CardStatus is the drift verdict for one tracked card.
type CardStatus struct {
	CardID         string     `json:"card_id"`
	Title          string     `json:"title"`
	BaselineListID string     `json:"baseline_list_id"`
	CurrentListID  string     `json:"current_list_id,omitempty"`
	State          DriftState `json:"state"`
	Detail         string     `json:"detail,omitempty"`
}

// UserReport is one user's drift verdicts for a pass.
type UserReport struct {
	UserID   uuid.UUID    `json:"user_id"`
	Username string       `json:"username"`
	Cards    []CardStatus `json:"cards"`
}

// Service polls the task board and compares every tracked card's
// current list against the list it was created in. The stored baseline
// is never rewritten: a card moved once keeps reporting as moved on
// every later pass.
type Service struct {
	users  repositories.UserRepository
	cards  repositories.TrackedCardRepository
	board  CardFetcher
	logger *zap.Logger
}

// NewService creates a new drift tracker service
func NewService(users repositories.UserRepository, cards repositories.TrackedCardRepository, board CardFetcher, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		cards:  cards,
		board:  board,
		logger: logger,
	}
}

// Run executes one poll pass over every user with a connected board.
// Failures are isolated: one unreachable card or one broken user never
// stops the pass.
func (s *Service) Run(ctx context.Context) ([]UserReport, error) {
	users, err := s.users.ListWithTrelloCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with board credentials: %w", err)
	}

	var reports []UserReport
	for _, user := range users {
		if user.TrelloCredential == nil {
			continue
		}

		cards, err := s.cards.ListByUser(ctx, user.ID)
		if err != nil {
			s.logger.Error("failed to list tracked cards",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
			continue
		}
		if len(cards) == 0 {
			continue
		}

		report := UserReport{
			UserID:   user.ID,
			Username: user.Username,
			Cards:    make([]CardStatus, 0, len(cards)),
		}
		for _, card := range cards {
			status := s.checkCard(ctx, user.TrelloCredential.Token, card.CardID, card.Title, card.ListID)
			report.Cards = append(report.Cards, status)

			if status.State == StateMoved {
				s.logger.Info("tracked card moved",
					zap.String("user_id", user.ID.String()),
					zap.String("card_id", status.CardID),
					zap.String("title", status.Title),
					zap.String("baseline_list", status.BaselineListID),
					zap.String("current_list", status.CurrentListID))
			}
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (s *Service) checkCard(ctx context.Context, token, cardID, title, baselineListID string) CardStatus {
	status := CardStatus{
		CardID:         cardID,
		Title:          title,
		BaselineListID: baselineListID,
	}

	current, err := s.board.GetCard(ctx, token, cardID)
	if err != nil {
		s.logger.Warn("failed to fetch tracked card",
			zap.String("card_id", cardID),
			zap.Error(err))
		status.State = StateUnreachable
		status.Detail = err.Error()
		return status
	}

	status.CurrentListID = current.IDList
	if current.IDList != baselineListID {
		status.State = StateMoved
	} else {
		status.State = StateUnchanged
	}
	return status
}
