package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// createCards pushes every action item to the user's task board. Items
// are dispatched independently: a rejected card never aborts the loop,
// and already-created cards are kept. Tracking records for the created
// cards are committed in one batch so the local table never holds a
// partial run.
func (s *analysisService) createCards(ctx context.Context, user *entities.User, result *entities.AnalysisResult, boardID, listID string) Outcome {
	if boardID == "" || listID == "" {
		return Outcome{
			Integration: IntegrationTaskBoard,
			Code:        OutcomeMissingParameter,
			Message:     "Trello: a board and list must be selected.",
		}
	}

	cred, err := s.credRepo.TrelloByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, entities.ErrCredentialNotFound) {
			return Outcome{
				Integration: IntegrationTaskBoard,
				Code:        OutcomeNotConnected,
				Message:     "Trello: Not connected.",
			}
		}
		s.logger.Error("failed to load trello credential", zap.String("user_id", user.ID.String()), zap.Error(err))
		return Outcome{
			Integration: IntegrationTaskBoard,
			Code:        OutcomeFailed,
			Message:     "Trello: failed to load credentials.",
		}
	}

	var (
		records      []*entities.TrackedCard
		failedTitles []string
	)
	for _, item := range result.ActionItems {
		title := orFallback(item.Task, fallbackTask)
		assignee := orFallback(item.Assignee, fallbackAssignee)
		dueDate := orFallback(item.DueDate, fallbackDueDate)
		desc := fmt.Sprintf("Assignee: %s\nDue date: %s", assignee, dueDate)

		card, err := s.board.CreateCard(ctx, cred.Token, listID, title, desc)
		if err != nil {
			s.logger.Warn("failed to create trello card",
				zap.String("user_id", user.ID.String()),
				zap.String("title", title),
				zap.Error(err))
			failedTitles = append(failedTitles, title)
			continue
		}

		// The list the card landed in is the drift baseline.
		createdList := card.IDList
		if createdList == "" {
			createdList = listID
		}
		records = append(records, entities.NewTrackedCard(card.ID, user.ID, boardID, createdList, title, assignee, dueDate))
	}

	if len(records) > 0 {
		if err := s.trackedCards.CreateBatch(ctx, records); err != nil {
			s.logger.Error("failed to save tracked cards", zap.String("user_id", user.ID.String()), zap.Error(err))
			return Outcome{
				Integration: IntegrationTaskBoard,
				Code:        OutcomeFailed,
				Message:     fmt.Sprintf("Trello: %d cards created but tracking records could not be saved.", len(records)),
			}
		}
	}

	msg := fmt.Sprintf("%d Trello cards created.", len(records))
	if len(failedTitles) > 0 {
		msg = fmt.Sprintf("%s %d failed: %s.", msg, len(failedTitles), strings.Join(failedTitles, ", "))
		code := OutcomePartial
		if len(records) == 0 {
			code = OutcomeFailed
		}
		return Outcome{Integration: IntegrationTaskBoard, Code: code, Message: msg}
	}

	return Outcome{Integration: IntegrationTaskBoard, Code: OutcomeOK, Message: msg}
}
