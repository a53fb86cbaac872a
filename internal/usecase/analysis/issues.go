package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// createIssues mirrors the task-board loop for the issue tracker:
// one issue per action item, dispatched independently. Created issues
// are not tracked locally.
func (s *analysisService) createIssues(ctx context.Context, user *entities.User, result *entities.AnalysisResult, projectKey, issueType string) Outcome {
	if projectKey == "" || issueType == "" {
		return Outcome{
			Integration: IntegrationIssueTracker,
			Code:        OutcomeMissingParameter,
			Message:     "Jira: a project and issue type must be selected.",
		}
	}

	cred, err := s.credRepo.JiraByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, entities.ErrCredentialNotFound) {
			return Outcome{
				Integration: IntegrationIssueTracker,
				Code:        OutcomeNotConnected,
				Message:     "Jira: Not connected.",
			}
		}
		s.logger.Error("failed to load jira credential", zap.String("user_id", user.ID.String()), zap.Error(err))
		return Outcome{
			Integration: IntegrationIssueTracker,
			Code:        OutcomeFailed,
			Message:     "Jira: failed to load credentials.",
		}
	}

	var (
		created      int
		failedTitles []string
	)
	for _, item := range result.ActionItems {
		title := orFallback(item.Task, fallbackTask)
		assignee := orFallback(item.Assignee, fallbackAssignee)
		dueDate := orFallback(item.DueDate, fallbackDueDate)
		desc := fmt.Sprintf("Assignee: %s\nDue date: %s", assignee, dueDate)

		if _, err := s.issues.CreateIssue(ctx, cred, projectKey, issueType, title, desc); err != nil {
			s.logger.Warn("failed to create jira issue",
				zap.String("user_id", user.ID.String()),
				zap.String("title", title),
				zap.Error(err))
			failedTitles = append(failedTitles, title)
			continue
		}
		created++
	}

	msg := fmt.Sprintf("%d Jira issues created.", created)
	if len(failedTitles) > 0 {
		msg = fmt.Sprintf("%s %d failed: %s.", msg, len(failedTitles), strings.Join(failedTitles, ", "))
		code := OutcomePartial
		if created == 0 {
			code = OutcomeFailed
		}
		return Outcome{Integration: IntegrationIssueTracker, Code: code, Message: msg}
	}

	return Outcome{Integration: IntegrationIssueTracker, Code: OutcomeOK, Message: msg}
}
