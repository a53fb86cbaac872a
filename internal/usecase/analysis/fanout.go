package analysis

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/mail"
)

// AutomationFlags selects which integrations a run dispatches to and
// carries their per-run parameters. An unset flag means the
// integration is never contacted.
type AutomationFlags struct {
	SendEmail bool

	CreateCards bool
	BoardID     string
	ListID      string

	NotifyChat bool

	CreateIssues bool
	ProjectKey   string
	IssueType    string
}

// fanOut dispatches the analysis to every requested integration in a
// fixed order: email, task board, chat, issue tracker. Each dispatch
// yields exactly one outcome; a failure in one integration never stops
// the next.
func (s *analysisService) fanOut(ctx context.Context, user *entities.User, result *entities.AnalysisResult, flags AutomationFlags) []Outcome {
	var outcomes []Outcome

	if flags.SendEmail {
		outcomes = append(outcomes, s.sendEmail(ctx, user, result))
	}
	if flags.CreateCards {
		outcomes = append(outcomes, s.createCards(ctx, user, result, flags.BoardID, flags.ListID))
	}
	if flags.NotifyChat {
		outcomes = append(outcomes, s.notifyChat(ctx, user, result))
	}
	if flags.CreateIssues {
		outcomes = append(outcomes, s.createIssues(ctx, user, result, flags.ProjectKey, flags.IssueType))
	}

	return outcomes
}

// sendEmail mails the summary to every member of the user's team.
func (s *analysisService) sendEmail(ctx context.Context, user *entities.User, result *entities.AnalysisResult) Outcome {
	team, outcome := s.loadTeam(ctx, user, IntegrationEmail, "Email")
	if outcome != nil {
		return *outcome
	}

	recipients := team.MemberEmails()
	if err := s.mailer.SendSummary(recipients, result); err != nil {
		switch {
		case errors.Is(err, mail.ErrNotConfigured):
			return Outcome{
				Integration: IntegrationEmail,
				Code:        OutcomeNotConfigured,
				Message:     "Email: the mail sender is not configured on the server.",
			}
		case errors.Is(err, mail.ErrNoRecipients):
			return Outcome{
				Integration: IntegrationEmail,
				Code:        OutcomeFailed,
				Message:     "Email: the team has no members with an email address.",
			}
		default:
			s.logger.Warn("failed to send summary email", zap.String("user_id", user.ID.String()), zap.Error(err))
			return Outcome{
				Integration: IntegrationEmail,
				Code:        OutcomeFailed,
				Message:     fmt.Sprintf("Email: failed to send: %v.", err),
			}
		}
	}

	return Outcome{
		Integration: IntegrationEmail,
		Code:        OutcomeOK,
		Message:     fmt.Sprintf("Email sent to %d team members.", len(recipients)),
	}
}

// notifyChat posts the summary to the team's chat webhook.
func (s *analysisService) notifyChat(ctx context.Context, user *entities.User, result *entities.AnalysisResult) Outcome {
	team, outcome := s.loadTeam(ctx, user, IntegrationChat, "Slack")
	if outcome != nil {
		return *outcome
	}

	if !team.HasWebhook() {
		return Outcome{
			Integration: IntegrationChat,
			Code:        OutcomeNotConnected,
			Message:     "Slack: no webhook configured for the team.",
		}
	}

	if err := s.chat.PostSummary(ctx, *team.WebhookURL, result); err != nil {
		s.logger.Warn("failed to post chat notification", zap.String("team_id", team.ID.String()), zap.Error(err))
		return Outcome{
			Integration: IntegrationChat,
			Code:        OutcomeFailed,
			Message:     fmt.Sprintf("Slack: failed to send notification: %v.", err),
		}
	}

	return Outcome{
		Integration: IntegrationChat,
		Code:        OutcomeOK,
		Message:     "Slack notification sent.",
	}
}

// loadTeam resolves the user's team for team-scoped integrations. The
// second return value is non-nil when dispatch cannot proceed.
func (s *analysisService) loadTeam(ctx context.Context, user *entities.User, integration Integration, label string) (*entities.Team, *Outcome) {
	if user.TeamID == nil {
		return nil, &Outcome{
			Integration: integration,
			Code:        OutcomeTeamRequired,
			Message:     fmt.Sprintf("%s: you must belong to a team.", label),
		}
	}

	team, err := s.teamRepo.FindByID(ctx, *user.TeamID)
	if err != nil {
		s.logger.Error("failed to load team", zap.String("team_id", user.TeamID.String()), zap.Error(err))
		return nil, &Outcome{
			Integration: integration,
			Code:        OutcomeFailed,
			Message:     fmt.Sprintf("%s: failed to load the team.", label),
		}
	}

	return team, nil
}
