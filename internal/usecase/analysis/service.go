package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/domain/repositories"
)

// retries for transient model errors before the run is declared failed
const summarizeMaxRetries = 2

// Service analyzes a meeting transcript and fans the result out to the
// requested integrations.
type Service interface {
	Analyze(ctx context.Context, user *entities.User, req AnalyzeRequest) (*AnalyzeResult, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AutomationRun, error)
}

// AnalyzeRequest carries one transcript and the automation selection.
type AnalyzeRequest struct {
	Transcript string
	Flags      AutomationFlags
}

// AnalyzeResult is the full result of one run. Analysis is nil when
// the model call failed; Notification is nil when no automation was
// requested.
type AnalyzeResult struct {
	Analysis     *entities.AnalysisResult
	Outcomes     []Outcome
	Notification *Notification
}

type analysisService struct {
	summarizer   Summarizer
	board        TaskBoard
	issues       IssueTracker
	chat         ChatNotifier
	mailer       MailSender
	archiver     TranscriptArchiver
	teamRepo     repositories.TeamRepository
	credRepo     repositories.CredentialRepository
	trackedCards repositories.TrackedCardRepository
	runs         repositories.AutomationRunRepository
	logger       *zap.Logger
}

// NewService creates a new analysis service. archiver may be nil to
// disable transcript archiving.
func NewService(
	summarizer Summarizer,
	board TaskBoard,
	issues IssueTracker,
	chat ChatNotifier,
	mailer MailSender,
	archiver TranscriptArchiver,
	teamRepo repositories.TeamRepository,
	credRepo repositories.CredentialRepository,
	trackedCards repositories.TrackedCardRepository,
	runs repositories.AutomationRunRepository,
	logger *zap.Logger,
) Service {
	return &analysisService{
		summarizer:   summarizer,
		board:        board,
		issues:       issues,
		chat:         chat,
		mailer:       mailer,
		archiver:     archiver,
		teamRepo:     teamRepo,
		credRepo:     credRepo,
		trackedCards: trackedCards,
		runs:         runs,
		logger:       logger,
	}
}

// Analyze runs the transcript through the model, dispatches the result
// to every requested integration and records the run. A model failure
// produces a failure notification with zero integration outcomes; it
// is not an error from this method.
func (s *analysisService) Analyze(ctx context.Context, user *entities.User, req AnalyzeRequest) (*AnalyzeResult, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, entities.ErrEmptyTranscript
	}

	result, err := s.summarize(ctx, req.Transcript)
	if err != nil {
		s.logger.Warn("transcript analysis failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		run := &AnalyzeResult{
			Notification: &Notification{
				Type:    NotificationFailure,
				Message: fmt.Sprintf("Failed to get analysis from AI: %v", err),
			},
		}
		s.recordRun(ctx, user, req, run, "")
		return run, nil
	}

	objectKey := s.archive(ctx, user, req.Transcript)

	outcomes := s.fanOut(ctx, user, result, req.Flags)
	run := &AnalyzeResult{
		Analysis:     result,
		Outcomes:     outcomes,
		Notification: Aggregate(outcomes),
	}
	s.recordRun(ctx, user, req, run, objectKey)

	return run, nil
}

// History returns the user's past runs, newest first.
func (s *analysisService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AutomationRun, error) {
	return s.runs.ListByUser(ctx, userID, limit, offset)
}

// summarize calls the model with retries for transient failures and
// parses the response. Parse errors are not retried; a malformed
// response from a healthy model would just come back malformed again.
func (s *analysisService) summarize(ctx context.Context, transcript string) (*entities.AnalysisResult, error) {
	if !s.summarizer.Configured() {
		return nil, fmt.Errorf("the AI model is not configured or the API key is missing")
	}

	prompt := BuildPrompt(transcript)

	var raw string
	operation := func() error {
		var err error
		raw, err = s.summarizer.GenerateContent(ctx, prompt)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), summarizeMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return ParseAnalysis(raw)
}

// archive stores the transcript best-effort; a storage failure never
// fails the run.
func (s *analysisService) archive(ctx context.Context, user *entities.User, transcript string) string {
	if s.archiver == nil {
		return ""
	}
	key, err := s.archiver.ArchiveTranscript(ctx, user.ID, transcript)
	if err != nil {
		s.logger.Warn("failed to archive transcript", zap.String("user_id", user.ID.String()), zap.Error(err))
		return ""
	}
	return key
}

// recordRun writes the audit record best-effort.
func (s *analysisService) recordRun(ctx context.Context, user *entities.User, req AnalyzeRequest, run *AnalyzeResult, objectKey string) {
	record := &entities.AutomationRun{
		UserID:           user.ID,
		TranscriptObject: objectKey,
	}
	if run.Analysis != nil {
		if data, err := json.Marshal(run.Analysis); err == nil {
			record.Analysis = data
		}
	}
	if len(run.Outcomes) > 0 {
		if data, err := json.Marshal(run.Outcomes); err == nil {
			record.Outcomes = data
		}
	}
	if run.Notification != nil {
		record.NotificationType = run.Notification.Type
		record.Message = run.Notification.Message
	}

	if err := s.runs.Create(ctx, record); err != nil {
		s.logger.Warn("failed to record automation run", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}
