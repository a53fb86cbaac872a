package analysis

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/jira"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
)

// Summarizer produces raw model text for a prompt
type Summarizer interface {
	Configured() bool
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// TaskBoard creates cards on the user's task board
type TaskBoard interface {
	CreateCard(ctx context.Context, token, listID, name, desc string) (*trello.Card, error)
}

// IssueTracker creates issues on the user's issue tracker using the
// stored per-user credential
type IssueTracker interface {
	CreateIssue(ctx context.Context, cred *entities.JiraCredential, projectKey, issueType, summary, description string) (*jira.CreatedIssue, error)
}

// ChatNotifier posts the analysis to a team chat webhook
type ChatNotifier interface {
	PostSummary(ctx context.Context, webhookURL string, analysis *entities.AnalysisResult) error
}

// MailSender sends the analysis as a summary mail
type MailSender interface {
	SendSummary(recipients []string, analysis *entities.AnalysisResult) error
}

// TranscriptArchiver stores a copy of the submitted transcript.
// Optional; a nil archiver disables archiving.
type TranscriptArchiver interface {
	ArchiveTranscript(ctx context.Context, userID uuid.UUID, transcript string) (string, error)
}
