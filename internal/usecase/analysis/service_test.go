package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"go.uber.org/zap"
)

func TestAnalyze_EmptyTranscript(t *testing.T) {
	f := newFixture()

	_, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{Transcript: "  \n "})
	if !errors.Is(err, entities.ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
}

func TestAnalyze_NoFlagsTouchesNoIntegration(t *testing.T) {
	f := newFixture()

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{Transcript: "t"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Analysis == nil || result.Analysis.Summary == "" {
		t.Fatal("analysis should be present")
	}
	if len(result.Outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %+v", result.Outcomes)
	}
	if result.Notification != nil {
		t.Fatalf("expected no notification, got %+v", result.Notification)
	}
	if f.board.calls+f.issues.calls+f.chat.calls+f.mailer.calls != 0 {
		t.Fatal("no integration may be contacted when no flag is set")
	}
}

func TestAnalyze_ModelFailureSkipsFanOut(t *testing.T) {
	f := newFixture()
	modelErr := fmt.Errorf("gemini returned status 500")
	f.summarizer.errs = []error{modelErr, modelErr, modelErr}

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{
		Transcript: "t",
		Flags:      AutomationFlags{SendEmail: true, NotifyChat: true},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Analysis != nil {
		t.Fatal("analysis must be nil after a model failure")
	}
	if len(result.Outcomes) != 0 {
		t.Fatal("no integration outcome may exist after a model failure")
	}
	if result.Notification == nil || result.Notification.Type != NotificationFailure {
		t.Fatalf("expected failure notification, got %+v", result.Notification)
	}
	if !strings.Contains(result.Notification.Message, modelErr.Error()) {
		t.Fatalf("notification should carry the model error: %q", result.Notification.Message)
	}
	if f.mailer.calls+f.chat.calls != 0 {
		t.Fatal("integrations must not be contacted after a model failure")
	}
}

func TestAnalyze_ModelNotConfigured(t *testing.T) {
	f := newFixture()
	f.summarizer.configured = false

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{Transcript: "t"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Notification == nil || result.Notification.Type != NotificationFailure {
		t.Fatalf("expected failure notification, got %+v", result.Notification)
	}
	if f.summarizer.calls != 0 {
		t.Fatal("unconfigured model must not be called")
	}
}

func TestAnalyze_RetriesTransientModelError(t *testing.T) {
	f := newFixture()
	f.summarizer.errs = []error{fmt.Errorf("gemini returned status 429")}

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{Transcript: "t"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Analysis == nil {
		t.Fatal("analysis should be present after a successful retry")
	}
	if f.summarizer.calls != 2 {
		t.Fatalf("expected 2 model calls, got %d", f.summarizer.calls)
	}
}

func TestAnalyze_MalformedResponseNotification(t *testing.T) {
	f := newFixture()
	f.summarizer.response = "not json at all"

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{Transcript: "t"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.Notification == nil || result.Notification.Type != NotificationFailure {
		t.Fatalf("expected failure notification, got %+v", result.Notification)
	}
}

func TestAnalyze_FullFanOutOrderAndSuccess(t *testing.T) {
	f := newFixture()

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{
		Transcript: "t",
		Flags: AutomationFlags{
			SendEmail:    true,
			CreateCards:  true,
			BoardID:      "b1",
			ListID:       "l1",
			NotifyChat:   true,
			CreateIssues: true,
			ProjectKey:   "MEET",
			IssueType:    "Task",
		},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	want := []Integration{IntegrationEmail, IntegrationTaskBoard, IntegrationChat, IntegrationIssueTracker}
	if len(result.Outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(result.Outcomes))
	}
	for i, integration := range want {
		if result.Outcomes[i].Integration != integration {
			t.Fatalf("outcome %d should be %s, got %s", i, integration, result.Outcomes[i].Integration)
		}
		if !result.Outcomes[i].OK() {
			t.Fatalf("outcome %s should be ok: %+v", integration, result.Outcomes[i])
		}
	}

	if result.Notification.Type != NotificationSuccess {
		t.Fatalf("expected success notification, got %+v", result.Notification)
	}
	if len(f.mailer.recipients) != 2 {
		t.Fatalf("mail should go to both team members, got %v", f.mailer.recipients)
	}
	if f.chat.urls[0] != *f.team.WebhookURL {
		t.Fatalf("chat posted to wrong webhook %s", f.chat.urls[0])
	}
	if len(f.tracked.batches) != 1 || len(f.tracked.batches[0]) != 3 {
		t.Fatalf("expected one batch of 3 tracked cards, got %+v", f.tracked.batches)
	}
	if f.issues.calls != 3 {
		t.Fatalf("expected 3 issue creations, got %d", f.issues.calls)
	}
}

func TestAnalyze_RecordsRun(t *testing.T) {
	f := newFixture()

	_, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{
		Transcript: "t",
		Flags:      AutomationFlags{NotifyChat: true},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(f.runs.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(f.runs.records))
	}
	record := f.runs.records[0]
	if record.UserID != f.user.ID {
		t.Fatal("audit record must carry the user id")
	}
	if record.NotificationType != NotificationSuccess {
		t.Fatalf("unexpected notification type %q", record.NotificationType)
	}
	if len(record.Analysis) == 0 || len(record.Outcomes) == 0 {
		t.Fatal("audit record should embed analysis and outcomes JSON")
	}
}

func TestAnalyze_ArchiveFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	archiver := &fakeArchiver{err: errors.New("storage unreachable")}
	f.service = NewService(
		f.summarizer, f.board, f.issues, f.chat, f.mailer, archiver,
		f.teams, f.creds, f.tracked, f.runs,
		zap.NewNop(),
	)

	result, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{
		Transcript: "t",
		Flags:      AutomationFlags{NotifyChat: true},
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if archiver.calls != 1 {
		t.Fatalf("expected one archive attempt, got %d", archiver.calls)
	}
	if result.Analysis == nil || result.Notification.Type != NotificationSuccess {
		t.Fatal("archive failure must not fail the run")
	}
	if f.runs.records[0].TranscriptObject != "" {
		t.Fatalf("failed archive must leave the object key empty, got %q", f.runs.records[0].TranscriptObject)
	}
}

func TestAnalyze_ArchiveKeyRecorded(t *testing.T) {
	f := newFixture()
	archiver := &fakeArchiver{key: "transcripts/ana/2026-08-31.txt"}
	f.service = NewService(
		f.summarizer, f.board, f.issues, f.chat, f.mailer, archiver,
		f.teams, f.creds, f.tracked, f.runs,
		zap.NewNop(),
	)

	_, err := f.service.Analyze(context.Background(), f.user, AnalyzeRequest{Transcript: "t"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if f.runs.records[0].TranscriptObject != archiver.key {
		t.Fatalf("audit record should carry the object key, got %q", f.runs.records[0].TranscriptObject)
	}
}
