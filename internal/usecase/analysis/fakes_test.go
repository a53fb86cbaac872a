package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/jira"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
)

type fakeSummarizer struct {
	configured bool
	response   string
	errs       []error // consumed per call before response is returned
	calls      int
}

func (f *fakeSummarizer) Configured() bool { return f.configured }

func (f *fakeSummarizer) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.response, nil
}

type fakeBoard struct {
	calls      int
	failTitles map[string]bool
	created    []string
}

func (f *fakeBoard) CreateCard(ctx context.Context, token, listID, name, desc string) (*trello.Card, error) {
	f.calls++
	if f.failTitles[name] {
		return nil, fmt.Errorf("card rejected")
	}
	id := fmt.Sprintf("card-%d", f.calls)
	f.created = append(f.created, name)
	return &trello.Card{ID: id, Name: name, IDList: listID}, nil
}

type fakeIssues struct {
	calls      int
	failTitles map[string]bool
	created    []string
}

func (f *fakeIssues) CreateIssue(ctx context.Context, cred *entities.JiraCredential, projectKey, issueType, summary, description string) (*jira.CreatedIssue, error) {
	f.calls++
	if f.failTitles[summary] {
		return nil, fmt.Errorf("issue rejected")
	}
	f.created = append(f.created, summary)
	return &jira.CreatedIssue{ID: fmt.Sprintf("%d", f.calls), Key: fmt.Sprintf("MEET-%d", f.calls)}, nil
}

type fakeChat struct {
	calls int
	urls  []string
	err   error
}

func (f *fakeChat) PostSummary(ctx context.Context, webhookURL string, analysis *entities.AnalysisResult) error {
	f.calls++
	f.urls = append(f.urls, webhookURL)
	return f.err
}

type fakeMailer struct {
	calls      int
	recipients []string
	err        error
}

func (f *fakeMailer) SendSummary(recipients []string, analysis *entities.AnalysisResult) error {
	f.calls++
	f.recipients = recipients
	return f.err
}

type fakeTeamRepo struct {
	teams map[uuid.UUID]*entities.Team
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *entities.Team) error { return nil }

func (f *fakeTeamRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return nil, entities.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *entities.Team) error { return nil }

type fakeCredRepo struct {
	trello map[uuid.UUID]*entities.TrelloCredential
	jira   map[uuid.UUID]*entities.JiraCredential
}

func (f *fakeCredRepo) SaveTrello(ctx context.Context, cred *entities.TrelloCredential) error {
	return nil
}

func (f *fakeCredRepo) TrelloByUser(ctx context.Context, userID uuid.UUID) (*entities.TrelloCredential, error) {
	cred, ok := f.trello[userID]
	if !ok {
		return nil, entities.ErrCredentialNotFound
	}
	return cred, nil
}

func (f *fakeCredRepo) DeleteTrello(ctx context.Context, userID uuid.UUID) error { return nil }

func (f *fakeCredRepo) SaveJira(ctx context.Context, cred *entities.JiraCredential) error { return nil }

func (f *fakeCredRepo) JiraByUser(ctx context.Context, userID uuid.UUID) (*entities.JiraCredential, error) {
	cred, ok := f.jira[userID]
	if !ok {
		return nil, entities.ErrCredentialNotFound
	}
	return cred, nil
}

func (f *fakeCredRepo) DeleteJira(ctx context.Context, userID uuid.UUID) error { return nil }

type fakeTrackedCards struct {
	batches [][]*entities.TrackedCard
	err     error
}

func (f *fakeTrackedCards) CreateBatch(ctx context.Context, cards []*entities.TrackedCard) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, cards)
	return nil
}

func (f *fakeTrackedCards) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.TrackedCard, error) {
	return nil, nil
}

type fakeArchiver struct {
	key   string
	err   error
	calls int
}

func (f *fakeArchiver) ArchiveTranscript(ctx context.Context, userID uuid.UUID, transcript string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

type fakeRuns struct {
	records []*entities.AutomationRun
}

func (f *fakeRuns) Create(ctx context.Context, run *entities.AutomationRun) error {
	f.records = append(f.records, run)
	return nil
}

func (f *fakeRuns) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.AutomationRun, error) {
	return f.records, nil
}

type fixture struct {
	summarizer *fakeSummarizer
	board      *fakeBoard
	issues     *fakeIssues
	chat       *fakeChat
	mailer     *fakeMailer
	teams      *fakeTeamRepo
	creds      *fakeCredRepo
	tracked    *fakeTrackedCards
	runs       *fakeRuns
	service    Service
	user       *entities.User
	team       *entities.Team
}

// modelResponse is the canonical well-formed reply used across tests:
// three action items and one decision, wrapped in markdown fences the
// way the model actually answers.
const modelResponse = "```json\n" + `{
  "summary": "Planned the release.",
  "decisions": ["Ship on Friday"],
  "action_items": [
    {"task": "Fix login", "assignee": "Ana", "due_date": "2026-09-04"},
    {"task": "Write changelog", "assignee": "Bo", "due_date": ""},
    {"task": "Update docs", "assignee": "Cy", "due_date": "next week"}
  ]
}` + "\n```"

func newFixture() *fixture {
	userID := uuid.New()
	teamID := uuid.New()
	webhook := "https://hooks.slack.example/T000/B000"

	member := entities.User{ID: uuid.New(), Username: "bo", Email: "bo@example.com"}
	team := &entities.Team{
		ID:         teamID,
		Name:       "Platform",
		OwnerID:    userID,
		WebhookURL: &webhook,
		Members: []entities.User{
			{ID: userID, Username: "ana", Email: "ana@example.com"},
			member,
		},
	}

	f := &fixture{
		summarizer: &fakeSummarizer{configured: true, response: modelResponse},
		board:      &fakeBoard{},
		issues:     &fakeIssues{},
		chat:       &fakeChat{},
		mailer:     &fakeMailer{},
		teams:      &fakeTeamRepo{teams: map[uuid.UUID]*entities.Team{teamID: team}},
		creds: &fakeCredRepo{
			trello: map[uuid.UUID]*entities.TrelloCredential{
				userID: {UserID: userID, Token: "user-token"},
			},
			jira: map[uuid.UUID]*entities.JiraCredential{
				userID: {UserID: userID, BaseURL: "https://jira.example.com", Username: "ana", APIToken: "tok"},
			},
		},
		tracked: &fakeTrackedCards{},
		runs:    &fakeRuns{},
		user:    &entities.User{ID: userID, Username: "ana", Email: "ana@example.com", TeamID: &teamID},
		team:    team,
	}

	f.service = NewService(
		f.summarizer, f.board, f.issues, f.chat, f.mailer, nil,
		f.teams, f.creds, f.tracked, f.runs,
		zap.NewNop(),
	)
	return f
}
