package tracker

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
)

type fakeUsers struct {
	users []*entities.User
	err   error
}

func (f *fakeUsers) Create(ctx context.Context, user *entities.User) error { return nil }
func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return nil, entities.ErrUserNotFound
}
func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, entities.ErrUserNotFound
}
func (f *fakeUsers) Update(ctx context.Context, user *entities.User) error          { return nil }
func (f *fakeUsers) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error    { return nil }
func (f *fakeUsers) ListWithTrelloCredentials(ctx context.Context) ([]*entities.User, error) {
	return f.users, f.err
}

type fakeCards struct {
	byUser map[uuid.UUID][]*entities.TrackedCard
	errFor map[uuid.UUID]error
}

func (f *fakeCards) CreateBatch(ctx context.Context, cards []*entities.TrackedCard) error {
	return nil
}
func (f *fakeCards) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.TrackedCard, error) {
	if err := f.errFor[userID]; err != nil {
		return nil, err
	}
	return f.byUser[userID], nil
}

type fakeFetcher struct {
	lists map[string]string // cardID -> current list
	errs  map[string]error
	calls int
}

func (f *fakeFetcher) GetCard(ctx context.Context, token, cardID string) (*trello.Card, error) {
	f.calls++
	if err := f.errs[cardID]; err != nil {
		return nil, err
	}
	return &trello.Card{ID: cardID, IDList: f.lists[cardID]}, nil
}

func trackedUser(username string) *entities.User {
	id := uuid.New()
	return &entities.User{
		ID:               id,
		Username:         username,
		TrelloCredential: &entities.TrelloCredential{UserID: id, Token: "tok-" + username},
	}
}

func TestRun_ClassifiesDrift(t *testing.T) {
	user := trackedUser("ana")
	cards := &fakeCards{byUser: map[uuid.UUID][]*entities.TrackedCard{
		user.ID: {
			{CardID: "c1", Title: "Fix login", ListID: "todo"},
			{CardID: "c2", Title: "Write changelog", ListID: "todo"},
			{CardID: "c3", Title: "Update docs", ListID: "todo"},
		},
	}}
	fetcher := &fakeFetcher{
		lists: map[string]string{"c1": "todo", "c2": "done"},
		errs:  map[string]error{"c3": fmt.Errorf("trello returned status 404")},
	}

	svc := NewService(&fakeUsers{users: []*entities.User{user}}, cards, fetcher, zap.NewNop())

	reports, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}

	got := map[string]DriftState{}
	for _, status := range reports[0].Cards {
		got[status.CardID] = status.State
	}
	if got["c1"] != StateUnchanged {
		t.Fatalf("c1 should be unchanged, got %s", got["c1"])
	}
	if got["c2"] != StateMoved {
		t.Fatalf("c2 should be moved, got %s", got["c2"])
	}
	if got["c3"] != StateUnreachable {
		t.Fatalf("c3 should be unreachable, got %s", got["c3"])
	}
}

func TestRun_BaselineNeverRewritten(t *testing.T) {
	user := trackedUser("ana")
	stored := &entities.TrackedCard{CardID: "c1", Title: "Fix login", ListID: "todo"}
	cards := &fakeCards{byUser: map[uuid.UUID][]*entities.TrackedCard{user.ID: {stored}}}
	fetcher := &fakeFetcher{lists: map[string]string{"c1": "done"}}

	svc := NewService(&fakeUsers{users: []*entities.User{user}}, cards, fetcher, zap.NewNop())

	for pass := 0; pass < 2; pass++ {
		reports, err := svc.Run(context.Background())
		if err != nil {
			t.Fatalf("Run failed on pass %d: %v", pass, err)
		}
		status := reports[0].Cards[0]
		if status.State != StateMoved {
			t.Fatalf("pass %d: card must still report moved, got %s", pass, status.State)
		}
		if status.BaselineListID != "todo" {
			t.Fatalf("pass %d: baseline must stay the creation list, got %s", pass, status.BaselineListID)
		}
	}
	if stored.ListID != "todo" {
		t.Fatalf("stored baseline was rewritten to %s", stored.ListID)
	}
}

func TestRun_IsolatesBrokenUser(t *testing.T) {
	broken := trackedUser("broken")
	healthy := trackedUser("healthy")
	cards := &fakeCards{
		byUser: map[uuid.UUID][]*entities.TrackedCard{
			healthy.ID: {{CardID: "c1", Title: "Fix login", ListID: "todo"}},
		},
		errFor: map[uuid.UUID]error{broken.ID: fmt.Errorf("db timeout")},
	}
	fetcher := &fakeFetcher{lists: map[string]string{"c1": "todo"}}

	svc := NewService(&fakeUsers{users: []*entities.User{broken, healthy}}, cards, fetcher, zap.NewNop())

	reports, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reports) != 1 || reports[0].Username != "healthy" {
		t.Fatalf("healthy user must still be polled, got %+v", reports)
	}
}

func TestRun_SkipsUsersWithoutCards(t *testing.T) {
	user := trackedUser("ana")
	svc := NewService(&fakeUsers{users: []*entities.User{user}}, &fakeCards{}, &fakeFetcher{}, zap.NewNop())

	reports, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("expected no reports, got %+v", reports)
	}
}

func TestRun_ListUsersFailure(t *testing.T) {
	svc := NewService(&fakeUsers{err: fmt.Errorf("db down")}, &fakeCards{}, &fakeFetcher{}, zap.NewNop())

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error when the user listing fails")
	}
}
