package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/pkg/jwt"
)

type fakeUsers struct {
	byID    map[uuid.UUID]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byID:    map[uuid.UUID]*entities.User{},
		byEmail: map[string]*entities.User{},
	}
}

func (f *fakeUsers) Create(ctx context.Context, user *entities.User) error {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) Update(ctx context.Context, user *entities.User) error       { return nil }
func (f *fakeUsers) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error { return nil }
func (f *fakeUsers) ListWithTrelloCredentials(ctx context.Context) ([]*entities.User, error) {
	return nil, nil
}

type fakeSessions struct {
	byHash map[string]*entities.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byHash: map[string]*entities.Session{}}
}

func (f *fakeSessions) Create(ctx context.Context, session *entities.Session) error {
	f.byHash[session.RefreshToken] = session
	return nil
}

func (f *fakeSessions) FindByTokenHash(ctx context.Context, tokenHash string) (*entities.Session, error) {
	session, ok := f.byHash[tokenHash]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessions) Update(ctx context.Context, session *entities.Session) error { return nil }

func (f *fakeSessions) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, session := range f.byHash {
		if session.UserID == userID {
			session.Revoke()
		}
	}
	return nil
}

func (f *fakeSessions) DeleteExpired(ctx context.Context) error { return nil }

func newTestService() (Service, *fakeUsers, *fakeSessions) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	manager := jwt.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(users, sessions, manager, zap.NewNop()), users, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "ana", "ana@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "correct-horse-battery" {
		t.Fatal("password must be stored hashed")
	}

	loggedIn, tokens, err := svc.Login(ctx, "ana@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatal("login must resolve the registered user")
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("login must issue both tokens")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana", "ana@example.com", "correct-horse-battery"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Register(ctx, "ana2", "ana@example.com", "correct-horse-battery")
	if !errors.Is(err, entities.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana", "ana@example.com", "correct-horse-battery"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, _, err := svc.Login(ctx, "ana@example.com", "wrong")
	if !errors.Is(err, entities.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRefresh_RotatesSession(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana", "ana@example.com", "correct-horse-battery"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, tokens, err := svc.Login(ctx, "ana@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	rotated, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatal("refresh must issue a new refresh token")
	}

	// The pre-rotation session is revoked.
	var revoked int
	for _, session := range sessions.byHash {
		if !session.IsValid() {
			revoked++
		}
	}
	if revoked != 1 {
		t.Fatalf("expected the old session to be revoked, got %d revoked", revoked)
	}
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, entities.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateAccess(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana", "ana@example.com", "correct-horse-battery"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	user, tokens, err := svc.Login(ctx, "ana@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	resolved, err := svc.ValidateAccess(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccess failed: %v", err)
	}
	if resolved.ID != user.ID {
		t.Fatal("access token must resolve to its user")
	}

	if _, err := svc.ValidateAccess(ctx, "garbage"); !errors.Is(err, entities.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogout_RevokesSessions(t *testing.T) {
	svc, _, sessions := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ana", "ana@example.com", "correct-horse-battery"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	user, _, err := svc.Login(ctx, "ana@example.com", "correct-horse-battery")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	for _, session := range sessions.byHash {
		if session.IsValid() {
			t.Fatal("all sessions must be revoked after logout")
		}
	}
}
