package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "ana@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != userID || claims.Email != "ana@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Fatal("a refresh token must not validate as an access token")
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	m := newTestManager()

	h1, err := m.HashToken("abc")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	h2, _ := m.HashToken("abc")
	if h1 != h2 {
		t.Fatal("hash must be deterministic")
	}
	h3, _ := m.HashToken("abd")
	if h1 == h3 {
		t.Fatal("different tokens must hash differently")
	}
}
