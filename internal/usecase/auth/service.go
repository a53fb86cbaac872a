package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/domain/repositories"
	"github.com/johnquangdev/meeting-agent/pkg/jwt"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Service handles registration, login and session lifecycle.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	// ValidateAccess resolves an access token to its user. Used by the
	// auth middleware.
	ValidateAccess(ctx context.Context, accessToken string) (*entities.User, error)
}

type authService struct {
	users    repositories.UserRepository
	sessions repositories.SessionRepository
	tokens   *jwt.Manager
	logger   *zap.Logger
}

// NewService creates a new auth service
func NewService(users repositories.UserRepository, sessions repositories.SessionRepository, tokens *jwt.Manager, logger *zap.Logger) Service {
	return &authService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*entities.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, entities.ErrUserAlreadyExists
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user, err := entities.NewUser(username, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entities.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, nil, entities.ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, nil, entities.ErrUnauthorized
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return user, pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	hash, err := s.tokens.HashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session, err := s.sessions.FindByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, entities.ErrSessionNotFound) {
			return nil, entities.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if !session.IsValid() || session.UserID != userID {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	// Rotate: the old session dies with the new issue.
	session.Revoke()
	if err := s.sessions.Update(ctx, session); err != nil {
		s.logger.Warn("failed to revoke rotated session", zap.String("user_id", userID.String()), zap.Error(err))
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

func (s *authService) ValidateAccess(ctx context.Context, accessToken string) (*entities.User, error) {
	claims, err := s.tokens.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, entities.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *entities.User) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	hash, err := s.tokens.HashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := entities.NewSession(user.ID, hash, time.Now().Add(s.tokens.GetRefreshExpiry()))
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.GetAccessExpiry().Seconds()),
	}, nil
}
