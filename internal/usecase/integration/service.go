package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	"github.com/johnquangdev/meeting-agent/internal/domain/repositories"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/jira"
	"github.com/johnquangdev/meeting-agent/internal/infrastructure/external/trello"
)

// Board and list metadata changes rarely; a short cache keeps the
// board picker snappy without going stale for long.
const metadataCacheTTL = 5 * time.Minute

// BoardClient is the task-board surface the service needs.
type BoardClient interface {
	Me(ctx context.Context, token string) (*trello.Member, error)
	Boards(ctx context.Context, token string) ([]trello.Board, error)
	Lists(ctx context.Context, token, boardID string) ([]trello.List, error)
}

// Status reports which integrations a user has connected.
type Status struct {
	TrelloConnected bool   `json:"trello_connected"`
	TrelloUsername  string `json:"trello_username,omitempty"`
	JiraConnected   bool   `json:"jira_connected"`
	JiraBaseURL     string `json:"jira_base_url,omitempty"`
}

// Service manages per-user integration credentials and board metadata.
type Service interface {
	ConnectTrello(ctx context.Context, userID uuid.UUID, token string) (*entities.TrelloCredential, error)
	DisconnectTrello(ctx context.Context, userID uuid.UUID) error
	Boards(ctx context.Context, userID uuid.UUID) ([]trello.Board, error)
	Lists(ctx context.Context, userID uuid.UUID, boardID string) ([]trello.List, error)

	ConnectJira(ctx context.Context, userID uuid.UUID, baseURL, username, apiToken string) (*entities.JiraCredential, error)
	DisconnectJira(ctx context.Context, userID uuid.UUID) error
	JiraProjects(ctx context.Context, userID uuid.UUID) ([]jira.Project, error)
	JiraIssueTypes(ctx context.Context, userID uuid.UUID) ([]jira.IssueType, error)

	GetStatus(ctx context.Context, userID uuid.UUID) (*Status, error)
}

type integrationService struct {
	creds  repositories.CredentialRepository
	board  BoardClient
	cache  *cache.RedisClient
	logger *zap.Logger
}

// NewService creates a new integration service. cache may be nil to
// disable board metadata caching.
func NewService(creds repositories.CredentialRepository, board BoardClient, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &integrationService{
		creds:  creds,
		board:  board,
		cache:  redis,
		logger: logger,
	}
}

// ConnectTrello verifies the token against the board API before
// storing it. A token that cannot resolve its own member is rejected.
func (s *integrationService) ConnectTrello(ctx context.Context, userID uuid.UUID, token string) (*entities.TrelloCredential, error) {
	member, err := s.board.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("trello token verification failed: %w", err)
	}

	cred := entities.NewTrelloCredential(userID, token, member.Username)
	if err := s.creds.SaveTrello(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to save trello credential: %w", err)
	}

	s.logger.Info("trello connected", zap.String("user_id", userID.String()))
	return cred, nil
}

func (s *integrationService) DisconnectTrello(ctx context.Context, userID uuid.UUID) error {
	if err := s.creds.DeleteTrello(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete trello credential: %w", err)
	}
	s.invalidate(ctx, boardsCacheKey(userID))
	return nil
}

func (s *integrationService) Boards(ctx context.Context, userID uuid.UUID) ([]trello.Board, error) {
	cred, err := s.creds.TrelloByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := boardsCacheKey(userID)
	var boards []trello.Board
	if s.cachedGet(ctx, key, &boards) {
		return boards, nil
	}

	boards, err = s.board.Boards(ctx, cred.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch boards: %w", err)
	}

	s.cachedSet(ctx, key, boards)
	return boards, nil
}

func (s *integrationService) Lists(ctx context.Context, userID uuid.UUID, boardID string) ([]trello.List, error) {
	cred, err := s.creds.TrelloByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := listsCacheKey(userID, boardID)
	var lists []trello.List
	if s.cachedGet(ctx, key, &lists) {
		return lists, nil
	}

	lists, err = s.board.Lists(ctx, cred.Token, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}

	s.cachedSet(ctx, key, lists)
	return lists, nil
}

// ConnectJira probes the site with the credential before storing it.
func (s *integrationService) ConnectJira(ctx context.Context, userID uuid.UUID, baseURL, username, apiToken string) (*entities.JiraCredential, error) {
	client := jira.NewClient(baseURL, username, apiToken)
	if _, err := client.Projects(ctx); err != nil {
		return nil, fmt.Errorf("jira credential verification failed: %w", err)
	}

	cred := entities.NewJiraCredential(userID, baseURL, username, apiToken)
	if err := s.creds.SaveJira(ctx, cred); err != nil {
		return nil, fmt.Errorf("failed to save jira credential: %w", err)
	}

	s.logger.Info("jira connected", zap.String("user_id", userID.String()))
	return cred, nil
}

func (s *integrationService) DisconnectJira(ctx context.Context, userID uuid.UUID) error {
	if err := s.creds.DeleteJira(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete jira credential: %w", err)
	}
	return nil
}

func (s *integrationService) JiraProjects(ctx context.Context, userID uuid.UUID) ([]jira.Project, error) {
	cred, err := s.creds.JiraByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return jira.NewClient(cred.BaseURL, cred.Username, cred.APIToken).Projects(ctx)
}

func (s *integrationService) JiraIssueTypes(ctx context.Context, userID uuid.UUID) ([]jira.IssueType, error) {
	cred, err := s.creds.JiraByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return jira.NewClient(cred.BaseURL, cred.Username, cred.APIToken).IssueTypes(ctx)
}

func (s *integrationService) GetStatus(ctx context.Context, userID uuid.UUID) (*Status, error) {
	status := &Status{}

	trelloCred, err := s.creds.TrelloByUser(ctx, userID)
	switch {
	case err == nil:
		status.TrelloConnected = true
		status.TrelloUsername = trelloCred.TrelloUsername
	case !errors.Is(err, entities.ErrCredentialNotFound):
		return nil, err
	}

	jiraCred, err := s.creds.JiraByUser(ctx, userID)
	switch {
	case err == nil:
		status.JiraConnected = true
		status.JiraBaseURL = jiraCred.BaseURL
	case !errors.Is(err, entities.ErrCredentialNotFound):
		return nil, err
	}

	return status, nil
}

func boardsCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("trello:boards:%s", userID)
}

func listsCacheKey(userID uuid.UUID, boardID string) string {
	return fmt.Sprintf("trello:lists:%s:%s", userID, boardID)
}

func (s *integrationService) cachedGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("failed to decode cached metadata", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *integrationService) cachedSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), metadataCacheTTL); err != nil {
		s.logger.Warn("failed to cache metadata", zap.String("key", key), zap.Error(err))
	}
}

func (s *integrationService) invalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to invalidate cache", zap.String("key", key), zap.Error(err))
	}
}
