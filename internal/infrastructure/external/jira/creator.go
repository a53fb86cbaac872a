package jira

import (
	"context"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// Creator creates issues with a per-user credential. Jira access is
// scoped to whatever site the user connected, so a fresh client is
// built from the stored credential on every call.
type Creator struct{}

// NewCreator creates a new Creator
func NewCreator() *Creator {
	return &Creator{}
}

// CreateIssue creates one issue on the site the credential points at.
func (Creator) CreateIssue(ctx context.Context, cred *entities.JiraCredential, projectKey, issueType, summary, description string) (*CreatedIssue, error) {
	client := NewClient(cred.BaseURL, cred.Username, cred.APIToken)
	return client.CreateIssue(ctx, projectKey, issueType, summary, description)
}
