package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal client for the Jira REST API (v2). Server URL
// and basic-auth credentials are per user, so a Client is built per
// call site from the stored credential.
type Client struct {
	baseURL  string
	username string
	apiToken string
	client   *http.Client
}

// NewClient creates a Jira client for one server and account
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		apiToken: apiToken,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError carries the status code and response text of a rejected
// Jira request.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("jira returned status %d: %s", e.StatusCode, e.Body)
}

// Project is a Jira project
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// IssueType is a Jira issue type
type IssueType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatedIssue is the reference Jira returns for a created issue
type CreatedIssue struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

type issueFields struct {
	Project     map[string]string `json:"project"`
	Summary     string            `json:"summary"`
	Description string            `json:"description"`
	IssueType   map[string]string `json:"issuetype"`
}

type createIssueRequest struct {
	Fields issueFields `json:"fields"`
}

// Projects lists the projects visible to the account. Used as a
// connect-time probe as well.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// IssueTypes lists the issue types of the Jira instance
func (c *Client) IssueTypes(ctx context.Context) ([]IssueType, error) {
	var types []IssueType
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/issuetype", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// CreateIssue creates one issue and returns its key
func (c *Client) CreateIssue(ctx context.Context, projectKey, issueType, summary, description string) (*CreatedIssue, error) {
	payload := createIssueRequest{
		Fields: issueFields{
			Project:     map[string]string{"key": projectKey},
			Summary:     summary,
			Description: description,
			IssueType:   map[string]string{"name": issueType},
		},
	}

	var created CreatedIssue
	if err := c.do(ctx, http.MethodPost, "/rest/api/2/issue", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.apiToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode jira response: %w", err)
		}
	}
	return nil
}
