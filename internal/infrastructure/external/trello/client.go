package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-agent/pkg/config"
)

// Client is a minimal client for the Trello REST API. The application
// key pair comes from config; the per-user token is passed per call
// because every request acts on behalf of a specific user.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Trello client using values from the provided config
func NewClient(cfg *config.TrelloConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.trello.com"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Member is a Trello member
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Board is a Trello board
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a list (column) on a board
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is a Trello card; IDList is the list the card currently sits in
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IDList string `json:"idList"`
}

// Me fetches the member owning the token. Used to verify a token on
// connect.
func (c *Client) Me(ctx context.Context, token string) (*Member, error) {
	var member Member
	if err := c.get(ctx, token, "/1/members/me", nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Boards lists the boards visible to the token's member
func (c *Client) Boards(ctx context.Context, token string) ([]Board, error) {
	var boards []Board
	params := url.Values{"fields": {"id,name"}}
	if err := c.get(ctx, token, "/1/members/me/boards", params, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Lists returns the lists of a board
func (c *Client) Lists(ctx context.Context, token, boardID string) ([]List, error) {
	var lists []List
	params := url.Values{"fields": {"id,name"}}
	if err := c.get(ctx, token, "/1/boards/"+url.PathEscape(boardID)+"/lists", params, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// GetCard fetches one card with its current list membership
func (c *Client) GetCard(ctx context.Context, token, cardID string) (*Card, error) {
	var card Card
	params := url.Values{"fields": {"id,name,idList"}}
	if err := c.get(ctx, token, "/1/cards/"+url.PathEscape(cardID), params, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// CreateCard creates a card in the given list and returns the created
// card, including the list ID Trello placed it in.
func (c *Client) CreateCard(ctx context.Context, token, listID, name, desc string) (*Card, error) {
	params := url.Values{
		"idList": {listID},
		"name":   {name},
		"desc":   {desc},
	}

	endpoint := c.baseURL + "/1/cards?" + c.authParams(token, params).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("trello returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var card Card
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("failed to decode trello response: %w", err)
	}
	return &card, nil
}

func (c *Client) get(ctx context.Context, token, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + c.authParams(token, params).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("trello returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode trello response: %w", err)
	}
	return nil
}

func (c *Client) authParams(token string, params url.Values) url.Values {
	merged := url.Values{}
	for k, v := range params {
		merged[k] = v
	}
	merged.Set("key", c.apiKey)
	merged.Set("token", token)
	return merged
}
