package entities

import (
	"time"

	"github.com/google/uuid"
)

// TrelloCredential is a per-user link to a Trello account.
// The application-level API key pair lives in config; only the user
// token and display name are stored here.
type TrelloCredential struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Token          string    `json:"-" gorm:"type:varchar(200);not null"` // Never expose in JSON
	TrelloUsername string    `json:"trello_username,omitempty" gorm:"type:varchar(100)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for TrelloCredential
func (TrelloCredential) TableName() string {
	return "trello_credentials"
}

// NewTrelloCredential creates a credential for the given user
func NewTrelloCredential(userID uuid.UUID, token, trelloUsername string) *TrelloCredential {
	return &TrelloCredential{
		ID:             uuid.New(),
		UserID:         userID,
		Token:          token,
		TrelloUsername: trelloUsername,
	}
}

// JiraCredential is a per-user link to a Jira server.
type JiraCredential struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	BaseURL   string    `json:"base_url" gorm:"type:varchar(500);not null"`
	Username  string    `json:"username" gorm:"type:varchar(255);not null"`
	APIToken  string    `json:"-" gorm:"type:varchar(500);not null"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for JiraCredential
func (JiraCredential) TableName() string {
	return "jira_credentials"
}

// NewJiraCredential creates a credential for the given user
func NewJiraCredential(userID uuid.UUID, baseURL, username, apiToken string) *JiraCredential {
	return &JiraCredential{
		ID:       uuid.New(),
		UserID:   userID,
		BaseURL:  baseURL,
		Username: username,
		APIToken: apiToken,
	}
}
