package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Team groups users that share a chat webhook and a summary mail
// recipient list.
type Team struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name    string    `json:"name" gorm:"type:varchar(100);not null"`
	OwnerID uuid.UUID `json:"owner_id" gorm:"type:uuid;not null"`

	// Chat integration; nil until a webhook is configured
	WebhookURL *string `json:"webhook_url,omitempty" gorm:"type:varchar(500)"`

	// Notification preferences (stored as JSONB in PostgreSQL)
	NotifySettings datatypes.JSON `json:"notify_settings" gorm:"type:jsonb;default:'{}'"`

	Members []User `json:"members,omitempty" gorm:"foreignKey:TeamID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewTeam creates a team owned by the given user
func NewTeam(name string, ownerID uuid.UUID) *Team {
	settings, _ := json.Marshal(map[string]interface{}{
		"email_summary": true,
		"chat_summary":  true,
	})

	return &Team{
		ID:             uuid.New(),
		Name:           name,
		OwnerID:        ownerID,
		NotifySettings: settings,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

// HasWebhook reports whether the team has a chat webhook configured
func (t *Team) HasWebhook() bool {
	return t.WebhookURL != nil && *t.WebhookURL != ""
}

// MemberEmails returns the email addresses of all team members
func (t *Team) MemberEmails() []string {
	emails := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		if m.Email != "" {
			emails = append(emails, m.Email)
		}
	}
	return emails
}
