package team

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

type CreateRequest struct {
	Name string `json:"name" validate:"required,min=2,max=150"`
}

type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type WebhookRequest struct {
	// Empty clears the webhook.
	WebhookURL string `json:"webhook_url" validate:"omitempty,url"`
}

type Response struct {
	ID         uuid.UUID              `json:"id"`
	Name       string                 `json:"name"`
	OwnerID    uuid.UUID              `json:"owner_id"`
	HasWebhook bool                   `json:"has_webhook"`
	Members    []*entities.PublicUser `json:"members,omitempty"`
}

// FromEntity builds the API view of a team.
func FromEntity(t *entities.Team) *Response {
	resp := &Response{
		ID:         t.ID,
		Name:       t.Name,
		OwnerID:    t.OwnerID,
		HasWebhook: t.HasWebhook(),
	}
	for i := range t.Members {
		resp.Members = append(resp.Members, t.Members[i].ToPublic())
	}
	return resp
}
