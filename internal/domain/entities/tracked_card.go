package entities

import (
	"time"

	"github.com/google/uuid"
)

// TrackedCard is the local record of a Trello card created by the
// automation fan-out. ListID is the list the card was created in; the
// poll worker compares the card's current list against it and never
// rewrites it, so drift is always reported against the creation-time
// baseline.
type TrackedCard struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CardID string    `json:"card_id" gorm:"type:varchar(100);uniqueIndex;not null"` // ID assigned by Trello
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	BoardID string   `json:"board_id" gorm:"type:varchar(100);not null"`
	ListID  string   `json:"list_id" gorm:"type:varchar(100);not null"`

	Title    string `json:"title" gorm:"type:text;not null"`
	Assignee string `json:"assignee,omitempty" gorm:"type:varchar(150)"`
	DueDate  string `json:"due_date,omitempty" gorm:"type:varchar(100)"` // free text from the AI

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for TrackedCard
func (TrackedCard) TableName() string {
	return "tracked_cards"
}

// NewTrackedCard records a card created on the board
func NewTrackedCard(cardID string, userID uuid.UUID, boardID, listID, title, assignee, dueDate string) *TrackedCard {
	return &TrackedCard{
		ID:       uuid.New(),
		CardID:   cardID,
		UserID:   userID,
		BoardID:  boardID,
		ListID:   listID,
		Title:    title,
		Assignee: assignee,
		DueDate:  dueDate,
	}
}
