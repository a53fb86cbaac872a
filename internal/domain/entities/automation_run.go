package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AutomationRun is the audit record of one analysis request: the
// extracted result and the typed outcome of every integration that was
// attempted, stored as JSONB.
type AutomationRun struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	Analysis datatypes.JSON `json:"analysis" gorm:"type:jsonb"`
	Outcomes datatypes.JSON `json:"outcomes" gorm:"type:jsonb"`

	NotificationType string `json:"notification_type" gorm:"type:varchar(20)"`
	Message          string `json:"message" gorm:"type:text"`

	// Object key of the archived transcript, empty when archiving is
	// disabled or failed.
	TranscriptObject string `json:"transcript_object,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for AutomationRun
func (AutomationRun) TableName() string {
	return "automation_runs"
}
