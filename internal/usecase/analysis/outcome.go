package analysis

import "strings"

// Integration identifies a downstream automation target.
type Integration string

const (
	IntegrationEmail        Integration = "email"
	IntegrationTaskBoard    Integration = "task_board"
	IntegrationChat         Integration = "chat"
	IntegrationIssueTracker Integration = "issue_tracker"
)

// OutcomeCode classifies the result of a single integration dispatch.
// Classification is done by code, never by inspecting the message text.
type OutcomeCode string

const (
	OutcomeOK               OutcomeCode = "ok"
	OutcomePartial          OutcomeCode = "partial"
	OutcomeFailed           OutcomeCode = "failed"
	OutcomeNotConnected     OutcomeCode = "not_connected"
	OutcomeNotConfigured    OutcomeCode = "not_configured"
	OutcomeTeamRequired     OutcomeCode = "team_required"
	OutcomeMissingParameter OutcomeCode = "missing_parameter"
)

// Outcome is the typed result of one integration dispatch.
type Outcome struct {
	Integration Integration `json:"integration"`
	Code        OutcomeCode `json:"code"`
	Message     string      `json:"message"`
}

// OK reports whether the dispatch fully succeeded.
func (o Outcome) OK() bool {
	return o.Code == OutcomeOK
}

const (
	NotificationSuccess = "success"
	NotificationFailure = "failure"
)

// Notification is the aggregate message shown to the user after a run.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Aggregate folds the per-integration outcomes into a single
// notification. No outcomes means no automation was requested and no
// notification is produced. Any non-OK outcome makes the whole run a
// failure.
func Aggregate(outcomes []Outcome) *Notification {
	if len(outcomes) == 0 {
		return nil
	}

	parts := make([]string, 0, len(outcomes))
	typ := NotificationSuccess
	for _, o := range outcomes {
		parts = append(parts, o.Message)
		if !o.OK() {
			typ = NotificationFailure
		}
	}

	return &Notification{
		Type:    typ,
		Message: strings.Join(parts, " | "),
	}
}
