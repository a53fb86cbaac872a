package analysis

import (
	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
	usecase "github.com/johnquangdev/meeting-agent/internal/usecase/analysis"
)

// AnalyzeRequest carries the transcript and the automation selection.
// Board and list are only required when card creation is requested;
// that is checked by the fan-out, not by payload validation.
type AnalyzeRequest struct {
	Transcript string `json:"transcript" validate:"required"`

	SendEmail bool `json:"send_email"`

	CreateTrelloCards bool   `json:"create_trello_cards"`
	BoardID           string `json:"board_id"`
	ListID            string `json:"list_id"`

	NotifySlack bool `json:"notify_slack"`

	CreateJiraIssues bool   `json:"create_jira_issues"`
	JiraProjectKey   string `json:"jira_project_key"`
	JiraIssueType    string `json:"jira_issue_type"`
}

// Flags converts the request into the fan-out selection.
func (r *AnalyzeRequest) Flags() usecase.AutomationFlags {
	return usecase.AutomationFlags{
		SendEmail:    r.SendEmail,
		CreateCards:  r.CreateTrelloCards,
		BoardID:      r.BoardID,
		ListID:       r.ListID,
		NotifyChat:   r.NotifySlack,
		CreateIssues: r.CreateJiraIssues,
		ProjectKey:   r.JiraProjectKey,
		IssueType:    r.JiraIssueType,
	}
}

type AnalyzeResponse struct {
	Analysis     *entities.AnalysisResult `json:"analysis,omitempty"`
	Outcomes     []usecase.Outcome        `json:"outcomes"`
	Notification *usecase.Notification    `json:"notification,omitempty"`
}

type HistoryQuery struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}
