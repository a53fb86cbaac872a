package entities

// AnalysisResult represents the structured output of the transcript
// analysis. It is consumed by the fan-out immediately and never
// persisted on its own (the AutomationRun audit record keeps a JSON
// copy).
type AnalysisResult struct {
	Summary     string       `json:"summary"`
	Decisions   []string     `json:"decisions"`
	ActionItems []ActionItem `json:"action_items"`
}

// ActionItem is a task extracted from the transcript. All fields are
// free text from the model; DueDate is "Not specified" when no date
// was mentioned.
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	DueDate  string `json:"due_date"`
}

// Normalize ensures slices are non-nil so downstream consumers can
// range without nil checks.
func (r *AnalysisResult) Normalize() {
	if r.Decisions == nil {
		r.Decisions = make([]string, 0)
	}
	if r.ActionItems == nil {
		r.ActionItems = make([]ActionItem, 0)
	}
}
