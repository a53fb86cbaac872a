package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

const promptTemplate = `You are an assistant that analyzes meeting transcripts.
Analyze the following meeting transcript and return ONLY a JSON object with this exact structure:
{
  "summary": "A concise summary of the meeting",
  "decisions": ["decision 1", "decision 2"],
  "action_items": [
    {"task": "task description", "assignee": "person name", "due_date": "due date or empty string"}
  ]
}
Do not include any text outside the JSON object.

Transcript:
%s`

// BuildPrompt renders the analysis prompt for a transcript.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}

// ParseAnalysis decodes the model output into a structured analysis.
// Models routinely wrap JSON in markdown fences, so those are stripped
// before decoding.
func ParseAnalysis(raw string) (*entities.AnalysisResult, error) {
	jsonText := extractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("AI returned an empty response")
	}

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("failed to parse AI response as JSON: %w", err)
	}

	if strings.TrimSpace(result.Summary) == "" {
		return nil, fmt.Errorf("AI response is missing a summary")
	}

	result.Normalize()
	return &result, nil
}

// extractJSON strips markdown code fences around a JSON payload.
func extractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if i := strings.LastIndex(text, "```"); i >= 0 {
			text = text[:i]
		}
	}
	return strings.TrimSpace(text)
}

const (
	fallbackTask     = "Untitled task"
	fallbackAssignee = "Unassigned"
	fallbackDueDate  = "Not specified"
)

func orFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
