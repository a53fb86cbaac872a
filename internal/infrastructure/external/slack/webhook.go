package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

// Notifier posts meeting summaries to a Slack incoming webhook. The
// webhook URL is per team and passed per call. Slack answers a plain
// "ok" body on success; anything else is a failure.
type Notifier struct {
	client *http.Client
}

// NewNotifier creates a webhook notifier
func NewNotifier() *Notifier {
	return &Notifier{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type block struct {
	Type string     `json:"type"`
	Text *blockText `json:"text,omitempty"`
}

type blockText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type message struct {
	Blocks []block `json:"blocks"`
}

// PostSummary sends the analysis as a block-structured message
func (n *Notifier) PostSummary(ctx context.Context, webhookURL string, analysis *entities.AnalysisResult) error {
	payload := message{Blocks: buildBlocks(analysis)}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode >= 400 || strings.TrimSpace(string(body)) != "ok" {
		return fmt.Errorf("slack webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func buildBlocks(analysis *entities.AnalysisResult) []block {
	blocks := []block{
		{Type: "header", Text: &blockText{Type: "plain_text", Text: "Meeting Summary"}},
		{Type: "section", Text: &blockText{Type: "mrkdwn", Text: analysis.Summary}},
	}

	if len(analysis.Decisions) > 0 {
		var sb strings.Builder
		sb.WriteString("*Key Decisions*\n")
		for _, d := range analysis.Decisions {
			sb.WriteString("• " + d + "\n")
		}
		blocks = append(blocks, block{Type: "section", Text: &blockText{Type: "mrkdwn", Text: sb.String()}})
	}

	if len(analysis.ActionItems) > 0 {
		var sb strings.Builder
		sb.WriteString("*Action Items*\n")
		for _, item := range analysis.ActionItems {
			sb.WriteString(fmt.Sprintf("• *%s* | %s | due %s\n", item.Task, item.Assignee, item.DueDate))
		}
		blocks = append(blocks, block{Type: "section", Text: &blockText{Type: "mrkdwn", Text: sb.String()}})
	}

	return blocks
}
