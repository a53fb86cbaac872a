package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-agent/internal/domain/entities"
)

func sampleAnalysis() *entities.AnalysisResult {
	return &entities.AnalysisResult{
		Summary:   "Discussed the release plan.",
		Decisions: []string{"Ship on Friday"},
		ActionItems: []entities.ActionItem{
			{Task: "Fix login", Assignee: "Ana", DueDate: "2026-09-04"},
		},
	}
}

func TestPostSummary_Success(t *testing.T) {
	var received message
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	n := NewNotifier()
	if err := n.PostSummary(context.Background(), ts.URL, sampleAnalysis()); err != nil {
		t.Fatalf("PostSummary failed: %v", err)
	}

	if len(received.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(received.Blocks))
	}
	if received.Blocks[0].Type != "header" {
		t.Fatalf("first block should be a header, got %s", received.Blocks[0].Type)
	}
	if !strings.Contains(received.Blocks[3].Text.Text, "Fix login") {
		t.Fatalf("action items block missing task: %q", received.Blocks[3].Text.Text)
	}
}

func TestPostSummary_NonOKBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 but not the literal "ok" body Slack sends on success
		w.Write([]byte("invalid_payload"))
	}))
	defer ts.Close()

	n := NewNotifier()
	if err := n.PostSummary(context.Background(), ts.URL, sampleAnalysis()); err == nil {
		t.Fatal("expected error for non-ok body")
	}
}

func TestPostSummary_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("no_service"))
	}))
	defer ts.Close()

	n := NewNotifier()
	if err := n.PostSummary(context.Background(), ts.URL, sampleAnalysis()); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestBuildBlocks_OmitsEmptySections(t *testing.T) {
	blocks := buildBlocks(&entities.AnalysisResult{Summary: "Short sync."})
	if len(blocks) != 2 {
		t.Fatalf("expected only header and summary blocks, got %d", len(blocks))
	}
}
