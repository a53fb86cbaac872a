package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-agent/pkg/config"
)

func TestGenerateContent_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "gemini-1.5-flash") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Fatalf("api key missing from query")
		}

		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if len(payload.Contents) != 1 || payload.Contents[0].Parts[0].Text != "hello" {
			t.Fatalf("unexpected prompt payload: %+v", payload)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "one "}, {"text": "two"}},
				}},
			},
		})
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key", BaseURL: ts.URL})

	text, err := client.GenerateContent(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateContent failed: %v", err)
	}
	if text != "one two" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestGenerateContent_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := NewGeminiClient(&config.GeminiConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.GenerateContent(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestGenerateContent_MissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	client := NewGeminiClient(&config.GeminiConfig{})
	if client.Configured() {
		t.Fatal("client should not report configured without a key")
	}
	if _, err := client.GenerateContent(context.Background(), "hello"); err == nil {
		t.Fatal("expected error without api key")
	}
}
