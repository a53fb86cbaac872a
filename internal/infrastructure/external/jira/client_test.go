package jira

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateIssue_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/2/issue" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "ana@example.com" || pass != "api-token" {
			t.Fatal("basic auth not forwarded")
		}

		var payload createIssueRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Fields.Project["key"] != "MEET" || payload.Fields.IssueType["name"] != "Task" {
			t.Fatalf("unexpected fields %+v", payload.Fields)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreatedIssue{ID: "10001", Key: "MEET-1"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "ana@example.com", "api-token")

	issue, err := client.CreateIssue(context.Background(), "MEET", "Task", "Fix login", "Assignee: Ana")
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}
	if issue.Key != "MEET-1" {
		t.Fatalf("unexpected issue %+v", issue)
	}
}

func TestCreateIssue_RejectedCarriesStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":{"summary":"required"}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "ana@example.com", "api-token")

	_, err := client.CreateIssue(context.Background(), "MEET", "Task", "", "")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", apiErr.StatusCode)
	}
}

func TestProjects_Probe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/project" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]Project{{ID: "1", Key: "MEET", Name: "Meetings"}})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "ana@example.com", "api-token")

	projects, err := client.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Key != "MEET" {
		t.Fatalf("unexpected projects %+v", projects)
	}
}
