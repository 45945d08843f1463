package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL})
}

func TestSplitRepoSpec(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"valid", "golang/go", "golang", "go", false},
		{"valid with dots", "user.name/repo-name", "user.name", "repo-name", false},
		{"missing slash", "golang", "", "", true},
		{"empty owner", "/go", "", "", true},
		{"empty repo", "golang/", "", "", true},
		{"too many parts", "a/b/c", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := SplitRepoSpec(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitRepoSpec(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("SplitRepoSpec(%q) = (%q, %q), want (%q, %q)", tt.spec, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestGetFile(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte("package main\n"))

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.Header.Get("X-GitHub-Api-Version"); got != apiVersion {
			t.Errorf("X-GitHub-Api-Version = %q", got)
		}
		if got := r.URL.Path; got != "/repos/golang/go/contents/main.go" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("ref"); got != "master" {
			t.Errorf("ref = %q, want master", got)
		}
		fmt.Fprintf(w, `{
			"name": "main.go",
			"path": "main.go",
			"type": "file",
			"size": 13,
			"encoding": "base64",
			"content": %q,
			"html_url": "https://github.com/golang/go/blob/master/main.go"
		}`, content)
	})

	entry, err := client.GetFile(context.Background(), "golang", "go", "main.go", "master")
	if err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}

	raw, err := DecodeContent(entry)
	if err != nil {
		t.Fatalf("DecodeContent() error = %v", err)
	}
	if string(raw) != "package main\n" {
		t.Errorf("content = %q", raw)
	}
}

func TestGetFileDefaultBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ref"); got != "trunk" {
			t.Errorf("ref = %q, want trunk", got)
		}
		fmt.Fprint(w, `{"name": "f", "path": "f", "type": "file"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, DefaultBranch: "trunk"})
	if _, err := client.GetFile(context.Background(), "o", "r", "f", ""); err != nil {
		t.Fatalf("GetFile() error = %v", err)
	}
}

func TestGetFileNotAFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "src", "path": "src", "type": "dir"}`)
	})

	_, err := client.GetFile(context.Background(), "o", "r", "src", "main")
	if err == nil {
		t.Fatal("GetFile() error = nil, want error for directory")
	}
	if !strings.Contains(err.Error(), "not a file") {
		t.Errorf("error = %q, want mention of not a file", err)
	}
}

func TestListDir(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "main.go", "path": "main.go", "type": "file", "size": 120},
			{"name": "internal", "path": "internal", "type": "dir"}
		]`)
	})

	entries, err := client.ListDir(context.Background(), "o", "r", "", "main")
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q, want Bearer secret-token", got)
		}
		fmt.Fprint(w, `{"name": "r", "full_name": "o/r"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "secret-token"})
	if _, err := client.GetRepo(context.Background(), "o", "r"); err != nil {
		t.Fatalf("GetRepo() error = %v", err)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantMsg    string
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication failed"},
		{"not found", http.StatusNotFound, "not found"},
		{"forbidden", http.StatusForbidden, "rate limit exceeded or access forbidden"},
		{"server error", http.StatusBadGateway, "GitHub API error: 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			_, err := client.GetRepo(context.Background(), "o", "r")
			if err == nil {
				t.Fatal("GetRepo() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.wantMsg)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error has type %T, want *APIError", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestListWorkflowRuns(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/repos/o/r/actions/runs" {
			t.Errorf("path = %q", got)
		}
		if got := r.URL.Query().Get("branch"); got != "main" {
			t.Errorf("branch = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "5" {
			t.Errorf("per_page = %q", got)
		}
		fmt.Fprint(w, `{
			"total_count": 42,
			"workflow_runs": [
				{"id": 1, "name": "CI", "run_number": 100, "status": "completed", "conclusion": "success", "head_branch": "main"},
				{"id": 2, "name": "CI", "run_number": 101, "status": "in_progress", "head_branch": "main"}
			]
		}`)
	})

	runs, total, err := client.ListWorkflowRuns(context.Background(), "o", "r", "main", "", 5)
	if err != nil {
		t.Fatalf("ListWorkflowRuns() error = %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[1].Status != "in_progress" || runs[1].Conclusion != "" {
		t.Errorf("runs[1] = %+v", runs[1])
	}
}

func TestCreateGist(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var payload gistCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Files["notes.md"].Content != "# Notes" {
			t.Errorf("files = %+v", payload.Files)
		}

		// Echo the filenames back the way GitHub does.
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{
			"id": "abc123",
			"description": "test gist",
			"public": false,
			"html_url": "https://gist.github.com/abc123",
			"files": {
				"notes.md": {"filename": "notes.md", "size": 7},
				"main.go": {"filename": "main.go", "size": 13}
			}
		}`)
	})

	gist, err := client.CreateGist(context.Background(), "test gist", false, map[string]string{
		"notes.md": "# Notes",
		"main.go":  "package main\n",
	})
	if err != nil {
		t.Fatalf("CreateGist() error = %v", err)
	}

	// Provided filenames survive the round trip.
	for _, name := range []string{"notes.md", "main.go"} {
		file, ok := gist.Files[name]
		if !ok {
			t.Errorf("response missing file %q", name)
			continue
		}
		if file.Filename != name {
			t.Errorf("Filename = %q, want %q", file.Filename, name)
		}
	}
}

func TestCreateGistNoFiles(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.CreateGist(context.Background(), "empty", false, nil)
	if err == nil {
		t.Fatal("CreateGist() error = nil, want error for empty files")
	}
}

func TestDeleteGist(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q, want DELETE", r.Method)
		}
		if got := r.URL.Path; got != "/gists/abc123" {
			t.Errorf("path = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.DeleteGist(context.Background(), "abc123"); err != nil {
		t.Fatalf("DeleteGist() error = %v", err)
	}
}

func TestDecodeContent(t *testing.T) {
	t.Run("base64 with newlines", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("hello world"))
		entry := &ContentEntry{
			Encoding: "base64",
			Content:  encoded[:4] + "\n" + encoded[4:] + "\n",
		}

		raw, err := DecodeContent(entry)
		if err != nil {
			t.Fatalf("DecodeContent() error = %v", err)
		}
		if string(raw) != "hello world" {
			t.Errorf("content = %q", raw)
		}
	})

	t.Run("unsupported encoding", func(t *testing.T) {
		entry := &ContentEntry{Encoding: "utf-8", Content: "plain"}
		if _, err := DecodeContent(entry); err == nil {
			t.Error("DecodeContent() error = nil, want error")
		}
	})
}
