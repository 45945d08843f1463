package github_tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/toolfetch/toolfetch/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("Failed to create server context: %v", err)
	}
	t.Cleanup(func() {
		_ = sc.Shutdown()
	})
	return sc
}

func newRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestRepoArg(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]interface{}
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"valid", map[string]interface{}{"repo": "golang/go"}, "golang", "go", false},
		{"missing", map[string]interface{}{}, "", "", true},
		{"empty", map[string]interface{}{"repo": ""}, "", "", true},
		{"no slash", map[string]interface{}{"repo": "golang"}, "", "", true},
		{"too many parts", map[string]interface{}{"repo": "a/b/c"}, "", "", true},
		{"empty owner", map[string]interface{}{"repo": "/go"}, "", "", true},
		{"empty repo", map[string]interface{}{"repo": "golang/"}, "", "", true},
		{"non-string", map[string]interface{}{"repo": 42}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, errResult := repoArg(tt.args)
			if (errResult != nil) != tt.wantErr {
				t.Fatalf("repoArg() errResult = %v, wantErr %v", errResult, tt.wantErr)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("repoArg() = (%q, %q), want (%q, %q)", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestHandleReadFileMissingPath(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleReadFile(context.Background(),
		newRequest("github_read_file", map[string]interface{}{"repo": "golang/go"}), sc)
	if err != nil {
		t.Fatalf("handleReadFile() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "path is required") {
		t.Errorf("result = %q", resultText(t, result))
	}
}

func TestHandleGetWorkflowRunMissingRunID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleGetWorkflowRun(context.Background(),
		newRequest("github_get_workflow_run", map[string]interface{}{"repo": "golang/go"}), sc)
	if err != nil {
		t.Fatalf("handleGetWorkflowRun() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "runId is required") {
		t.Errorf("result = %q", resultText(t, result))
	}
}

func TestGistToolsRequireToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	sc := newTestServerContext(t)

	result, err := handleListGists(context.Background(),
		newRequest("github_list_gists", map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handleListGists() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "GITHUB_TOKEN") {
		t.Errorf("result = %q", resultText(t, result))
	}

	result, err = handleDeleteGist(context.Background(),
		newRequest("github_delete_gist", map[string]interface{}{"gistId": "abc123"}), sc)
	if err != nil {
		t.Fatalf("handleDeleteGist() error = %v", err)
	}
	if !strings.Contains(resultText(t, result), "GITHUB_TOKEN") {
		t.Errorf("result = %q", resultText(t, result))
	}
}

func TestHandleCreateGistValidation(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")
	sc := newTestServerContext(t)

	tests := []struct {
		name        string
		args        map[string]interface{}
		errContains string
	}{
		{
			name:        "missing files",
			args:        map[string]interface{}{},
			errContains: "files is required",
		},
		{
			name:        "empty files",
			args:        map[string]interface{}{"files": map[string]interface{}{}},
			errContains: "files is required",
		},
		{
			name: "non-string content",
			args: map[string]interface{}{
				"files": map[string]interface{}{"a.txt": 42},
			},
			errContains: "must be a string",
		},
		{
			name: "empty filename",
			args: map[string]interface{}{
				"files": map[string]interface{}{"": "content"},
			},
			errContains: "filenames cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleCreateGist(context.Background(),
				newRequest("github_create_gist", tt.args), sc)
			if err != nil {
				t.Fatalf("handleCreateGist() error = %v", err)
			}
			if !result.IsError {
				t.Error("result.IsError = false, want true")
			}
			if !strings.Contains(resultText(t, result), tt.errContains) {
				t.Errorf("result = %q, want substring %q", resultText(t, result), tt.errContains)
			}
		})
	}
}

func TestHandleGetGistMissingID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleGetGist(context.Background(),
		newRequest("github_get_gist", map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handleGetGist() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "gistId is required") {
		t.Errorf("result = %q", resultText(t, result))
	}
}
