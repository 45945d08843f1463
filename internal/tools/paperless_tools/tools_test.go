package paperless_tools

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

func TestHandleSearchMissingQuery(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleSearch(context.Background(),
		newRequest("paperless_search", map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handleSearch() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "query is required") {
		t.Errorf("result = %q", resultText(t, result))
	}
}

func TestHandleSearchUnconfigured(t *testing.T) {
	t.Setenv("PAPERLESS_URL", "")
	t.Setenv("PAPERLESS_TOKEN", "")
	sc := newTestServerContext(t)

	result, err := handleSearch(context.Background(),
		newRequest("paperless_search", map[string]interface{}{"query": "invoice"}), sc)
	if err != nil {
		t.Fatalf("handleSearch() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "PAPERLESS_URL") {
		t.Errorf("result = %q", resultText(t, result))
	}
}

func TestHandleGetDocumentMissingID(t *testing.T) {
	sc := newTestServerContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"no id", map[string]interface{}{}},
		{"zero id", map[string]interface{}{"documentId": float64(0)}},
		{"negative id", map[string]interface{}{"documentId": float64(-3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleGetDocument(context.Background(),
				newRequest("paperless_get_document", tt.args), sc)
			if err != nil {
				t.Fatalf("handleGetDocument() error = %v", err)
			}
			if !result.IsError {
				t.Error("result.IsError = false, want true")
			}
			if !strings.Contains(resultText(t, result), "documentId is required") {
				t.Errorf("result = %q", resultText(t, result))
			}
		})
	}
}

func TestHandleSearchByTagsMissingTags(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleSearchByTags(context.Background(),
		newRequest("paperless_search_by_tags", map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handleSearchByTags() error = %v", err)
	}
	if !result.IsError {
		t.Error("result.IsError = false, want true")
	}
	if !strings.Contains(resultText(t, result), "tags is required") {
		t.Errorf("result = %q", resultText(t, result))
	}
}

func TestDocumentURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		id      int64
		want    string
	}{
		{"plain", "https://paperless.example.com", 42, "https://paperless.example.com/documents/42/"},
		{"trailing slash", "https://paperless.example.com/", 7, "https://paperless.example.com/documents/7/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentURL(tt.baseURL, tt.id); got != tt.want {
				t.Errorf("documentURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLimitArgClamped(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
		def  int
		want int
	}{
		{"default", map[string]interface{}{}, 10, 10},
		{"explicit", map[string]interface{}{"limit": float64(25)}, 10, 25},
		{"over cap", map[string]interface{}{"limit": float64(500)}, 10, 100},
		{"under floor", map[string]interface{}{"limit": float64(0)}, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := limitArg(tt.args, tt.def); got != tt.want {
				t.Errorf("limitArg() = %d, want %d", got, tt.want)
			}
		})
	}
}
