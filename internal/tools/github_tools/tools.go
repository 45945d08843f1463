package github_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/server"
)

// RegisterGitHubTools registers all GitHub-related tools with the MCP server
func RegisterGitHubTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register content tools (read-only)
	if err := RegisterContentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register content tools: %w", err)
	}

	// Register workflow tools (read-only)
	if err := RegisterActionsTools(s, sc); err != nil {
		return fmt.Errorf("failed to register actions tools: %w", err)
	}

	// Register gist tools (write operations require !readOnly)
	if err := RegisterGistTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register gist tools: %w", err)
	}

	return nil
}
