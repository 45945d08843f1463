package github_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/events"
	"github.com/toolfetch/toolfetch/internal/github"
	"github.com/toolfetch/toolfetch/internal/server"
	"github.com/toolfetch/toolfetch/internal/tools/common"
)

// RegisterGistTools registers gist tools. Create and delete are write
// operations and are skipped in read-only mode.
func RegisterGistTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listGistsTool := mcp.NewTool("github_list_gists",
		mcp.WithDescription("List gists of the authenticated user"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of gists to return, 1-100 (default: 30)"),
		),
	)

	s.AddTool(listGistsTool, common.InstrumentedToolHandlerWithService(
		"github_list_gists", "github", "list_gists", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListGists(ctx, request, sc)
		}))

	getGistTool := mcp.NewTool("github_get_gist",
		mcp.WithDescription("Get a gist by ID with its file contents rendered as fenced code blocks"),
		mcp.WithString("gistId",
			mcp.Required(),
			mcp.Description("Gist ID"),
		),
	)

	s.AddTool(getGistTool, common.InstrumentedToolHandlerWithService(
		"github_get_gist", "github", "get_gist", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetGist(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createGistTool := mcp.NewTool("github_create_gist",
		mcp.WithDescription("Create a gist from a filename-to-content mapping"),
		mcp.WithObject("files",
			mcp.Required(),
			mcp.Description("Object mapping filenames to file contents, e.g. {\"notes.md\": \"# Notes\"}"),
		),
		mcp.WithString("description",
			mcp.Description("Gist description"),
		),
		mcp.WithBoolean("public",
			mcp.Description("Create a public gist (default: false, secret)"),
		),
	)

	s.AddTool(createGistTool, common.InstrumentedToolHandlerWithService(
		"github_create_gist", "github", "create_gist", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateGist(ctx, request, sc)
		}))

	deleteGistTool := mcp.NewTool("github_delete_gist",
		mcp.WithDescription("Delete a gist by ID"),
		mcp.WithString("gistId",
			mcp.Required(),
			mcp.Description("Gist ID"),
		),
	)

	s.AddTool(deleteGistTool, common.InstrumentedToolHandlerWithService(
		"github_delete_gist", "github", "delete_gist", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteGist(ctx, request, sc)
		}))

	return nil
}

// requireToken short-circuits gist operations that need authentication.
func requireToken(sc *server.ServerContext) *mcp.CallToolResult {
	if sc.GitHubConfig().Token == "" {
		return mcp.NewToolResultError("GitHub is not configured for gist access: set GITHUB_TOKEN")
	}
	return nil
}

func handleListGists(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	if errResult := requireToken(sc); errResult != nil {
		return errResult, nil
	}

	limit := common.ClampInt(common.IntArg(args, "limit", 30), 1, 100)

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, "Fetching gists")

	gists, err := client.ListGists(ctx, limit)
	if err != nil {
		emitter.Error(ctx, "Failed to fetch gists")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch gists: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched %d gists", len(gists)))
	return mcp.NewToolResultText(github.FormatGistList(gists)), nil
}

func handleGetGist(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	gistID, ok := args["gistId"].(string)
	if !ok || gistID == "" {
		return mcp.NewToolResultError("gistId is required"), nil
	}

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching gist %s", gistID))

	gist, err := client.GetGist(ctx, gistID)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch gist %s", gistID))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch gist: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched gist %s", gistID))
	return mcp.NewToolResultText(github.FormatGist(gist)), nil
}

func handleCreateGist(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	if errResult := requireToken(sc); errResult != nil {
		return errResult, nil
	}

	rawFiles, ok := args["files"].(map[string]interface{})
	if !ok || len(rawFiles) == 0 {
		return mcp.NewToolResultError("files is required and must map filenames to contents"), nil
	}

	files := make(map[string]string, len(rawFiles))
	for name, content := range rawFiles {
		text, ok := content.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("files[%q] must be a string", name)), nil
		}
		if name == "" {
			return mcp.NewToolResultError("filenames cannot be empty"), nil
		}
		files[name] = text
	}

	description := common.StringArg(args, "description", "")
	public := common.BoolArg(args, "public", false)

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Creating gist with %d files", len(files)))

	gist, err := client.CreateGist(ctx, description, public, files)
	if err != nil {
		emitter.Error(ctx, "Failed to create gist")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create gist: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Created gist %s", gist.ID))
	return mcp.NewToolResultText(github.FormatCreatedGist(gist)), nil
}

func handleDeleteGist(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	if errResult := requireToken(sc); errResult != nil {
		return errResult, nil
	}

	gistID, ok := args["gistId"].(string)
	if !ok || gistID == "" {
		return mcp.NewToolResultError("gistId is required"), nil
	}

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Deleting gist %s", gistID))

	if err := client.DeleteGist(ctx, gistID); err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to delete gist %s", gistID))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete gist: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Deleted gist %s", gistID))
	return mcp.NewToolResultText(github.FormatGistDeleted(gistID)), nil
}
