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

// RegisterActionsTools registers GitHub Actions workflow run tools
func RegisterActionsTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listRunsTool := mcp.NewTool("github_list_workflow_runs",
		mcp.WithDescription("List recent GitHub Actions workflow runs for a repository"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/repo' form"),
		),
		mcp.WithString("branch",
			mcp.Description("Filter runs by branch"),
		),
		mcp.WithString("status",
			mcp.Description("Filter runs by status (e.g., 'completed', 'in_progress', 'queued')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to return, 1-50 (default: 10)"),
		),
	)

	s.AddTool(listRunsTool, common.InstrumentedToolHandlerWithService(
		"github_list_workflow_runs", "github", "list_workflow_runs", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListWorkflowRuns(ctx, request, sc)
		}))

	getRunTool := mcp.NewTool("github_get_workflow_run",
		mcp.WithDescription("Get details of a single GitHub Actions workflow run"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/repo' form"),
		),
		mcp.WithNumber("runId",
			mcp.Required(),
			mcp.Description("Workflow run ID"),
		),
	)

	s.AddTool(getRunTool, common.InstrumentedToolHandlerWithService(
		"github_get_workflow_run", "github", "get_workflow_run", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetWorkflowRun(ctx, request, sc)
		}))

	return nil
}

func handleListWorkflowRuns(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	owner, repo, errResult := repoArg(args)
	if errResult != nil {
		return errResult, nil
	}

	branch := common.StringArg(args, "branch", "")
	status := common.StringArg(args, "status", "")
	limit := common.ClampInt(common.IntArg(args, "limit", 10), 1, 50)

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching workflow runs for %s/%s", owner, repo))

	runs, total, err := client.ListWorkflowRuns(ctx, owner, repo, branch, status, limit)
	if err != nil {
		emitter.Error(ctx, "Failed to fetch workflow runs")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch workflow runs: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched %d of %d workflow runs", len(runs), total))
	return mcp.NewToolResultText(github.FormatWorkflowRuns(owner+"/"+repo, runs, total)), nil
}

func handleGetWorkflowRun(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	owner, repo, errResult := repoArg(args)
	if errResult != nil {
		return errResult, nil
	}

	runID := common.IntArg(args, "runId", 0)
	if runID <= 0 {
		return mcp.NewToolResultError("runId is required"), nil
	}

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching workflow run %d", runID))

	run, err := client.GetWorkflowRun(ctx, owner, repo, int64(runID))
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch workflow run %d", runID))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch workflow run: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched workflow run %d", runID))
	return mcp.NewToolResultText(github.FormatWorkflowRun(owner+"/"+repo, run)), nil
}
