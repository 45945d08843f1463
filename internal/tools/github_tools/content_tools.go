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

// RegisterContentTools registers repository content and metadata tools
func RegisterContentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	readFileTool := mcp.NewTool("github_read_file",
		mcp.WithDescription("Read a file from a GitHub repository, rendered as markdown with optional line numbers and syntax fencing"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/repo' form (e.g., 'golang/go')"),
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path inside the repository"),
		),
		mcp.WithString("ref",
			mcp.Description("Branch, tag or commit SHA (default: configured default branch)"),
		),
		mcp.WithBoolean("showLineNumbers",
			mcp.Description("Prefix each line with its number (default: true)"),
		),
		mcp.WithBoolean("syntaxHighlighting",
			mcp.Description("Fence content with a detected language for syntax highlighting (default: true)"),
		),
	)

	s.AddTool(readFileTool, common.InstrumentedToolHandlerWithService(
		"github_read_file", "github", "read_file", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadFile(ctx, request, sc)
		}))

	listDirTool := mcp.NewTool("github_list_directory",
		mcp.WithDescription("List a directory of a GitHub repository, directories first, then files, name-sorted with sizes"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/repo' form"),
		),
		mcp.WithString("path",
			mcp.Description("Directory path (default: repository root)"),
		),
		mcp.WithString("ref",
			mcp.Description("Branch, tag or commit SHA (default: configured default branch)"),
		),
	)

	s.AddTool(listDirTool, common.InstrumentedToolHandlerWithService(
		"github_list_directory", "github", "list_directory", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDirectory(ctx, request, sc)
		}))

	repoInfoTool := mcp.NewTool("github_repo_info",
		mcp.WithDescription("Get repository details including language breakdown by byte share"),
		mcp.WithString("repo",
			mcp.Required(),
			mcp.Description("Repository in 'owner/repo' form"),
		),
	)

	s.AddTool(repoInfoTool, common.InstrumentedToolHandlerWithService(
		"github_repo_info", "github", "repo_info", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleRepoInfo(ctx, request, sc)
		}))

	return nil
}

// repoArg parses the required "repo" argument into owner and repo.
func repoArg(args map[string]interface{}) (owner, repo string, errResult *mcp.CallToolResult) {
	spec, ok := args["repo"].(string)
	if !ok || spec == "" {
		return "", "", mcp.NewToolResultError("repo is required")
	}
	owner, repo, err := github.SplitRepoSpec(spec)
	if err != nil {
		return "", "", mcp.NewToolResultError(err.Error())
	}
	return owner, repo, nil
}

func handleReadFile(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	owner, repo, errResult := repoArg(args)
	if errResult != nil {
		return errResult, nil
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	cfg := sc.GitHubConfig()
	ref := common.StringArg(args, "ref", cfg.DefaultBranch)

	prefs := github.DefaultFilePrefs()
	prefs.ShowLineNumbers = common.BoolArg(args, "showLineNumbers", prefs.ShowLineNumbers)
	prefs.SyntaxHighlighting = common.BoolArg(args, "syntaxHighlighting", prefs.SyntaxHighlighting)

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching %s from %s/%s", path, owner, repo))

	entry, err := client.GetFile(ctx, owner, repo, path, ref)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch %s", path))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch file: %v", err)), nil
	}

	if entry.Size > cfg.MaxFileSize {
		emitter.Error(ctx, fmt.Sprintf("File %s is too large", path))
		return mcp.NewToolResultError(fmt.Sprintf(
			"File is too large (%s, limit %s)",
			github.FormatSize(entry.Size), github.FormatSize(cfg.MaxFileSize))), nil
	}

	raw, err := github.DecodeContent(entry)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to decode %s", path))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to decode file content: %v", err)), nil
	}

	repoSpec := owner + "/" + repo
	formatted := github.FormatFileContent(repoSpec, ref, entry, raw, prefs)

	emitter.Success(ctx, fmt.Sprintf("Fetched %s (%s)", path, github.FormatSize(entry.Size)))
	emitter.Cite(ctx, events.Citation{
		Document: []string{string(raw)},
		Metadata: []map[string]any{{
			"source": entry.HTMLURL,
			"repo":   repoSpec,
			"path":   entry.Path,
			"ref":    ref,
		}},
		Source: events.Source{
			Name: fmt.Sprintf("%s: %s", repoSpec, entry.Path),
			URL:  entry.HTMLURL,
		},
	})

	return mcp.NewToolResultText(formatted), nil
}

func handleListDirectory(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	owner, repo, errResult := repoArg(args)
	if errResult != nil {
		return errResult, nil
	}

	cfg := sc.GitHubConfig()
	path := common.StringArg(args, "path", "")
	ref := common.StringArg(args, "ref", cfg.DefaultBranch)

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Listing %s/%s:%s", owner, repo, path))

	entries, err := client.ListDir(ctx, owner, repo, path, ref)
	if err != nil {
		emitter.Error(ctx, "Failed to list directory")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list directory: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Listed %d entries", len(entries)))
	return mcp.NewToolResultText(github.FormatDirListing(owner+"/"+repo, path, ref, entries)), nil
}

func handleRepoInfo(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	owner, repo, errResult := repoArg(args)
	if errResult != nil {
		return errResult, nil
	}

	client := sc.GitHubClient()
	emitter := events.FromContext(ctx, sc.GitHubConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching repository info for %s/%s", owner, repo))

	info, err := client.GetRepo(ctx, owner, repo)
	if err != nil {
		emitter.Error(ctx, "Failed to fetch repository info")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch repository info: %v", err)), nil
	}

	langs, err := client.Languages(ctx, owner, repo)
	if err != nil {
		emitter.Error(ctx, "Failed to fetch repository languages")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch repository languages: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched repository info for %s/%s", owner, repo))
	return mcp.NewToolResultText(github.FormatRepoInfo(info, langs)), nil
}
