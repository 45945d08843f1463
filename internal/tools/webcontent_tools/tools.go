package webcontent_tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/events"
	"github.com/toolfetch/toolfetch/internal/instrumentation"
	"github.com/toolfetch/toolfetch/internal/logging"
	"github.com/toolfetch/toolfetch/internal/server"
	"github.com/toolfetch/toolfetch/internal/tools/batch"
	"github.com/toolfetch/toolfetch/internal/tools/common"
	"github.com/toolfetch/toolfetch/internal/webcontent"
)

// RegisterWebContentTools registers the web page fetch and extraction tools
// with the MCP server
func RegisterWebContentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	fetchTool := mcp.NewTool("web_fetch",
		mcp.WithDescription("Fetch a web page and extract its main content as markdown"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Absolute http(s) URL of the page to fetch"),
		),
		mcp.WithString("method",
			mcp.Description("Extraction method: auto, trafilatura, readability or basic (default: auto)"),
		),
		mcp.WithBoolean("includeLinks",
			mcp.Description("Keep markdown links and images in the extracted content (default: true)"),
		),
		mcp.WithBoolean("showMetadata",
			mcp.Description("Prepend a metadata header with title, source, author and date (default: true)"),
		),
	)

	s.AddTool(fetchTool, common.InstrumentedToolHandlerWithService(
		"web_fetch", "webcontent", "fetch", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFetch(ctx, request, sc)
		}))

	fetchMultipleTool := mcp.NewTool("web_fetch_multiple",
		mcp.WithDescription("Fetch several web pages sequentially and extract each as markdown, reported per URL"),
		mcp.WithString("urls",
			mcp.Required(),
			mcp.Description("URL (string) or array of URLs to fetch"),
		),
		mcp.WithString("method",
			mcp.Description("Extraction method: auto, trafilatura, readability or basic (default: auto)"),
		),
		mcp.WithBoolean("includeLinks",
			mcp.Description("Keep markdown links and images in the extracted content (default: true)"),
		),
		mcp.WithBoolean("showMetadata",
			mcp.Description("Prepend a metadata header per page (default: true)"),
		),
	)

	s.AddTool(fetchMultipleTool, common.InstrumentedToolHandlerWithService(
		"web_fetch_multiple", "webcontent", "fetch_multiple", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFetchMultiple(ctx, request, sc)
		}))

	return nil
}

// fetchPage runs the fetch and extraction pipeline for one URL.
func fetchPage(ctx context.Context, sc *server.ServerContext, rawURL, method string, includeLinks, showMetadata bool) (string, *webcontent.Result, error) {
	html, parsed, err := sc.Fetcher().Fetch(ctx, rawURL)
	if err != nil {
		return "", nil, err
	}

	result, err := sc.Extractor().Extract(html, parsed, method, includeLinks)
	if metrics := sc.Metrics(); metrics != nil {
		if err != nil {
			metrics.RecordExtractionAttempt(ctx, method, instrumentation.StatusError)
		} else {
			metrics.RecordExtractionAttempt(ctx, result.Strategy, instrumentation.StatusSuccess)
		}
	}
	if err != nil {
		return "", nil, err
	}

	slog.Debug("extracted page content", logging.URL(rawURL), logging.Strategy(result.Strategy))
	return webcontent.FormatPage(result, rawURL, showMetadata), result, nil
}

func handleFetch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	rawURL, ok := args["url"].(string)
	if !ok || rawURL == "" {
		return mcp.NewToolResultError("url is required"), nil
	}
	if _, err := webcontent.ValidateURL(rawURL); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	method := common.StringArg(args, "method", webcontent.MethodAuto)
	includeLinks := common.BoolArg(args, "includeLinks", true)
	showMetadata := common.BoolArg(args, "showMetadata", true)

	cfg := sc.WebConfig()
	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching %s", rawURL))

	page, result, err := fetchPage(ctx, sc, rawURL, method, includeLinks, showMetadata)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch %s", rawURL))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch page: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Extracted content from %s", rawURL))
	emitter.Cite(ctx, events.Citation{
		Document: []string{result.Content},
		Metadata: []map[string]any{{
			"source":   rawURL,
			"title":    result.Metadata.Title,
			"author":   result.Metadata.Author,
			"date":     result.Metadata.Date,
			"strategy": result.Strategy,
		}},
		Source: events.Source{
			Name: citationName(result.Metadata.Title, rawURL),
			URL:  rawURL,
		},
	})

	return mcp.NewToolResultText(page), nil
}

func handleFetchMultiple(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	urls, err := batch.ParseStringOrArray(args["urls"], "urls")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, rawURL := range urls {
		if _, err := webcontent.ValidateURL(rawURL); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	method := common.StringArg(args, "method", webcontent.MethodAuto)
	includeLinks := common.BoolArg(args, "includeLinks", true)
	showMetadata := common.BoolArg(args, "showMetadata", true)

	cfg := sc.WebConfig()
	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)

	current := 0
	results := batch.ProcessBatch(urls, func(rawURL string) (string, error) {
		current++
		emitter.Progress(ctx, fmt.Sprintf("Fetching %s (%d of %d)", rawURL, current, len(urls)))

		page, result, err := fetchPage(ctx, sc, rawURL, method, includeLinks, showMetadata)
		if err != nil {
			return "", err
		}

		emitter.Cite(ctx, events.Citation{
			Document: []string{result.Content},
			Metadata: []map[string]any{{
				"source":   rawURL,
				"title":    result.Metadata.Title,
				"strategy": result.Strategy,
			}},
			Source: events.Source{
				Name: citationName(result.Metadata.Title, rawURL),
				URL:  rawURL,
			},
		})

		return page, nil
	})

	emitter.Success(ctx, fmt.Sprintf("Fetched %d pages", len(urls)))
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func citationName(title, rawURL string) string {
	if title != "" {
		return title
	}
	return rawURL
}
