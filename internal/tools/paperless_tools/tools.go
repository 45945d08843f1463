package paperless_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/events"
	"github.com/toolfetch/toolfetch/internal/paperless"
	"github.com/toolfetch/toolfetch/internal/server"
	"github.com/toolfetch/toolfetch/internal/tools/batch"
	"github.com/toolfetch/toolfetch/internal/tools/common"
)

// RegisterPaperlessTools registers all Paperless-ngx document tools with the
// MCP server
func RegisterPaperlessTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("paperless_search",
		mcp.WithDescription("Full-text search of Paperless documents with relevance scores and highlights"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Full-text search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return, 1-100 (default: configured page size)"),
		),
		mcp.WithBoolean("includeContent",
			mcp.Description("Include full document content, truncated to the configured size cap (default: false)"),
		),
		mcp.WithBoolean("showHighlights",
			mcp.Description("Show search match highlights (default: true)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"paperless_search", "paperless", "search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearch(ctx, request, sc)
		}))

	getDocTool := mcp.NewTool("paperless_get_document",
		mcp.WithDescription("Get a Paperless document by ID"),
		mcp.WithNumber("documentId",
			mcp.Required(),
			mcp.Description("Document ID"),
		),
		mcp.WithBoolean("includeContent",
			mcp.Description("Include full document content, truncated to the configured size cap (default: true)"),
		),
	)

	s.AddTool(getDocTool, common.InstrumentedToolHandlerWithService(
		"paperless_get_document", "paperless", "get_document", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocument(ctx, request, sc)
		}))

	similarTool := mcp.NewTool("paperless_find_similar",
		mcp.WithDescription("Find documents similar to a given Paperless document"),
		mcp.WithNumber("documentId",
			mcp.Required(),
			mcp.Description("Document ID to find similar documents for"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return, 1-100 (default: configured page size)"),
		),
	)

	s.AddTool(similarTool, common.InstrumentedToolHandlerWithService(
		"paperless_find_similar", "paperless", "find_similar", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindSimilar(ctx, request, sc)
		}))

	advancedTool := mcp.NewTool("paperless_advanced_search",
		mcp.WithDescription("Search Paperless documents with combined filters: query, tags, correspondent, document type and created date range"),
		mcp.WithString("query",
			mcp.Description("Full-text search query"),
		),
		mcp.WithString("tags",
			mcp.Description("Tag names or IDs, single value or array; names are resolved case-insensitively"),
		),
		mcp.WithBoolean("matchAllTags",
			mcp.Description("Require all tags to match instead of any (default: false)"),
		),
		mcp.WithNumber("correspondentId",
			mcp.Description("Filter by correspondent ID"),
		),
		mcp.WithNumber("documentTypeId",
			mcp.Description("Filter by document type ID"),
		),
		mcp.WithString("createdAfter",
			mcp.Description("Only documents created on or after this date (YYYY-MM-DD)"),
		),
		mcp.WithString("createdBefore",
			mcp.Description("Only documents created on or before this date (YYYY-MM-DD)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return, 1-100 (default: configured page size)"),
		),
	)

	s.AddTool(advancedTool, common.InstrumentedToolHandlerWithService(
		"paperless_advanced_search", "paperless", "advanced_search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAdvancedSearch(ctx, request, sc)
		}))

	byTagsTool := mcp.NewTool("paperless_search_by_tags",
		mcp.WithDescription("Find Paperless documents carrying the given tags"),
		mcp.WithString("tags",
			mcp.Required(),
			mcp.Description("Tag names or IDs, single value or array; names are resolved case-insensitively"),
		),
		mcp.WithBoolean("matchAllTags",
			mcp.Description("Require all tags to match instead of any (default: false)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return, 1-100 (default: configured page size)"),
		),
	)

	s.AddTool(byTagsTool, common.InstrumentedToolHandlerWithService(
		"paperless_search_by_tags", "paperless", "search_by_tags", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchByTags(ctx, request, sc)
		}))

	listTagsTool := mcp.NewTool("paperless_list_tags",
		mcp.WithDescription("List all Paperless tags with document counts"),
	)

	s.AddTool(listTagsTool, common.InstrumentedToolHandlerWithService(
		"paperless_list_tags", "paperless", "list_tags", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTags(ctx, request, sc)
		}))

	listCorrespondentsTool := mcp.NewTool("paperless_list_correspondents",
		mcp.WithDescription("List all Paperless correspondents with document counts"),
	)

	s.AddTool(listCorrespondentsTool, common.InstrumentedToolHandlerWithService(
		"paperless_list_correspondents", "paperless", "list_correspondents", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCorrespondents(ctx, request, sc)
		}))

	return nil
}

// paperlessClient returns the Paperless client, or an error result when the
// instance is not configured. The check runs before any network call.
func paperlessClient(sc *server.ServerContext) (*paperless.Client, *mcp.CallToolResult) {
	client, err := sc.PaperlessClient()
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return client, nil
}

func documentIDArg(args map[string]interface{}) (int64, *mcp.CallToolResult) {
	id := common.IntArg(args, "documentId", 0)
	if id <= 0 {
		return 0, mcp.NewToolResultError("documentId is required")
	}
	return int64(id), nil
}

func limitArg(args map[string]interface{}, def int) int {
	return common.ClampInt(common.IntArg(args, "limit", def), 1, 100)
}

func docPrefsFromArgs(args map[string]interface{}) paperless.DocPrefs {
	prefs := paperless.DefaultDocPrefs()
	prefs.IncludeContent = common.BoolArg(args, "includeContent", prefs.IncludeContent)
	prefs.ShowHighlights = common.BoolArg(args, "showHighlights", prefs.ShowHighlights)
	return prefs
}

// documentURL builds the web UI link for a document.
func documentURL(baseURL string, id int64) string {
	return fmt.Sprintf("%s/documents/%d/", strings.TrimRight(baseURL, "/"), id)
}

// citeDocuments emits one citation carrying the found documents.
func citeDocuments(ctx context.Context, emitter *events.Emitter, baseURL string, docs []paperless.Document, maxContent int) {
	if len(docs) == 0 {
		return
	}

	document := make([]string, 0, len(docs))
	metadata := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		document = append(document, paperless.TruncateContent(doc.Content, maxContent))
		metadata = append(metadata, map[string]any{
			"source":  documentURL(baseURL, doc.ID),
			"title":   doc.Title,
			"id":      doc.ID,
			"created": doc.Created,
		})
	}

	emitter.Cite(ctx, events.Citation{
		Document: document,
		Metadata: metadata,
		Source: events.Source{
			Name: "Paperless",
			URL:  strings.TrimRight(baseURL, "/"),
		},
	})
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	cfg := sc.PaperlessConfig()
	limit := limitArg(args, cfg.PageSize)
	prefs := docPrefsFromArgs(args)

	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Searching documents for %q", query))

	list, err := client.SearchDocuments(ctx, query, limit)
	if err != nil {
		emitter.Error(ctx, "Document search failed")
		return mcp.NewToolResultError(fmt.Sprintf("Document search failed: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Found %d matching documents", list.Count))
	citeDocuments(ctx, emitter, cfg.BaseURL, list.Results, cfg.MaxDocumentSize)

	title := fmt.Sprintf("Search Results for %q", query)
	return mcp.NewToolResultText(paperless.FormatDocumentList(title, list, prefs, cfg.MaxDocumentSize)), nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, errResult := documentIDArg(args)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	cfg := sc.PaperlessConfig()
	prefs := paperless.DefaultDocPrefs()
	prefs.IncludeContent = common.BoolArg(args, "includeContent", true)

	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching document %d", id))

	doc, err := client.GetDocument(ctx, id)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch document %d", id))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch document: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched document %d", id))
	citeDocuments(ctx, emitter, cfg.BaseURL, []paperless.Document{*doc}, cfg.MaxDocumentSize)

	return mcp.NewToolResultText(paperless.FormatDocument(doc, 0, prefs, cfg.MaxDocumentSize)), nil
}

func handleFindSimilar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	id, errResult := documentIDArg(args)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	cfg := sc.PaperlessConfig()
	limit := limitArg(args, cfg.PageSize)

	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Finding documents similar to %d", id))

	list, err := client.SimilarDocuments(ctx, id, limit)
	if err != nil {
		emitter.Error(ctx, "Similarity search failed")
		return mcp.NewToolResultError(fmt.Sprintf("Similarity search failed: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Found %d similar documents", list.Count))
	citeDocuments(ctx, emitter, cfg.BaseURL, list.Results, cfg.MaxDocumentSize)

	title := fmt.Sprintf("Documents Similar to #%d", id)
	return mcp.NewToolResultText(paperless.FormatDocumentList(title, list, paperless.DefaultDocPrefs(), cfg.MaxDocumentSize)), nil
}

func handleAdvancedSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	cfg := sc.PaperlessConfig()
	filters := paperless.Filters{
		Query:         common.StringArg(args, "query", ""),
		MatchAllTags:  common.BoolArg(args, "matchAllTags", false),
		Correspondent: int64(common.IntArg(args, "correspondentId", 0)),
		DocumentType:  int64(common.IntArg(args, "documentTypeId", 0)),
		CreatedAfter:  common.StringArg(args, "createdAfter", ""),
		CreatedBefore: common.StringArg(args, "createdBefore", ""),
		PageSize:      limitArg(args, cfg.PageSize),
	}

	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)

	if rawTags, ok := args["tags"]; ok && rawTags != nil {
		names, err := batch.ParseStringOrArray(rawTags, "tags")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ids, missing, err := client.ResolveTagIDs(ctx, names)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve tags: %v", err)), nil
		}
		if len(missing) > 0 {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown tags: %s", strings.Join(missing, ", "))), nil
		}
		filters.TagIDs = ids
	}

	emitter.Progress(ctx, "Searching documents with filters")

	list, err := client.Search(ctx, filters)
	if err != nil {
		emitter.Error(ctx, "Filtered search failed")
		return mcp.NewToolResultError(fmt.Sprintf("Filtered search failed: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Found %d matching documents", list.Count))
	citeDocuments(ctx, emitter, cfg.BaseURL, list.Results, cfg.MaxDocumentSize)

	return mcp.NewToolResultText(paperless.FormatDocumentList("Filtered Search Results", list, docPrefsFromArgs(args), cfg.MaxDocumentSize)), nil
}

func handleSearchByTags(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	names, err := batch.ParseStringOrArray(args["tags"], "tags")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	cfg := sc.PaperlessConfig()
	emitter := events.FromContext(ctx, cfg.EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Resolving %d tags", len(names)))

	ids, missing, err := client.ResolveTagIDs(ctx, names)
	if err != nil {
		emitter.Error(ctx, "Failed to resolve tags")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve tags: %v", err)), nil
	}
	if len(missing) > 0 {
		emitter.Error(ctx, "Unknown tags")
		return mcp.NewToolResultError(fmt.Sprintf("Unknown tags: %s", strings.Join(missing, ", "))), nil
	}

	filters := paperless.Filters{
		TagIDs:       ids,
		MatchAllTags: common.BoolArg(args, "matchAllTags", false),
		PageSize:     limitArg(args, cfg.PageSize),
	}

	list, err := client.Search(ctx, filters)
	if err != nil {
		emitter.Error(ctx, "Tag search failed")
		return mcp.NewToolResultError(fmt.Sprintf("Tag search failed: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Found %d tagged documents", list.Count))
	citeDocuments(ctx, emitter, cfg.BaseURL, list.Results, cfg.MaxDocumentSize)

	title := fmt.Sprintf("Documents Tagged %s", strings.Join(names, ", "))
	return mcp.NewToolResultText(paperless.FormatDocumentList(title, list, paperless.DefaultDocPrefs(), cfg.MaxDocumentSize)), nil
}

func handleListTags(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	emitter := events.FromContext(ctx, sc.PaperlessConfig().EnableStatusUpdates)
	emitter.Progress(ctx, "Fetching tags")

	tags, err := client.ListTags(ctx)
	if err != nil {
		emitter.Error(ctx, "Failed to fetch tags")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch tags: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched %d tags", len(tags)))
	return mcp.NewToolResultText(paperless.FormatTags(tags)), nil
}

func handleListCorrespondents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := paperlessClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	emitter := events.FromContext(ctx, sc.PaperlessConfig().EnableStatusUpdates)
	emitter.Progress(ctx, "Fetching correspondents")

	correspondents, err := client.ListCorrespondents(ctx)
	if err != nil {
		emitter.Error(ctx, "Failed to fetch correspondents")
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch correspondents: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched %d correspondents", len(correspondents)))
	return mcp.NewToolResultText(paperless.FormatCorrespondents(correspondents)), nil
}
