package paperless

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIVersion is the Paperless-ngx API version requested via the
// Accept header.
const DefaultAPIVersion = 5

// DefaultPageSize is the page size used when the caller gives none.
const DefaultPageSize = 10

// DefaultMaxDocumentSize caps rendered document content in bytes.
const DefaultMaxDocumentSize = 500000

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

// listPageSize is used when enumerating tags and correspondents.
const listPageSize = 1000

// Config holds the Paperless client configuration. Populated once from the
// environment at startup and immutable afterwards.
type Config struct {
	// BaseURL is the Paperless-ngx instance URL. Required.
	BaseURL string

	// Token is the Paperless API token. Required.
	Token string

	// APIVersion is requested via the Accept header (default: 5)
	APIVersion int

	// PageSize is the default result page size (default: 10)
	PageSize int

	// MaxDocumentSize caps rendered document content in bytes (default: 500000)
	MaxDocumentSize int

	// Timeout bounds each upstream request (default: 30s)
	Timeout time.Duration

	// EnableStatusUpdates controls whether tools emit status events.
	EnableStatusUpdates bool
}

// ConfigFromEnv builds a Config from environment variables:
//
//	PAPERLESS_URL                instance URL (no default)
//	PAPERLESS_TOKEN              API token (no default)
//	PAPERLESS_API_VERSION        API version (default: 5)
//	PAPERLESS_PAGE_SIZE          default page size (default: 10)
//	PAPERLESS_MAX_DOCUMENT_SIZE  content cap in bytes (default: 500000)
//	PAPERLESS_STATUS_UPDATES     emit status events (default: true)
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL:             strings.TrimRight(os.Getenv("PAPERLESS_URL"), "/"),
		Token:               os.Getenv("PAPERLESS_TOKEN"),
		APIVersion:          DefaultAPIVersion,
		PageSize:            DefaultPageSize,
		MaxDocumentSize:     DefaultMaxDocumentSize,
		Timeout:             DefaultTimeout,
		EnableStatusUpdates: true,
	}

	if v := os.Getenv("PAPERLESS_API_VERSION"); v != "" {
		if version, err := strconv.Atoi(v); err == nil && version > 0 {
			cfg.APIVersion = version
		}
	}
	if v := os.Getenv("PAPERLESS_PAGE_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			cfg.PageSize = size
		}
	}
	if v := os.Getenv("PAPERLESS_MAX_DOCUMENT_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			cfg.MaxDocumentSize = size
		}
	}
	if v := os.Getenv("PAPERLESS_STATUS_UPDATES"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.EnableStatusUpdates = enabled
		}
	}

	return cfg
}

// APIError represents an error from the Paperless API.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("paperless %s: %s", e.Op, e.Message)
}

// Filters narrows an advanced document search. Zero values are omitted
// from the request.
type Filters struct {
	Query         string
	TagIDs        []int64
	MatchAllTags  bool
	Correspondent int64
	DocumentType  int64
	CreatedAfter  string // YYYY-MM-DD
	CreatedBefore string // YYYY-MM-DD
	PageSize      int
}

// Client is a Paperless-ngx REST client.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Paperless client.
func NewClient(config Config) *Client {
	if config.APIVersion == 0 {
		config.APIVersion = DefaultAPIVersion
	}
	if config.PageSize == 0 {
		config.PageSize = DefaultPageSize
	}
	if config.MaxDocumentSize == 0 {
		config.MaxDocumentSize = DefaultMaxDocumentSize
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// IsConfigured reports whether both instance URL and token are set.
func (c *Client) IsConfigured() bool {
	return c.config.BaseURL != "" && c.config.Token != ""
}

// SearchDocuments runs a full-text search over documents.
func (c *Client) SearchDocuments(ctx context.Context, query string, pageSize int) (*DocumentList, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page_size", strconv.Itoa(c.pageSize(pageSize)))

	var list DocumentList
	if err := c.get(ctx, "search_documents", "/api/documents/", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetDocument fetches a single document by ID.
func (c *Client) GetDocument(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	path := fmt.Sprintf("/api/documents/%d/", id)
	if err := c.get(ctx, "get_document", path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SimilarDocuments finds documents similar to the given one.
func (c *Client) SimilarDocuments(ctx context.Context, id int64, pageSize int) (*DocumentList, error) {
	params := url.Values{}
	params.Set("more_like_id", strconv.FormatInt(id, 10))
	params.Set("page_size", strconv.Itoa(c.pageSize(pageSize)))

	var list DocumentList
	if err := c.get(ctx, "similar_documents", "/api/documents/", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Search runs an advanced document search with the given filters.
func (c *Client) Search(ctx context.Context, filters Filters) (*DocumentList, error) {
	params := url.Values{}
	if filters.Query != "" {
		params.Set("query", filters.Query)
	}
	if len(filters.TagIDs) > 0 {
		ids := make([]string, len(filters.TagIDs))
		for i, id := range filters.TagIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		if filters.MatchAllTags {
			params.Set("tags__id__all", strings.Join(ids, ","))
		} else {
			params.Set("tags__id__in", strings.Join(ids, ","))
		}
	}
	if filters.Correspondent != 0 {
		params.Set("correspondent__id", strconv.FormatInt(filters.Correspondent, 10))
	}
	if filters.DocumentType != 0 {
		params.Set("document_type__id", strconv.FormatInt(filters.DocumentType, 10))
	}
	if filters.CreatedAfter != "" {
		params.Set("created__date__gte", filters.CreatedAfter)
	}
	if filters.CreatedBefore != "" {
		params.Set("created__date__lte", filters.CreatedBefore)
	}
	params.Set("ordering", "-created")
	params.Set("page_size", strconv.Itoa(c.pageSize(filters.PageSize)))

	var list DocumentList
	if err := c.get(ctx, "search", "/api/documents/", params, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ListTags fetches all tags.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	params := url.Values{}
	params.Set("page_size", strconv.Itoa(listPageSize))

	var list tagList
	if err := c.get(ctx, "list_tags", "/api/tags/", params, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// ListCorrespondents fetches all correspondents.
func (c *Client) ListCorrespondents(ctx context.Context) ([]Correspondent, error) {
	params := url.Values{}
	params.Set("page_size", strconv.Itoa(listPageSize))

	var list correspondentList
	if err := c.get(ctx, "list_correspondents", "/api/correspondents/", params, &list); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// ResolveTagIDs maps tag names or numeric IDs to tag IDs. Name matching is
// case-insensitive. Returns the resolved IDs and the inputs that matched
// nothing.
func (c *Client) ResolveTagIDs(ctx context.Context, names []string) ([]int64, []string, error) {
	tags, err := c.ListTags(ctx)
	if err != nil {
		return nil, nil, err
	}

	byName := make(map[string]int64, len(tags))
	for _, tag := range tags {
		byName[strings.ToLower(tag.Name)] = tag.ID
	}

	var ids []int64
	var missing []string
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			ids = append(ids, id)
			continue
		}
		if id, ok := byName[strings.ToLower(trimmed)]; ok {
			ids = append(ids, id)
		} else {
			missing = append(missing, trimmed)
		}
	}

	return ids, missing, nil
}

func (c *Client) pageSize(requested int) int {
	if requested > 0 {
		return requested
	}
	return c.config.PageSize
}

// get performs one GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if !c.IsConfigured() {
		return &APIError{Op: op, Message: "Paperless URL or API token not configured"}
	}

	u := c.config.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Authorization", "Token "+c.config.Token)
	req.Header.Set("Accept", fmt.Sprintf("application/json; version=%d", c.config.APIVersion))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Message: "unexpected response format"}
	}

	return nil
}

// classifyStatus maps an HTTP status code to an APIError with a
// human-readable message.
func classifyStatus(op string, statusCode int) *APIError {
	var message string
	switch statusCode {
	case http.StatusUnauthorized:
		message = "authentication failed, check your API token"
	case http.StatusNotFound:
		message = "document or resource not found"
	case http.StatusForbidden:
		message = "access forbidden"
	default:
		message = fmt.Sprintf("Paperless API error: %d", statusCode)
	}
	return &APIError{Op: op, StatusCode: statusCode, Message: message}
}
