package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultMaxFileSize caps file content fetched through the contents API.
const DefaultMaxFileSize = int64(100000)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

// apiVersion is sent on every request per GitHub's versioning scheme.
const apiVersion = "2022-11-28"

// Config holds the GitHub client configuration. Populated once from the
// environment at startup and immutable afterwards.
type Config struct {
	// BaseURL is the API endpoint (default: https://api.github.com)
	BaseURL string

	// Token is the GitHub token. Optional; unauthenticated requests work
	// for public data at a reduced rate limit.
	Token string

	// DefaultBranch is used when no ref is given (default: main)
	DefaultBranch string

	// MaxFileSize caps fetched file content in bytes (default: 100000)
	MaxFileSize int64

	// Timeout bounds each upstream request (default: 30s)
	Timeout time.Duration

	// EnableStatusUpdates controls whether tools emit status events.
	EnableStatusUpdates bool
}

// ConfigFromEnv builds a Config from environment variables:
//
//	GITHUB_TOKEN           API token (no default)
//	GITHUB_API_URL         API endpoint
//	GITHUB_DEFAULT_BRANCH  branch used when none is given (default: main)
//	GITHUB_MAX_FILE_SIZE   maximum file size in bytes (default: 100000)
//	GITHUB_STATUS_UPDATES  emit status events (default: true)
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL:             DefaultBaseURL,
		Token:               os.Getenv("GITHUB_TOKEN"),
		DefaultBranch:       "main",
		MaxFileSize:         DefaultMaxFileSize,
		Timeout:             DefaultTimeout,
		EnableStatusUpdates: true,
	}

	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("GITHUB_DEFAULT_BRANCH"); v != "" {
		cfg.DefaultBranch = v
	}
	if v := os.Getenv("GITHUB_MAX_FILE_SIZE"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil && size > 0 {
			cfg.MaxFileSize = size
		}
	}
	if v := os.Getenv("GITHUB_STATUS_UPDATES"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.EnableStatusUpdates = enabled
		}
	}

	return cfg
}

// APIError represents an error from the GitHub API.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github %s: %s", e.Op, e.Message)
}

// SplitRepoSpec splits an "owner/repo" spec into its two components.
// Exactly two non-empty slash-separated parts are accepted.
func SplitRepoSpec(spec string) (owner, repo string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, use owner/repo", spec)
	}
	return parts[0], parts[1], nil
}

// Client is a GitHub REST v3 client covering the contents, repos, gists and
// actions surfaces.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new GitHub client. When a token is configured the
// underlying transport injects it as a Bearer credential.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.DefaultBranch == "" {
		config.DefaultBranch = "main"
	}
	if config.MaxFileSize == 0 {
		config.MaxFileSize = DefaultMaxFileSize
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	var httpClient *http.Client
	if config.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token})
		httpClient = oauth2.NewClient(context.Background(), src)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = config.Timeout

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// GetFile fetches a single file through the contents API. The ref defaults
// to the configured default branch. Content stays base64-encoded; use
// DecodeContent to obtain the raw bytes.
func (c *Client) GetFile(ctx context.Context, owner, repo, path, ref string) (*ContentEntry, error) {
	const op = "get_file"

	if ref == "" {
		ref = c.config.DefaultBranch
	}

	var entry ContentEntry
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if err := c.do(ctx, op, http.MethodGet, apiPath, url.Values{"ref": {ref}}, nil, &entry); err != nil {
		return nil, err
	}

	if entry.Type != "file" {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("path is not a file (type: %s)", entry.Type)}
	}

	return &entry, nil
}

// ListDir lists a directory through the contents API. An empty path lists
// the repository root.
func (c *Client) ListDir(ctx context.Context, owner, repo, path, ref string) ([]ContentEntry, error) {
	const op = "list_dir"

	if ref == "" {
		ref = c.config.DefaultBranch
	}

	var entries []ContentEntry
	apiPath := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path)
	if err := c.do(ctx, op, http.MethodGet, apiPath, url.Values{"ref": {ref}}, nil, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// GetRepo fetches repository details.
func (c *Client) GetRepo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	var info RepoInfo
	apiPath := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := c.do(ctx, "get_repo", http.MethodGet, apiPath, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Languages fetches the byte count per language for a repository.
func (c *Client) Languages(ctx context.Context, owner, repo string) (map[string]int64, error) {
	var langs languagesResponse
	apiPath := fmt.Sprintf("/repos/%s/%s/languages", owner, repo)
	if err := c.do(ctx, "languages", http.MethodGet, apiPath, nil, nil, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

// ListWorkflowRuns lists recent GitHub Actions runs for a repository.
// Branch and status filters are optional.
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo, branch, status string, perPage int) ([]WorkflowRun, int64, error) {
	query := url.Values{}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	if branch != "" {
		query.Set("branch", branch)
	}
	if status != "" {
		query.Set("status", status)
	}

	var resp workflowRunsResponse
	apiPath := fmt.Sprintf("/repos/%s/%s/actions/runs", owner, repo)
	if err := c.do(ctx, "list_workflow_runs", http.MethodGet, apiPath, query, nil, &resp); err != nil {
		return nil, 0, err
	}

	return resp.WorkflowRuns, resp.TotalCount, nil
}

// GetWorkflowRun fetches a single GitHub Actions run by ID.
func (c *Client) GetWorkflowRun(ctx context.Context, owner, repo string, runID int64) (*WorkflowRun, error) {
	var run WorkflowRun
	apiPath := fmt.Sprintf("/repos/%s/%s/actions/runs/%d", owner, repo, runID)
	if err := c.do(ctx, "get_workflow_run", http.MethodGet, apiPath, nil, nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListGists lists the authenticated user's gists.
func (c *Client) ListGists(ctx context.Context, perPage int) ([]Gist, error) {
	query := url.Values{}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var gists []Gist
	if err := c.do(ctx, "list_gists", http.MethodGet, "/gists", query, nil, &gists); err != nil {
		return nil, err
	}
	return gists, nil
}

// GetGist fetches a single gist with file contents.
func (c *Client) GetGist(ctx context.Context, id string) (*Gist, error) {
	var gist Gist
	if err := c.do(ctx, "get_gist", http.MethodGet, "/gists/"+id, nil, nil, &gist); err != nil {
		return nil, err
	}
	return &gist, nil
}

// CreateGist creates a gist from a filename to content map. GitHub preserves
// the provided filenames as the keys of the response Files map.
func (c *Client) CreateGist(ctx context.Context, description string, public bool, files map[string]string) (*Gist, error) {
	const op = "create_gist"

	if len(files) == 0 {
		return nil, &APIError{Op: op, Message: "at least one file is required"}
	}

	payload := gistCreateRequest{
		Description: description,
		Public:      public,
		Files:       make(map[string]gistFileContent, len(files)),
	}
	for name, content := range files {
		payload.Files[name] = gistFileContent{Content: content}
	}

	var gist Gist
	if err := c.do(ctx, op, http.MethodPost, "/gists", nil, payload, &gist); err != nil {
		return nil, err
	}
	return &gist, nil
}

// DeleteGist deletes a gist by ID.
func (c *Client) DeleteGist(ctx context.Context, id string) error {
	return c.do(ctx, "delete_gist", http.MethodDelete, "/gists/"+id, nil, nil, nil)
}

// DecodeContent decodes the base64 content of a file entry.
func DecodeContent(entry *ContentEntry) ([]byte, error) {
	if entry.Encoding != "" && entry.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported content encoding %q", entry.Encoding)
	}
	// The API wraps base64 content in newlines.
	cleaned := strings.ReplaceAll(entry.Content, "\n", "")
	return base64.StdEncoding.DecodeString(cleaned)
}

// do performs one API request and decodes the JSON response into out.
// A nil out skips decoding (DELETE responses have no body).
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload, out any) error {
	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &APIError{Op: op, Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classifyStatus(op, resp.StatusCode)
	}

	if out == nil {
		return nil
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
		message = "authentication failed, check your GitHub token"
	case http.StatusNotFound:
		message = "repository, path, or resource not found"
	case http.StatusForbidden:
		message = "API rate limit exceeded or access forbidden"
	default:
		message = fmt.Sprintf("GitHub API error: %d", statusCode)
	}
	return &APIError{Op: op, StatusCode: statusCode, Message: message}
}
