package webcontent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultMaxContentLength caps fetched page size in bytes.
const DefaultMaxContentLength = int64(1000000)

// DefaultUserAgent mimics a desktop browser; many sites refuse the Go
// default agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds the web content fetcher configuration. Populated once from
// the environment at startup and immutable afterwards.
type Config struct {
	// Timeout bounds each page fetch (default: 30s)
	Timeout time.Duration

	// MaxContentLength caps fetched page size in bytes (default: 1000000)
	MaxContentLength int64

	// UserAgent is sent on every fetch.
	UserAgent string

	// EnableStatusUpdates controls whether tools emit status events.
	EnableStatusUpdates bool
}

// ConfigFromEnv builds a Config from environment variables:
//
//	WEB_TIMEOUT             fetch timeout in seconds (default: 30)
//	WEB_MAX_CONTENT_LENGTH  page size cap in bytes (default: 1000000)
//	WEB_USER_AGENT          User-Agent header
//	WEB_STATUS_UPDATES      emit status events (default: true)
func ConfigFromEnv() Config {
	cfg := Config{
		Timeout:             DefaultTimeout,
		MaxContentLength:    DefaultMaxContentLength,
		UserAgent:           DefaultUserAgent,
		EnableStatusUpdates: true,
	}

	if v := os.Getenv("WEB_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("WEB_MAX_CONTENT_LENGTH"); v != "" {
		if size, err := strconv.ParseInt(v, 10, 64); err == nil && size > 0 {
			cfg.MaxContentLength = size
		}
	}
	if v := os.Getenv("WEB_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("WEB_STATUS_UPDATES"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.EnableStatusUpdates = enabled
		}
	}

	return cfg
}

// FetchError represents a failure to fetch a page.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

// Fetcher downloads pages with a browser-like User-Agent and a hard size cap.
type Fetcher struct {
	config     Config
	httpClient *http.Client
}

// NewFetcher creates a new page fetcher.
func NewFetcher(config Config) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxContentLength == 0 {
		config.MaxContentLength = DefaultMaxContentLength
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Config returns the fetcher configuration.
func (f *Fetcher) Config() Config {
	return f.config
}

// ValidateURL checks that rawURL is an absolute http(s) URL.
func ValidateURL(rawURL string) (*url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %v", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL %q: scheme must be http or https", rawURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return parsed, nil
}

// Fetch downloads a page and returns its HTML and the parsed URL. Pages
// over the configured size cap are rejected, both by Content-Length header
// and by counting actual body bytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, *url.URL, error) {
	parsed, err := ValidateURL(rawURL)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", nil, &FetchError{URL: rawURL, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", nil, &FetchError{URL: rawURL, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", nil, &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("server returned status %d", resp.StatusCode),
		}
	}

	if resp.ContentLength > f.config.MaxContentLength {
		return "", nil, &FetchError{
			URL:     rawURL,
			Message: fmt.Sprintf("content too large (%d bytes, limit %d)", resp.ContentLength, f.config.MaxContentLength),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxContentLength+1))
	if err != nil {
		return "", nil, &FetchError{URL: rawURL, Message: fmt.Sprintf("failed to read response: %v", err)}
	}
	if int64(len(body)) > f.config.MaxContentLength {
		return "", nil, &FetchError{
			URL:     rawURL,
			Message: fmt.Sprintf("content too large (over %d bytes)", f.config.MaxContentLength),
		}
	}

	return string(body), parsed, nil
}
