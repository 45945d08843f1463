package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 30 * time.Second

// ValidIntervals lists the intraday intervals Alpha Vantage accepts.
var ValidIntervals = []string{"1min", "5min", "15min", "30min", "60min"}

// Config holds the Alpha Vantage client configuration. Populated once from
// the environment at startup and immutable afterwards.
type Config struct {
	// BaseURL is the API endpoint (default: https://www.alphavantage.co)
	BaseURL string

	// APIKey is the Alpha Vantage API key. Required for all operations.
	APIKey string

	// Timeout bounds each upstream request (default: 30s)
	Timeout time.Duration

	// EnableStatusUpdates controls whether tools emit status events.
	EnableStatusUpdates bool
}

// ConfigFromEnv builds a Config from environment variables:
//
//	ALPHAVANTAGE_API_KEY         API key (no default)
//	ALPHAVANTAGE_URL             API endpoint
//	ALPHAVANTAGE_TIMEOUT         request timeout in seconds
//	ALPHAVANTAGE_STATUS_UPDATES  emit status events (default: true)
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL:             DefaultBaseURL,
		APIKey:              os.Getenv("ALPHAVANTAGE_API_KEY"),
		Timeout:             DefaultTimeout,
		EnableStatusUpdates: true,
	}

	if v := os.Getenv("ALPHAVANTAGE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("ALPHAVANTAGE_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("ALPHAVANTAGE_STATUS_UPDATES"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.EnableStatusUpdates = enabled
		}
	}

	return cfg
}

// APIError represents an error from the Alpha Vantage API.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alphavantage %s: %s", e.Op, e.Message)
}

// Client is a thin Alpha Vantage API client. All operations go through the
// single /query endpoint, selected by the function parameter.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Alpha Vantage client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.config
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.config.APIKey != ""
}

// IsValidInterval reports whether interval is an accepted intraday interval.
func IsValidInterval(interval string) bool {
	for _, v := range ValidIntervals {
		if v == interval {
			return true
		}
	}
	return false
}

// GlobalQuote fetches the latest quote for a symbol.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (*Quote, error) {
	const op = "global_quote"

	var resp globalQuoteResponse
	if err := c.query(ctx, op, "GLOBAL_QUOTE", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	if resp.Quote.Symbol == "" {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("no quote data found for symbol %q", symbol)}
	}
	return &resp.Quote, nil
}

// DailySeries fetches the daily time series for a symbol.
func (c *Client) DailySeries(ctx context.Context, symbol string) (*TimeSeries, error) {
	return c.series(ctx, "daily_series", "TIME_SERIES_DAILY", symbol, nil)
}

// IntradaySeries fetches an intraday time series for a symbol. The interval
// must be one of ValidIntervals.
func (c *Client) IntradaySeries(ctx context.Context, symbol, interval string) (*TimeSeries, error) {
	const op = "intraday_series"

	if !IsValidInterval(interval) {
		return nil, &APIError{
			Op:      op,
			Message: fmt.Sprintf("invalid interval %q, must be one of: %s", interval, strings.Join(ValidIntervals, ", ")),
		}
	}
	return c.series(ctx, op, "TIME_SERIES_INTRADAY", symbol, map[string]string{"interval": interval})
}

// SearchSymbols searches for symbols matching the given keywords.
func (c *Client) SearchSymbols(ctx context.Context, keywords string) ([]SymbolMatch, error) {
	var resp symbolSearchResponse
	if err := c.query(ctx, "symbol_search", "SYMBOL_SEARCH", map[string]string{"keywords": keywords}, &resp); err != nil {
		return nil, err
	}
	return resp.BestMatches, nil
}

// series fetches and decodes a time series response. Alpha Vantage names the
// series key after the function ("Time Series (Daily)", "Time Series (5min)"),
// so the payload is located by prefix instead of a fixed key.
func (c *Client) series(ctx context.Context, op, function, symbol string, extra map[string]string) (*TimeSeries, error) {
	params := map[string]string{"symbol": symbol}
	for k, v := range extra {
		params[k] = v
	}

	var raw map[string]json.RawMessage
	if err := c.query(ctx, op, function, params, &raw); err != nil {
		return nil, err
	}

	ts := &TimeSeries{Symbol: symbol}
	if extra != nil {
		ts.Interval = extra["interval"]
	}

	if meta, ok := raw["Meta Data"]; ok {
		var md map[string]string
		if err := json.Unmarshal(meta, &md); err == nil {
			if v := md["2. Symbol"]; v != "" {
				ts.Symbol = v
			}
			if v := md["3. Last Refreshed"]; v != "" {
				ts.LastRefreshed = v
			}
			for k, v := range md {
				if strings.HasSuffix(k, "Time Zone") {
					ts.TimeZone = v
				}
			}
		}
	}

	var payload map[string]barPayload
	for key, msg := range raw {
		if strings.HasPrefix(key, "Time Series") {
			if err := json.Unmarshal(msg, &payload); err != nil {
				return nil, &APIError{Op: op, Message: "unexpected time series format in response"}
			}
			break
		}
	}
	if payload == nil {
		return nil, &APIError{Op: op, Message: fmt.Sprintf("no time series data found for symbol %q", symbol)}
	}

	for timestamp, bar := range payload {
		ts.Bars = append(ts.Bars, Bar{
			Timestamp: timestamp,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Volume:    bar.Volume,
		})
	}

	// Newest first.
	sort.Slice(ts.Bars, func(i, j int) bool {
		return ts.Bars[i].Timestamp > ts.Bars[j].Timestamp
	})

	return ts, nil
}

// query performs a GET against /query with the given function and parameters
// and decodes the JSON response into out.
func (c *Client) query(ctx context.Context, op, function string, params map[string]string, out any) error {
	if !c.HasKey() {
		return &APIError{Op: op, Message: "API key not configured"}
	}

	u, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("invalid base URL: %v", err)}
	}
	u.Path = "/query"

	q := u.Query()
	q.Set("function", function)
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("apikey", c.config.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Op: op, Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	// Alpha Vantage reports request errors and throttling as 200 responses
	// with a sentinel key.
	var sentinel struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}
	if err := json.Unmarshal(body, &sentinel); err == nil {
		switch {
		case sentinel.ErrorMessage != "":
			return &APIError{Op: op, Message: sentinel.ErrorMessage}
		case sentinel.Note != "":
			return &APIError{Op: op, Message: sentinel.Note}
		case sentinel.Information != "":
			return &APIError{Op: op, Message: sentinel.Information}
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
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
		message = "authentication failed, check your API key"
	case http.StatusNotFound:
		message = "resource not found"
	case http.StatusForbidden:
		message = "rate limit exceeded or access forbidden"
	default:
		message = fmt.Sprintf("API request failed with status %d", statusCode)
	}
	return &APIError{Op: op, StatusCode: statusCode, Message: message}
}
