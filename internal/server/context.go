package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/toolfetch/toolfetch/internal/alphavantage"
	"github.com/toolfetch/toolfetch/internal/github"
	"github.com/toolfetch/toolfetch/internal/instrumentation"
	"github.com/toolfetch/toolfetch/internal/logging"
	"github.com/toolfetch/toolfetch/internal/paperless"
	"github.com/toolfetch/toolfetch/internal/webcontent"
)

// ServerContext holds the shared state of the MCP server: per-service
// configuration read from the environment at startup and lazily created,
// cached upstream clients.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	avConfig        alphavantage.Config
	githubConfig    github.Config
	paperlessConfig paperless.Config
	webConfig       webcontent.Config

	avClient        *alphavantage.Client
	githubClient    *github.Client
	paperlessClient *paperless.Client
	fetcher         *webcontent.Fetcher
	extractor       *webcontent.Extractor

	metrics *instrumentation.Metrics

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context with configuration loaded
// from the environment. Clients are created lazily on first use so a server
// can start with only a subset of services configured.
func NewServerContext(ctx context.Context) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		avConfig:        alphavantage.ConfigFromEnv(),
		githubConfig:    github.ConfigFromEnv(),
		paperlessConfig: paperless.ConfigFromEnv(),
		webConfig:       webcontent.ConfigFromEnv(),
	}

	slog.Debug("loaded upstream configuration",
		slog.String("alphavantage_key", logging.SanitizeToken(sc.avConfig.APIKey)),
		slog.String("github_token", logging.SanitizeToken(sc.githubConfig.Token)),
		slog.String("paperless_token", logging.SanitizeToken(sc.paperlessConfig.Token)),
	)

	return sc, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// AlphaVantageConfig returns the Alpha Vantage configuration.
func (sc *ServerContext) AlphaVantageConfig() alphavantage.Config {
	return sc.avConfig
}

// GitHubConfig returns the GitHub configuration.
func (sc *ServerContext) GitHubConfig() github.Config {
	return sc.githubConfig
}

// PaperlessConfig returns the Paperless configuration.
func (sc *ServerContext) PaperlessConfig() paperless.Config {
	return sc.paperlessConfig
}

// WebConfig returns the web content configuration.
func (sc *ServerContext) WebConfig() webcontent.Config {
	return sc.webConfig
}

// AlphaVantageClient returns the cached Alpha Vantage client, creating it on
// first use. Returns an error when no API key is configured.
func (sc *ServerContext) AlphaVantageClient() (*alphavantage.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.avClient != nil {
		return sc.avClient, nil
	}
	if sc.avConfig.APIKey == "" {
		return nil, fmt.Errorf("Alpha Vantage is not configured: set ALPHAVANTAGE_API_KEY")
	}

	sc.avClient = alphavantage.NewClient(sc.avConfig)
	return sc.avClient, nil
}

// GitHubClient returns the cached GitHub client, creating it on first use.
// An unauthenticated client is returned when no token is configured.
func (sc *ServerContext) GitHubClient() *github.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.githubClient == nil {
		sc.githubClient = github.NewClient(sc.githubConfig)
	}
	return sc.githubClient
}

// PaperlessClient returns the cached Paperless client, creating it on first
// use. Returns an error when instance URL or token is missing.
func (sc *ServerContext) PaperlessClient() (*paperless.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.paperlessClient != nil {
		return sc.paperlessClient, nil
	}
	if sc.paperlessConfig.BaseURL == "" || sc.paperlessConfig.Token == "" {
		return nil, fmt.Errorf("Paperless is not configured: set PAPERLESS_URL and PAPERLESS_TOKEN")
	}

	sc.paperlessClient = paperless.NewClient(sc.paperlessConfig)
	return sc.paperlessClient, nil
}

// Fetcher returns the cached web page fetcher, creating it on first use.
func (sc *ServerContext) Fetcher() *webcontent.Fetcher {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.fetcher == nil {
		sc.fetcher = webcontent.NewFetcher(sc.webConfig)
	}
	return sc.fetcher
}

// Extractor returns the cached content extractor, creating it on first use.
func (sc *ServerContext) Extractor() *webcontent.Extractor {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.extractor == nil {
		sc.extractor = webcontent.NewExtractor()
	}
	return sc.extractor
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil if instrumentation is not
// configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
