package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/instrumentation"
)

const (
	// DefaultHTTPReadHeaderTimeout bounds reading request headers.
	DefaultHTTPReadHeaderTimeout = 10 * time.Second

	// DefaultHTTPIdleTimeout bounds idle keep-alive connections.
	DefaultHTTPIdleTimeout = 120 * time.Second

	// DefaultMCPEndpoint is the path the MCP streamable HTTP transport is
	// served on.
	DefaultMCPEndpoint = "/mcp"
)

// HTTPServerConfig holds configuration for the streamable HTTP server.
type HTTPServerConfig struct {
	// Addr is the address to bind to (e.g., ":8080").
	Addr string

	// Endpoint is the MCP endpoint path (default: /mcp).
	Endpoint string

	// Metrics, when set, records request counts and durations per path.
	Metrics *instrumentation.Metrics
}

// HTTPServer serves the MCP streamable HTTP transport together with health
// check endpoints on a single listener.
type HTTPServer struct {
	httpServer *http.Server
	addr       string
}

// NewHTTPServer creates an HTTP server exposing the MCP endpoint plus the
// health endpoints from the given checker.
func NewHTTPServer(config HTTPServerConfig, mcpSrv *mcpserver.MCPServer, health *HealthChecker) *HTTPServer {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultMCPEndpoint
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(endpoint),
	)

	mux := http.NewServeMux()
	mux.Handle(endpoint, streamable)
	if health != nil {
		health.RegisterHealthEndpoints(mux)
	}

	var handler http.Handler = mux
	if config.Metrics != nil {
		handler = withHTTPMetrics(config.Metrics, handler)
	}

	return &HTTPServer{
		addr: config.Addr,
		httpServer: &http.Server{
			Addr:              config.Addr,
			Handler:           handler,
			ReadHeaderTimeout: DefaultHTTPReadHeaderTimeout,
			IdleTimeout:       DefaultHTTPIdleTimeout,
		},
	}
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush delegates to the underlying writer so the streamable transport can
// keep its SSE notification stream open through the middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func withHTTPMetrics(metrics *instrumentation.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// Start starts the HTTP server in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *HTTPServer) Start() error {
	slog.Info("starting HTTP server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *HTTPServer) Addr() string {
	return s.addr
}
