package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/instrumentation"
)

func TestNewHTTPServerDefaults(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "test")

	s := NewHTTPServer(HTTPServerConfig{Addr: ":0"}, mcpSrv, nil)
	if s.Addr() != ":0" {
		t.Errorf("Addr() = %q, want %q", s.Addr(), ":0")
	}
	if s.httpServer.ReadHeaderTimeout != DefaultHTTPReadHeaderTimeout {
		t.Errorf("ReadHeaderTimeout = %v, want %v", s.httpServer.ReadHeaderTimeout, DefaultHTTPReadHeaderTimeout)
	}
}

func TestHTTPServerServesHealthEndpoints(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("test", "test")
	h, _ := newHealthChecker(t)

	s := NewHTTPServer(HTTPServerConfig{Addr: ":0"}, mcpSrv, h)

	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsMiddlewarePreservesFlusher(t *testing.T) {
	var sawFlusher bool
	handler := withHTTPMetrics(&instrumentation.Metrics{},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawFlusher = w.(http.Flusher)
			w.WriteHeader(http.StatusOK)
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/mcp", nil))

	if !sawFlusher {
		t.Error("handler behind metrics middleware cannot see http.Flusher")
	}
}

func TestStatusRecorderFlushDelegates(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	sr.Flush()

	if !rec.Flushed {
		t.Error("Flush() did not reach the underlying writer")
	}
}

func TestStatusRecorderCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}

	sr.WriteHeader(http.StatusNotFound)

	if sr.status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", sr.status, http.StatusNotFound)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("underlying code = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
