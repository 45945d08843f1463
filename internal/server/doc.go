// Package server provides the MCP server context, HTTP transport, and
// operational endpoints for the toolfetch application.
//
// ServerContext holds per-service configuration read from the environment
// and lazily creates and caches the upstream clients (Alpha Vantage, GitHub,
// Paperless, web content). Services without credentials stay unconfigured;
// their tools report the missing configuration at call time instead of
// failing server startup.
//
// HTTPServer serves the MCP streamable HTTP transport together with
// Kubernetes-style health probes. MetricsServer exposes Prometheus metrics
// on a dedicated port, isolated from application traffic.
package server
