// Package logging provides slog attribute helpers for consistent structured
// logging across the server.
//
// All log output uses the standard library log/slog package. This package
// only contributes shared attribute keys, small constructors for common
// attributes (operation, service, tool, status, error), and a token
// sanitizer so credentials never reach the logs.
package logging
