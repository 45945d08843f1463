// Package batch provides common utilities for batch operations across all MCP tools.
//
// This package includes helpers for:
//   - Parsing parameters that accept both single values and arrays
//   - Formatting batch results as a consistent markdown report
//   - Processing batch operations with partial-failure handling
package batch
