// Package paperless_tools provides MCP tools for Paperless-ngx document
// management: full-text and filtered search, similarity lookup, tag-based
// queries, and tag/correspondent listings. All tools require PAPERLESS_URL
// and PAPERLESS_TOKEN and report the missing configuration before any
// network call.
package paperless_tools
