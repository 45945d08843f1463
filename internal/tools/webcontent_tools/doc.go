// Package webcontent_tools provides MCP tools for fetching web pages and
// extracting their main content as markdown, one URL at a time or as a
// sequential multi-URL batch.
package webcontent_tools
