// Package github_tools provides MCP tools for GitHub: repository contents
// (file reading with size guard and binary detection, directory listings,
// repository details with language breakdown), Actions workflow runs, and
// gists. Reading public data works without a token; gist operations require
// GITHUB_TOKEN and report the missing configuration before any network call.
package github_tools
