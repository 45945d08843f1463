// Package cmd implements the toolfetch command line interface.
//
// Running toolfetch without arguments starts the MCP server over stdio
// (the serve command). Other commands: extract fetches a single web page
// and prints its content as markdown, generate-docs writes a markdown
// reference for all registered tools, version prints the build version.
package cmd
