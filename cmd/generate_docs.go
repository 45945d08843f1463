package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/server"
)

func newGenerateDocsCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "generate-docs",
		Short: "Generate markdown documentation for all MCP tools",
		Long: `Generate markdown documentation for all MCP tools exposed by the server.

The documentation is produced from the registered tool schemas, so it
always matches what the server actually serves.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateDocs(outputFile)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "docs/tools.md", "Output file path for the generated documentation")

	return cmd
}

func runGenerateDocs(outputFile string) error {
	ctx := context.Background()

	serverContext, err := server.NewServerContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() { _ = serverContext.Shutdown() }()

	mcpSrv := mcpserver.NewMCPServer("toolfetch", version,
		mcpserver.WithToolCapabilities(true),
	)

	// Register everything, including write tools, so the docs are complete
	if err := registerAllTools(mcpSrv, serverContext, false); err != nil {
		return err
	}

	serverTools := mcpSrv.ListTools()
	tools := make([]mcp.Tool, 0, len(serverTools))
	for _, st := range serverTools {
		tools = append(tools, st.Tool)
	}

	markdown := generateToolsMarkdown(tools)

	if err := os.WriteFile(outputFile, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	fmt.Printf("Generated documentation for %d tools in %s\n", len(tools), outputFile)
	return nil
}

func generateToolsMarkdown(tools []mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString("# MCP Tools Reference\n\n")
	sb.WriteString("This document lists all tools exposed by the toolfetch MCP server.\n\n")

	categories := groupToolsByCategory(tools)

	categoryNames := make([]string, 0, len(categories))
	for name := range categories {
		categoryNames = append(categoryNames, name)
	}
	sort.Strings(categoryNames)

	for _, category := range categoryNames {
		sb.WriteString(fmt.Sprintf("## %s\n\n", category))

		categoryTools := categories[category]
		sort.Slice(categoryTools, func(i, j int) bool {
			return categoryTools[i].Name < categoryTools[j].Name
		})

		for _, tool := range categoryTools {
			sb.WriteString(generateToolMarkdown(tool))
		}
	}

	return sb.String()
}

func groupToolsByCategory(tools []mcp.Tool) map[string][]mcp.Tool {
	categories := make(map[string][]mcp.Tool)
	for _, tool := range tools {
		category := getCategoryFromToolName(tool.Name)
		categories[category] = append(categories[category], tool)
	}
	return categories
}

func getCategoryFromToolName(name string) string {
	prefix := name
	if idx := strings.Index(name, "_"); idx > 0 {
		prefix = name[:idx]
	}

	switch prefix {
	case "av":
		return "Alpha Vantage Tools"
	case "github":
		return "GitHub Tools"
	case "paperless":
		return "Paperless Tools"
	case "web":
		return "Web Content Tools"
	default:
		return "Other"
	}
}

func generateToolMarkdown(tool mcp.Tool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("### `%s`\n\n", tool.Name))
	if tool.Description != "" {
		sb.WriteString(tool.Description)
		sb.WriteString("\n\n")
	}

	if len(tool.InputSchema.Properties) > 0 {
		sb.WriteString("**Parameters:**\n\n")

		propNames := make([]string, 0, len(tool.InputSchema.Properties))
		for name := range tool.InputSchema.Properties {
			propNames = append(propNames, name)
		}
		sort.Strings(propNames)

		for _, name := range propNames {
			prop := tool.InputSchema.Properties[name]
			required := ""
			if contains(tool.InputSchema.Required, name) {
				required = " (required)"
			}

			propType := getPropertyType(prop)
			description := ""
			if propMap, ok := prop.(map[string]interface{}); ok {
				if desc, ok := propMap["description"].(string); ok {
					description = desc
				}
			}

			sb.WriteString(fmt.Sprintf("- `%s` (%s)%s: %s\n", name, propType, required, description))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func getPropertyType(prop interface{}) string {
	propMap, ok := prop.(map[string]interface{})
	if !ok {
		return "unknown"
	}
	if t, ok := propMap["type"].(string); ok {
		return t
	}
	return "unknown"
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
