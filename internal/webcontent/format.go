package webcontent

import (
	"fmt"
	"strings"
)

// FormatPage renders an extraction result as markdown. With showMetadata
// the content is preceded by a metadata header block.
func FormatPage(result *Result, sourceURL string, showMetadata bool) string {
	if !showMetadata {
		return result.Content
	}

	var sb strings.Builder

	if result.Metadata.Title != "" {
		sb.WriteString(fmt.Sprintf("# %s\n\n", result.Metadata.Title))
	}
	sb.WriteString(fmt.Sprintf("**Source:** %s\n", sourceURL))
	if result.Metadata.Author != "" {
		sb.WriteString(fmt.Sprintf("**Author:** %s\n", result.Metadata.Author))
	}
	if result.Metadata.Date != "" {
		sb.WriteString(fmt.Sprintf("**Date:** %s\n", result.Metadata.Date))
	}
	sb.WriteString("\n---\n\n")
	sb.WriteString(result.Content)

	return sb.String()
}
