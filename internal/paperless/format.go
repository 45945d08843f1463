package paperless

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// truncationMarker is appended when document content is cut at the size cap.
const truncationMarker = "\n\n[Content truncated...]"

// notePreviewLength caps note previews in document rendering.
const notePreviewLength = 200

// DocPrefs are per-invocation display preferences for document rendering.
type DocPrefs struct {
	IncludeContent bool
	ShowHighlights bool
}

// DefaultDocPrefs returns the display defaults used when the caller sends
// no preferences.
func DefaultDocPrefs() DocPrefs {
	return DocPrefs{
		IncludeContent: false,
		ShowHighlights: true,
	}
}

var (
	spanTagPattern = regexp.MustCompile(`</?span[^>]*>`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// TruncateContent cuts content at max bytes and appends the truncation
// marker. Content at or under the cap passes through untouched.
func TruncateContent(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	return content[:max] + truncationMarker
}

// CleanHighlights converts search-hit highlight HTML into markdown: match
// spans become bold markers, any other markup is stripped.
func CleanHighlights(highlights string) string {
	cleaned := spanTagPattern.ReplaceAllString(highlights, "**")
	cleaned = htmlTagPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// FormatDocument renders one document as a markdown section. position is
// the 1-based list position; maxContent caps rendered content bytes.
func FormatDocument(doc *Document, position int, prefs DocPrefs, maxContent int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %d. %s (ID: #%d)\n\n", position, doc.Title, doc.ID))

	if doc.SearchHit != nil {
		sb.WriteString(fmt.Sprintf("**Relevance Score:** %.3f\n", doc.SearchHit.Score))
		if prefs.ShowHighlights && doc.SearchHit.Highlights != "" {
			sb.WriteString(fmt.Sprintf("**Highlights:** %s\n", CleanHighlights(doc.SearchHit.Highlights)))
		}
		sb.WriteString("\n")
	}

	if doc.Created != "" {
		sb.WriteString(fmt.Sprintf("- **Created:** %s\n", doc.Created))
	}
	if doc.Added != "" {
		sb.WriteString(fmt.Sprintf("- **Added:** %s\n", doc.Added))
	}
	if !doc.Correspondent.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Correspondent:** %s\n", doc.Correspondent))
	}
	if !doc.DocumentType.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Type:** %s\n", doc.DocumentType))
	}
	if len(doc.Tags) > 0 {
		tags := make([]string, 0, len(doc.Tags))
		for _, tag := range doc.Tags {
			tags = append(tags, tag.String())
		}
		sb.WriteString(fmt.Sprintf("- **Tags:** %s\n", strings.Join(tags, ", ")))
	}
	if doc.ArchiveSerialNumber != nil {
		sb.WriteString(fmt.Sprintf("- **ASN:** %d\n", *doc.ArchiveSerialNumber))
	}

	if len(doc.Notes) > 0 {
		for _, note := range doc.Notes {
			preview := note.Note
			if len(preview) > notePreviewLength {
				preview = preview[:notePreviewLength] + "..."
			}
			sb.WriteString(fmt.Sprintf("- **Note:** %s\n", preview))
		}
	}

	if prefs.IncludeContent && doc.Content != "" {
		sb.WriteString("\n**Content:**\n\n")
		sb.WriteString(TruncateContent(doc.Content, maxContent))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatDocumentList renders a titled list of documents.
func FormatDocumentList(title string, list *DocumentList, prefs DocPrefs, maxContent int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if len(list.Results) == 0 {
		sb.WriteString("No documents found.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("**Total matches:** %d (showing %d)\n\n", list.Count, len(list.Results)))

	for i, doc := range list.Results {
		sb.WriteString(FormatDocument(&doc, i+1, prefs, maxContent))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatTags renders tags sorted by document count descending, then by
// lowercased name ascending.
func FormatTags(tags []Tag) string {
	var sb strings.Builder

	sb.WriteString("# Tags\n\n")

	if len(tags) == 0 {
		sb.WriteString("No tags found.\n")
		return sb.String()
	}

	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DocumentCount != sorted[j].DocumentCount {
			return sorted[i].DocumentCount > sorted[j].DocumentCount
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	for _, tag := range sorted {
		sb.WriteString(fmt.Sprintf("- **%s** (ID: %d, %d documents)\n", tag.Name, tag.ID, tag.DocumentCount))
	}

	return sb.String()
}

// FormatCorrespondents renders correspondents sorted by document count
// descending, then by lowercased name ascending.
func FormatCorrespondents(correspondents []Correspondent) string {
	var sb strings.Builder

	sb.WriteString("# Correspondents\n\n")

	if len(correspondents) == 0 {
		sb.WriteString("No correspondents found.\n")
		return sb.String()
	}

	sorted := make([]Correspondent, len(correspondents))
	copy(sorted, correspondents)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].DocumentCount != sorted[j].DocumentCount {
			return sorted[i].DocumentCount > sorted[j].DocumentCount
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	for _, c := range sorted {
		sb.WriteString(fmt.Sprintf("- **%s** (ID: %d, %d documents)\n", c.Name, c.ID, c.DocumentCount))
	}

	return sb.String()
}
