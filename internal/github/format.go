package github

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/lexers"
)

// FilePrefs are per-invocation display preferences for file rendering.
type FilePrefs struct {
	ShowLineNumbers    bool
	SyntaxHighlighting bool
}

// DefaultFilePrefs returns the display defaults used when the caller sends
// no preferences.
func DefaultFilePrefs() FilePrefs {
	return FilePrefs{
		ShowLineNumbers:    true,
		SyntaxHighlighting: true,
	}
}

// FormatSize renders a byte count with 1024 boundaries and one decimal.
func FormatSize(bytes int64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// DetectLanguage maps a filename to a code fence language tag using the
// chroma lexer registry. Returns empty for unknown extensions.
func DetectLanguage(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if len(config.Aliases) > 0 {
		return config.Aliases[0]
	}
	return strings.ToLower(config.Name)
}

// RunLabel renders a workflow run status and conclusion as a display label.
func RunLabel(status, conclusion string) string {
	switch status {
	case "completed":
		if conclusion != "" {
			return fmt.Sprintf("Completed (%s)", conclusion)
		}
		return "Completed"
	case "in_progress":
		return "In progress"
	case "queued":
		return "Queued"
	case "waiting":
		return "Waiting"
	default:
		return status
	}
}

// FormatFileContent renders a fetched file as markdown. raw is the decoded
// file content; non-UTF-8 content is reported as binary without a body.
func FormatFileContent(repoSpec, ref string, entry *ContentEntry, raw []byte, prefs FilePrefs) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# File: %s\n\n", entry.Name))
	sb.WriteString(fmt.Sprintf("**Repository:** %s\n", repoSpec))
	sb.WriteString(fmt.Sprintf("**Path:** %s\n", entry.Path))
	sb.WriteString(fmt.Sprintf("**Branch:** %s\n", ref))
	sb.WriteString(fmt.Sprintf("**Size:** %s\n\n", FormatSize(entry.Size)))

	if !utf8.Valid(raw) {
		sb.WriteString(fmt.Sprintf("Binary file (%d bytes)\n", entry.Size))
		return sb.String()
	}

	text := strings.TrimRight(string(raw), "\n")
	if prefs.ShowLineNumbers {
		text = numberLines(text)
	}

	lang := ""
	if prefs.SyntaxHighlighting {
		lang = DetectLanguage(entry.Name)
	}

	sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n", lang, text))
	return sb.String()
}

// numberLines prefixes each line with a right-aligned line number.
func numberLines(text string) string {
	lines := strings.Split(text, "\n")
	width := len(fmt.Sprintf("%d", len(lines)))

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf("%*d | %s", width, i+1, line))
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatDirListing renders a directory listing: directories first, then
// files, each sorted by name.
func FormatDirListing(repoSpec, path, ref string, entries []ContentEntry) string {
	var sb strings.Builder

	displayPath := path
	if displayPath == "" {
		displayPath = "/"
	}
	sb.WriteString(fmt.Sprintf("# Directory: %s/%s\n\n", repoSpec, strings.TrimPrefix(displayPath, "/")))
	sb.WriteString(fmt.Sprintf("**Branch:** %s\n\n", ref))

	var dirs, files []ContentEntry
	for _, entry := range entries {
		if entry.Type == "dir" {
			dirs = append(dirs, entry)
		} else {
			files = append(files, entry)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	if len(dirs) == 0 && len(files) == 0 {
		sb.WriteString("Empty directory.\n")
		return sb.String()
	}

	if len(dirs) > 0 {
		sb.WriteString("## Directories\n\n")
		for _, dir := range dirs {
			sb.WriteString(fmt.Sprintf("- `%s/`\n", dir.Name))
		}
		sb.WriteString("\n")
	}

	if len(files) > 0 {
		sb.WriteString("## Files\n\n")
		for _, file := range files {
			sb.WriteString(fmt.Sprintf("- `%s` (%s)\n", file.Name, FormatSize(file.Size)))
		}
	}

	return sb.String()
}

// FormatRepoInfo renders repository details and language byte shares.
func FormatRepoInfo(info *RepoInfo, langs map[string]int64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Repository: %s\n\n", info.FullName))
	if info.Description != "" {
		sb.WriteString(info.Description + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("- **Default Branch:** %s\n", info.DefaultBranch))
	sb.WriteString(fmt.Sprintf("- **Stars:** %d\n", info.StargazersCount))
	sb.WriteString(fmt.Sprintf("- **Forks:** %d\n", info.ForksCount))
	sb.WriteString(fmt.Sprintf("- **Open Issues:** %d\n", info.OpenIssuesCount))
	sb.WriteString(fmt.Sprintf("- **Private:** %t\n", info.Private))
	if info.License != nil {
		sb.WriteString(fmt.Sprintf("- **License:** %s\n", info.License.Name))
	}
	if len(info.Topics) > 0 {
		sb.WriteString(fmt.Sprintf("- **Topics:** %s\n", strings.Join(info.Topics, ", ")))
	}
	if !info.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Created:** %s\n", info.CreatedAt.Format("2006-01-02")))
	}
	if !info.PushedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Last Push:** %s\n", info.PushedAt.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf("- **URL:** %s\n", info.HTMLURL))

	if len(langs) > 0 {
		sb.WriteString("\n## Languages\n\n")

		var total int64
		for _, count := range langs {
			total += count
		}

		type langShare struct {
			name  string
			bytes int64
		}
		shares := make([]langShare, 0, len(langs))
		for name, count := range langs {
			shares = append(shares, langShare{name, count})
		}
		// Byte share descending, name ascending on ties.
		sort.Slice(shares, func(i, j int) bool {
			if shares[i].bytes != shares[j].bytes {
				return shares[i].bytes > shares[j].bytes
			}
			return shares[i].name < shares[j].name
		})

		for _, share := range shares {
			percent := float64(share.bytes) / float64(total) * 100
			sb.WriteString(fmt.Sprintf("- **%s:** %.1f%%\n", share.name, percent))
		}
	}

	return sb.String()
}

// FormatWorkflowRuns renders a list of GitHub Actions runs.
func FormatWorkflowRuns(repoSpec string, runs []WorkflowRun, total int64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Workflow Runs: %s\n\n", repoSpec))

	if len(runs) == 0 {
		sb.WriteString("No workflow runs found.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("**Total:** %d (showing %d)\n\n", total, len(runs)))

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("## %s #%d\n\n", run.Name, run.RunNumber))
		sb.WriteString(fmt.Sprintf("- **Status:** %s\n", RunLabel(run.Status, run.Conclusion)))
		sb.WriteString(fmt.Sprintf("- **Branch:** %s\n", run.HeadBranch))
		sb.WriteString(fmt.Sprintf("- **Event:** %s\n", run.Event))
		if !run.CreatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("- **Started:** %s\n", run.CreatedAt.Format("2006-01-02 15:04:05")))
		}
		sb.WriteString(fmt.Sprintf("- **URL:** %s\n\n", run.HTMLURL))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatWorkflowRun renders a single GitHub Actions run in detail.
func FormatWorkflowRun(repoSpec string, run *WorkflowRun) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Workflow Run: %s #%d\n\n", run.Name, run.RunNumber))
	sb.WriteString(fmt.Sprintf("**Repository:** %s\n\n", repoSpec))
	sb.WriteString(fmt.Sprintf("- **Run ID:** %d\n", run.ID))
	sb.WriteString(fmt.Sprintf("- **Status:** %s\n", RunLabel(run.Status, run.Conclusion)))
	sb.WriteString(fmt.Sprintf("- **Branch:** %s\n", run.HeadBranch))
	sb.WriteString(fmt.Sprintf("- **Commit:** %s\n", shortSHA(run.HeadSHA)))
	sb.WriteString(fmt.Sprintf("- **Event:** %s\n", run.Event))
	if !run.CreatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Started:** %s\n", run.CreatedAt.Format("2006-01-02 15:04:05")))
	}
	if !run.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Updated:** %s\n", run.UpdatedAt.Format("2006-01-02 15:04:05")))
	}
	sb.WriteString(fmt.Sprintf("- **URL:** %s\n", run.HTMLURL))

	return sb.String()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// FormatGistList renders a gist list without file contents.
func FormatGistList(gists []Gist) string {
	var sb strings.Builder

	sb.WriteString("# Gists\n\n")

	if len(gists) == 0 {
		sb.WriteString("No gists found.\n")
		return sb.String()
	}

	for i, gist := range gists {
		description := gist.Description
		if description == "" {
			description = "(no description)"
		}
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, description))
		sb.WriteString(fmt.Sprintf("- **ID:** %s\n", gist.ID))
		sb.WriteString(fmt.Sprintf("- **Public:** %t\n", gist.Public))
		if !gist.UpdatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("- **Updated:** %s\n", gist.UpdatedAt.Format("2006-01-02")))
		}

		names := sortedFileNames(gist.Files)
		sb.WriteString(fmt.Sprintf("- **Files:** %s\n", strings.Join(names, ", ")))
		sb.WriteString(fmt.Sprintf("- **URL:** %s\n\n", gist.HTMLURL))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatGist renders a single gist with fenced file contents.
func FormatGist(gist *Gist) string {
	var sb strings.Builder

	description := gist.Description
	if description == "" {
		description = "(no description)"
	}
	sb.WriteString(fmt.Sprintf("# Gist: %s\n\n", description))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", gist.ID))
	sb.WriteString(fmt.Sprintf("**Public:** %t\n", gist.Public))
	sb.WriteString(fmt.Sprintf("**URL:** %s\n\n", gist.HTMLURL))

	for _, name := range sortedFileNames(gist.Files) {
		file := gist.Files[name]
		sb.WriteString(fmt.Sprintf("## %s\n\n", file.Filename))

		lang := DetectLanguage(file.Filename)
		sb.WriteString(fmt.Sprintf("```%s\n%s\n```\n\n", lang, strings.TrimRight(file.Content, "\n")))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatCreatedGist renders the confirmation for a freshly created gist.
// The filenames reported are the keys GitHub echoed back.
func FormatCreatedGist(gist *Gist) string {
	var sb strings.Builder

	sb.WriteString("# Gist Created\n\n")
	sb.WriteString(fmt.Sprintf("- **ID:** %s\n", gist.ID))
	if gist.Description != "" {
		sb.WriteString(fmt.Sprintf("- **Description:** %s\n", gist.Description))
	}
	sb.WriteString(fmt.Sprintf("- **Public:** %t\n", gist.Public))
	sb.WriteString(fmt.Sprintf("- **Files:** %s\n", strings.Join(sortedFileNames(gist.Files), ", ")))
	sb.WriteString(fmt.Sprintf("- **URL:** %s\n", gist.HTMLURL))

	return sb.String()
}

// FormatGistDeleted renders the deletion confirmation marker.
func FormatGistDeleted(id string) string {
	return fmt.Sprintf("Gist %s deleted successfully.", id)
}

func sortedFileNames(files map[string]GistFile) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
