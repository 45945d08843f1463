package github

import "time"

// ContentEntry is one entry of the repository contents API: a file, a
// directory, or a symlink. Content is base64 when Type is "file".
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	Encoding    string `json:"encoding"`
	HTMLURL     string `json:"html_url"`
	DownloadURL string `json:"download_url"`
}

// RepoInfo is the repository details payload.
type RepoInfo struct {
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	DefaultBranch   string    `json:"default_branch"`
	Language        string    `json:"language"`
	StargazersCount int64     `json:"stargazers_count"`
	ForksCount      int64     `json:"forks_count"`
	OpenIssuesCount int64     `json:"open_issues_count"`
	Size            int64     `json:"size"`
	Private         bool      `json:"private"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	HTMLURL         string    `json:"html_url"`
	Topics          []string  `json:"topics"`
	License         *License  `json:"license"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
}

// License is the license block of a repository payload.
type License struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// WorkflowRun is one GitHub Actions run.
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	RunNumber  int64     `json:"run_number"`
	Event      string    `json:"event"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	HeadBranch string    `json:"head_branch"`
	HeadSHA    string    `json:"head_sha"`
	HTMLURL    string    `json:"html_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// workflowRunsResponse is the envelope of the workflow runs list API.
type workflowRunsResponse struct {
	TotalCount   int64         `json:"total_count"`
	WorkflowRuns []WorkflowRun `json:"workflow_runs"`
}

// Gist is a GitHub gist with its files.
type Gist struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	HTMLURL     string              `json:"html_url"`
	Files       map[string]GistFile `json:"files"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// GistFile is one file of a gist. Content is only populated when a single
// gist is fetched or created, not in list responses.
type GistFile struct {
	Filename  string `json:"filename"`
	Type      string `json:"type"`
	Language  string `json:"language"`
	RawURL    string `json:"raw_url"`
	Size      int64  `json:"size"`
	Truncated bool   `json:"truncated"`
	Content   string `json:"content"`
}

// gistCreateRequest is the payload for creating a gist.
type gistCreateRequest struct {
	Description string                     `json:"description"`
	Public      bool                       `json:"public"`
	Files       map[string]gistFileContent `json:"files"`
}

type gistFileContent struct {
	Content string `json:"content"`
}

// languagesResponse maps language name to byte count.
type languagesResponse map[string]int64
