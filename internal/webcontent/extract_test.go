package webcontent

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func fixedStrategy(name, content string, metadata Metadata, err error) Strategy {
	return Strategy{
		Name: name,
		Extract: func(string, *url.URL) (string, Metadata, error) {
			return content, metadata, err
		},
	}
}

func TestExtractAutoFallback(t *testing.T) {
	// First two strategies fail or return nothing; the third must win with
	// its own metadata, untouched by the earlier attempts.
	extractor := NewExtractorWithStrategies(
		fixedStrategy("first", "", Metadata{Title: "First Title"}, nil),
		fixedStrategy("second", "", Metadata{}, errors.New("boom")),
		fixedStrategy("third", "## Content", Metadata{Title: "Third Title", Author: "Third Author"}, nil),
	)

	result, err := extractor.Extract("<html></html>", nil, MethodAuto, true)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if result.Strategy != "third" {
		t.Errorf("Strategy = %q, want third", result.Strategy)
	}
	if result.Content != "## Content" {
		t.Errorf("Content = %q", result.Content)
	}
	if result.Metadata.Title != "Third Title" || result.Metadata.Author != "Third Author" {
		t.Errorf("Metadata = %+v, want third strategy's metadata", result.Metadata)
	}
}

func TestExtractAutoFirstWins(t *testing.T) {
	extractor := NewExtractorWithStrategies(
		fixedStrategy("first", "first content", Metadata{Title: "First"}, nil),
		fixedStrategy("second", "second content", Metadata{Title: "Second"}, nil),
	)

	result, err := extractor.Extract("<html></html>", nil, MethodAuto, true)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Strategy != "first" || result.Metadata.Title != "First" {
		t.Errorf("result = %+v, want first strategy", result)
	}
}

func TestExtractPinnedMethod(t *testing.T) {
	extractor := NewExtractorWithStrategies(
		fixedStrategy("first", "first content", Metadata{}, nil),
		fixedStrategy("second", "second content", Metadata{Title: "Second"}, nil),
	)

	result, err := extractor.Extract("<html></html>", nil, "second", true)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Strategy != "second" {
		t.Errorf("Strategy = %q, want second", result.Strategy)
	}
}

func TestExtractUnknownMethod(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Extract("<html></html>", nil, "psychic", true)
	if err == nil {
		t.Fatal("Extract() error = nil, want error for unknown method")
	}
	if !strings.Contains(err.Error(), "unknown extraction method") {
		t.Errorf("error = %q", err)
	}
}

func TestExtractAllFail(t *testing.T) {
	extractor := NewExtractorWithStrategies(
		fixedStrategy("first", "", Metadata{}, nil),
		fixedStrategy("second", "   \n  ", Metadata{}, nil),
	)

	_, err := extractor.Extract("<html></html>", nil, MethodAuto, true)
	if err == nil {
		t.Fatal("Extract() error = nil, want error when nothing extracts")
	}
	if !strings.Contains(err.Error(), "could not extract content") {
		t.Errorf("error = %q", err)
	}
}

func TestExtractStripsLinks(t *testing.T) {
	content := "See [the docs](https://example.com/docs) and ![logo](https://example.com/logo.png) here."
	extractor := NewExtractorWithStrategies(
		fixedStrategy("only", content, Metadata{}, nil),
	)

	result, err := extractor.Extract("<html></html>", nil, MethodAuto, false)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Content != "See the docs and  here." {
		t.Errorf("Content = %q", result.Content)
	}

	// With includeLinks the markdown passes through.
	result, err = extractor.Extract("<html></html>", nil, MethodAuto, true)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Content != content {
		t.Errorf("Content = %q, want original", result.Content)
	}
}

func TestExtractCollapsesBlankLines(t *testing.T) {
	extractor := NewExtractorWithStrategies(
		fixedStrategy("only", "a\n\n\n\n\nb", Metadata{}, nil),
	)

	result, err := extractor.Extract("<html></html>", nil, MethodAuto, true)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if result.Content != "a\n\nb" {
		t.Errorf("Content = %q", result.Content)
	}
}

func TestStripLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"link", "[text](http://x)", "text"},
		{"image removed", "![alt](http://x/i.png)", ""},
		{"empty link text", "[](http://x)", ""},
		{"plain text", "no links here", "no links here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripLinks(tt.in); got != tt.want {
				t.Errorf("StripLinks(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractBasic(t *testing.T) {
	page := `<html>
	<head>
		<title>Test Page</title>
		<meta name="author" content="Jane Roe">
		<meta property="article:published_time" content="2026-03-14T08:00:00Z">
	</head>
	<body>
		<nav>Navigation junk</nav>
		<main>
			<h1>Heading</h1>
			<p>Body paragraph.</p>
		</main>
		<footer>Footer junk</footer>
		<script>evil()</script>
	</body>
</html>`

	pageURL, _ := url.Parse("https://example.com/post")
	content, metadata, err := extractBasic(page, pageURL)
	if err != nil {
		t.Fatalf("extractBasic() error = %v", err)
	}

	if !strings.Contains(content, "Heading") || !strings.Contains(content, "Body paragraph.") {
		t.Errorf("content missing main text:\n%s", content)
	}
	if strings.Contains(content, "Navigation junk") || strings.Contains(content, "Footer junk") || strings.Contains(content, "evil()") {
		t.Errorf("boilerplate not stripped:\n%s", content)
	}
	if metadata.Title != "Test Page" {
		t.Errorf("Title = %q", metadata.Title)
	}
	if metadata.Author != "Jane Roe" {
		t.Errorf("Author = %q", metadata.Author)
	}
	if metadata.Date != "2026-03-14" {
		t.Errorf("Date = %q", metadata.Date)
	}
}

func TestDefaultChainOrder(t *testing.T) {
	extractor := NewExtractor()

	want := []string{MethodTrafilatura, MethodReadability, MethodBasic}
	got := extractor.Strategies()
	if len(got) != len(want) {
		t.Fatalf("chain = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chain[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
