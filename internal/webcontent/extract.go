package webcontent

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/dom"
	readability "github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
)

// Extraction method names. MethodAuto walks the strategy chain and takes
// the first non-empty result.
const (
	MethodAuto        = "auto"
	MethodTrafilatura = "trafilatura"
	MethodReadability = "readability"
	MethodBasic       = "basic"
)

// Metadata describes the extracted page. Every strategy produces its own
// metadata; values are never mixed across strategies.
type Metadata struct {
	Title  string
	Author string
	Date   string
}

// Result is the outcome of a successful extraction.
type Result struct {
	Content  string
	Metadata Metadata
	Strategy string
}

// StrategyFunc extracts markdown content and metadata from raw HTML.
type StrategyFunc func(htmlContent string, pageURL *url.URL) (string, Metadata, error)

// Strategy is one named extraction approach.
type Strategy struct {
	Name    string
	Extract StrategyFunc
}

// Extractor runs an ordered chain of extraction strategies.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor creates an Extractor with the default strategy chain:
// trafilatura, then readability, then the DOM heuristic.
func NewExtractor() *Extractor {
	return &Extractor{
		strategies: []Strategy{
			{Name: MethodTrafilatura, Extract: extractTrafilatura},
			{Name: MethodReadability, Extract: extractReadability},
			{Name: MethodBasic, Extract: extractBasic},
		},
	}
}

// NewExtractorWithStrategies creates an Extractor with a custom chain.
func NewExtractorWithStrategies(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Strategies returns the names of the configured strategy chain in order.
func (e *Extractor) Strategies() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name
	}
	return names
}

// Extract runs the requested method against the HTML. With MethodAuto the
// chain is walked in order and the first strategy yielding non-empty
// content wins, together with that strategy's own metadata. A named method
// pins a single strategy.
func (e *Extractor) Extract(htmlContent string, pageURL *url.URL, method string, includeLinks bool) (*Result, error) {
	if method == "" {
		method = MethodAuto
	}

	if method != MethodAuto {
		strategy, ok := e.strategy(method)
		if !ok {
			return nil, fmt.Errorf("unknown extraction method %q", method)
		}
		return e.run(strategy, htmlContent, pageURL, includeLinks)
	}

	var lastErr error
	for _, strategy := range e.strategies {
		result, err := e.run(strategy, htmlContent, pageURL, includeLinks)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("could not extract content with any method: %w", lastErr)
	}
	return nil, fmt.Errorf("could not extract content with any method")
}

func (e *Extractor) strategy(name string) (Strategy, bool) {
	for _, s := range e.strategies {
		if s.Name == name {
			return s, true
		}
	}
	return Strategy{}, false
}

func (e *Extractor) run(strategy Strategy, htmlContent string, pageURL *url.URL, includeLinks bool) (*Result, error) {
	content, metadata, err := strategy.Extract(htmlContent, pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strategy.Name, err)
	}

	if !includeLinks {
		content = StripLinks(content)
	}
	content = collapseBlankLines(strings.TrimSpace(content))

	if content == "" {
		return nil, fmt.Errorf("%s: no content extracted", strategy.Name)
	}

	return &Result{
		Content:  content,
		Metadata: metadata,
		Strategy: strategy.Name,
	}, nil
}

var (
	imagePattern      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkPattern       = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

// StripLinks removes markdown images and unwraps markdown links, keeping
// the link text.
func StripLinks(markdown string) string {
	stripped := imagePattern.ReplaceAllString(markdown, "")
	return linkPattern.ReplaceAllString(stripped, "$1")
}

func collapseBlankLines(s string) string {
	return blankLinesPattern.ReplaceAllString(s, "\n\n")
}

func newConverter() *md.Converter {
	return md.NewConverter("", true, nil)
}

// extractTrafilatura runs the trafilatura content extractor.
func extractTrafilatura(htmlContent string, pageURL *url.URL) (string, Metadata, error) {
	result, err := trafilatura.Extract(strings.NewReader(htmlContent), trafilatura.Options{
		OriginalURL:   pageURL,
		IncludeLinks:  true,
		IncludeImages: true,
	})
	if err != nil {
		return "", Metadata{}, err
	}
	if result.ContentNode == nil {
		return "", Metadata{}, fmt.Errorf("no main content found")
	}

	markdown, err := newConverter().ConvertString(dom.OuterHTML(result.ContentNode))
	if err != nil {
		return "", Metadata{}, err
	}

	metadata := Metadata{
		Title:  result.Metadata.Title,
		Author: result.Metadata.Author,
	}
	if !result.Metadata.Date.IsZero() {
		metadata.Date = result.Metadata.Date.Format("2006-01-02")
	}

	return markdown, metadata, nil
}

// extractReadability runs the readability content extractor.
func extractReadability(htmlContent string, pageURL *url.URL) (string, Metadata, error) {
	article, err := readability.FromReader(strings.NewReader(htmlContent), pageURL)
	if err != nil {
		return "", Metadata{}, err
	}

	markdown, err := newConverter().ConvertString(article.Content)
	if err != nil {
		return "", Metadata{}, err
	}

	metadata := Metadata{
		Title:  article.Title,
		Author: article.Byline,
	}
	if article.PublishedTime != nil {
		metadata.Date = article.PublishedTime.Format("2006-01-02")
	}

	return markdown, metadata, nil
}

// basicCandidates are tried in order for the DOM heuristic; body is the
// final fallback.
var basicCandidates = []string{
	"main",
	"article",
	`div[class*="content"]`,
	`div[class*="main"]`,
	`div[class*="article"]`,
	`div[class*="post"]`,
	"body",
}

// extractBasic is the last-resort DOM heuristic: strip boilerplate
// elements, pick the first plausible content container, and convert it.
func extractBasic(htmlContent string, pageURL *url.URL) (string, Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", Metadata{}, err
	}

	doc.Find("script, style, nav, footer, header, aside, noscript, iframe").Remove()

	var container *goquery.Selection
	for _, selector := range basicCandidates {
		selection := doc.Find(selector).First()
		if selection.Length() > 0 && strings.TrimSpace(selection.Text()) != "" {
			container = selection
			break
		}
	}
	if container == nil {
		return "", Metadata{}, fmt.Errorf("no content container found")
	}

	containerHTML, err := goquery.OuterHtml(container)
	if err != nil {
		return "", Metadata{}, err
	}

	markdown, err := newConverter().ConvertString(containerHTML)
	if err != nil {
		return "", Metadata{}, err
	}

	metadata := Metadata{
		Title:  strings.TrimSpace(doc.Find("title").First().Text()),
		Author: strings.TrimSpace(doc.Find(`meta[name="author"]`).AttrOr("content", "")),
	}
	if published := doc.Find(`meta[property="article:published_time"]`).AttrOr("content", ""); len(published) >= 10 {
		metadata.Date = published[:10]
	}

	return markdown, metadata, nil
}
