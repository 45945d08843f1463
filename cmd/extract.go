package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolfetch/toolfetch/internal/webcontent"
)

func newExtractCmd() *cobra.Command {
	var (
		method       string
		includeLinks bool
		showMetadata bool
		output       string
	)

	cmd := &cobra.Command{
		Use:   "extract <url>",
		Short: "Fetch a web page and print its main content as markdown",
		Long: `Fetch a web page, extract its main content and print it as markdown.

This runs the same extraction pipeline the web_fetch MCP tool uses,
without starting a server. Useful for testing extraction quality on a
given page or for scripting.

Extraction methods:
  auto          Try trafilatura, readability and basic in order (default)
  trafilatura   Trafilatura content extraction
  readability   Mozilla Readability port
  basic         Conservative HTML to markdown conversion`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], method, includeLinks, showMetadata, output)
		},
	}

	cmd.Flags().StringVar(&method, "method", "auto", "Extraction method: auto, trafilatura, readability or basic")
	cmd.Flags().BoolVar(&includeLinks, "include-links", true, "Keep hyperlinks in the extracted markdown")
	cmd.Flags().BoolVar(&showMetadata, "show-metadata", true, "Prepend a title/source/author header to the content")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to a file instead of stdout")

	return cmd
}

func runExtract(cmd *cobra.Command, rawURL, method string, includeLinks, showMetadata bool, output string) error {
	if _, err := webcontent.ValidateURL(rawURL); err != nil {
		return err
	}

	fetcher := webcontent.NewFetcher(webcontent.ConfigFromEnv())
	html, pageURL, err := fetcher.Fetch(cmd.Context(), rawURL)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}

	extractor := webcontent.NewExtractor()
	result, err := extractor.Extract(html, pageURL, method, includeLinks)
	if err != nil {
		return fmt.Errorf("failed to extract content from %s: %w", rawURL, err)
	}

	formatted := webcontent.FormatPage(result, rawURL, showMetadata)

	if output != "" {
		if err := os.WriteFile(output, []byte(formatted), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		fmt.Printf("Wrote %s\n", output)
		return nil
	}

	fmt.Println(formatted)
	return nil
}
