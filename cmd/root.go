package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the toolfetch application
var rootCmd = &cobra.Command{
	Use:   "toolfetch",
	Short: "MCP server for stock data, GitHub, Paperless and web content tools",
	Long: `toolfetch exposes external data sources as MCP (Model Context Protocol)
tools for AI assistants: Alpha Vantage stock market data, GitHub repository
contents and gists, Paperless-ngx document search, and web page content
extraction.

It can run as:
  - An MCP server over stdio or streamable HTTP (default)
  - A one-shot web content extractor (extract)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "toolfetch version %s\n" .Version}}`)

	// Optional .env file for local development; missing files are fine.
	_ = godotenv.Load()

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
