package alphavantage_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/toolfetch/toolfetch/internal/alphavantage"
	"github.com/toolfetch/toolfetch/internal/events"
	"github.com/toolfetch/toolfetch/internal/server"
	"github.com/toolfetch/toolfetch/internal/tools/common"
)

// RegisterAlphaVantageTools registers all Alpha Vantage stock data tools
// with the MCP server
func RegisterAlphaVantageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	dailyTool := mcp.NewTool("av_daily_series",
		mcp.WithDescription("Get daily stock price time series (open, high, low, close, volume) for a symbol"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT')"),
		),
	)

	s.AddTool(dailyTool, common.InstrumentedToolHandlerWithService(
		"av_daily_series", "alphavantage", "daily_series", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDailySeries(ctx, request, sc)
		}))

	intradayTool := mcp.NewTool("av_intraday_series",
		mcp.WithDescription("Get intraday stock price time series for a symbol at a given interval"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT')"),
		),
		mcp.WithString("interval",
			mcp.Description("Bar interval: 1min, 5min, 15min, 30min or 60min (default: 5min)"),
		),
	)

	s.AddTool(intradayTool, common.InstrumentedToolHandlerWithService(
		"av_intraday_series", "alphavantage", "intraday_series", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleIntradaySeries(ctx, request, sc)
		}))

	quoteTool := mcp.NewTool("av_global_quote",
		mcp.WithDescription("Get the latest quote (price, change, volume) for a stock symbol"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock ticker symbol (e.g., 'AAPL', 'MSFT')"),
		),
	)

	s.AddTool(quoteTool, common.InstrumentedToolHandlerWithService(
		"av_global_quote", "alphavantage", "global_quote", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGlobalQuote(ctx, request, sc)
		}))

	searchTool := mcp.NewTool("av_symbol_search",
		mcp.WithDescription("Search for stock symbols matching keywords"),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Search keywords (e.g., company name or partial ticker)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"av_symbol_search", "alphavantage", "symbol_search", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSymbolSearch(ctx, request, sc)
		}))

	return nil
}

// avClient returns the Alpha Vantage client, or an error result string when
// the API key is missing. The check runs before any network call.
func avClient(sc *server.ServerContext) (*alphavantage.Client, *mcp.CallToolResult) {
	client, err := sc.AlphaVantageClient()
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return client, nil
}

func symbolArg(args map[string]interface{}) (string, *mcp.CallToolResult) {
	symbol, ok := args["symbol"].(string)
	if !ok || strings.TrimSpace(symbol) == "" {
		return "", mcp.NewToolResultError("symbol is required")
	}
	return strings.ToUpper(strings.TrimSpace(symbol)), nil
}

func handleDailySeries(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	symbol, errResult := symbolArg(args)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := avClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	emitter := events.FromContext(ctx, sc.AlphaVantageConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching daily series for %s", symbol))

	series, err := client.DailySeries(ctx, symbol)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch daily series for %s", symbol))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch daily series: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched daily series for %s", symbol))
	return mcp.NewToolResultText(alphavantage.FormatSeries(series)), nil
}

func handleIntradaySeries(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	symbol, errResult := symbolArg(args)
	if errResult != nil {
		return errResult, nil
	}

	interval := common.StringArg(args, "interval", "5min")
	if !alphavantage.IsValidInterval(interval) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"invalid interval %q: must be one of %s",
			interval, strings.Join(alphavantage.ValidIntervals, ", "))), nil
	}

	client, errResult := avClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	emitter := events.FromContext(ctx, sc.AlphaVantageConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching %s intraday series for %s", interval, symbol))

	series, err := client.IntradaySeries(ctx, symbol, interval)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch intraday series for %s", symbol))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch intraday series: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched intraday series for %s", symbol))
	return mcp.NewToolResultText(alphavantage.FormatSeries(series)), nil
}

func handleGlobalQuote(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	symbol, errResult := symbolArg(args)
	if errResult != nil {
		return errResult, nil
	}

	client, errResult := avClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	emitter := events.FromContext(ctx, sc.AlphaVantageConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Fetching quote for %s", symbol))

	quote, err := client.GlobalQuote(ctx, symbol)
	if err != nil {
		emitter.Error(ctx, fmt.Sprintf("Failed to fetch quote for %s", symbol))
		return mcp.NewToolResultError(fmt.Sprintf("Failed to fetch quote: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Fetched quote for %s", symbol))
	return mcp.NewToolResultText(alphavantage.FormatQuote(quote)), nil
}

func handleSymbolSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	keywords, ok := args["keywords"].(string)
	if !ok || strings.TrimSpace(keywords) == "" {
		return mcp.NewToolResultError("keywords is required"), nil
	}
	keywords = strings.TrimSpace(keywords)

	client, errResult := avClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	emitter := events.FromContext(ctx, sc.AlphaVantageConfig().EnableStatusUpdates)
	emitter.Progress(ctx, fmt.Sprintf("Searching symbols for %q", keywords))

	matches, err := client.SearchSymbols(ctx, keywords)
	if err != nil {
		emitter.Error(ctx, "Symbol search failed")
		return mcp.NewToolResultError(fmt.Sprintf("Symbol search failed: %v", err)), nil
	}

	emitter.Success(ctx, fmt.Sprintf("Found %d matching symbols", len(matches)))
	return mcp.NewToolResultText(alphavantage.FormatMatches(keywords, matches)), nil
}
