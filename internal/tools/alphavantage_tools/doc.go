// Package alphavantage_tools provides MCP tools for Alpha Vantage stock
// market data: daily and intraday time series, latest quotes, and symbol
// search. All tools require ALPHAVANTAGE_API_KEY and return an error string
// without making a network call when it is missing.
package alphavantage_tools
