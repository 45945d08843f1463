// Package alphavantage provides a thin client for the Alpha Vantage market
// data API and markdown renderers for its responses.
//
// All operations go through the single /query endpoint selected by the
// function parameter (GLOBAL_QUOTE, TIME_SERIES_DAILY, TIME_SERIES_INTRADAY,
// SYMBOL_SEARCH). Alpha Vantage reports request errors and throttling inside
// 200 responses, so the client checks the sentinel keys "Error Message",
// "Note" and "Information" before decoding.
package alphavantage
