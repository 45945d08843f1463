package alphavantage

import (
	"fmt"
	"strings"
)

// maxSeriesRows caps the number of bars rendered in a markdown table.
const maxSeriesRows = 30

// FormatQuote renders a quote as markdown.
func FormatQuote(q *Quote) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Global Quote: %s\n\n", q.Symbol))
	sb.WriteString(fmt.Sprintf("- **Price:** %s\n", q.Price))
	sb.WriteString(fmt.Sprintf("- **Change:** %s (%s)\n", q.Change, q.ChangePercent))
	sb.WriteString(fmt.Sprintf("- **Open:** %s\n", q.Open))
	sb.WriteString(fmt.Sprintf("- **High:** %s\n", q.High))
	sb.WriteString(fmt.Sprintf("- **Low:** %s\n", q.Low))
	sb.WriteString(fmt.Sprintf("- **Previous Close:** %s\n", q.PreviousClose))
	sb.WriteString(fmt.Sprintf("- **Volume:** %s\n", q.Volume))
	sb.WriteString(fmt.Sprintf("- **Latest Trading Day:** %s\n", q.LatestTradingDay))

	return sb.String()
}

// FormatSeries renders a time series as a markdown table, newest bar first.
// Output is capped at maxSeriesRows rows.
func FormatSeries(ts *TimeSeries) string {
	var sb strings.Builder

	if ts.Interval != "" {
		sb.WriteString(fmt.Sprintf("# Intraday Series: %s (%s)\n\n", ts.Symbol, ts.Interval))
	} else {
		sb.WriteString(fmt.Sprintf("# Daily Series: %s\n\n", ts.Symbol))
	}

	if ts.LastRefreshed != "" {
		sb.WriteString(fmt.Sprintf("**Last Refreshed:** %s", ts.LastRefreshed))
		if ts.TimeZone != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", ts.TimeZone))
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("| Time | Open | High | Low | Close | Volume |\n")
	sb.WriteString("|------|------|------|-----|-------|--------|\n")

	rows := len(ts.Bars)
	if rows > maxSeriesRows {
		rows = maxSeriesRows
	}
	for _, bar := range ts.Bars[:rows] {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			bar.Timestamp, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume))
	}

	if len(ts.Bars) > rows {
		sb.WriteString(fmt.Sprintf("\n_Showing %d of %d entries._\n", rows, len(ts.Bars)))
	}

	return sb.String()
}

// FormatMatches renders symbol search results as markdown.
func FormatMatches(keywords string, matches []SymbolMatch) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Symbol Search: %s\n\n", keywords))

	if len(matches) == 0 {
		sb.WriteString("No matching symbols found.\n")
		return sb.String()
	}

	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, m.Symbol))
		sb.WriteString(fmt.Sprintf("- **Name:** %s\n", m.Name))
		sb.WriteString(fmt.Sprintf("- **Type:** %s\n", m.Type))
		sb.WriteString(fmt.Sprintf("- **Region:** %s\n", m.Region))
		sb.WriteString(fmt.Sprintf("- **Currency:** %s\n", m.Currency))
		sb.WriteString(fmt.Sprintf("- **Match Score:** %s\n\n", m.MatchScore))
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}
