package alphavantage

// Quote is a real-time global quote for a single symbol. Alpha Vantage
// returns every value as a string; values are passed through untouched.
type Quote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// globalQuoteResponse is the envelope around a single quote.
type globalQuoteResponse struct {
	Quote Quote `json:"Global Quote"`
}

// Bar is one OHLCV entry of a time series.
type Bar struct {
	Timestamp string
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
}

// barPayload matches the numbered keys Alpha Vantage uses for series entries.
type barPayload struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// TimeSeries is a decoded daily or intraday series, newest bar first.
type TimeSeries struct {
	Symbol        string
	Interval      string // empty for daily series
	LastRefreshed string
	TimeZone      string
	Bars          []Bar
}

// SymbolMatch is one result of a symbol search.
type SymbolMatch struct {
	Symbol     string `json:"1. symbol"`
	Name       string `json:"2. name"`
	Type       string `json:"3. type"`
	Region     string `json:"4. region"`
	Currency   string `json:"8. currency"`
	MatchScore string `json:"9. matchScore"`
}

// symbolSearchResponse is the envelope around symbol search results.
type symbolSearchResponse struct {
	BestMatches []SymbolMatch `json:"bestMatches"`
}
