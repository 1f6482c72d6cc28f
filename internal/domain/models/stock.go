package models

import (
	"fmt"
	"math"
	"time"
)

// Timeframe is the lookback window derived from query phrasing.
// Days counts trading sessions, not calendar days.
type Timeframe struct {
	Days  int
	Label string
}

// PricePoint is a single end-of-day close from the market data provider.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// NewsArticle is one headline from the news provider, most relevant fields only.
type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// SymbolMatch is one candidate from the symbol-search provider.
type SymbolMatch struct {
	Symbol string
	Name   string
}

// StockInfo is the consolidated answer for one query. Built once by the
// aggregator and never mutated; the JSON keys are the external contract and
// must match what the schema-mode agent produces independently.
type StockInfo struct {
	Ticker       string  `json:"ticker" jsonschema_description:"Stock ticker symbol."`
	CurrentPrice float64 `json:"current_price" jsonschema_description:"Current stock price."`
	ChangePct    float64 `json:"change_pct" jsonschema_description:"Percentage change over timeframe."`
	Timeframe    string  `json:"timeframe" jsonschema_description:"Timeframe used for change."`
	TopHeadline  string  `json:"top_headline" jsonschema_description:"Most relevant news headline."`
	Analysis     string  `json:"analysis" jsonschema_description:"Summary of why the stock moved."`
}

// Analysis is the qualitative movement summary for one symbol.
type Analysis struct {
	Symbol      string
	ChangePct   float64
	Sentiment   string // "up" or "down"
	TopHeadline string
}

// Summary renders the analysis as one narrative sentence.
func (a Analysis) Summary() string {
	return fmt.Sprintf("%s is %s %.2f%% over the period; top story: %s",
		a.Symbol, a.Sentiment, math.Abs(a.ChangePct), a.TopHeadline)
}
