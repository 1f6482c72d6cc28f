package repository

import "fmt"

// UnresolvedTickerError means no token in the query mapped to a symbol.
type UnresolvedTickerError struct {
	Query string
}

func (e *UnresolvedTickerError) Error() string {
	return fmt.Sprintf("could not identify a ticker symbol in query %q", e.Query)
}

// NoDataError means the provider returned an empty price data set for a symbol.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no price data found for symbol %s", e.Symbol)
}

// InsufficientDataError means fewer trading points were returned than the
// requested window needs (days+1 points for a days-session change).
type InsufficientDataError struct {
	Symbol string
	Days   int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough data for a %d-day price change for symbol %s: got %d points, need %d",
		e.Days, e.Symbol, e.Got, e.Days+1)
}

// TransportError wraps a network, HTTP status, or decode failure from a
// provider, keeping it distinguishable from semantic failures.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
