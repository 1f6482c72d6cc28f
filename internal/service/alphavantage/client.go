package alphavantage

import (
	"context"
	"net/url"
	"time"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"
	xhttp "StockScout/pkg/http"
)

// Client implements SymbolSearcher backed by the Alpha Vantage
// SYMBOL_SEARCH endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates a new Alpha Vantage symbol searcher.
func New(baseURL, apiKey string, timeout time.Duration) drepo.SymbolSearcher {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type searchMatch struct {
	Symbol string `json:"1. symbol"`
	Name   string `json:"2. name"`
}

type searchResponse struct {
	BestMatches []searchMatch `json:"bestMatches"`
}

// Search returns ticker candidates for keyword in provider order.
func (c *Client) Search(ctx context.Context, keyword string) ([]models.SymbolMatch, error) {
	q := url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {keyword},
		"apikey":   {c.apiKey},
	}

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.baseURL, q, &resp); err != nil {
		return nil, &drepo.TransportError{Provider: "alphavantage", Err: err}
	}

	matches := make([]models.SymbolMatch, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		matches = append(matches, models.SymbolMatch{Symbol: m.Symbol, Name: m.Name})
	}
	return matches, nil
}
