package marketstack

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"
	xhttp "StockScout/pkg/http"
)

const dateLayout = "2006-01-02"

// Marketstack serves EOD timestamps like "2024-05-17T00:00:00+0000".
var dateLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	dateLayout,
}

// Client implements MarketData backed by the Marketstack EOD endpoints.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

// New creates a new Marketstack market data client.
func New(baseURL, apiKey string, timeout time.Duration) drepo.MarketData {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type eodPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

type eodResponse struct {
	Data []eodPoint `json:"data"`
}

// LatestClose returns the most recent end-of-day close for symbol.
func (c *Client) LatestClose(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{
		"access_key": {c.apiKey},
		"symbols":    {symbol},
	}

	var resp eodResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/eod/latest", q, &resp); err != nil {
		return 0, &drepo.TransportError{Provider: "marketstack", Err: err}
	}
	if len(resp.Data) == 0 {
		return 0, &drepo.NoDataError{Symbol: symbol}
	}
	return resp.Data[0].Close, nil
}

// HistoricalCloses returns end-of-day closes for symbol within [from, to].
func (c *Client) HistoricalCloses(ctx context.Context, symbol string, from, to time.Time) ([]models.PricePoint, error) {
	q := url.Values{
		"access_key": {c.apiKey},
		"symbols":    {symbol},
		"date_from":  {from.Format(dateLayout)},
		"date_to":    {to.Format(dateLayout)},
		"limit":      {strconv.Itoa(1000)},
	}

	var resp eodResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"/eod", q, &resp); err != nil {
		return nil, &drepo.TransportError{Provider: "marketstack", Err: err}
	}

	points := make([]models.PricePoint, 0, len(resp.Data))
	for _, p := range resp.Data {
		date, err := parseDate(p.Date)
		if err != nil {
			return nil, &drepo.TransportError{Provider: "marketstack", Err: err}
		}
		points = append(points, models.PricePoint{Date: date, Close: p.Close})
	}
	return points, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable eod date %q", s)
}
