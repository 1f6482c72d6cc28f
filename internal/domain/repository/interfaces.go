package repository

import (
	"context"
	"time"

	"StockScout/internal/domain/models"
)

// SymbolSearcher looks up ticker candidates for a free-text keyword.
type SymbolSearcher interface {
	Search(ctx context.Context, keyword string) ([]models.SymbolMatch, error)
}

// MarketData fetches end-of-day closes from the market data provider.
type MarketData interface {
	// LatestClose returns the most recent end-of-day close for symbol.
	LatestClose(ctx context.Context, symbol string) (float64, error)
	// HistoricalCloses returns end-of-day closes for symbol within [from, to].
	// Order is provider-defined; callers sort as needed.
	HistoricalCloses(ctx context.Context, symbol string, from, to time.Time) ([]models.PricePoint, error)
}

// NewsSource fetches recent headlines for a symbol, most recent first.
// An empty slice is a legitimate result, not an error.
type NewsSource interface {
	RecentArticles(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
}

type Metrics interface {
	RecordProviderRequest(provider, outcome string)
	RecordResolution(source string)
	RecordError(kind string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
