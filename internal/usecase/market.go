package usecase

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	drepo "StockScout/internal/domain/repository"
)

// windowBufferDays widens the calendar window so weekends and holidays still
// leave at least days+1 trading points.
const windowBufferDays = 5

// minPastClose guards the change-percentage division. A past close this small
// is bad provider data, not a price.
const minPastClose = 1e-9

// MarketQueries answers price questions on top of the market data provider.
type MarketQueries struct {
	data    drepo.MarketData
	metrics drepo.Metrics
	now     func() time.Time
}

func NewMarketQueries(data drepo.MarketData, metrics drepo.Metrics) *MarketQueries {
	return &MarketQueries{data: data, metrics: metrics, now: time.Now}
}

// WithNow overrides the clock. Used by tests.
func (m *MarketQueries) WithNow(now func() time.Time) *MarketQueries {
	m.now = now
	return m
}

// LatestPrice returns the most recent end-of-day close for symbol.
func (m *MarketQueries) LatestPrice(ctx context.Context, symbol string) (float64, error) {
	price, err := m.data.LatestClose(ctx, symbol)
	if err != nil {
		m.metrics.RecordProviderRequest("market_data", "error")
		return 0, err
	}
	m.metrics.RecordProviderRequest("market_data", "ok")
	m.metrics.RecordLastPrice(symbol, price)
	return price, nil
}

// PriceChangePct returns the percentage change between the most recent close
// and the close `days` trading sessions back. The index into the
// descending-sorted points is `days` — the days-th most recent trading
// session, not days calendar days ago.
func (m *MarketQueries) PriceChangePct(ctx context.Context, symbol string, days int) (float64, error) {
	to := m.now()
	from := to.AddDate(0, 0, -(days + windowBufferDays))

	points, err := m.data.HistoricalCloses(ctx, symbol, from, to)
	if err != nil {
		m.metrics.RecordProviderRequest("market_data", "error")
		return 0, err
	}
	m.metrics.RecordProviderRequest("market_data", "ok")
	if len(points) < days+1 {
		return 0, &drepo.InsufficientDataError{Symbol: symbol, Days: days, Got: len(points)}
	}

	sorted := slices.Clone(points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	latest := sorted[0].Close
	past := sorted[days].Close
	if past < minPastClose {
		return 0, fmt.Errorf("past close %.6f for %s is not positive, change undefined", past, symbol)
	}
	return (latest - past) / past * 100, nil
}
