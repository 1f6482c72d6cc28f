package usecase

import (
	"context"
	"testing"
	"time"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarketData struct {
	latest    float64
	latestErr error
	points    []models.PricePoint
	histErr   error
	lastFrom  time.Time
	lastTo    time.Time
}

func (f *fakeMarketData) LatestClose(_ context.Context, _ string) (float64, error) {
	return f.latest, f.latestErr
}

func (f *fakeMarketData) HistoricalCloses(_ context.Context, _ string, from, to time.Time) ([]models.PricePoint, error) {
	f.lastFrom, f.lastTo = from, to
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.points, nil
}

// descendingPoints builds n daily closes ending at end, most recent first.
func descendingPoints(end time.Time, closes ...float64) []models.PricePoint {
	points := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = models.PricePoint{Date: end.AddDate(0, 0, -i), Close: c}
	}
	return points
}

func newMarket(data drepo.MarketData) *MarketQueries {
	return NewMarketQueries(data, drepo.NopMetrics{})
}

func TestPriceChangePctOneDay(t *testing.T) {
	end := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	data := &fakeMarketData{points: descendingPoints(end, 300, 310, 305)}
	m := newMarket(data)

	got, err := m.PriceChangePct(context.Background(), "TSLA", 1)
	require.NoError(t, err)
	assert.InDelta(t, (300.0-310.0)/310.0*100, got, 1e-9)
}

func TestPriceChangePctSevenDays(t *testing.T) {
	end := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	closes := []float64{180, 178, 176, 175, 174, 172, 171, 160, 150}
	data := &fakeMarketData{points: descendingPoints(end, closes...)}
	m := newMarket(data)

	got, err := m.PriceChangePct(context.Background(), "NVDA", 7)
	require.NoError(t, err)
	// Index 7 in the descending list, the 7th most recent session.
	assert.InDelta(t, (180.0-160.0)/160.0*100, got, 1e-9)
}

func TestPriceChangePctSortsProviderOrder(t *testing.T) {
	end := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	points := descendingPoints(end, 300, 310, 305)
	// Provider order must not matter.
	shuffled := []models.PricePoint{points[2], points[0], points[1]}
	m := newMarket(&fakeMarketData{points: shuffled})

	got, err := m.PriceChangePct(context.Background(), "TSLA", 1)
	require.NoError(t, err)
	assert.InDelta(t, (300.0-310.0)/310.0*100, got, 1e-9)
}

func TestPriceChangePctIdempotent(t *testing.T) {
	end := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	m := newMarket(&fakeMarketData{points: descendingPoints(end, 300, 310, 305)})

	first, err := m.PriceChangePct(context.Background(), "TSLA", 1)
	require.NoError(t, err)
	second, err := m.PriceChangePct(context.Background(), "TSLA", 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPriceChangePctInsufficientData(t *testing.T) {
	end := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	// Exactly days points, one short of the days+1 requirement.
	m := newMarket(&fakeMarketData{points: descendingPoints(end, 180, 178, 176, 175, 174, 172, 171)})

	_, err := m.PriceChangePct(context.Background(), "NVDA", 7)
	var insufficient *drepo.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 7, insufficient.Days)
	assert.Equal(t, 7, insufficient.Got)
}

func TestPriceChangePctZeroPastClose(t *testing.T) {
	end := time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC)
	m := newMarket(&fakeMarketData{points: descendingPoints(end, 300, 0)})

	_, err := m.PriceChangePct(context.Background(), "TSLA", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not positive")
}

func TestPriceChangePctWindow(t *testing.T) {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	data := &fakeMarketData{points: descendingPoints(now, 300, 310, 305)}
	m := newMarket(data).WithNow(func() time.Time { return now })

	_, err := m.PriceChangePct(context.Background(), "TSLA", 1)
	require.NoError(t, err)
	// days + 5 calendar days of buffer for weekends and holidays.
	assert.Equal(t, now.AddDate(0, 0, -6), data.lastFrom)
	assert.Equal(t, now, data.lastTo)
}

func TestLatestPrice(t *testing.T) {
	m := newMarket(&fakeMarketData{latest: 412.5})

	price, err := m.LatestPrice(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, 412.5, price)
}

func TestLatestPricePropagatesNoData(t *testing.T) {
	m := newMarket(&fakeMarketData{latestErr: &drepo.NoDataError{Symbol: "XXXX"}})

	_, err := m.LatestPrice(context.Background(), "XXXX")
	var noData *drepo.NoDataError
	require.ErrorAs(t, err, &noData)
}
