package usecase

import (
	"context"
	"math"
	"time"

	"StockScout/internal/domain/models"
	drepo "StockScout/internal/domain/repository"
	"StockScout/pkg/logger"
)

const (
	newsLimit     = 3
	noHeadlines   = "No recent headlines"
	noMajorNews   = "no major news"
	sentimentUp   = "up"
	sentimentDown = "down"
)

// StockInfoAggregator runs the full answer pipeline for one query:
// resolve ticker, parse timeframe, fetch price and change, fetch news,
// summarize. Every step is a hard dependency; any failure aborts and no
// partial record is ever returned.
type StockInfoAggregator struct {
	resolver *TickerResolver
	market   *MarketQueries
	news     drepo.NewsSource
	metrics  drepo.Metrics
	logger   *logger.Logger
}

func NewStockInfoAggregator(
	resolver *TickerResolver,
	market *MarketQueries,
	news drepo.NewsSource,
	metrics drepo.Metrics,
	l *logger.Logger,
) *StockInfoAggregator {
	return &StockInfoAggregator{
		resolver: resolver,
		market:   market,
		news:     news,
		metrics:  metrics,
		logger:   l,
	}
}

// GetStockInfo answers a free-form stock query with a consolidated record.
func (a *StockInfoAggregator) GetStockInfo(ctx context.Context, query string) (*models.StockInfo, error) {
	start := time.Now()

	ticker, err := a.resolver.Resolve(ctx, query)
	if err != nil {
		a.metrics.RecordError("resolve")
		return nil, err
	}

	tf := ParseTimeframe(query)

	price, err := a.market.LatestPrice(ctx, ticker)
	if err != nil {
		a.metrics.RecordError("latest_price")
		return nil, err
	}

	changePct, err := a.market.PriceChangePct(ctx, ticker, tf.Days)
	if err != nil {
		a.metrics.RecordError("price_change")
		return nil, err
	}

	// A failed news fetch aborts the request; only a genuinely empty result
	// set is a success state.
	articles, err := a.news.RecentArticles(ctx, ticker, newsLimit)
	if err != nil {
		a.metrics.RecordProviderRequest("news", "error")
		a.metrics.RecordError("news")
		return nil, err
	}
	a.metrics.RecordProviderRequest("news", "ok")

	analysis := Analyze(ticker, changePct, articles)

	headline := noHeadlines
	if len(articles) > 0 {
		headline = articles[0].Title
	}

	info := &models.StockInfo{
		Ticker:       ticker,
		CurrentPrice: price,
		ChangePct:    round2(changePct),
		Timeframe:    tf.Label,
		TopHeadline:  headline,
		Analysis:     analysis.Summary(),
	}

	a.metrics.RecordLatency("stock_info", time.Since(start).Seconds())
	a.logger.Info("stock info aggregated",
		logger.String("ticker", ticker),
		logger.String("timeframe", tf.Label),
		logger.Float64("change_pct", info.ChangePct),
		logger.Duration("took", time.Since(start)),
	)
	return info, nil
}

// Analyze summarizes a price move qualitatively from already-fetched data.
func Analyze(symbol string, changePct float64, articles []models.NewsArticle) models.Analysis {
	sentiment := sentimentDown
	if changePct > 0 {
		sentiment = sentimentUp
	}
	top := noMajorNews
	if len(articles) > 0 {
		top = articles[0].Title
	}
	return models.Analysis{
		Symbol:      symbol,
		ChangePct:   round2(changePct),
		Sentiment:   sentiment,
		TopHeadline: top,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
