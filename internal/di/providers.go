package di

import (
	"fmt"

	"StockScout/internal/agent"
	"StockScout/internal/domain/repository"
	"StockScout/internal/handler/api"
	"StockScout/internal/service/alphavantage"
	"StockScout/internal/service/marketstack"
	"StockScout/internal/service/newsapi"
	"StockScout/internal/usecase"
	"StockScout/pkg/config"
	xhttp "StockScout/pkg/http"
	applogger "StockScout/pkg/logger"
	"StockScout/pkg/metrics"
	"StockScout/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return repository.NopMetrics{}
	}
	return metrics.New()
}

// ProvideSymbolSearcher creates the Alpha Vantage symbol searcher.
func ProvideSymbolSearcher(cfg *config.Config) repository.SymbolSearcher {
	return alphavantage.New(
		cfg.Providers.AlphaVantage.BaseURL,
		cfg.Providers.AlphaVantage.APIKey,
		cfg.Providers.Timeout,
	)
}

// ProvideMarketData creates the Marketstack market data client.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	return marketstack.New(
		cfg.Providers.Marketstack.BaseURL,
		cfg.Providers.Marketstack.APIKey,
		cfg.Providers.Timeout,
	)
}

// ProvideNewsSource creates the news client.
func ProvideNewsSource(cfg *config.Config) repository.NewsSource {
	return newsapi.New(
		cfg.Providers.News.BaseURL,
		cfg.Providers.News.APIKey,
		cfg.Providers.Timeout,
	)
}

// ProvideTickerResolver creates the ticker resolver use case.
func ProvideTickerResolver(search repository.SymbolSearcher, m repository.Metrics, l *applogger.Logger) *usecase.TickerResolver {
	return usecase.NewTickerResolver(search, m, l)
}

// ProvideMarketQueries creates the market queries use case.
func ProvideMarketQueries(data repository.MarketData, m repository.Metrics) *usecase.MarketQueries {
	return usecase.NewMarketQueries(data, m)
}

// ProvideStockInfoAggregator creates the aggregation pipeline.
func ProvideStockInfoAggregator(
	resolver *usecase.TickerResolver,
	market *usecase.MarketQueries,
	news repository.NewsSource,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.StockInfoAggregator {
	return usecase.NewStockInfoAggregator(resolver, market, news, m, l)
}

// ProvideSessionStore creates the agent session store from config.
func ProvideSessionStore(cfg *config.Config) (agent.SessionStore, error) {
	if cfg.Agent.SessionStore == "redis" {
		store, err := agent.NewRedisStore(cfg.Agent.Redis.Addr, cfg.Agent.Redis.Password, cfg.Agent.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		return store, nil
	}
	return agent.NewMemoryStore(), nil
}

// ProvideAgentRunner creates the agent runner, or nil when disabled.
func ProvideAgentRunner(
	cfg *config.Config,
	sessions agent.SessionStore,
	agg *usecase.StockInfoAggregator,
	l *applogger.Logger,
) *agent.Runner {
	if !cfg.Agent.Enabled {
		return nil
	}
	return agent.NewRunner(cfg.Agent.APIKey, cfg.Agent.Model, sessions, agg.GetStockInfo, l)
}

// ProvideStockHandler creates the HTTP handler.
func ProvideStockHandler(l *applogger.Logger, agg *usecase.StockInfoAggregator, runner *agent.Runner) xhttp.Handler {
	// A nil *agent.Runner must stay a nil interface so the handler's
	// availability check works.
	var ar api.AgentRunner
	if runner != nil {
		ar = runner
	}
	return api.NewStockEchoHandler(l, agg, ar)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, l, handler)
}
