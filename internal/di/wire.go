//go:build wireinject
// +build wireinject

package di

import (
	"StockScout/pkg/config"
	"StockScout/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Provider clients
		ProvideSymbolSearcher,
		ProvideMarketData,
		ProvideNewsSource,

		// Use cases
		ProvideTickerResolver,
		ProvideMarketQueries,
		ProvideStockInfoAggregator,

		// Agent
		ProvideSessionStore,
		ProvideAgentRunner,

		// HTTP surface
		ProvideStockHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
