//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"MoneyRoutine/internal/usecase"
	"MoneyRoutine/pkg/config"
	"MoneyRoutine/pkg/server"
)

var marketSet = wire.NewSet(
	ProvideLimiter,
	ProvideStrategies,
	ProvideMarketAggregator,
)

// InitializeApp wires up all dependencies and returns the application.
// The returned cleanup closes every backend that was opened.
func InitializeApp(ctx context.Context, cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		ProvideLogger,
		ProvideMarketMetrics,
		marketSet,

		// Backends
		ProvideSnapshotCache,
		ProvideSnapshotHistory,
		ProvideContentStore,
		ProvideEventPublisher,

		// Use cases
		ProvideMarketService,
		ProvideRenderer,
		ProvideContentService,
		ProvideAuthenticator,

		// HTTP
		ProvideRouter,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeMarket builds a standalone aggregator for one-shot use.
func InitializeMarket(cfg *config.Config) (*usecase.MarketAggregator, error) {
	wire.Build(
		ProvideLogger,
		ProvideNoMarketMetrics,
		marketSet,
	)
	return nil, nil
}
