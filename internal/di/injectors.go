//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"chatstats/internal"
	"chatstats/internal/controllers"
	"chatstats/internal/providers"
	"chatstats/internal/services"
	"chatstats/internal/statistic"
	"chatstats/internal/statistic/interfaces"
	"chatstats/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		statistic.NewZstdCompressor,
		statistic.NewArchiveManager,
		services.NewRankingService,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitPipeline(cfg *structures.CliFlags) (interfaces.PipelineInterface, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		statistic.NewZstdCompressor,
		statistic.NewArchiveManager,
		statistic.NewPipeline,
	)

	return nil, nil
}
