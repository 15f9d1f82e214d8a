//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"fontpair/internal"
	"fontpair/internal/controllers"
	"fontpair/internal/external"
	"fontpair/internal/providers"
	"fontpair/internal/services"
	"fontpair/internal/storage"
	"fontpair/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewKeyValueStore,
		storage.NewAccessor,
		storage.NewScheduler,

		external.NewLicenseRepository,
		external.NewAIClientFactory,

		services.NewSystemClock,
		services.NewEntitlementStore,
		services.NewEntitlementService,
		services.NewHistoryService,
		services.NewProjectService,
		services.NewSettingsService,
		services.NewLicenseService,
		services.NewAnalysisService,

		controllers.NewAnalysisController,
		controllers.NewHistoryController,
		controllers.NewProjectController,
		controllers.NewEntitlementController,
		controllers.NewLicenseController,
		controllers.NewSettingsController,
		controllers.NewWebhookController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
