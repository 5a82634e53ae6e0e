package strava_fx

import (
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"stravadash/internal/repositories"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

var Module = fx.Provide(
	provideStravaClient,
	provideStravaAPI,
	provideStatsRepo,
	provideWaiter,
	provideTokenService,
	provideImportService,
	provideStatsService,
	provideSyncService,
	provideStravaAuthService)

func provideStravaClient() *services.StravaClient {
	return services.NewStravaClient()
}

func provideStravaAPI(client *services.StravaClient) services.StravaAPI {
	return client
}

func provideStatsRepo(db *gorm.DB) repositories.StatsRepository {
	return repositories.NewStatsRepository(db)
}

func provideWaiter() services.Waiter {
	return services.NewSleepWaiter(time.Second)
}

func provideTokenService(userRepo repositories.UserRepository, strava services.StravaAPI, clock utils.Clock) services.TokenServiceInterface {
	return services.NewTokenService(userRepo, strava, clock)
}

func provideImportService(activityRepo repositories.ActivityRepository, strava services.StravaAPI) services.ImportServiceInterface {
	return services.NewImportService(activityRepo, strava)
}

func provideStatsService(activityRepo repositories.ActivityRepository, statsRepo repositories.StatsRepository, clock utils.Clock) services.StatsServiceInterface {
	return services.NewStatsService(activityRepo, statsRepo, clock)
}

func provideSyncService(
	userRepo repositories.UserRepository,
	statsRepo repositories.StatsRepository,
	tokens services.TokenServiceInterface,
	importer services.ImportServiceInterface,
	aggregator services.StatsServiceInterface,
	strava services.StravaAPI,
	clock utils.Clock,
	waiter services.Waiter,
) services.SyncServiceInterface {
	return services.NewSyncService(userRepo, statsRepo, tokens, importer, aggregator, strava, clock, waiter)
}

func provideStravaAuthService(userRepo repositories.UserRepository, strava *services.StravaClient, clock utils.Clock) services.StravaAuthServiceInterface {
	return services.NewStravaAuthService(userRepo, strava, clock)
}
