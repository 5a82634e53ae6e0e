package dashboard_fx

import (
	"go.uber.org/fx"
	"stravadash/internal/repositories"
	"stravadash/internal/services"
)

var Module = fx.Provide(provideDashboardService)

func provideDashboardService(userRepo repositories.UserRepository, statsRepo repositories.StatsRepository, activityRepo repositories.ActivityRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(userRepo, statsRepo, activityRepo)
}
