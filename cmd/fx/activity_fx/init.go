package activity_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stravadash/internal/repositories"
	"stravadash/internal/services"
)

var Module = fx.Provide(
	provideActivityRepo, provideActivityService)

func provideActivityRepo(db *gorm.DB) repositories.ActivityRepository {
	return repositories.NewActivityRepository(db)
}

func provideActivityService(activityRepo repositories.ActivityRepository, userRepo repositories.UserRepository) services.ActivityServiceInterface {
	return services.NewActivityService(activityRepo, userRepo)
}
