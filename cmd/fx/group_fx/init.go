package group_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stravadash/internal/repositories"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

var Module = fx.Provide(
	provideGroupRepo, provideGroupService, provideRankService)

func provideGroupRepo(db *gorm.DB) repositories.GroupRepository {
	return repositories.NewGroupRepository(db)
}

func provideGroupService(groupRepo repositories.GroupRepository, userRepo repositories.UserRepository, clock utils.Clock) services.GroupServiceInterface {
	return services.NewGroupService(groupRepo, userRepo, clock)
}

func provideRankService(groupRepo repositories.GroupRepository, statsRepo repositories.StatsRepository, clock utils.Clock) services.RankServiceInterface {
	return services.NewRankService(groupRepo, statsRepo, clock)
}
