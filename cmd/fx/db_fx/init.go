package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"stravadash/internal/infra"
	"stravadash/pkg/utils"
)

var Module = fx.Provide(
	provideDB, provideClock)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}

func provideClock() utils.Clock {
	return utils.NewClock()
}
