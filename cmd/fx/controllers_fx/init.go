package controllers_fx

import (
	"go.uber.org/fx"
	"stravadash/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewActivityController),
	fx.Provide(controllers.NewStravaController),
	fx.Provide(controllers.NewGroupController),
	fx.Provide(controllers.NewRankController),
	fx.Provide(controllers.NewDashboardController))
