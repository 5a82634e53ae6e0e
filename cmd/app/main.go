package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"stravadash/cmd/fx/account_fx"
	"stravadash/cmd/fx/activity_fx"
	"stravadash/cmd/fx/controllers_fx"
	"stravadash/cmd/fx/dashboard_fx"
	"stravadash/cmd/fx/db_fx"
	"stravadash/cmd/fx/group_fx"
	"stravadash/cmd/fx/strava_fx"
	"stravadash/internal/api/controllers"
	"stravadash/internal/services"
	"stravadash/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		activity_fx.Module,
		strava_fx.Module,
		group_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.Invoke(StartScheduler),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

// StartScheduler runs the full-fleet pull on the cron spec from
// SYNC_CRON_SPEC. Leave the variable unset to disable scheduled syncs.
func StartScheduler(lc fx.Lifecycle, syncService services.SyncServiceInterface) {
	spec := os.Getenv("SYNC_CRON_SPEC")
	if spec == "" {
		log.Println("SYNC_CRON_SPEC not set, scheduled sync disabled")
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, func() {
		if err := syncService.SyncAll(context.Background(), 0, false); err != nil {
			log.Printf("Scheduled sync failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid SYNC_CRON_SPEC %q: %v", spec, err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			log.Printf("Sync scheduler started with spec %q", spec)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-scheduler.Stop().Done()
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	activityController *controllers.ActivityController,
	stravaController *controllers.StravaController,
	groupController *controllers.GroupController,
	rankController *controllers.RankController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, activityController, stravaController, groupController, rankController, dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	activityController *controllers.ActivityController,
	stravaController *controllers.StravaController,
	groupController *controllers.GroupController,
	rankController *controllers.RankController,
	dashboardController *controllers.DashboardController) {

	r.POST("/accounts/register", accountController.Register)
	r.POST("/accounts/login", accountController.Login)

	r.GET("/strava/login", stravaController.Login)
	r.GET("/strava/callback", stravaController.Callback)

	authed := r.Group("/", middleware.JWTAuthMiddleware())

	authed.GET("/profile", accountController.GetProfile)
	authed.PUT("/profile", accountController.UpdateProfile)

	authed.GET("/activities", activityController.ListActivities)
	authed.GET("/activities/:id", activityController.GetActivity)
	authed.PUT("/activities/:id", activityController.UpdateActivity)

	authed.GET("/strava/connect", stravaController.Connect)
	authed.POST("/strava/sync", stravaController.Sync)

	authed.POST("/groups", groupController.CreateGroup)
	authed.GET("/groups", groupController.ListGroups)
	authed.GET("/groups/:id/members", groupController.ListMembers)
	authed.POST("/groups/:id/applications", groupController.Apply)
	authed.GET("/groups/:id/applications", groupController.ListApplications)
	authed.PUT("/groups/applications/:application_id", groupController.ReviewApplication)
	authed.GET("/groups/:id/leaderboard", rankController.GroupLeaderboard)

	authed.GET("/dashboard", dashboardController.GetDashboard)
}
