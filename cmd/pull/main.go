package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"stravadash/internal/infra"
	"stravadash/internal/repositories"
	"stravadash/internal/services"
	"stravadash/pkg/utils"
)

var (
	userID string
	days   int
	force  bool
)

var rootCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull Strava activities and recompute run stats",
	Long: `Runs the sync pipeline from the command line: refresh tokens,
import new activities, recompute aggregates and stamp the checkpoint.
Without --user-id it walks every linked account whose checkpoint is stale.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db := infra.InitPostgresql()
		defer infra.ClosePostgresql(db)

		userRepo := repositories.NewUserRepository(db)
		activityRepo := repositories.NewActivityRepository(db)
		statsRepo := repositories.NewStatsRepository(db)

		client := services.NewStravaClient()
		clock := utils.NewClock()
		syncService := services.NewSyncService(
			userRepo,
			statsRepo,
			services.NewTokenService(userRepo, client, clock),
			services.NewImportService(activityRepo, client),
			services.NewStatsService(activityRepo, statsRepo, clock),
			client,
			clock,
			services.NewSleepWaiter(time.Second),
		)

		ctx := cmd.Context()
		if userID != "" {
			return syncService.SyncUserByID(ctx, userID, days, force)
		}
		return syncService.SyncAll(ctx, days, force)
	},
}

func init() {
	rootCmd.Flags().StringVar(&userID, "user-id", "", "sync a single user instead of the whole fleet")
	rootCmd.Flags().IntVar(&days, "days", 0, "re-import activities from the last N days instead of the checkpoint")
	rootCmd.Flags().BoolVar(&force, "force", false, "ignore the minimum interval between syncs")
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("pull failed: %v", err)
	}
}
