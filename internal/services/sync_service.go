package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"stravadash/internal/models/db_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

// Waiter is the rate-limit policy applied between users in a batch run.
// Injected so tests run without real delays.
type Waiter interface {
	Wait()
}

type sleepWaiter struct {
	delay time.Duration
}

func (w sleepWaiter) Wait() { time.Sleep(w.delay) }

func NewSleepWaiter(delay time.Duration) Waiter { return sleepWaiter{delay: delay} }

type SyncServiceInterface interface {
	// SyncUser runs the full pipeline for one user: acquire token, fetch
	// provider totals (best effort), import activities, recompute rolling
	// stats when anything changed, then stamp the checkpoint. Only a token
	// acquisition failure aborts the sequence; every other failure is logged
	// and the checkpoint is stamped regardless, so a partially failing user
	// does not hammer the API as "never synced" on every run.
	SyncUser(ctx context.Context, user *db_models.User, days int) error

	// SyncUserByID applies the minimum-resync-interval check (bypassed by
	// force) before delegating to SyncUser.
	SyncUserByID(ctx context.Context, userID string, days int, force bool) error

	// SyncAll drives the pipeline over every linked user whose checkpoint is
	// missing or stale, one user at a time, waiting between users.
	SyncAll(ctx context.Context, days int, force bool) error
}

type SyncService struct {
	userRepo    repositories.UserRepository
	statsRepo   repositories.StatsRepository
	tokens      TokenServiceInterface
	importer    ImportServiceInterface
	aggregator  StatsServiceInterface
	strava      StravaAPI
	clock       utils.Clock
	waiter      Waiter
	minInterval time.Duration
}

func NewSyncService(
	userRepo repositories.UserRepository,
	statsRepo repositories.StatsRepository,
	tokens TokenServiceInterface,
	importer ImportServiceInterface,
	aggregator StatsServiceInterface,
	strava StravaAPI,
	clock utils.Clock,
	waiter Waiter,
) SyncServiceInterface {
	return &SyncService{
		userRepo:    userRepo,
		statsRepo:   statsRepo,
		tokens:      tokens,
		importer:    importer,
		aggregator:  aggregator,
		strava:      strava,
		clock:       clock,
		waiter:      waiter,
		minInterval: minSyncInterval(),
	}
}

func minSyncInterval() time.Duration {
	if v := os.Getenv("SYNC_MIN_INTERVAL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return time.Hour
}

func (s *SyncService) SyncUser(ctx context.Context, user *db_models.User, days int) error {
	log.Printf("Last sync of user %s: %v", user.ID, user.LastStravaSync)

	// AcquireToken. The only terminal failure.
	accessToken, err := s.tokens.GetValidAccessToken(ctx, user)
	if err != nil {
		return fmt.Errorf("acquire token for user %s: %w", user.ID, err)
	}

	// FetchProviderStats, best effort: stale totals are acceptable.
	if user.StravaID != nil {
		stats, err := s.strava.GetAthleteStats(ctx, accessToken, *user.StravaID)
		if err != nil {
			log.Printf("Failed to get Strava stats for user %s: %v", user.ID, err)
		} else {
			totals := map[string]db_models.RunStats{
				db_models.WindowRecent:  providerTotals(stats.RecentRunTotals),
				db_models.WindowYTD:     providerTotals(stats.YTDRunTotals),
				db_models.WindowAllTime: providerTotals(stats.AllRunTotals),
			}
			if err := s.statsRepo.ReplaceProviderTotals(ctx, user.ID, totals); err != nil {
				log.Printf("Failed to save Strava stats for user %s: %v", user.ID, err)
			} else {
				log.Printf("Saved Strava stats for user %s. Recent run count: %d", user.ID, stats.RecentRunTotals.Count)
			}
		}
	}

	// ImportActivities, bounded by the days override or the checkpoint.
	var since *time.Time
	if days > 0 {
		cutoff := s.clock.Now().AddDate(0, 0, -days)
		since = &cutoff
	} else if user.LastStravaSync != nil {
		since = user.LastStravaSync
	}

	changed, err := s.importer.ImportActivities(ctx, user, accessToken, since)
	if err != nil {
		log.Printf("Activity import for user %s stopped early: %v", user.ID, err)
	}

	// RecomputeStats, only when the import touched anything.
	if changed {
		if err := s.aggregator.RecomputeRollingStats(ctx, user); err != nil {
			log.Printf("Failed to recompute rolling stats for user %s: %v", user.ID, err)
		}
	}

	// StampCheckpoint, unconditionally: the user counts as synced once the
	// full sequence has been attempted.
	now := s.clock.Now()
	if err := s.userRepo.StampLastSync(ctx, user.ID, now); err != nil {
		log.Printf("Failed to stamp last sync for user %s: %v", user.ID, err)
	}
	user.LastStravaSync = &now

	log.Printf("Strava data sync completed for user %s.", user.ID)
	return nil
}

func (s *SyncService) SyncUserByID(ctx context.Context, userID string, days int, force bool) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}
	if !user.IsStravaConnected() {
		return utils.ErrStravaNotConnected
	}

	if !force && user.LastStravaSync != nil && s.clock.Now().Sub(*user.LastStravaSync) < s.minInterval {
		return utils.ErrSyncTooRecent
	}

	return s.SyncUser(ctx, user, days)
}

func (s *SyncService) SyncAll(ctx context.Context, days int, force bool) error {
	threshold := s.clock.Now().Add(-s.minInterval)
	if force {
		threshold = s.clock.Now()
	}

	users, err := s.userRepo.ListSyncCandidates(ctx, threshold)
	if err != nil {
		return fmt.Errorf("%w: listing sync candidates: %v", utils.ErrDatabaseError, err)
	}
	if len(users) == 0 {
		log.Println("No Strava connected users found to sync.")
		return nil
	}

	for i := range users {
		user := &users[i]
		log.Printf("Syncing data for user %s (Strava ID: %v)...", user.ID, user.StravaID)
		if err := s.SyncUser(ctx, user, days); err != nil {
			log.Printf("Failed to sync data for user %s: %v", user.ID, err)
		} else {
			log.Printf("Successfully synced data for user %s.", user.ID)
		}

		if i < len(users)-1 {
			s.waiter.Wait()
		}
	}

	log.Println("Strava data pull completed.")
	return nil
}

func providerTotals(totals RunTotals) db_models.RunStats {
	return db_models.RunStats{
		Distance:      totals.Distance,
		Count:         totals.Count,
		MovingTime:    totals.MovingTime,
		ElapsedTime:   totals.ElapsedTime,
		ElevationGain: totals.ElevationGain,
	}
}
