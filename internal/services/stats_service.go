package services

import (
	"context"
	"fmt"
	"log"

	"stravadash/internal/models/db_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

// How far back the rolling recompute looks. Matches Strava's "recent"
// four-week reporting window.
const rollingWindowDays = 28

type StatsServiceInterface interface {
	// RecomputeRollingStats rescans the user's last 28 days of runs and
	// rewrites the weekly window plus the recent window's heart-rate columns.
	// An empty 28-day set writes nothing. The rescan is deliberately not
	// incremental: backfilled or edited history stays correct.
	RecomputeRollingStats(ctx context.Context, user *db_models.User) error
}

type StatsService struct {
	activityRepo repositories.ActivityRepository
	statsRepo    repositories.StatsRepository
	clock        utils.Clock
}

func NewStatsService(activityRepo repositories.ActivityRepository, statsRepo repositories.StatsRepository, clock utils.Clock) StatsServiceInterface {
	return &StatsService{
		activityRepo: activityRepo,
		statsRepo:    statsRepo,
		clock:        clock,
	}
}

func (s *StatsService) RecomputeRollingStats(ctx context.Context, user *db_models.User) error {
	localNow := s.clock.Now()
	windowStart := utils.DaysAgo(localNow, rollingWindowDays)

	activities, err := s.activityRepo.ListRunsSince(ctx, user.ID, ActivityTypeRun, windowStart)
	if err != nil {
		return fmt.Errorf("%w: loading recent activities: %v", utils.ErrDatabaseError, err)
	}
	if len(activities) == 0 {
		log.Printf("Weekly stats for user %s are up-to-date. No save needed.", user.ID)
		return nil
	}

	startOfWeek := utils.MondayOfWeek(localNow)

	var weekly db_models.RunStats
	var weeklyTimeHR, weeklyHRTime float64
	var recentTimeHR, recentHRTime float64
	var weeklyMaxHR, recentMaxHR float64

	for _, activity := range activities {
		// Weight average heart rate by moving time; activities without
		// heart-rate data contribute nothing to the average.
		var timeHR float64
		if activity.HasHeartrate && activity.AverageHeartrate != nil {
			timeHR = float64(activity.MovingTime) * *activity.AverageHeartrate
		}
		if timeHR > 0 {
			recentHRTime += float64(activity.MovingTime)
			recentTimeHR += timeHR
		}
		if activity.MaxHeartrate != nil && *activity.MaxHeartrate > recentMaxHR {
			recentMaxHR = *activity.MaxHeartrate
		}

		if activity.StartDateLocal.Before(startOfWeek) {
			continue
		}
		weekly.Distance += activity.Distance
		weekly.Count++
		weekly.MovingTime += activity.MovingTime
		weekly.ElapsedTime += activity.ElapsedTime
		weekly.ElevationGain += activity.ElevationGain
		if timeHR > 0 {
			weeklyHRTime += float64(activity.MovingTime)
			weeklyTimeHR += timeHR
		}
		if activity.MaxHeartrate != nil && *activity.MaxHeartrate > weeklyMaxHR {
			weeklyMaxHR = *activity.MaxHeartrate
		}
	}

	weekly.MaxHeartrate = weeklyMaxHR
	if weeklyHRTime > 0 {
		weekly.AvgHeartrate = weeklyTimeHR / weeklyHRTime
	}
	recentAvgHR := 0.0
	if recentHRTime > 0 {
		recentAvgHR = recentTimeHR / recentHRTime
	}

	if err := s.statsRepo.WriteRollingAggregates(ctx, user.ID, weekly, recentAvgHR, recentMaxHR); err != nil {
		return fmt.Errorf("%w: writing rolling aggregates: %v", utils.ErrDatabaseError, err)
	}

	log.Printf("Weekly stats updated for user %s.", user.ID)
	return nil
}
