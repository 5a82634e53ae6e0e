package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"stravadash/internal/models/db_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

const (
	// Category of activity this application tracks.
	ActivityTypeRun = "Run"

	activityPageSize = 200

	// Strava workout_type code marking a race.
	workoutTypeRace = 1
)

// GuessRaceDistance buckets a raw distance in meters into a standard race
// category. Boundaries are inclusive and evaluated top-down, so a distance on
// a shared boundary (15500 is both the 15km upper and the 10mi lower bound)
// lands in the earlier bucket.
func GuessRaceDistance(meters float64) string {
	switch {
	case meters >= 800 && meters <= 1000:
		return "1km"
	case meters >= 4700 && meters <= 5300:
		return "5km"
	case meters >= 9600 && meters <= 10400:
		return "10km"
	case meters >= 14500 && meters <= 15500:
		return "15km"
	case meters >= 15500 && meters <= 16500:
		return "10mi"
	case meters >= 20600 && meters <= 21600:
		return "HM"
	case meters >= 29500 && meters <= 30500:
		return "30km"
	case meters >= 41800 && meters <= 42900:
		return "FM"
	case meters >= 49000 && meters <= 51000:
		return "50km"
	case meters >= 98000 && meters <= 102000:
		return "100km"
	case meters >= 147000 && meters <= 153000:
		return "150km"
	case meters >= 156000 && meters <= 164900:
		return "100mi"
	default:
		return "Other"
	}
}

type ImportServiceInterface interface {
	// ImportActivities pulls pages of run activities newer than `since` (all
	// history when nil) and upserts them. Returns true when at least one
	// record was created or updated. A failed page stops pagination but keeps
	// everything already upserted; such failures are logged, not returned.
	ImportActivities(ctx context.Context, user *db_models.User, accessToken string, since *time.Time) (bool, error)
}

type ImportService struct {
	activityRepo repositories.ActivityRepository
	strava       StravaAPI
}

func NewImportService(activityRepo repositories.ActivityRepository, strava StravaAPI) ImportServiceInterface {
	return &ImportService{
		activityRepo: activityRepo,
		strava:       strava,
	}
}

func (s *ImportService) ImportActivities(ctx context.Context, user *db_models.User, accessToken string, since *time.Time) (bool, error) {
	var after *int64
	if since != nil {
		epoch := since.UTC().Unix()
		after = &epoch
	}

	changed := false
	for page := 1; ; page++ {
		summaries, err := s.strava.ListActivities(ctx, accessToken, ActivityTypeRun, page, activityPageSize, after)
		if err != nil {
			log.Printf("Failed to get Strava activities for user %s (page %d): %v", user.ID, page, err)
			break
		}
		if len(summaries) == 0 {
			break
		}

		for _, summary := range summaries {
			if summary.Type != ActivityTypeRun {
				continue
			}
			if err := s.upsertRun(ctx, user, summary); err != nil {
				return changed, fmt.Errorf("%w: upserting activity %d: %v", utils.ErrDatabaseError, summary.ID, err)
			}
			changed = true
			log.Printf("Processed run activity: %s (ID: %d)", summary.StartDate.Format(time.RFC3339), summary.ID)
		}

		if len(summaries) < activityPageSize {
			break
		}
	}

	return changed, nil
}

func (s *ImportService) upsertRun(ctx context.Context, user *db_models.User, summary ActivitySummary) error {
	workoutType := 0
	if summary.WorkoutType != nil {
		workoutType = *summary.WorkoutType
	}

	isRace := workoutType == workoutTypeRace
	chipTime := 0
	var raceDistance *string
	if isRace {
		chipTime = summary.MovingTime
		rd := GuessRaceDistance(summary.Distance)
		raceDistance = &rd
	}

	activity := db_models.Activity{
		UserID:           user.ID,
		StravaID:         summary.ID,
		Name:             summary.Name,
		ActivityType:     summary.Type,
		WorkoutType:      workoutType,
		Distance:         summary.Distance,
		MovingTime:       summary.MovingTime,
		ElapsedTime:      summary.ElapsedTime,
		ChipTime:         chipTime,
		ElevationGain:    summary.TotalElevation,
		StartDate:        summary.StartDate,
		StartDateLocal:   summary.StartDateLocal,
		Timezone:         summary.Timezone,
		AverageSpeed:     summary.AverageSpeed,
		MaxSpeed:         summary.MaxSpeed,
		AverageHeartrate: summary.AverageHeartrate,
		MaxHeartrate:     summary.MaxHeartrate,
		AverageCadence:   summary.AverageCadence,
		HasHeartrate:     summary.HasHeartrate,
		HasPower:         summary.HasPower,
		IsRace:           isRace,
		RaceDistance:     raceDistance,
	}

	return s.activityRepo.Upsert(ctx, &activity)
}
