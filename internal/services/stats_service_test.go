package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"stravadash/internal/models/db_models"
	"stravadash/pkg/utils"
)

func runActivity(userID uuid.UUID, start time.Time, movingTime int, distance float64) db_models.Activity {
	return db_models.Activity{
		UserID:         userID,
		ActivityType:   ActivityTypeRun,
		Distance:       distance,
		MovingTime:     movingTime,
		ElapsedTime:    movingTime + 60,
		ElevationGain:  10,
		StartDate:      start,
		StartDateLocal: start,
	}
}

func TestRecomputeRollingStatsWeightsHeartRateByMovingTime(t *testing.T) {
	// Wednesday.
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	a := runActivity(userID, now.AddDate(0, 0, -1), 600, 2000)
	a.HasHeartrate = true
	a.AverageHeartrate = f64Ptr(150)
	a.MaxHeartrate = f64Ptr(165)

	b := runActivity(userID, now.AddDate(0, 0, -2), 1200, 4000)
	b.HasHeartrate = true
	b.AverageHeartrate = f64Ptr(160)
	b.MaxHeartrate = f64Ptr(182)

	// No heart-rate data: contributes distance but not the average.
	c := runActivity(userID, now.AddDate(0, 0, -1), 900, 3000)

	activityRepo := newFakeActivityRepo()
	activityRepo.runs = []db_models.Activity{a, b, c}
	statsRepo := &fakeStatsRepo{}
	svc := NewStatsService(activityRepo, statsRepo, utils.FixedClock{Instant: now})

	user := &db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	if err := svc.RecomputeRollingStats(context.Background(), user); err != nil {
		t.Fatalf("RecomputeRollingStats error: %v", err)
	}
	if statsRepo.rolling == nil {
		t.Fatal("expected rolling aggregates written")
	}

	// (600*150 + 1200*160) / (600 + 1200)
	wantAvg := (600.0*150 + 1200.0*160) / 1800.0
	got := statsRepo.rolling.weekly.AvgHeartrate
	if got < wantAvg-0.01 || got > wantAvg+0.01 {
		t.Fatalf("expected weekly avg HR %.2f, got %.2f", wantAvg, got)
	}
	if statsRepo.rolling.recentAvgHR < wantAvg-0.01 || statsRepo.rolling.recentAvgHR > wantAvg+0.01 {
		t.Fatalf("expected recent avg HR %.2f, got %.2f", wantAvg, statsRepo.rolling.recentAvgHR)
	}
	if statsRepo.rolling.weekly.MaxHeartrate != 182 {
		t.Fatalf("expected weekly max HR 182, got %v", statsRepo.rolling.weekly.MaxHeartrate)
	}
	if statsRepo.rolling.recentMaxHR != 182 {
		t.Fatalf("expected recent max HR 182, got %v", statsRepo.rolling.recentMaxHR)
	}
	if statsRepo.rolling.weekly.Distance != 9000 {
		t.Fatalf("expected weekly distance 9000, got %v", statsRepo.rolling.weekly.Distance)
	}
	if statsRepo.rolling.weekly.Count != 3 {
		t.Fatalf("expected weekly count 3, got %d", statsRepo.rolling.weekly.Count)
	}
}

func TestRecomputeRollingStatsWeeklyWindowStartsMonday(t *testing.T) {
	// Wednesday 2026-03-11; the week began Monday 2026-03-09 00:00.
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()

	onBoundary := runActivity(userID, monday, 1800, 6000)
	justBefore := runActivity(userID, monday.Add(-time.Second), 1800, 5000)

	activityRepo := newFakeActivityRepo()
	activityRepo.runs = []db_models.Activity{onBoundary, justBefore}
	statsRepo := &fakeStatsRepo{}
	svc := NewStatsService(activityRepo, statsRepo, utils.FixedClock{Instant: now})

	user := &db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	if err := svc.RecomputeRollingStats(context.Background(), user); err != nil {
		t.Fatalf("RecomputeRollingStats error: %v", err)
	}

	weekly := statsRepo.rolling.weekly
	if weekly.Count != 1 {
		t.Fatalf("expected exactly the Monday-00:00 run in the weekly window, got count %d", weekly.Count)
	}
	if weekly.Distance != 6000 {
		t.Fatalf("expected weekly distance 6000, got %v", weekly.Distance)
	}
}

func TestRecomputeRollingStatsMondayNowCountsItself(t *testing.T) {
	// Running the recompute on a Monday: the week starts that same day.
	now := time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	userID := uuid.New()

	early := runActivity(userID, time.Date(2026, 3, 9, 5, 0, 0, 0, time.UTC), 1800, 6000)
	lastWeek := runActivity(userID, time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), 1800, 5000)

	activityRepo := newFakeActivityRepo()
	activityRepo.runs = []db_models.Activity{early, lastWeek}
	statsRepo := &fakeStatsRepo{}
	svc := NewStatsService(activityRepo, statsRepo, utils.FixedClock{Instant: now})

	user := &db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	if err := svc.RecomputeRollingStats(context.Background(), user); err != nil {
		t.Fatalf("RecomputeRollingStats error: %v", err)
	}
	if statsRepo.rolling.weekly.Count != 1 {
		t.Fatalf("expected only Monday's own run, got count %d", statsRepo.rolling.weekly.Count)
	}
}

func TestRecomputeRollingStatsEmptyWindowWritesNothing(t *testing.T) {
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	activityRepo := newFakeActivityRepo()
	// One stale run outside the 28-day window.
	activityRepo.runs = []db_models.Activity{runActivity(userID, now.AddDate(0, 0, -40), 1800, 6000)}
	statsRepo := &fakeStatsRepo{}
	svc := NewStatsService(activityRepo, statsRepo, utils.FixedClock{Instant: now})

	user := &db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	if err := svc.RecomputeRollingStats(context.Background(), user); err != nil {
		t.Fatalf("RecomputeRollingStats error: %v", err)
	}
	if statsRepo.rollingCalls != 0 {
		t.Fatalf("expected no write for an empty window, got %d writes", statsRepo.rollingCalls)
	}
}

func TestRecomputeRollingStatsNoHeartRateDataYieldsZeroAverages(t *testing.T) {
	now := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	activityRepo := newFakeActivityRepo()
	activityRepo.runs = []db_models.Activity{runActivity(userID, now.AddDate(0, 0, -1), 1800, 6000)}
	statsRepo := &fakeStatsRepo{}
	svc := NewStatsService(activityRepo, statsRepo, utils.FixedClock{Instant: now})

	user := &db_models.User{BaseModel: db_models.BaseModel{ID: userID}}
	if err := svc.RecomputeRollingStats(context.Background(), user); err != nil {
		t.Fatalf("RecomputeRollingStats error: %v", err)
	}
	if statsRepo.rolling.weekly.AvgHeartrate != 0 || statsRepo.rolling.recentAvgHR != 0 {
		t.Fatalf("expected zero averages without HR data, got %+v", statsRepo.rolling)
	}
}
