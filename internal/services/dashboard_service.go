package services

import (
	"context"

	"stravadash/internal/models/db_models"
	"stravadash/internal/models/response_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

const dashboardRecentActivities = 10

type DashboardServiceInterface interface {
	// BuildDashboard assembles the user's profile, all four stat windows and
	// their most recent activities.
	BuildDashboard(ctx context.Context, userID string) (*response_models.DashboardResponse, error)
}

type DashboardService struct {
	userRepo     repositories.UserRepository
	statsRepo    repositories.StatsRepository
	activityRepo repositories.ActivityRepository
}

func NewDashboardService(userRepo repositories.UserRepository, statsRepo repositories.StatsRepository, activityRepo repositories.ActivityRepository) DashboardServiceInterface {
	return &DashboardService{
		userRepo:     userRepo,
		statsRepo:    statsRepo,
		activityRepo: activityRepo,
	}
}

func (s *DashboardService) BuildDashboard(ctx context.Context, userID string) (*response_models.DashboardResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	stats, err := s.statsRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	activities, _, err := s.activityRepo.ListByUser(ctx, user.ID, 1, dashboardRecentActivities)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recent := make([]response_models.ActivityResponse, 0, len(activities))
	for i := range activities {
		recent = append(recent, BuildActivityResponse(&activities[i], user.UseMetric))
	}

	return &response_models.DashboardResponse{
		Profile:          BuildProfileResponse(user),
		Weekly:           buildWindowStats(db_models.WindowWeekly, stats, user.UseMetric),
		Recent:           buildWindowStats(db_models.WindowRecent, stats, user.UseMetric),
		YearToDate:       buildWindowStats(db_models.WindowYTD, stats, user.UseMetric),
		AllTime:          buildWindowStats(db_models.WindowAllTime, stats, user.UseMetric),
		RecentActivities: recent,
	}, nil
}

func buildWindowStats(window string, stats map[string]db_models.RunStats, useMetric bool) response_models.WindowStats {
	row := stats[window]
	return response_models.WindowStats{
		Window:        window,
		Distance:      row.Distance,
		Count:         row.Count,
		MovingTime:    row.MovingTime,
		ElapsedTime:   row.ElapsedTime,
		ElevationGain: row.ElevationGain,
		AvgHeartrate:  row.AvgHeartrate,
		MaxHeartrate:  row.MaxHeartrate,
		AvgPace:       utils.CalculatePace(row.Distance, row.MovingTime, useMetric),
	}
}
