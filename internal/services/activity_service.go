package services

import (
	"context"

	"stravadash/internal/models/db_models"
	"stravadash/internal/models/request_models"
	"stravadash/internal/models/response_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

type ActivityServiceInterface interface {
	ListActivities(ctx context.Context, userID string, page, pageSize int) (*response_models.ActivityListResponse, error)
	GetActivity(ctx context.Context, userID, activityID string) (*response_models.ActivityResponse, error)

	// UpdateActivity edits the locally-editable fields. The next re-import of
	// the same activity overwrites them again with provider-derived values.
	UpdateActivity(ctx context.Context, userID, activityID string, request request_models.UpdateActivityRequest) error
}

type ActivityService struct {
	activityRepo repositories.ActivityRepository
	userRepo     repositories.UserRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository, userRepo repositories.UserRepository) ActivityServiceInterface {
	return &ActivityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
	}
}

func (s *ActivityService) ListActivities(ctx context.Context, userID string, page, pageSize int) (*response_models.ActivityListResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	activities, total, err := s.activityRepo.ListByUser(ctx, user.ID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, BuildActivityResponse(&activities[i], user.UseMetric))
	}

	return &response_models.ActivityListResponse{
		Activities: out,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
	}, nil
}

func (s *ActivityService) getOwned(ctx context.Context, userID, activityID string) (*db_models.Activity, *db_models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, nil, utils.ErrAccountNotFound
	}

	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if activity == nil || activity.UserID != user.ID {
		return nil, nil, utils.ErrActivityNotFound
	}
	return activity, user, nil
}

func (s *ActivityService) GetActivity(ctx context.Context, userID, activityID string) (*response_models.ActivityResponse, error) {
	activity, user, err := s.getOwned(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	resp := BuildActivityResponse(activity, user.UseMetric)
	return &resp, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, userID, activityID string, request request_models.UpdateActivityRequest) error {
	activity, _, err := s.getOwned(ctx, userID, activityID)
	if err != nil {
		return err
	}

	if request.Name != nil {
		activity.Name = *request.Name
	}
	if request.IsRace != nil {
		activity.IsRace = *request.IsRace
	}
	if request.ChipTime != nil {
		activity.ChipTime = *request.ChipTime
	}
	if request.RaceDistance != nil {
		if !validRaceDistance(*request.RaceDistance) {
			return utils.ErrInvalidRaceDistance
		}
		activity.RaceDistance = request.RaceDistance
	}

	if err := s.activityRepo.UpdateEditable(ctx, activity); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func validRaceDistance(value string) bool {
	for _, d := range db_models.RaceDistances {
		if d == value {
			return true
		}
	}
	return false
}

func BuildActivityResponse(activity *db_models.Activity, useMetric bool) response_models.ActivityResponse {
	return response_models.ActivityResponse{
		ID:               activity.ID.String(),
		StravaID:         activity.StravaID,
		Name:             activity.Name,
		ActivityType:     activity.ActivityType,
		Distance:         activity.Distance,
		MovingTime:       activity.MovingTime,
		ElapsedTime:      activity.ElapsedTime,
		ChipTime:         activity.ChipTime,
		ElevationGain:    activity.ElevationGain,
		StartDateLocal:   activity.StartDateLocal,
		Timezone:         activity.Timezone,
		AverageHeartrate: activity.AverageHeartrate,
		MaxHeartrate:     activity.MaxHeartrate,
		AverageCadence:   activity.AverageCadence,
		IsRace:           activity.IsRace,
		RaceDistance:     activity.RaceDistance,
		Pace:             utils.CalculatePace(activity.Distance, activity.MovingTime, useMetric),
	}
}
