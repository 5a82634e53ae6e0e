package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stravadash/internal/models/db_models"
)

type ActivityRepository interface {
	// Upsert inserts or replaces the activity keyed by (user_id, strava_id).
	// On conflict every provider-sourced and derived column is overwritten,
	// including name, chip_time, race_distance and is_race — re-import wins
	// over manual edits. That is deliberate policy, not an accident.
	Upsert(ctx context.Context, activity *db_models.Activity) error

	// ListRunsSince returns the user's activities of the given type whose
	// local start time is on or after the threshold, oldest first.
	ListRunsSince(ctx context.Context, userID uuid.UUID, activityType string, since time.Time) ([]db_models.Activity, error)

	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Activity, int64, error)
	FindByID(ctx context.Context, id string) (*db_models.Activity, error)
	UpdateEditable(ctx context.Context, activity *db_models.Activity) error
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

var upsertColumns = []string{
	"name", "activity_type", "workout_type",
	"distance", "moving_time", "elapsed_time", "chip_time", "elevation_gain",
	"start_date", "start_date_local", "timezone",
	"average_speed", "max_speed",
	"average_heartrate", "max_heartrate", "average_cadence",
	"has_heartrate", "has_power",
	"is_race", "race_distance",
	"updated_at",
}

func (r *activityRepository) Upsert(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "strava_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(activity).Error
}

func (r *activityRepository) ListRunsSince(ctx context.Context, userID uuid.UUID, activityType string, since time.Time) ([]db_models.Activity, error) {
	var activities []db_models.Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_type = ? AND start_date_local >= ?", userID, activityType, since).
		Order("start_date_local ASC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Activity, int64, error) {
	var activities []db_models.Activity
	var total int64

	q := r.db.WithContext(ctx).Model(&db_models.Activity{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Order("start_date_local DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *activityRepository) FindByID(ctx context.Context, id string) (*db_models.Activity, error) {
	var activity db_models.Activity
	err := r.db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) UpdateEditable(ctx context.Context, activity *db_models.Activity) error {
	return r.db.WithContext(ctx).
		Model(activity).
		Select("name", "is_race", "chip_time", "race_distance").
		Updates(activity).Error
}
