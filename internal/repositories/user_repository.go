package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"stravadash/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByStravaID(ctx context.Context, stravaID int64) (*db_models.User, error)
	UpdateProfile(ctx context.Context, user *db_models.User) error

	// Credential writes update all three token columns in one statement so no
	// partial credential state is ever visible.
	UpdateCredentials(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error
	ClearCredentials(ctx context.Context, userID uuid.UUID) error
	LinkStrava(ctx context.Context, userID uuid.UUID, stravaID int64, accessToken, refreshToken string, expiresAt time.Time) error

	StampLastSync(ctx context.Context, userID uuid.UUID, at time.Time) error

	// ListSyncCandidates returns linked users whose checkpoint is nil or older
	// than the threshold.
	ListSyncCandidates(ctx context.Context, olderThan time.Time) ([]db_models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByStravaID(ctx context.Context, stravaID int64) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).First(&user, "strava_id = ?", stravaID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).
		Model(user).
		Select("name", "use_metric", "birth_year", "gender").
		Updates(user).Error
}

func (r *userRepository) UpdateCredentials(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"strava_access_token":     accessToken,
			"strava_refresh_token":    refreshToken,
			"strava_token_expires_at": expiresAt,
		}).Error
}

func (r *userRepository) ClearCredentials(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"strava_access_token":     nil,
			"strava_refresh_token":    nil,
			"strava_token_expires_at": nil,
		}).Error
}

func (r *userRepository) LinkStrava(ctx context.Context, userID uuid.UUID, stravaID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"strava_id":               stravaID,
			"strava_access_token":     accessToken,
			"strava_refresh_token":    refreshToken,
			"strava_token_expires_at": expiresAt,
		}).Error
}

func (r *userRepository) StampLastSync(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Update("last_strava_sync", at).Error
}

func (r *userRepository) ListSyncCandidates(ctx context.Context, olderThan time.Time) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).
		Where("strava_id IS NOT NULL").
		Where("last_strava_sync IS NULL OR last_strava_sync < ?", olderThan).
		Order("last_strava_sync ASC NULLS FIRST").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
