package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"stravadash/internal/models/db_models"
)

// LeaderboardRow is one ranked member of a group for one stat window.
type LeaderboardRow struct {
	UserID        string
	Name          string
	Distance      float64
	MovingTime    int
	ElevationGain float64
}

type StatsRepository interface {
	// ReplaceProviderTotals overwrites the volume columns of the recent, ytd
	// and all_time rows wholesale from provider-reported totals. The recent
	// row's heart-rate columns are left alone; those belong to the local
	// recompute.
	ReplaceProviderTotals(ctx context.Context, userID uuid.UUID, totals map[string]db_models.RunStats) error

	// WriteRollingAggregates persists the recomputed weekly window plus the
	// recent window's heart-rate columns in one transaction.
	WriteRollingAggregates(ctx context.Context, userID uuid.UUID, weekly db_models.RunStats, recentAvgHR, recentMaxHR float64) error

	GetByUser(ctx context.Context, userID uuid.UUID) (map[string]db_models.RunStats, error)

	Leaderboard(ctx context.Context, groupID uuid.UUID, window, gender string, minBirthYear, maxBirthYear *int, orderExpr string) ([]LeaderboardRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ReplaceProviderTotals(ctx context.Context, userID uuid.UUID, totals map[string]db_models.RunStats) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for window, stats := range totals {
			row := db_models.RunStats{
				UserID:        userID,
				Window:        window,
				Distance:      stats.Distance,
				Count:         stats.Count,
				MovingTime:    stats.MovingTime,
				ElapsedTime:   stats.ElapsedTime,
				ElevationGain: stats.ElevationGain,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "stat_window"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"distance", "count", "moving_time", "elapsed_time", "elevation_gain", "updated_at",
				}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *statsRepository) WriteRollingAggregates(ctx context.Context, userID uuid.UUID, weekly db_models.RunStats, recentAvgHR, recentMaxHR float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		weekly.UserID = userID
		weekly.Window = db_models.WindowWeekly
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "stat_window"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"distance", "count", "moving_time", "elapsed_time", "elevation_gain",
				"avg_heartrate", "max_heartrate", "updated_at",
			}),
		}).Create(&weekly).Error
		if err != nil {
			return err
		}

		recent := db_models.RunStats{
			UserID:       userID,
			Window:       db_models.WindowRecent,
			AvgHeartrate: recentAvgHR,
			MaxHeartrate: recentMaxHR,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "stat_window"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"avg_heartrate", "max_heartrate", "updated_at",
			}),
		}).Create(&recent).Error
	})
}

func (r *statsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (map[string]db_models.RunStats, error) {
	var rows []db_models.RunStats
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	out := make(map[string]db_models.RunStats, len(rows))
	for _, row := range rows {
		out[row.Window] = row
	}
	return out, nil
}

func (r *statsRepository) Leaderboard(ctx context.Context, groupID uuid.UUID, window, gender string, minBirthYear, maxBirthYear *int, orderExpr string) ([]LeaderboardRow, error) {
	q := r.db.WithContext(ctx).
		Table("run_stats").
		Select("users.id AS user_id, users.name, run_stats.distance, run_stats.moving_time, run_stats.elevation_gain").
		Joins("JOIN users ON users.id = run_stats.user_id").
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Where("group_members.group_id = ?", groupID).
		Where("run_stats.stat_window = ?", window)

	if gender != "" {
		q = q.Where("users.gender = ?", gender)
	}
	if minBirthYear != nil {
		q = q.Where("users.birth_year >= ?", *minBirthYear)
	}
	if maxBirthYear != nil {
		q = q.Where("users.birth_year <= ?", *maxBirthYear)
	}

	var rows []LeaderboardRow
	if err := q.Order(orderExpr).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
