package services

import (
	"context"

	"github.com/google/uuid"
	"stravadash/internal/models/db_models"
	"stravadash/internal/models/response_models"
	"stravadash/internal/repositories"
	"stravadash/pkg/utils"
)

// ageRange holds inclusive age bounds; nil means unbounded on that side.
type ageRange struct {
	min *int
	max *int
}

func agePtr(v int) *int { return &v }

var ageRanges = map[string]ageRange{
	"all":   {},
	"<40":   {max: agePtr(39)},
	"40-44": {min: agePtr(40), max: agePtr(44)},
	"45-49": {min: agePtr(45), max: agePtr(49)},
	"50-54": {min: agePtr(50), max: agePtr(54)},
	"55-59": {min: agePtr(55), max: agePtr(59)},
	"60-64": {min: agePtr(60), max: agePtr(64)},
	"65-69": {min: agePtr(65), max: agePtr(69)},
	"70-74": {min: agePtr(70), max: agePtr(74)},
	"75-79": {min: agePtr(75), max: agePtr(79)},
	">=80":  {min: agePtr(80)},
}

var rankOrder = map[string]string{
	"distance":       "run_stats.distance DESC",
	"moving_time":    "run_stats.moving_time DESC",
	"elevation_gain": "run_stats.elevation_gain DESC",
	// Seconds per meter ascending; zero-distance rows sort last.
	"avg_pace": "CAST(run_stats.moving_time AS FLOAT) / NULLIF(run_stats.distance, 0) ASC",
}

var validWindows = map[string]bool{
	db_models.WindowWeekly:  true,
	db_models.WindowRecent:  true,
	db_models.WindowYTD:     true,
	db_models.WindowAllTime: true,
}

type RankServiceInterface interface {
	// GroupLeaderboard ranks a group's members over one stat window,
	// optionally filtered by gender and age range. Open-group leaderboards
	// are public; closed groups require membership or adminship.
	GroupLeaderboard(ctx context.Context, viewerID, groupID, period, rankType, gender, ageKey string) (*response_models.LeaderboardResponse, error)
}

type RankService struct {
	groupRepo repositories.GroupRepository
	statsRepo repositories.StatsRepository
	clock     utils.Clock
}

func NewRankService(groupRepo repositories.GroupRepository, statsRepo repositories.StatsRepository, clock utils.Clock) RankServiceInterface {
	return &RankService{
		groupRepo: groupRepo,
		statsRepo: statsRepo,
		clock:     clock,
	}
}

func (s *RankService) GroupLeaderboard(ctx context.Context, viewerID, groupID, period, rankType, gender, ageKey string) (*response_models.LeaderboardResponse, error) {
	if period == "" {
		period = db_models.WindowWeekly
	}
	if rankType == "" {
		rankType = "distance"
	}
	if gender == "" || gender == "all" {
		gender = ""
	}
	if ageKey == "" {
		ageKey = "all"
	}

	if !validWindows[period] {
		return nil, utils.ErrInvalidPage
	}
	orderExpr, ok := rankOrder[rankType]
	if !ok {
		return nil, utils.ErrInvalidPage
	}
	bounds, ok := ageRanges[ageKey]
	if !ok {
		return nil, utils.ErrInvalidPage
	}

	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	viewer, err := uuid.Parse(viewerID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}
	if !group.IsOpen {
		isMember, err := s.groupRepo.IsMember(ctx, group.ID, viewer)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		isAdmin := group.AdminID != nil && *group.AdminID == viewer
		if !isMember && !isAdmin {
			return nil, utils.ErrNotGroupAdmin
		}
	}

	// An age filter of [40, 44] today means birth years in
	// [currentYear-44, currentYear-40].
	currentYear := s.clock.Now().Year()
	var minBirthYear, maxBirthYear *int
	if bounds.max != nil {
		y := currentYear - *bounds.max
		minBirthYear = &y
	}
	if bounds.min != nil {
		y := currentYear - *bounds.min
		maxBirthYear = &y
	}

	rows, err := s.statsRepo.Leaderboard(ctx, group.ID, period, gender, minBirthYear, maxBirthYear, orderExpr)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	entries := make([]response_models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, response_models.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        row.UserID,
			Name:          row.Name,
			Distance:      row.Distance,
			MovingTime:    row.MovingTime,
			ElevationGain: row.ElevationGain,
			AvgPace:       utils.CalculatePace(row.Distance, row.MovingTime, true),
		})
	}

	if gender == "" {
		gender = "all"
	}
	return &response_models.LeaderboardResponse{
		GroupID:  group.ID.String(),
		Period:   period,
		RankType: rankType,
		Gender:   gender,
		AgeRange: ageKey,
		Entries:  entries,
	}, nil
}
