package response_models

import "time"

type GroupResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Announcement string `json:"announcement"`
	IsOpen       bool   `json:"is_open"`
	AdminName    string `json:"admin_name,omitempty"`
	MemberCount  int64  `json:"member_count"`
	IsMember     bool   `json:"is_member"`
}

type ApplicationResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name"`
	GroupID    string     `json:"group_id"`
	GroupName  string     `json:"group_name"`
	Status     string     `json:"status"`
	AppliedAt  time.Time  `json:"applied_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Distance      float64 `json:"distance"`
	MovingTime    int     `json:"moving_time"`
	ElevationGain float64 `json:"elevation_gain"`
	AvgPace       string  `json:"avg_pace"`
}

type LeaderboardResponse struct {
	GroupID  string             `json:"group_id"`
	Period   string             `json:"period"`
	RankType string             `json:"rank_type"`
	Gender   string             `json:"gender"`
	AgeRange string             `json:"age_range"`
	Entries  []LeaderboardEntry `json:"entries"`
}
