package response_models

import "time"

type ActivityResponse struct {
	ID             string    `json:"id"`
	StravaID       int64     `json:"strava_id"`
	Name           string    `json:"name"`
	ActivityType   string    `json:"activity_type"`
	Distance       float64   `json:"distance"`
	MovingTime     int       `json:"moving_time"`
	ElapsedTime    int       `json:"elapsed_time"`
	ChipTime       int       `json:"chip_time"`
	ElevationGain  float64   `json:"elevation_gain"`
	StartDateLocal time.Time `json:"start_date_local"`
	Timezone       string    `json:"timezone"`

	AverageHeartrate *float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate     *float64 `json:"max_heartrate,omitempty"`
	AverageCadence   *float64 `json:"average_cadence,omitempty"`

	IsRace       bool    `json:"is_race"`
	RaceDistance *string `json:"race_distance,omitempty"`

	// Rendered per the owner's metric/imperial preference.
	Pace string `json:"pace"`
}

type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int64              `json:"total"`
}
