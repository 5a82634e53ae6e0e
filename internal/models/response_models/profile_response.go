package response_models

import "time"

type ProfileResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	StravaConnected bool       `json:"strava_connected"`
	StravaID        *int64     `json:"strava_id,omitempty"`
	LastStravaSync  *time.Time `json:"last_strava_sync,omitempty"`
	UseMetric       bool       `json:"use_metric"`
	BirthYear       *int       `json:"birth_year,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
