package response_models

type WindowStats struct {
	Window        string  `json:"window"`
	Distance      float64 `json:"distance"`
	Count         int     `json:"count"`
	MovingTime    int     `json:"moving_time"`
	ElapsedTime   int     `json:"elapsed_time"`
	ElevationGain float64 `json:"elevation_gain"`
	AvgHeartrate  float64 `json:"avg_heartrate,omitempty"`
	MaxHeartrate  float64 `json:"max_heartrate,omitempty"`

	// Rendered per the owner's metric/imperial preference.
	AvgPace string `json:"avg_pace"`
}

type DashboardResponse struct {
	Profile          ProfileResponse    `json:"profile"`
	Weekly           WindowStats        `json:"weekly"`
	Recent           WindowStats        `json:"recent"`
	YearToDate       WindowStats        `json:"ytd"`
	AllTime          WindowStats        `json:"all_time"`
	RecentActivities []ActivityResponse `json:"recent_activities"`
}
