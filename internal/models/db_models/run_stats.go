package db_models

import (
	"github.com/google/uuid"
)

// Rolling stat windows. Weekly is recomputed locally from stored activities,
// the other three are overwritten wholesale from Strava's athlete-stats
// endpoint. Recent additionally carries locally computed heart-rate columns.
const (
	WindowWeekly  = "weekly"
	WindowRecent  = "recent" // last 4 weeks
	WindowYTD     = "ytd"
	WindowAllTime = "all_time"
)

// RunStats is derived data, one row per (user, window). Never hand-edited:
// every write replaces the window's columns as a whole.
type RunStats struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_window,priority:1"`
	// Stored as stat_window: "window" is reserved in Postgres.
	Window string `gorm:"column:stat_window;size:20;uniqueIndex:idx_user_window,priority:2"`

	Distance      float64 // meters
	Count         int
	MovingTime    int // seconds
	ElapsedTime   int // seconds
	ElevationGain float64 // meters

	// Only populated for the weekly and recent windows.
	AvgHeartrate float64 // bpm, moving-time weighted
	MaxHeartrate float64 // bpm
}
