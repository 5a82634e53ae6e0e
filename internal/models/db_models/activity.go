package db_models

import (
	"github.com/google/uuid"
	"time"
)

// Activity is one Strava activity owned by one user. Provider-sourced fields
// are overwritten on every re-import; Name, ChipTime, RaceDistance and IsRace
// are also reachable through the edit endpoint, and re-import deliberately
// wins over manual edits (see ActivityRepository.Upsert).
type Activity struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_strava,priority:1"`
	StravaID int64     `gorm:"uniqueIndex:idx_user_strava,priority:2"`

	Name         string
	ActivityType string `gorm:"size:50;index"`
	WorkoutType  int

	Distance      float64 // meters
	MovingTime    int     // seconds
	ElapsedTime   int     // seconds
	ChipTime      int     // seconds, 0 means "use elapsed time"
	ElevationGain float64 // meters

	StartDate      time.Time
	StartDateLocal time.Time `gorm:"index"`
	Timezone       string    `gorm:"size:50"`

	AverageSpeed     *float64 // m/s
	MaxSpeed         *float64 // m/s
	AverageHeartrate *float64 // bpm
	MaxHeartrate     *float64 // bpm
	AverageCadence   *float64 // steps/min

	HasHeartrate bool
	HasPower     bool

	IsRace       bool    `gorm:"index"`
	RaceDistance *string `gorm:"size:50"`
}

// Race distance categories assignable to a race activity.
var RaceDistances = []string{
	"1km", "1mi", "5km", "5mi", "10km", "15km", "10mi",
	"HM", "30km", "FM", "50km", "100km", "150km", "100mi", "Other",
}
