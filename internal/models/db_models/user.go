package db_models

import (
	"time"
)

// User is a member account, optionally linked to a Strava athlete.
// The three Strava credential fields are null together or present together;
// repositories update them as one atomic column set.
type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string

	StravaID             *int64 `gorm:"uniqueIndex"`
	StravaAccessToken    *string
	StravaRefreshToken   *string
	StravaTokenExpiresAt *time.Time

	// Checkpoint for incremental activity pulls. Nil means never synced.
	LastStravaSync *time.Time

	UseMetric bool `gorm:"default:true"`
	BirthYear *int
	Gender    *string `gorm:"size:1"` // "M" or "F"

	Groups     []Group    `gorm:"many2many:group_members;"`
	Activities []Activity `gorm:"foreignKey:UserID"`
	Stats      []RunStats `gorm:"foreignKey:UserID"`
}

func (u *User) IsStravaConnected() bool {
	return u.StravaID != nil
}
