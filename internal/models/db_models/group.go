package db_models

import (
	"github.com/google/uuid"
	"time"
)

type Group struct {
	BaseModel
	Name         string `gorm:"unique"`
	Description  string `gorm:"size:500"`
	Announcement string `gorm:"size:1000"`

	// Open groups can be joined without approval.
	IsOpen       bool `gorm:"default:true"`
	HasDashboard bool `gorm:"default:true"`

	AdminID *uuid.UUID `gorm:"type:uuid"`
	Admin   *User      `gorm:"foreignKey:AdminID"`

	Members []User `gorm:"many2many:group_members;"`
}

const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// GroupApplication is a join request awaiting the group admin's review.
// One application per (user, group).
type GroupApplication struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_group,priority:1"`
	User    User      `gorm:"foreignKey:UserID"`
	GroupID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_group,priority:2"`
	Group   Group     `gorm:"foreignKey:GroupID"`

	Status     string `gorm:"size:10;default:pending"`
	AppliedAt  time.Time
	ReviewedAt *time.Time
	ReviewerID *uuid.UUID `gorm:"type:uuid"`
}
