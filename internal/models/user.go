package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress is the per-member progression record. Level is derived from
// TotalXP on every read and is never stored.
type UserProgress struct {
	gorm.Model
	UserID           string `gorm:"uniqueIndex;not null"`
	DisplayName      string `gorm:"not null"`
	TotalXP          int64  `gorm:"not null;default:0;index"`
	MessageCount     int64  `gorm:"not null;default:0"`
	VoiceSeconds     int64  `gorm:"not null;default:0"`
	ActiveVoiceSince *time.Time
	LastMessageAt    *time.Time
	PrestigeCount    int `gorm:"not null;default:0"`
}

func (UserProgress) TableName() string {
	return "users"
}

// Tracking reports whether the member is currently accruing voice XP.
func (u UserProgress) Tracking() bool {
	return u.ActiveVoiceSince != nil
}
