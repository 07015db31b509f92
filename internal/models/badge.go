package models

import "time"

// RequirementKind is the stat a badge threshold is measured against.
type RequirementKind string

const (
	RequirementMessages   RequirementKind = "messages"
	RequirementVoiceHours RequirementKind = "voice_hours"
	RequirementLevel      RequirementKind = "level"
)

// Stats is the view of a member the badge rules are evaluated against.
type Stats struct {
	MessageCount int64
	VoiceSeconds int64
	Level        int
}

// Valid reports whether k is one of the known requirement kinds.
func (k RequirementKind) Valid() bool {
	switch k {
	case RequirementMessages, RequirementVoiceHours, RequirementLevel:
		return true
	}
	return false
}

// Satisfied reports whether s meets a threshold of value for this kind.
// Unknown kinds never qualify.
func (k RequirementKind) Satisfied(s Stats, value int64) bool {
	switch k {
	case RequirementMessages:
		return s.MessageCount >= value
	case RequirementVoiceHours:
		// voiceSeconds/3600 >= value, kept in integers.
		return s.VoiceSeconds >= value*3600
	case RequirementLevel:
		return int64(s.Level) >= value
	}
	return false
}

// Badge is a catalog entry. The catalog is seeded once and never edited.
type Badge struct {
	BadgeID          string          `gorm:"primaryKey" json:"badge_id"`
	Name             string          `gorm:"not null" json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	RequirementType  RequirementKind `gorm:"not null" json:"requirement_type"`
	RequirementValue int64           `gorm:"not null" json:"requirement_value"`
	Position         int             `gorm:"not null;default:0" json:"-"`
}

// UserBadge records that a member earned a badge. The composite key makes a
// second award of the same badge impossible.
type UserBadge struct {
	UserID   string    `gorm:"primaryKey" json:"user_id"`
	BadgeID  string    `gorm:"primaryKey" json:"badge_id"`
	EarnedAt time.Time `gorm:"not null;index" json:"earned_at"`
}
