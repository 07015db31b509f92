package models

import "time"

// VoiceSession is an append-only record of one closed tracking interval.
type VoiceSession struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	UserID          string    `gorm:"index;not null" json:"user_id"`
	StartedAt       time.Time `gorm:"not null" json:"started_at"`
	EndedAt         time.Time `gorm:"not null" json:"ended_at"`
	DurationSeconds int64     `gorm:"not null" json:"duration_seconds"`
	XPEarned        int64     `gorm:"not null" json:"xp_earned"`
}
