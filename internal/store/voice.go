package store

import (
	"context"
	"errors"
	"time"

	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StartVoice opens a tracking interval at `at`. It reports false when one is
// already open, leaving the existing start time untouched.
func (s *GormStore) StartVoice(ctx context.Context, userID, displayName string, at time.Time) (bool, error) {
	started := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := ensureUser(tx, userID, displayName, at)
		if err != nil {
			return err
		}

		res := tx.Model(&models.UserProgress{}).
			Where("id = ? AND active_voice_since IS NULL", u.ID).
			Update("active_voice_since", at)
		if res.Error != nil {
			return fail("start voice", res.Error)
		}
		started = res.RowsAffected == 1
		return nil
	})
	return started, err
}

// EndVoice closes the open interval, if any. award converts the closed
// duration in seconds to XP. With nothing open it returns nil, nil, nil.
func (s *GormStore) EndVoice(ctx context.Context, userID string, at time.Time, award func(seconds int64) int64) (*models.VoiceSession, *models.UserProgress, error) {
	var (
		session *models.VoiceSession
		user    *models.UserProgress
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.UserProgress
		err := tx.Where("user_id = ?", userID).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fail("load user", err)
		}
		if u.ActiveVoiceSince == nil {
			return nil
		}

		start := *u.ActiveVoiceSince
		duration := int64(at.Sub(start) / time.Second)
		if duration < 0 {
			duration = 0
		}
		xp := award(duration)

		res := tx.Model(&models.UserProgress{}).
			Where("id = ? AND active_voice_since IS NOT NULL", u.ID).
			Updates(map[string]any{
				"voice_seconds":      gorm.Expr("voice_seconds + ?", duration),
				"total_xp":           gorm.Expr("total_xp + ?", xp),
				"active_voice_since": nil,
			})
		if res.Error != nil {
			return fail("end voice", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		record := models.VoiceSession{
			ID:              uuid.NewString(),
			UserID:          userID,
			StartedAt:       start,
			EndedAt:         at,
			DurationSeconds: duration,
			XPEarned:        xp,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fail("append voice session", err)
		}

		session = &record
		user, err = reload(tx, u.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// ClearStaleVoice drops every open tracking marker without awarding anything.
// Run it before processing events after a restart.
func (s *GormStore) ClearStaleVoice(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.UserProgress{}).
		Where("active_voice_since IS NOT NULL").
		Update("active_voice_since", nil)
	if res.Error != nil {
		return 0, fail("clear stale voice", res.Error)
	}
	return res.RowsAffected, nil
}

// VoiceSessions returns the newest closed sessions of a user.
func (s *GormStore) VoiceSessions(ctx context.Context, userID string, limit int) ([]models.VoiceSession, error) {
	var sessions []models.VoiceSession
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("ended_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fail("list voice sessions", err)
	}
	return sessions, nil
}
