package store

import (
	"context"

	"github.com/gdg-garage/garage-levels/internal/models"
)

// Leaderboard returns the top limit users by XP. Ties go to whoever was
// tracked first.
func (s *GormStore) Leaderboard(ctx context.Context, limit int) ([]models.UserProgress, error) {
	var users []models.UserProgress
	err := s.db.WithContext(ctx).
		Order("total_xp DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fail("leaderboard", err)
	}
	return users, nil
}

// Rank returns the 1-based leaderboard position of a user.
func (s *GormStore) Rank(ctx context.Context, userID string) (int64, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var ahead int64
	err = s.db.WithContext(ctx).Model(&models.UserProgress{}).
		Where("total_xp > ? OR (total_xp = ? AND id < ?)", u.TotalXP, u.TotalXP, u.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, fail("rank", err)
	}
	return ahead + 1, nil
}

// Totals aggregates activity over every tracked user.
type Totals struct {
	Users        int64 `json:"total_users"`
	Messages     int64 `json:"total_messages"`
	VoiceSeconds int64 `json:"total_voice_seconds"`
}

func (s *GormStore) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.WithContext(ctx).Model(&models.UserProgress{}).
		Select("COUNT(*) AS users, COALESCE(SUM(message_count), 0) AS messages, COALESCE(SUM(voice_seconds), 0) AS voice_seconds").
		Scan(&t).Error
	if err != nil {
		return Totals{}, fail("totals", err)
	}
	return t, nil
}
