// Package badges awards catalog badges once a member's stats cross their thresholds.
package badges

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/store"
)

type Store interface {
	GetUser(ctx context.Context, userID string) (*models.UserProgress, error)
	ListBadges(ctx context.Context) ([]models.Badge, error)
	EarnedBadgeIDs(ctx context.Context, userID string) (map[string]bool, error)
	AwardBadge(ctx context.Context, userID, badgeID string, at time.Time) (bool, error)
}

type Engine struct {
	store Store
}

func NewEngine(s Store) *Engine {
	return &Engine{store: s}
}

// StatsOf is the badge view of a user: level derived from XP, counters as stored.
func StatsOf(u *models.UserProgress) models.Stats {
	return models.Stats{
		MessageCount: u.MessageCount,
		VoiceSeconds: u.VoiceSeconds,
		Level:        levels.XPToLevel(u.TotalXP),
	}
}

// CheckAndAward grants every catalog badge the user now qualifies for and
// does not hold yet. Only badges this call actually inserted are returned, so
// repeated or concurrent calls never report the same badge twice. Earned
// badges are never revoked, even when stats later drop.
func (e *Engine) CheckAndAward(ctx context.Context, userID string, at time.Time) ([]models.Badge, error) {
	u, err := e.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	catalog, err := e.store.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := e.store.EarnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := StatsOf(u)
	var awarded []models.Badge
	for _, b := range catalog {
		if earned[b.BadgeID] || !b.RequirementType.Satisfied(stats, b.RequirementValue) {
			continue
		}
		inserted, err := e.store.AwardBadge(ctx, userID, b.BadgeID, at)
		if err != nil {
			return awarded, fmt.Errorf("award %s: %w", b.BadgeID, err)
		}
		if inserted {
			awarded = append(awarded, b)
		}
	}
	return awarded, nil
}

// Entry is a catalog badge with the user's status on it.
type Entry struct {
	models.Badge
	Earned bool `json:"earned"`
}

// Board lists the whole catalog in display order, marking what userID holds.
func (e *Engine) Board(ctx context.Context, userID string) ([]Entry, error) {
	catalog, err := e.store.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := e.store.EarnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	board := make([]Entry, 0, len(catalog))
	for _, b := range catalog {
		board = append(board, Entry{Badge: b, Earned: earned[b.BadgeID]})
	}
	return board, nil
}
