// Package prestige resets a member's XP in exchange for a permanent head start.
package prestige

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
)

const (
	DefaultMinLevel = 25

	// StartingXP is granted on top of the bonus after a reset.
	StartingXP = 100
)

// ErrIneligible matches any *IneligibleError.
var ErrIneligible = errors.New("not eligible for prestige")

type IneligibleError struct {
	Level    int
	Required int
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("prestige requires level %d, user is level %d", e.Required, e.Level)
}

func (e *IneligibleError) Is(target error) bool {
	return target == ErrIneligible
}

type Store interface {
	GetUser(ctx context.Context, userID string) (*models.UserProgress, error)
	ApplyPrestige(ctx context.Context, userID string, plan func(u models.UserProgress) (int64, error)) (before, after *models.UserProgress, err error)
}

type Result struct {
	OldXP         int64 `json:"old_xp"`
	NewXP         int64 `json:"new_xp"`
	Bonus         int64 `json:"bonus"`
	PrestigeCount int   `json:"prestige_level"`
}

type Service struct {
	store    Store
	minLevel int
}

func NewService(s Store, minLevel int) *Service {
	if minLevel <= 0 {
		minLevel = DefaultMinLevel
	}
	return &Service{store: s, minLevel: minLevel}
}

func (s *Service) MinLevel() int {
	return s.minLevel
}

// Bonus is 10% of the XP given up, rounded down.
func Bonus(totalXP int64) int64 {
	if totalXP <= 0 {
		return 0
	}
	return totalXP / 10
}

func (s *Service) plan(u models.UserProgress) (int64, error) {
	level := levels.XPToLevel(u.TotalXP)
	if level < s.minLevel {
		return 0, &IneligibleError{Level: level, Required: s.minLevel}
	}
	return StartingXP + Bonus(u.TotalXP), nil
}

// Preview returns what Prestige would do without changing anything.
func (s *Service) Preview(ctx context.Context, userID string) (Result, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	newXP, err := s.plan(*u)
	if err != nil {
		return Result{}, err
	}
	return Result{
		OldXP:         u.TotalXP,
		NewXP:         newXP,
		Bonus:         Bonus(u.TotalXP),
		PrestigeCount: u.PrestigeCount + 1,
	}, nil
}

// Prestige resets XP to StartingXP plus the bonus and bumps the prestige
// counter. Message and voice counters and earned badges are kept.
// Errors: store.ErrNotFound, ErrIneligible; neither mutates anything.
func (s *Service) Prestige(ctx context.Context, userID string) (Result, error) {
	before, after, err := s.store.ApplyPrestige(ctx, userID, s.plan)
	if err != nil {
		return Result{}, err
	}
	return Result{
		OldXP:         before.TotalXP,
		NewXP:         after.TotalXP,
		Bonus:         Bonus(before.TotalXP),
		PrestigeCount: after.PrestigeCount,
	}, nil
}
