// Package progression runs activity events through XP, levels, rewards and badges.
package progression

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdg-garage/garage-levels/internal/cooldown"
	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/voice"
)

const DefaultMilestoneEvery = 10

type Store interface {
	AddMessage(ctx context.Context, userID, displayName string, xp int64, at time.Time) (*models.UserProgress, error)
	ClearStaleVoice(ctx context.Context) (int64, error)
}

type Rewards interface {
	ForLevel(ctx context.Context, level int) (*models.Reward, error)
}

type Badges interface {
	CheckAndAward(ctx context.Context, userID string, at time.Time) ([]models.Badge, error)
}

type Tracker interface {
	Handle(ctx context.Context, ev voice.Event) (voice.Outcome, error)
	Resume(ctx context.Context, userID, displayName string, s voice.State, at time.Time) (bool, error)
}

type MessageEvent struct {
	UserID      string
	DisplayName string
	Content     string
	InGuild     bool
	At          time.Time
}

// LevelUp describes levels gained by a single event. Rewards holds the role
// reward of every level crossed, lowest first.
type LevelUp struct {
	From      int
	To        int
	Milestone bool
	Rewards   []models.Reward
}

type MessageResult struct {
	Awarded bool
	XP      int64
	User    *models.UserProgress
	LevelUp *LevelUp
	Badges  []models.Badge
}

type VoiceResult struct {
	Outcome voice.Outcome
	LevelUp *LevelUp
	Badges  []models.Badge
}

type Options struct {
	MilestoneEvery int
	Logger         *slog.Logger
}

type Service struct {
	store   Store
	gate    cooldown.Gate
	tracker Tracker
	rewards Rewards
	badges  Badges

	milestoneEvery int
	logger         *slog.Logger
}

func NewService(s Store, gate cooldown.Gate, tracker Tracker, rewards Rewards, badges Badges, opts Options) *Service {
	if opts.MilestoneEvery <= 0 {
		opts.MilestoneEvery = DefaultMilestoneEvery
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		store:          s,
		gate:           gate,
		tracker:        tracker,
		rewards:        rewards,
		badges:         badges,
		milestoneEvery: opts.MilestoneEvery,
		logger:         opts.Logger,
	}
}

// HandleMessage awards message XP unless the message is outside the guild or
// the author is still inside the cooldown window.
func (s *Service) HandleMessage(ctx context.Context, ev MessageEvent) (MessageResult, error) {
	if !ev.InGuild {
		return MessageResult{}, nil
	}
	ok, err := s.gate.Allow(ctx, ev.UserID, ev.At)
	if err != nil {
		return MessageResult{}, err
	}
	if !ok {
		return MessageResult{}, nil
	}

	xp := levels.XPForMessage(ev.Content)
	u, err := s.store.AddMessage(ctx, ev.UserID, ev.DisplayName, xp, ev.At)
	if err != nil {
		return MessageResult{}, err
	}

	res := MessageResult{Awarded: true, XP: xp, User: u}
	res.LevelUp, err = s.levelUp(ctx, u.TotalXP-xp, u.TotalXP)
	if err != nil {
		return res, err
	}
	if res.LevelUp != nil {
		s.logger.Info("level up", "user", ev.UserID, "from", res.LevelUp.From, "to", res.LevelUp.To)
	}

	res.Badges, err = s.badges.CheckAndAward(ctx, ev.UserID, ev.At)
	return res, err
}

// HandleVoice applies a voice state change. Level, reward and badge checks
// run only when an interval was closed.
func (s *Service) HandleVoice(ctx context.Context, ev voice.Event) (VoiceResult, error) {
	out, err := s.tracker.Handle(ctx, ev)
	res := VoiceResult{Outcome: out}
	if err != nil || out.Session == nil {
		return res, err
	}

	after := out.User.TotalXP
	res.LevelUp, err = s.levelUp(ctx, after-out.Session.XPEarned, after)
	if err != nil {
		return res, err
	}
	if res.LevelUp != nil {
		s.logger.Info("level up", "user", ev.UserID, "from", res.LevelUp.From, "to", res.LevelUp.To)
	}

	res.Badges, err = s.badges.CheckAndAward(ctx, ev.UserID, ev.At)
	return res, err
}

// Reconcile drops voice markers left open by a previous run. Those intervals
// earn nothing since their end time is unknown.
func (s *Service) Reconcile(ctx context.Context) error {
	n, err := s.store.ClearStaleVoice(ctx)
	if err != nil {
		return fmt.Errorf("reconcile voice: %w", err)
	}
	if n > 0 {
		s.logger.Warn("cleared stale voice sessions", "count", n)
	}
	return nil
}

// Resume starts tracking a member who is already in voice when the bot
// connects.
func (s *Service) Resume(ctx context.Context, userID, displayName string, state voice.State, at time.Time) (bool, error) {
	return s.tracker.Resume(ctx, userID, displayName, state, at)
}

func (s *Service) levelUp(ctx context.Context, beforeXP, afterXP int64) (*LevelUp, error) {
	from, to := levels.XPToLevel(beforeXP), levels.XPToLevel(afterXP)
	if to <= from {
		return nil, nil
	}

	lu := &LevelUp{
		From:      from,
		To:        to,
		Milestone: to/s.milestoneEvery > from/s.milestoneEvery,
	}
	for lvl := from + 1; lvl <= to; lvl++ {
		r, err := s.rewards.ForLevel(ctx, lvl)
		if err != nil {
			return lu, err
		}
		if r != nil {
			lu.Rewards = append(lu.Rewards, *r)
		}
	}
	return lu, nil
}
