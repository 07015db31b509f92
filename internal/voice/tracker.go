// Package voice turns raw voice state changes into XP-earning sessions.
package voice

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
)

// State is a member's voice state as reported by the gateway. An empty
// ChannelID means disconnected.
type State struct {
	ChannelID  string
	SelfMute   bool
	SelfDeaf   bool
	ServerMute bool
	ServerDeaf bool
}

func (s State) Connected() bool {
	return s.ChannelID != ""
}

func (s State) Muted() bool {
	return s.SelfMute || s.SelfDeaf || s.ServerMute || s.ServerDeaf
}

type Transition int

const (
	None Transition = iota
	Start
	Stop
)

func (t Transition) String() string {
	switch t {
	case Start:
		return "start"
	case Stop:
		return "stop"
	default:
		return "none"
	}
}

// Classify maps the accruing flag before and after an update to an action.
func Classify(wasAccruing, isAccruing bool) Transition {
	switch {
	case !wasAccruing && isAccruing:
		return Start
	case wasAccruing && !isAccruing:
		return Stop
	default:
		return None
	}
}

type Event struct {
	UserID      string
	DisplayName string
	Before      State
	After       State
	At          time.Time
}

type Outcome struct {
	Transition Transition
	// Started is false when a Start found an interval already open.
	Started bool
	// Session and User are set only when a Stop closed an interval.
	Session *models.VoiceSession
	User    *models.UserProgress
}

type Store interface {
	StartVoice(ctx context.Context, userID, displayName string, at time.Time) (bool, error)
	EndVoice(ctx context.Context, userID string, at time.Time, award func(seconds int64) int64) (*models.VoiceSession, *models.UserProgress, error)
}

type Tracker struct {
	store    Store
	excluded func(channelID string) bool
	rate     int64
	logger   *slog.Logger
}

// NewTracker builds a tracker. excluded may be nil; rate is XP per full minute.
func NewTracker(s Store, excluded func(string) bool, rate int64, logger *slog.Logger) *Tracker {
	if excluded == nil {
		excluded = func(string) bool { return false }
	}
	if rate <= 0 {
		rate = levels.DefaultVoiceXPPerMinute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{store: s, excluded: excluded, rate: rate, logger: logger}
}

// Accruing reports whether a member in state s earns voice XP.
func (t *Tracker) Accruing(s State) bool {
	return s.Connected() && !s.Muted() && !t.excluded(s.ChannelID)
}

// Award converts a closed interval to XP at the tracker's rate.
func (t *Tracker) Award(seconds int64) int64 {
	return levels.VoiceAward(seconds, t.rate)
}

// Handle applies one voice state update. Whether the member is accruing is
// derived from each state, so moving into an excluded channel stops an
// interval and moving out of one starts it.
func (t *Tracker) Handle(ctx context.Context, ev Event) (Outcome, error) {
	at := ev.At.Truncate(time.Second)
	out := Outcome{Transition: Classify(t.Accruing(ev.Before), t.Accruing(ev.After))}

	switch out.Transition {
	case Start:
		started, err := t.store.StartVoice(ctx, ev.UserID, ev.DisplayName, at)
		if err != nil {
			return out, err
		}
		out.Started = started
		if !started {
			t.logger.Debug("voice interval already open", "user", ev.UserID)
		}

	case Stop:
		session, user, err := t.store.EndVoice(ctx, ev.UserID, at, t.Award)
		if err != nil {
			return out, err
		}
		if session == nil {
			t.logger.Debug("voice stop without open interval", "user", ev.UserID)
			return out, nil
		}
		out.Session, out.User = session, user
		t.logger.Info("voice session closed",
			"user", ev.UserID,
			"seconds", session.DurationSeconds,
			"xp", session.XPEarned)
	}
	return out, nil
}

// Resume opens an interval for a member found in voice when the gateway
// (re)connects, without a Before state to compare against.
func (t *Tracker) Resume(ctx context.Context, userID, displayName string, s State, at time.Time) (bool, error) {
	if !t.Accruing(s) {
		return false, nil
	}
	return t.store.StartVoice(ctx, userID, displayName, at.Truncate(time.Second))
}
