package handlers

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/store"
)

const maxPageSize = 100

type DashboardStore interface {
	GetUser(ctx context.Context, userID string) (*models.UserProgress, error)
	Leaderboard(ctx context.Context, limit int) ([]models.UserProgress, error)
	Rank(ctx context.Context, userID string) (int64, error)
	Totals(ctx context.Context) (store.Totals, error)
	VoiceSessions(ctx context.Context, userID string, limit int) ([]models.VoiceSession, error)
	EarnedBadges(ctx context.Context, userID string) ([]models.Badge, error)
	ListBadges(ctx context.Context) ([]models.Badge, error)
}

type DashboardHandler struct {
	store        DashboardStore
	defaultLimit int
}

func NewDashboardHandler(s DashboardStore, defaultLimit int) *DashboardHandler {
	if defaultLimit <= 0 {
		defaultLimit = 50
	}
	return &DashboardHandler{store: s, defaultLimit: defaultLimit}
}

func hours(seconds int64) float64 {
	return math.Round(float64(seconds)/36) / 100
}

// internalError logs the cause and hides it from the client.
func internalError(msg string, err error) error {
	log.Printf("%s: %v", msg, err)
	return huma.Error500InternalServerError(msg)
}

type LeaderboardInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"100" doc:"Number of entries, defaults to LEADERBOARD_LIMIT"`
}

type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	XP         int64   `json:"xp"`
	Level      int     `json:"level"`
	Messages   int64   `json:"messages"`
	VoiceHours float64 `json:"voice_hours"`
	Prestige   int     `json:"prestige"`
}

type LeaderboardOutput struct {
	Body []LeaderboardEntry
}

func (h *DashboardHandler) HandleLeaderboard(ctx context.Context, input *LeaderboardInput) (*LeaderboardOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = h.defaultLimit
	}
	limit = min(limit, maxPageSize)

	users, err := h.store.Leaderboard(ctx, limit)
	if err != nil {
		return nil, internalError("Failed to load leaderboard", err)
	}

	res := &LeaderboardOutput{Body: make([]LeaderboardEntry, 0, len(users))}
	for i, u := range users {
		res.Body = append(res.Body, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     u.UserID,
			Username:   u.DisplayName,
			XP:         u.TotalXP,
			Level:      levels.XPToLevel(u.TotalXP),
			Messages:   u.MessageCount,
			VoiceHours: hours(u.VoiceSeconds),
			Prestige:   u.PrestigeCount,
		})
	}
	return res, nil
}

type UserInput struct {
	ID string `path:"id" doc:"Discord user ID"`
}

type BadgeSummary struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Name string `json:"name"`
}

type UserOutput struct {
	Body struct {
		UserID     string          `json:"user_id"`
		Username   string          `json:"username"`
		Rank       int64           `json:"rank"`
		Progress   levels.Progress `json:"progress"`
		Messages   int64           `json:"messages"`
		VoiceHours float64         `json:"voice_hours"`
		InVoice    bool            `json:"in_voice"`
		Prestige   int             `json:"prestige"`
		Badges     []BadgeSummary  `json:"badges"`
	}
}

func (h *DashboardHandler) HandleUser(ctx context.Context, input *UserInput) (*UserOutput, error) {
	u, err := h.store.GetUser(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("User not found")
	}
	if err != nil {
		return nil, internalError("Failed to load user", err)
	}

	rank, err := h.store.Rank(ctx, input.ID)
	if err != nil {
		return nil, internalError("Failed to load rank", err)
	}
	earned, err := h.store.EarnedBadges(ctx, input.ID)
	if err != nil {
		return nil, internalError("Failed to load badges", err)
	}

	res := &UserOutput{}
	res.Body.UserID = u.UserID
	res.Body.Username = u.DisplayName
	res.Body.Rank = rank
	res.Body.Progress = levels.GetProgress(u.TotalXP)
	res.Body.Messages = u.MessageCount
	res.Body.VoiceHours = hours(u.VoiceSeconds)
	res.Body.InVoice = u.Tracking()
	res.Body.Prestige = u.PrestigeCount
	res.Body.Badges = make([]BadgeSummary, 0, len(earned))
	for _, b := range earned {
		res.Body.Badges = append(res.Body.Badges, BadgeSummary{ID: b.BadgeID, Icon: b.Icon, Name: b.Name})
	}
	return res, nil
}

type StatsOutput struct {
	Body struct {
		TotalUsers      int64   `json:"total_users"`
		TotalMessages   int64   `json:"total_messages"`
		TotalVoiceHours float64 `json:"total_voice_hours"`
	}
}

func (h *DashboardHandler) HandleStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	t, err := h.store.Totals(ctx)
	if err != nil {
		return nil, internalError("Failed to load stats", err)
	}
	res := &StatsOutput{}
	res.Body.TotalUsers = t.Users
	res.Body.TotalMessages = t.Messages
	res.Body.TotalVoiceHours = hours(t.VoiceSeconds)
	return res, nil
}

type SessionsInput struct {
	ID    string `path:"id" doc:"Discord user ID"`
	Limit int    `query:"limit" minimum:"0" maximum:"100" doc:"Number of sessions, newest first"`
}

type SessionsOutput struct {
	Body []models.VoiceSession
}

func (h *DashboardHandler) HandleSessions(ctx context.Context, input *SessionsInput) (*SessionsOutput, error) {
	if _, err := h.store.GetUser(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("User not found")
		}
		return nil, internalError("Failed to load user", err)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	sessions, err := h.store.VoiceSessions(ctx, input.ID, limit)
	if err != nil {
		return nil, internalError("Failed to load sessions", err)
	}
	if sessions == nil {
		sessions = []models.VoiceSession{}
	}
	return &SessionsOutput{Body: sessions}, nil
}

type BadgesOutput struct {
	Body []models.Badge
}

func (h *DashboardHandler) HandleBadges(ctx context.Context, _ *struct{}) (*BadgesOutput, error) {
	catalog, err := h.store.ListBadges(ctx)
	if err != nil {
		return nil, internalError("Failed to load badges", err)
	}
	return &BadgesOutput{Body: catalog}, nil
}
