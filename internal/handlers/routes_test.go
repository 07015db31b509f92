package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gdg-garage/garage-levels/internal/auth"
	"github.com/gdg-garage/garage-levels/internal/badges"
	"github.com/gdg-garage/garage-levels/internal/config"
	"github.com/gdg-garage/garage-levels/internal/database"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/prestige"
	"github.com/gdg-garage/garage-levels/internal/rewards"
	"github.com/gdg-garage/garage-levels/internal/store"
)

const adminKey = "X-API-KEY: s3cret"

var t0 = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

func setup(t *testing.T) (humatest.TestAPI, *store.GormStore) {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	s := store.New(db)
	if err := badges.Seed(context.Background(), s); err != nil {
		t.Fatalf("failed to seed badges: %v", err)
	}

	_, api := humatest.New(t)
	guard := auth.NewAdminGuard(&config.Config{AdminAPIKey: "s3cret"})
	Register(api, guard,
		NewDashboardHandler(s, 50),
		NewAdminHandler(rewards.NewDirectory(s), prestige.NewService(s, prestige.DefaultMinLevel)))
	return api, s
}

func TestLeaderboardRoute(t *testing.T) {
	api, s := setup(t)
	ctx := context.Background()

	s.AddMessage(ctx, "a", "Ann", 500, t0)
	s.AddMessage(ctx, "b", "Ben", 900, t0)
	s.AddMessage(ctx, "c", "Cat", 500, t0)

	resp := api.Get("/api/leaderboard?limit=2")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %v: %s", resp.Code, resp.Body.String())
	}

	var entries []LeaderboardEntry
	if err := json.Unmarshal(resp.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "b" || entries[0].Level != 3 {
		t.Errorf("unexpected leader: %+v", entries[0])
	}
	// Ties keep insertion order.
	if entries[1].UserID != "a" || entries[1].Rank != 2 {
		t.Errorf("unexpected runner-up: %+v", entries[1])
	}

	if resp := api.Get("/api/leaderboard?limit=500"); resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for oversized limit, got %v", resp.Code)
	}
}

func TestUserRoutes(t *testing.T) {
	api, s := setup(t)
	ctx := context.Background()

	t.Run("NotFound", func(t *testing.T) {
		if resp := api.Get("/api/users/ghost"); resp.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %v", resp.Code)
		}
		if resp := api.Get("/api/users/ghost/sessions"); resp.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %v", resp.Code)
		}
	})

	s.AddMessage(ctx, "u", "Ulla", 150, t0)
	s.AwardBadge(ctx, "u", "first_msg", t0)
	s.StartVoice(ctx, "u", "Ulla", t0)
	s.EndVoice(ctx, "u", t0.Add(90*time.Minute), func(int64) int64 { return 0 })

	t.Run("Profile", func(t *testing.T) {
		resp := api.Get("/api/users/u")
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status OK, got %v", resp.Code)
		}
		var body struct {
			Username   string         `json:"username"`
			Rank       int64          `json:"rank"`
			VoiceHours float64        `json:"voice_hours"`
			Badges     []BadgeSummary `json:"badges"`
			Progress   struct {
				Level int `json:"level"`
			} `json:"progress"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Username != "Ulla" || body.Rank != 1 || body.Progress.Level != 1 {
			t.Errorf("unexpected profile: %+v", body)
		}
		if body.VoiceHours != 1.5 {
			t.Errorf("expected 1.5 voice hours, got %v", body.VoiceHours)
		}
		if len(body.Badges) != 1 || body.Badges[0].ID != "first_msg" {
			t.Errorf("unexpected badges: %+v", body.Badges)
		}
	})

	t.Run("Sessions", func(t *testing.T) {
		resp := api.Get("/api/users/u/sessions")
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status OK, got %v", resp.Code)
		}
		var sessions []models.VoiceSession
		if err := json.Unmarshal(resp.Body.Bytes(), &sessions); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if len(sessions) != 1 || sessions[0].DurationSeconds != 5400 {
			t.Errorf("unexpected sessions: %+v", sessions)
		}
	})
}

func TestStatsAndBadgesRoutes(t *testing.T) {
	api, s := setup(t)
	ctx := context.Background()

	resp := api.Get("/api/stats")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.Code)
	}

	s.AddMessage(ctx, "a", "Ann", 10, t0)
	s.AddMessage(ctx, "a", "Ann", 10, t0)
	s.AddMessage(ctx, "b", "Ben", 10, t0)

	resp = api.Get("/api/stats")
	var stats struct {
		TotalUsers    int64 `json:"total_users"`
		TotalMessages int64 `json:"total_messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if stats.TotalUsers != 2 || stats.TotalMessages != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	resp = api.Get("/api/badges")
	var catalog []models.Badge
	if err := json.Unmarshal(resp.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(catalog) != len(badges.DefaultCatalog()) {
		t.Errorf("expected full catalog, got %d badges", len(catalog))
	}
}

func TestRewardRoutes(t *testing.T) {
	api, _ := setup(t)

	if resp := api.Get("/api/rewards"); resp.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %v", resp.Code)
	}

	resp := api.Put("/api/rewards/10", adminKey, map[string]any{"role_id": "r10", "role_name": "Regular"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %v: %s", resp.Code, resp.Body.String())
	}

	resp = api.Put("/api/rewards/0", adminKey, map[string]any{"role_id": "r0"})
	if resp.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for level 0, got %v", resp.Code)
	}

	resp = api.Get("/api/rewards", adminKey)
	var list []models.Reward
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(list) != 1 || list[0].RoleID != "r10" {
		t.Errorf("unexpected rewards: %+v", list)
	}

	if resp := api.Delete("/api/rewards/10", adminKey); resp.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %v", resp.Code)
	}
	if resp := api.Delete("/api/rewards/10", adminKey); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", resp.Code)
	}
}

func TestPrestigeRoute(t *testing.T) {
	api, s := setup(t)
	ctx := context.Background()

	if resp := api.Post("/api/users/ghost/prestige", adminKey); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", resp.Code)
	}

	s.AddMessage(ctx, "low", "Low", 5000, t0)
	if resp := api.Post("/api/users/low/prestige", adminKey); resp.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", resp.Code)
	}

	s.AddMessage(ctx, "high", "High", 62500, t0)
	resp := api.Post("/api/users/high/prestige", adminKey)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status OK, got %v: %s", resp.Code, resp.Body.String())
	}
	var res prestige.Result
	if err := json.Unmarshal(resp.Body.Bytes(), &res); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if res.NewXP != 6350 || res.PrestigeCount != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
}
