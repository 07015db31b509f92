package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/garage-levels/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(enableCORS bool, guard *auth.AdminGuard, dashboard *DashboardHandler, admin *AdminHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if enableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", auth.APIKeyHeader},
			MaxAge:         300,
		}))
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	config := huma.DefaultConfig("Garage Levels API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"apiKeyAuth": {
			Type: "apiKey",
			In:   "header",
			Name: auth.APIKeyHeader,
		},
	}
	api := humachi.New(r, config)

	Register(api, guard, dashboard, admin)
	return r
}

// Register adds every API operation to api.
func Register(api huma.API, guard *auth.AdminGuard, dashboard *DashboardHandler, admin *AdminHandler) {
	huma.Get(api, "/api/leaderboard", dashboard.HandleLeaderboard)
	huma.Get(api, "/api/stats", dashboard.HandleStats)
	huma.Get(api, "/api/badges", dashboard.HandleBadges)
	huma.Get(api, "/api/users/{id}", dashboard.HandleUser)
	huma.Get(api, "/api/users/{id}/sessions", dashboard.HandleSessions)

	protected := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"apiKeyAuth": {}}}
		o.Middlewares = append(o.Middlewares, guard.Middleware(api))
	}
	huma.Get(api, "/api/rewards", admin.HandleListRewards, protected)
	huma.Put(api, "/api/rewards/{level}", admin.HandleSetReward, protected)
	huma.Delete(api, "/api/rewards/{level}", admin.HandleDeleteReward, protected)
	huma.Post(api, "/api/users/{id}/prestige", admin.HandlePrestige, protected, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusOK
	})
}
