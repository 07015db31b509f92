package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gdg-garage/garage-levels/internal/config"
)

type pingOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func newAPI(t *testing.T, key string) humatest.TestAPI {
	_, api := humatest.New(t)
	guard := NewAdminGuard(&config.Config{AdminAPIKey: key})

	huma.Register(api, huma.Operation{
		OperationID: "admin-ping",
		Method:      http.MethodGet,
		Path:        "/admin/ping",
		Middlewares: huma.Middlewares{guard.Middleware(api)},
	}, func(ctx context.Context, input *struct{ AdminInput }) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Message = "pong"
		return out, nil
	})
	return api
}

func TestMiddleware(t *testing.T) {
	t.Run("ValidKey", func(t *testing.T) {
		api := newAPI(t, "s3cret")
		resp := api.Get("/admin/ping", "X-API-KEY: s3cret")
		if resp.Code != http.StatusOK {
			t.Errorf("expected status OK, got %v", resp.Code)
		}
	})

	t.Run("WrongKey", func(t *testing.T) {
		api := newAPI(t, "s3cret")
		resp := api.Get("/admin/ping", "X-API-KEY: nope")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %v", resp.Code)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		api := newAPI(t, "s3cret")
		resp := api.Get("/admin/ping")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %v", resp.Code)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		api := newAPI(t, "")
		resp := api.Get("/admin/ping", "X-API-KEY: anything")
		if resp.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %v", resp.Code)
		}
	})
}
