package auth

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Middleware rejects admin operations before their handler runs.
func (g *AdminGuard) Middleware(api huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		err := g.Authorize(ctx.Header(APIKeyHeader))
		switch {
		case err == nil:
			next(ctx)
		case errors.Is(err, ErrAdminDisabled):
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "Forbidden: admin API is disabled")
		default:
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "Unauthorized: invalid API key")
		}
	}
}
