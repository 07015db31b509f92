package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/gdg-garage/garage-levels/internal/config"
)

const APIKeyHeader = "X-API-KEY"

var (
	ErrAdminDisabled = errors.New("admin API is disabled")
	ErrInvalidKey    = errors.New("invalid API key")
)

// AdminInput documents the admin key header on protected operations.
type AdminInput struct {
	APIKey string `header:"X-API-KEY" doc:"Admin API key"`
}

// AdminGuard checks requests against the single shared ADMIN_API_KEY.
type AdminGuard struct {
	key []byte
}

func NewAdminGuard(cfg *config.Config) *AdminGuard {
	return &AdminGuard{key: []byte(cfg.AdminAPIKey)}
}

func (g *AdminGuard) Enabled() bool {
	return len(g.key) > 0
}

// Authorize reports whether key grants admin access. With no key configured
// every request is refused.
func (g *AdminGuard) Authorize(key string) error {
	if !g.Enabled() {
		return ErrAdminDisabled
	}
	if key == "" || subtle.ConstantTimeCompare([]byte(key), g.key) != 1 {
		return ErrInvalidKey
	}
	return nil
}
