// Package rewards maps levels to the Discord roles granted on reaching them.
package rewards

import (
	"context"
	"errors"
	"strings"

	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/store"
)

var (
	ErrInvalidLevel = errors.New("reward level must be at least 1")
	ErrInvalidRole  = errors.New("reward role id must not be empty")
)

type Store interface {
	SetReward(ctx context.Context, reward models.Reward) error
	Rewards(ctx context.Context) ([]models.Reward, error)
	RewardForLevel(ctx context.Context, level int) (*models.Reward, error)
	DeleteReward(ctx context.Context, level int) error
}

type Directory struct {
	store Store
}

func NewDirectory(s Store) *Directory {
	return &Directory{store: s}
}

// Set assigns roleID to level, replacing any previous role for it.
func (d *Directory) Set(ctx context.Context, level int, roleID, roleName string) (models.Reward, error) {
	if level < 1 {
		return models.Reward{}, ErrInvalidLevel
	}
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return models.Reward{}, ErrInvalidRole
	}

	r := models.Reward{Level: level, RoleID: roleID, RoleName: roleName}
	if err := d.store.SetReward(ctx, r); err != nil {
		return models.Reward{}, err
	}
	return r, nil
}

// List returns every reward by ascending level.
func (d *Directory) List(ctx context.Context) ([]models.Reward, error) {
	return d.store.Rewards(ctx)
}

// Delete removes the reward for level; store.ErrNotFound if there was none.
func (d *Directory) Delete(ctx context.Context, level int) error {
	return d.store.DeleteReward(ctx, level)
}

// ForLevel returns the reward for level, or nil when none is configured.
func (d *Directory) ForLevel(ctx context.Context, level int) (*models.Reward, error) {
	r, err := d.store.RewardForLevel(ctx, level)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return r, err
}
