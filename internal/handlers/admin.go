package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/garage-levels/internal/auth"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/prestige"
	"github.com/gdg-garage/garage-levels/internal/rewards"
	"github.com/gdg-garage/garage-levels/internal/store"
)

type AdminHandler struct {
	rewards  *rewards.Directory
	prestige *prestige.Service
}

func NewAdminHandler(dir *rewards.Directory, ps *prestige.Service) *AdminHandler {
	return &AdminHandler{rewards: dir, prestige: ps}
}

type ListRewardsInput struct {
	auth.AdminInput
}

type RewardsOutput struct {
	Body []models.Reward
}

func (h *AdminHandler) HandleListRewards(ctx context.Context, _ *ListRewardsInput) (*RewardsOutput, error) {
	list, err := h.rewards.List(ctx)
	if err != nil {
		return nil, internalError("Failed to load rewards", err)
	}
	if list == nil {
		list = []models.Reward{}
	}
	return &RewardsOutput{Body: list}, nil
}

type SetRewardInput struct {
	auth.AdminInput
	Level int `path:"level" doc:"Level that grants the role"`
	Body  struct {
		RoleID   string `json:"role_id" doc:"Discord role ID" required:"true"`
		RoleName string `json:"role_name,omitempty" doc:"Display name of the role"`
	}
}

type RewardOutput struct {
	Body models.Reward
}

func (h *AdminHandler) HandleSetReward(ctx context.Context, input *SetRewardInput) (*RewardOutput, error) {
	r, err := h.rewards.Set(ctx, input.Level, input.Body.RoleID, input.Body.RoleName)
	if errors.Is(err, rewards.ErrInvalidLevel) || errors.Is(err, rewards.ErrInvalidRole) {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	if err != nil {
		return nil, internalError("Failed to save reward", err)
	}
	return &RewardOutput{Body: r}, nil
}

type DeleteRewardInput struct {
	auth.AdminInput
	Level int `path:"level" doc:"Level whose reward is removed"`
}

func (h *AdminHandler) HandleDeleteReward(ctx context.Context, input *DeleteRewardInput) (*struct{}, error) {
	err := h.rewards.Delete(ctx, input.Level)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("Reward not found")
	}
	if err != nil {
		return nil, internalError("Failed to delete reward", err)
	}
	return nil, nil
}

type PrestigeInput struct {
	auth.AdminInput
	ID string `path:"id" doc:"Discord user ID"`
}

type PrestigeOutput struct {
	Body prestige.Result
}

func (h *AdminHandler) HandlePrestige(ctx context.Context, input *PrestigeInput) (*PrestigeOutput, error) {
	res, err := h.prestige.Prestige(ctx, input.ID)
	var inelig *prestige.IneligibleError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, huma.Error404NotFound("User not found")
	case errors.As(err, &inelig):
		return nil, huma.Error409Conflict(inelig.Error())
	case err != nil:
		return nil, internalError("Failed to prestige user", err)
	}
	return &PrestigeOutput{Body: res}, nil
}
