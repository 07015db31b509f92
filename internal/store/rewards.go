package store

import (
	"context"
	"errors"

	"github.com/gdg-garage/garage-levels/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetReward upserts the role for a level; the last write wins.
func (s *GormStore) SetReward(ctx context.Context, reward models.Reward) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "level"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id", "role_name"}),
		}).
		Create(&reward).Error
	if err != nil {
		return fail("set reward", err)
	}
	return nil
}

func (s *GormStore) Rewards(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	if err := s.db.WithContext(ctx).Order("level ASC").Find(&rewards).Error; err != nil {
		return nil, fail("list rewards", err)
	}
	return rewards, nil
}

func (s *GormStore) RewardForLevel(ctx context.Context, level int) (*models.Reward, error) {
	var r models.Reward
	err := s.db.WithContext(ctx).Where("level = ?", level).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fail("get reward", err)
	}
	return &r, nil
}

func (s *GormStore) DeleteReward(ctx context.Context, level int) error {
	res := s.db.WithContext(ctx).Where("level = ?", level).Delete(&models.Reward{})
	if res.Error != nil {
		return fail("delete reward", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
