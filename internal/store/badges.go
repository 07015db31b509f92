package store

import (
	"context"
	"time"

	"github.com/gdg-garage/garage-levels/internal/models"
	"gorm.io/gorm/clause"
)

// SeedBadges inserts catalog entries that are not present yet. Existing
// entries are left as they are.
func (s *GormStore) SeedBadges(ctx context.Context, catalog []models.Badge) error {
	if len(catalog) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&catalog).Error
	if err != nil {
		return fail("seed badges", err)
	}
	return nil
}

func (s *GormStore) ListBadges(ctx context.Context) ([]models.Badge, error) {
	var badges []models.Badge
	if err := s.db.WithContext(ctx).Order("position ASC, badge_id ASC").Find(&badges).Error; err != nil {
		return nil, fail("list badges", err)
	}
	return badges, nil
}

func (s *GormStore) EarnedBadgeIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	if err != nil {
		return nil, fail("list earned badge ids", err)
	}

	earned := make(map[string]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

// EarnedBadges returns the catalog entries a user holds, newest first.
func (s *GormStore) EarnedBadges(ctx context.Context, userID string) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.db.WithContext(ctx).
		Model(&models.Badge{}).
		Joins("JOIN user_badges ON user_badges.badge_id = badges.badge_id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.earned_at DESC, badges.position ASC").
		Find(&badges).Error
	if err != nil {
		return nil, fail("list earned badges", err)
	}
	return badges, nil
}

// AwardBadge records the pair once. It reports whether this call inserted it;
// a duplicate award is not an error.
func (s *GormStore) AwardBadge(ctx context.Context, userID, badgeID string, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.UserBadge{UserID: userID, BadgeID: badgeID, EarnedAt: at})
	if res.Error != nil {
		return false, fail("award badge", res.Error)
	}
	return res.RowsAffected == 1, nil
}
