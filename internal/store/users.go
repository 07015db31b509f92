package store

import (
	"context"
	"errors"
	"time"

	"github.com/gdg-garage/garage-levels/internal/models"
	"gorm.io/gorm"
)

func (s *GormStore) GetUser(ctx context.Context, userID string) (*models.UserProgress, error) {
	var u models.UserProgress
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fail("get user", err)
	}
	return &u, nil
}

// EnsureUser creates the record on first sight and refreshes the display name otherwise.
func (s *GormStore) EnsureUser(ctx context.Context, userID, displayName string, at time.Time) (*models.UserProgress, error) {
	var out *models.UserProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := ensureUser(tx, userID, displayName, at)
		out = u
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func ensureUser(tx *gorm.DB, userID, displayName string, at time.Time) (*models.UserProgress, error) {
	var u models.UserProgress
	err := tx.Where("user_id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		u = models.UserProgress{UserID: userID, DisplayName: displayName}
		u.CreatedAt = at
		if err := tx.Create(&u).Error; err != nil {
			return nil, fail("create user", err)
		}
		return &u, nil
	}
	if err != nil {
		return nil, fail("load user", err)
	}

	if displayName != "" && u.DisplayName != displayName {
		if err := tx.Model(&u).Update("display_name", displayName).Error; err != nil {
			return nil, fail("update display name", err)
		}
		u.DisplayName = displayName
	}
	return &u, nil
}

func reload(tx *gorm.DB, id uint) (*models.UserProgress, error) {
	var u models.UserProgress
	if err := tx.First(&u, id).Error; err != nil {
		return nil, fail("reload user", err)
	}
	return &u, nil
}

// AddMessage counts one XP-earning message and returns the updated record.
func (s *GormStore) AddMessage(ctx context.Context, userID, displayName string, xp int64, at time.Time) (*models.UserProgress, error) {
	var out *models.UserProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := ensureUser(tx, userID, displayName, at)
		if err != nil {
			return err
		}

		err = tx.Model(&models.UserProgress{}).Where("id = ?", u.ID).Updates(map[string]any{
			"message_count":   gorm.Expr("message_count + ?", 1),
			"total_xp":        gorm.Expr("total_xp + ?", xp),
			"last_message_at": at,
		}).Error
		if err != nil {
			return fail("add message", err)
		}

		out, err = reload(tx, u.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyPrestige loads the user, asks plan for the new XP total and writes it
// together with the prestige increment. An error from plan aborts without writing.
// It returns the record before and after the reset.
func (s *GormStore) ApplyPrestige(ctx context.Context, userID string, plan func(u models.UserProgress) (int64, error)) (before, after *models.UserProgress, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.UserProgress
		err := tx.Where("user_id = ?", userID).First(&u).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fail("load user", err)
		}

		newXP, err := plan(u)
		if err != nil {
			return err
		}

		res := tx.Model(&models.UserProgress{}).
			Where("id = ? AND total_xp = ?", u.ID, u.TotalXP).
			Updates(map[string]any{
				"total_xp":       newXP,
				"prestige_count": gorm.Expr("prestige_count + ?", 1),
			})
		if res.Error != nil {
			return fail("prestige", res.Error)
		}
		if res.RowsAffected != 1 {
			return fail("prestige", errors.New("concurrent update"))
		}

		before = &u
		after, err = reload(tx, u.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}
