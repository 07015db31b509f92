package database

import (
	"testing"

	"github.com/gdg-garage/garage-levels/internal/models"
)

func TestOpen(t *testing.T) {
	t.Run("SQLiteMemory", func(t *testing.T) {
		db, err := Open("sqlite", ":memory:")
		if err != nil {
			t.Fatalf("Open returned error: %v", err)
		}

		for _, table := range []any{&models.UserProgress{}, &models.VoiceSession{}, &models.Badge{}, &models.UserBadge{}, &models.Reward{}} {
			if !db.Migrator().HasTable(table) {
				t.Errorf("expected table for %T to exist", table)
			}
		}
		if db.Migrator().HasColumn(&models.UserProgress{}, "level") {
			t.Error("level must be derived, not stored")
		}
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		if _, err := Open("oracle", "whatever"); err == nil {
			t.Fatal("expected error for unknown driver")
		}
	})
}
