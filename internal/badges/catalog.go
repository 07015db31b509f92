package badges

import (
	"context"

	"github.com/gdg-garage/garage-levels/internal/models"
)

// DefaultCatalog is seeded at startup. Entries are insert-only: changing one
// here does not rewrite a badge that is already stored.
func DefaultCatalog() []models.Badge {
	catalog := []models.Badge{
		{BadgeID: "first_msg", Name: "First Steps", Description: "Send your first message", Icon: "📝", RequirementType: models.RequirementMessages, RequirementValue: 1},
		{BadgeID: "chatty", Name: "Chatterbox", Description: "Send 100 messages", Icon: "💬", RequirementType: models.RequirementMessages, RequirementValue: 100},
		{BadgeID: "veteran", Name: "Veteran", Description: "Send 1000 messages", Icon: "🎖️", RequirementType: models.RequirementMessages, RequirementValue: 1000},
		{BadgeID: "voice_1h", Name: "Voice Rookie", Description: "Spend 1h in voice", Icon: "🎤", RequirementType: models.RequirementVoiceHours, RequirementValue: 1},
		{BadgeID: "voice_10h", Name: "Voice Pro", Description: "Spend 10h in voice", Icon: "🎧", RequirementType: models.RequirementVoiceHours, RequirementValue: 10},
		{BadgeID: "voice_100h", Name: "Voice Legend", Description: "Spend 100h in voice", Icon: "👑", RequirementType: models.RequirementVoiceHours, RequirementValue: 100},
		{BadgeID: "level_5", Name: "Level 5", Description: "Reach level 5", Icon: "⭐", RequirementType: models.RequirementLevel, RequirementValue: 5},
		{BadgeID: "level_10", Name: "Level 10", Description: "Reach level 10", Icon: "🌟", RequirementType: models.RequirementLevel, RequirementValue: 10},
		{BadgeID: "level_25", Name: "Level 25", Description: "Reach level 25", Icon: "✨", RequirementType: models.RequirementLevel, RequirementValue: 25},
		{BadgeID: "level_50", Name: "Level 50", Description: "Reach level 50", Icon: "💫", RequirementType: models.RequirementLevel, RequirementValue: 50},
	}
	for i := range catalog {
		catalog[i].Position = i + 1
	}
	return catalog
}

type Seeder interface {
	SeedBadges(ctx context.Context, catalog []models.Badge) error
}

// Seed stores the default catalog, skipping badges that already exist.
func Seed(ctx context.Context, s Seeder) error {
	return s.SeedBadges(ctx, DefaultCatalog())
}
