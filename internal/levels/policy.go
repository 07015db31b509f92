package levels

import (
	"strings"
	"unicode/utf8"
)

const (
	MinMessageXP = 5
	MaxMessageXP = 50

	// DefaultVoiceXPPerMinute is the flat voice rate used when none is configured.
	DefaultVoiceXPPerMinute = 5
)

// XPForMessage grades a chat message by its trimmed length in characters.
func XPForMessage(content string) int64 {
	n := utf8.RuneCountInString(strings.TrimSpace(content))

	xp := int64(10)
	if n > 50 {
		xp += 5
	}
	if n > 100 {
		xp += 5
	}
	if n > 200 {
		xp += 10
	}
	return min(MaxMessageXP, max(MinMessageXP, xp))
}

// VoiceAward returns floor(seconds/60 × ratePerMinute).
func VoiceAward(seconds, ratePerMinute int64) int64 {
	if seconds <= 0 || ratePerMinute <= 0 {
		return 0
	}
	return seconds * ratePerMinute / 60
}
