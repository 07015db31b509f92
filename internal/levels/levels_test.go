package levels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPToLevel_RoundTrip(t *testing.T) {
	for n := 0; n <= 2000; n++ {
		assert.Equal(t, n, XPToLevel(LevelToXP(n)), "level %d", n)
		if n > 0 {
			assert.Equal(t, n-1, XPToLevel(LevelToXP(n)-1), "just below level %d", n)
		}
	}
}

func TestXPToLevel_Monotonic(t *testing.T) {
	prev := XPToLevel(0)
	for xp := int64(0); xp <= 100_000; xp += 7 {
		level := XPToLevel(xp)
		assert.GreaterOrEqual(t, level, prev, "xp %d", xp)
		prev = level
	}
}

func TestXPToLevel_KnownValues(t *testing.T) {
	assert.Equal(t, 0, XPToLevel(-50))
	assert.Equal(t, 0, XPToLevel(99))
	assert.Equal(t, 1, XPToLevel(100))
	assert.Equal(t, 7, XPToLevel(5000))
	assert.Equal(t, 25, XPToLevel(62500))
}

func TestGetProgress(t *testing.T) {
	t.Run("LevelZero", func(t *testing.T) {
		p := GetProgress(50)
		assert.Equal(t, 0, p.Level)
		assert.Equal(t, int64(0), p.LevelXP)
		assert.Equal(t, int64(100), p.NextLevelXP)
		assert.Equal(t, int64(50), p.Earned)
		assert.Equal(t, int64(100), p.Needed)
		assert.InDelta(t, 50.0, p.Percentage, 0.0001)
	})

	t.Run("MidBand", func(t *testing.T) {
		p := GetProgress(650)
		assert.Equal(t, 2, p.Level)
		assert.Equal(t, int64(400), p.LevelXP)
		assert.Equal(t, int64(900), p.NextLevelXP)
		assert.Equal(t, int64(250), p.Earned)
		assert.Equal(t, int64(500), p.Needed)
	})

	t.Run("PercentageBounded", func(t *testing.T) {
		for xp := int64(-10); xp <= 50_000; xp += 13 {
			p := GetProgress(xp)
			assert.GreaterOrEqual(t, p.Percentage, 0.0)
			assert.LessOrEqual(t, p.Percentage, 100.0)
		}
	})
}

func TestFormatXP(t *testing.T) {
	assert.Equal(t, "999", FormatXP(999))
	assert.Equal(t, "1.5K", FormatXP(1500))
	assert.Equal(t, "2.0M", FormatXP(2_000_000))
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(5, 10, 10)
	assert.Equal(t, strings.Repeat("█", 5)+strings.Repeat("░", 5)+" 50%", bar)

	assert.True(t, strings.HasSuffix(ProgressBar(20, 10, 4), " 100%"))
	assert.True(t, strings.HasSuffix(ProgressBar(1, 0, 4), " 0%"))
}
