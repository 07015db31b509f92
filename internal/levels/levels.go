// Package levels maps XP to levels and decides how much XP an activity is worth.
// Everything here is pure.
package levels

import (
	"fmt"
	"math"
	"strings"
)

// Base is the XP needed for level 1; level n needs n²·Base in total.
const Base = 100

// XPToLevel returns floor(sqrt(xp / Base)). Negative XP is level 0.
func XPToLevel(xp int64) int {
	if xp < Base {
		return 0
	}
	level := int(math.Sqrt(float64(xp) / Base))
	// sqrt on float64 can land one off near exact squares.
	for LevelToXP(level+1) <= xp {
		level++
	}
	for level > 0 && LevelToXP(level) > xp {
		level--
	}
	return level
}

// LevelToXP returns the cumulative XP at which level starts.
func LevelToXP(level int) int64 {
	if level <= 0 {
		return 0
	}
	l := int64(level)
	return l * l * Base
}

// Progress describes where an XP total sits inside its level band.
type Progress struct {
	Level       int     `json:"level"`
	XP          int64   `json:"xp"`
	LevelXP     int64   `json:"level_xp"`
	NextLevelXP int64   `json:"next_level_xp"`
	Earned      int64   `json:"progress"`
	Needed      int64   `json:"needed"`
	Percentage  float64 `json:"percentage"`
}

func GetProgress(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}
	level := XPToLevel(xp)
	floor := LevelToXP(level)
	next := LevelToXP(level + 1)

	p := Progress{
		Level:       level,
		XP:          xp,
		LevelXP:     floor,
		NextLevelXP: next,
		Earned:      xp - floor,
		Needed:      next - floor,
	}
	if p.Needed > 0 {
		p.Percentage = float64(p.Earned) / float64(p.Needed) * 100
	}
	p.Percentage = math.Min(100, math.Max(0, p.Percentage))
	return p
}

// FormatXP abbreviates large totals: 1500 -> "1.5K", 2000000 -> "2.0M".
func FormatXP(xp int64) string {
	switch {
	case xp >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(xp)/1_000_000)
	case xp >= 1_000:
		return fmt.Sprintf("%.1fK", float64(xp)/1_000)
	default:
		return fmt.Sprintf("%d", xp)
	}
}

// ProgressBar renders current/needed as a fixed width bar followed by the rounded percentage.
func ProgressBar(current, needed int64, length int) string {
	if length <= 0 {
		length = 20
	}
	ratio := 0.0
	if needed > 0 {
		ratio = math.Min(1, math.Max(0, float64(current)/float64(needed)))
	}
	filled := int(math.Round(ratio * float64(length)))
	return fmt.Sprintf("%s%s %d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", length-filled),
		int(math.Round(ratio*100)),
	)
}
