package levels

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXPForMessage(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    int64
	}{
		{"Empty", "", 10},
		{"Whitespace", "     ", 10},
		{"Short", "hello", 10},
		{"Exactly50", strings.Repeat("a", 50), 10},
		{"Over50", strings.Repeat("a", 51), 15},
		{"Length150", strings.Repeat("a", 150), 20},
		{"Exactly200", strings.Repeat("a", 200), 20},
		{"Over200", strings.Repeat("a", 201), 30},
		{"Huge", strings.Repeat("a", 100_000), 30},
		{"PaddedShort", "   " + strings.Repeat("a", 50) + "   ", 10},
		{"Multibyte", strings.Repeat("é", 60), 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := XPForMessage(tc.content)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, int64(MinMessageXP))
			assert.LessOrEqual(t, got, int64(MaxMessageXP))
		})
	}
}

func TestVoiceAward(t *testing.T) {
	assert.Equal(t, int64(10), VoiceAward(125, 5))
	assert.Equal(t, int64(0), VoiceAward(0, 5))
	assert.Equal(t, int64(0), VoiceAward(-30, 5))
	assert.Equal(t, int64(4), VoiceAward(59, 5))
	assert.Equal(t, int64(300), VoiceAward(3600, 5))
}
