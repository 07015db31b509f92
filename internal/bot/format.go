package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gdg-garage/garage-levels/internal/voice"
)

const (
	colorBlurple = 0x5865F2
	colorGold    = 0xFFD700
	colorGreen   = 0x00FF00
	colorRed     = 0xFF0000
	colorGrey    = 0x99AAB5
)

var printer = message.NewPrinter(language.English)

// formatCount groups digits: 12345 -> "12,345".
func formatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func formatHours(seconds int64) string {
	return fmt.Sprintf("%.2fh", float64(seconds)/3600)
}

func prestigeSuffix(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf(" ⭐×%d", count)
}

// Button custom IDs are "action:param" or "action:param:userID".
func customID(parts ...string) string {
	return strings.Join(parts, ":")
}

func parseCustomID(id string) (action, param, userID string) {
	parts := strings.SplitN(id, ":", 3)
	switch len(parts) {
	case 3:
		return parts[0], parts[1], parts[2]
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], "", ""
	}
}

func stateOf(vs *discordgo.VoiceState) voice.State {
	if vs == nil {
		return voice.State{}
	}
	return voice.State{
		ChannelID:  vs.ChannelID,
		SelfMute:   vs.SelfMute,
		SelfDeaf:   vs.SelfDeaf,
		ServerMute: vs.Mute,
		ServerDeaf: vs.Deaf,
	}
}

func displayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil && member != nil {
		user = member.User
	}
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}
