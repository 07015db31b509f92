package notifier

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/progression"
)

const milestoneColor = 0xFFD700

// Session is the part of *discordgo.Session the notifier uses.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

type Notifier interface {
	LevelUp(channelID, userID string, user *models.UserProgress, lu *progression.LevelUp) error
	Badges(userID string, badges []models.Badge) error
	VoiceSession(userID string, session *models.VoiceSession) error
	GrantRole(userID, roleID string) error
}

type DiscordNotifier struct {
	session Session
	guildID string
}

func NewDiscordNotifier(session Session, guildID string) *DiscordNotifier {
	return &DiscordNotifier{
		session: session,
		guildID: guildID,
	}
}

func (n *DiscordNotifier) GrantRole(userID, roleID string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.guildID == "" {
		return fmt.Errorf("discord guild ID is empty")
	}
	return n.session.GuildMemberRoleAdd(n.guildID, userID, roleID)
}

// DirectMessage opens a DM channel with the user and posts msg there.
func (n *DiscordNotifier) DirectMessage(userID string, msg *discordgo.MessageSend) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	ch, err := n.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open dm with %s: %w", userID, err)
	}
	_, err = n.session.ChannelMessageSendComplex(ch.ID, msg)
	return err
}

// LevelUp grants the roles earned on the way and announces the new level in
// channelID. Milestones get an embed that is also sent by DM.
func (n *DiscordNotifier) LevelUp(channelID, userID string, user *models.UserProgress, lu *progression.LevelUp) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}

	var granted []string
	for _, r := range lu.Rewards {
		if err := n.GrantRole(userID, r.RoleID); err != nil {
			log.Printf("Failed to grant role %s to %s: %v", r.RoleID, userID, err)
			continue
		}
		granted = append(granted, roleLabel(r))
	}

	rewardStr := ""
	if len(granted) > 0 {
		rewardStr = fmt.Sprintf("\n🎁 Role unlocked: %s", strings.Join(granted, ", "))
	}

	mentions := &discordgo.MessageAllowedMentions{Users: []string{userID}}

	if !lu.Milestone {
		_, err := n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content:         fmt.Sprintf("🎉 <@%s> reached level **%d**!%s", userID, lu.To, rewardStr),
			AllowedMentions: mentions,
		})
		if err != nil {
			log.Printf("Failed to send level up message: %v", err)
		}
		return err
	}

	embed := MilestoneEmbed(userID, user, lu.To, rewardStr)
	_, err := n.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         fmt.Sprintf("🎉 <@%s>", userID),
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: mentions,
	})
	if err != nil {
		log.Printf("Failed to send milestone message: %v", err)
		return err
	}

	if err := n.DirectMessage(userID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}}); err != nil {
		// Members may have DMs closed.
		log.Printf("Failed to DM milestone to %s: %v", userID, err)
	}
	return nil
}

func (n *DiscordNotifier) Badges(userID string, badges []models.Badge) error {
	if len(badges) == 0 {
		return nil
	}
	names := make([]string, 0, len(badges))
	for _, b := range badges {
		names = append(names, fmt.Sprintf("%s %s", b.Icon, b.Name))
	}
	return n.DirectMessage(userID, &discordgo.MessageSend{
		Content: "🏅 New badge: " + strings.Join(names, ", "),
	})
}

func (n *DiscordNotifier) VoiceSession(userID string, session *models.VoiceSession) error {
	if session == nil {
		return nil
	}
	return n.DirectMessage(userID, &discordgo.MessageSend{
		Content: fmt.Sprintf("🎤 Voice session finished!\n⏱️ Duration: %d minutes\n✨ XP earned: %d",
			session.DurationSeconds/60, session.XPEarned),
	})
}

func MilestoneEmbed(userID string, user *models.UserProgress, level int, rewardStr string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎊 MILESTONE REACHED!",
		Description: fmt.Sprintf("<@%s> just reached **level %d**! 🎉\n\n✨ Total XP: %s\n💬 Messages: %d\n🎤 Voice time: %.2fh%s",
			userID,
			level,
			levels.FormatXP(user.TotalXP),
			user.MessageCount,
			float64(user.VoiceSeconds)/3600,
			rewardStr,
		),
		Color:     milestoneColor,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func roleLabel(r models.Reward) string {
	if r.RoleName != "" {
		return r.RoleName
	}
	return fmt.Sprintf("<@&%s>", r.RoleID)
}
