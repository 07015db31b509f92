package notifier

import (
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/progression"
)

type sent struct {
	channelID string
	msg       *discordgo.MessageSend
}

type fakeSession struct {
	messages []sent
	roles    []string
	roleErr  error
	dmErr    error
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.messages = append(f.messages, sent{channelID: channelID, msg: data})
	return &discordgo.Message{ChannelID: channelID}, nil
}

func (f *fakeSession) UserChannelCreate(recipientID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeSession) GuildMemberRoleAdd(_, _, roleID string, _ ...discordgo.RequestOption) error {
	if f.roleErr != nil {
		return f.roleErr
	}
	f.roles = append(f.roles, roleID)
	return nil
}

func TestLevelUp(t *testing.T) {
	user := &models.UserProgress{UserID: "42", TotalXP: 10000, MessageCount: 300, VoiceSeconds: 7200}

	t.Run("Regular", func(t *testing.T) {
		s := &fakeSession{}
		n := NewDiscordNotifier(s, "guild")
		lu := &progression.LevelUp{From: 2, To: 3, Rewards: []models.Reward{{Level: 3, RoleID: "r3", RoleName: "Regular"}}}

		if err := n.LevelUp("chan", "42", user, lu); err != nil {
			t.Fatalf("LevelUp returned error: %v", err)
		}
		if len(s.roles) != 1 || s.roles[0] != "r3" {
			t.Errorf("expected role r3 granted, got %v", s.roles)
		}
		if len(s.messages) != 1 {
			t.Fatalf("expected 1 message, got %d", len(s.messages))
		}
		content := s.messages[0].msg.Content
		if !strings.Contains(content, "level **3**") || !strings.Contains(content, "Regular") {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("MilestoneAlsoDMs", func(t *testing.T) {
		s := &fakeSession{}
		n := NewDiscordNotifier(s, "guild")
		lu := &progression.LevelUp{From: 9, To: 10, Milestone: true}

		if err := n.LevelUp("chan", "42", user, lu); err != nil {
			t.Fatalf("LevelUp returned error: %v", err)
		}
		if len(s.messages) != 2 {
			t.Fatalf("expected channel message and DM, got %d", len(s.messages))
		}
		if s.messages[1].channelID != "dm-42" {
			t.Errorf("expected DM to dm-42, got %s", s.messages[1].channelID)
		}
		if len(s.messages[0].msg.Embeds) != 1 {
			t.Errorf("expected milestone embed")
		}
	})

	t.Run("RoleFailureStillAnnounces", func(t *testing.T) {
		s := &fakeSession{roleErr: errors.New("missing permissions")}
		n := NewDiscordNotifier(s, "guild")
		lu := &progression.LevelUp{From: 2, To: 3, Rewards: []models.Reward{{Level: 3, RoleID: "r3", RoleName: "Regular"}}}

		if err := n.LevelUp("chan", "42", user, lu); err != nil {
			t.Fatalf("LevelUp returned error: %v", err)
		}
		if strings.Contains(s.messages[0].msg.Content, "Regular") {
			t.Errorf("role should not be mentioned when grant failed")
		}
	})

	t.Run("ClosedDMsIgnored", func(t *testing.T) {
		s := &fakeSession{dmErr: errors.New("cannot send messages to this user")}
		n := NewDiscordNotifier(s, "guild")
		lu := &progression.LevelUp{From: 19, To: 20, Milestone: true}

		if err := n.LevelUp("chan", "42", user, lu); err != nil {
			t.Fatalf("LevelUp returned error: %v", err)
		}
	})
}

func TestBadgesAndVoice(t *testing.T) {
	s := &fakeSession{}
	n := NewDiscordNotifier(s, "guild")

	if err := n.Badges("42", nil); err != nil || len(s.messages) != 0 {
		t.Fatalf("expected no message for empty badge list")
	}

	err := n.Badges("42", []models.Badge{{Icon: "💬", Name: "First Words"}, {Icon: "⭐", Name: "Rising Star"}})
	if err != nil {
		t.Fatalf("Badges returned error: %v", err)
	}
	if got := s.messages[0].msg.Content; got != "🏅 New badge: 💬 First Words, ⭐ Rising Star" {
		t.Errorf("unexpected content: %q", got)
	}

	err = n.VoiceSession("42", &models.VoiceSession{DurationSeconds: 125, XPEarned: 10})
	if err != nil {
		t.Fatalf("VoiceSession returned error: %v", err)
	}
	if got := s.messages[1].msg.Content; !strings.Contains(got, "2 minutes") || !strings.Contains(got, "XP earned: 10") {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestGrantRole_NoGuild(t *testing.T) {
	n := NewDiscordNotifier(&fakeSession{}, "")
	if err := n.GrantRole("42", "r"); err == nil {
		t.Error("expected error without guild ID")
	}
}
