package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/gdg-garage/garage-levels/internal/badges"
	"github.com/gdg-garage/garage-levels/internal/levels"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/prestige"
)

var medals = []string{"🥇", "🥈", "🥉"}

func statsEmbed(name string, u *models.UserProgress, earned []models.Badge) *discordgo.MessageEmbed {
	p := levels.GetProgress(u.TotalXP)

	icons := "No badges yet"
	if len(earned) > 0 {
		shown := earned
		if len(shown) > 10 {
			shown = shown[:10]
		}
		list := make([]string, 0, len(shown))
		for _, b := range shown {
			list = append(list, b.Icon)
		}
		icons = strings.Join(list, " ")
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Stats for %s", name),
		Color: colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎖️ Level", Value: fmt.Sprintf("**%d**%s", p.Level, prestigeSuffix(u.PrestigeCount)), Inline: true},
			{Name: "✨ Total XP", Value: fmt.Sprintf("**%s**", levels.FormatXP(u.TotalXP)), Inline: true},
			{
				Name: "📈 Progress",
				Value: fmt.Sprintf("%s\n%s/%s XP",
					levels.ProgressBar(p.Earned, p.Needed, 10),
					levels.FormatXP(p.Earned),
					levels.FormatXP(p.Needed)),
			},
			{Name: "💬 Messages", Value: fmt.Sprintf("**%s**", formatCount(u.MessageCount)), Inline: true},
			{Name: "🎤 Voice time", Value: fmt.Sprintf("**%s**", formatHours(u.VoiceSeconds)), Inline: true},
			{Name: "🏅 Badges", Value: icons, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Member since " + u.CreatedAt.Format("2006-01-02")},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func statsButtons(userID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: customID("badges", userID),
				Label:    "Badges",
				Emoji:    &discordgo.ComponentEmoji{Name: "🏅"},
				Style:    discordgo.PrimaryButton,
			},
			discordgo.Button{
				CustomID: customID("rank", userID),
				Label:    "Rank",
				Emoji:    &discordgo.ComponentEmoji{Name: "📊"},
				Style:    discordgo.SecondaryButton,
			},
		}},
	}
}

func leaderboardEmbed(users []models.UserProgress, limit int, viewerID string) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(users))
	viewerRank := 0
	for i, u := range users {
		medal := fmt.Sprintf("**%d.**", i+1)
		if i < len(medals) {
			medal = medals[i]
		}
		if u.UserID == viewerID {
			viewerRank = i + 1
		}
		lines = append(lines, fmt.Sprintf("%s **%s**%s\n└ %s XP • Lvl %d",
			medal, u.DisplayName, prestigeSuffix(u.PrestigeCount),
			levels.FormatXP(u.TotalXP), levels.XPToLevel(u.TotalXP)))
	}

	footer := fmt.Sprintf("Top %d members", limit)
	if viewerRank > 0 {
		footer += fmt.Sprintf(" • You are #%d", viewerRank)
	}

	return &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: strings.Join(lines, "\n\n"),
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func badgesEmbed(name string, board []badges.Entry, self bool) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(board))
	earned := 0
	for _, e := range board {
		status := "🔒"
		if e.Earned {
			status = "✅"
			earned++
		}
		lines = append(lines, fmt.Sprintf("%s %s **%s**\n└ %s", status, e.Icon, e.Name, e.Description))
	}

	color := colorGrey
	if self {
		color = colorBlurple
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏅 Badges of %s", name),
		Description: strings.Join(lines, "\n\n"),
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d/%d badges unlocked", earned, len(board))},
	}
}

func rankEmbed(rank int64, u *models.UserProgress) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📊 Ranking",
		Description: fmt.Sprintf("**Position:** #%d\n**XP:** %s\n**Level:** %d",
			rank, levels.FormatXP(u.TotalXP), levels.XPToLevel(u.TotalXP)),
		Color: colorBlurple,
	}
}

func prestigePreviewEmbed(u *models.UserProgress, res prestige.Result) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⭐ Prestige",
		Description: fmt.Sprintf("**Now:**\n• Level: **%d**\n• XP: **%s**\n• Prestige: **%d**\n\n"+
			"**After prestige:**\n• Level: **%d**\n• XP: **%s** (bonus: %s)\n• Prestige: **%d** ⭐\n\n"+
			"⚠️ **This cannot be undone!**",
			levels.XPToLevel(u.TotalXP), levels.FormatXP(u.TotalXP), u.PrestigeCount,
			levels.XPToLevel(res.NewXP), levels.FormatXP(res.NewXP), levels.FormatXP(res.Bonus), res.PrestigeCount),
		Color: colorGold,
	}
}

func prestigeButtons(userID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: customID("prestige", "confirm", userID),
				Label:    "✅ Confirm",
				Style:    discordgo.SuccessButton,
			},
			discordgo.Button{
				CustomID: customID("prestige", "cancel", userID),
				Label:    "❌ Cancel",
				Style:    discordgo.DangerButton,
			},
		}},
	}
}

func prestigeDoneEmbed(res prestige.Result) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⭐ Prestige complete!",
		Description: fmt.Sprintf("Prestige **%d**!\n\nOld XP: %s\nNew XP: %s\nBonus: %s",
			res.PrestigeCount,
			levels.FormatXP(res.OldXP),
			levels.FormatXP(res.NewXP),
			levels.FormatXP(res.Bonus)),
		Color: colorGold,
	}
}

func rewardsEmbed(list []models.Reward) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(list))
	for _, r := range list {
		lines = append(lines, fmt.Sprintf("**Level %d** → <@&%s> (%s)", r.Level, r.RoleID, r.RoleName))
	}
	return &discordgo.MessageEmbed{
		Title:       "🎁 Rewards",
		Description: strings.Join(lines, "\n"),
		Color:       colorBlurple,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d reward(s)", len(list))},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func rewardChangedEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}
