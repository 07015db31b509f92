package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/gdg-garage/garage-levels/internal/prestige"
	"github.com/gdg-garage/garage-levels/internal/rewards"
	"github.com/gdg-garage/garage-levels/internal/store"
)

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = b.handleCommand(ctx, s, i)
	case discordgo.InteractionMessageComponent:
		err = b.handleComponent(ctx, s, i)
	default:
		return
	}
	if err != nil {
		b.logger.Error("interaction failed", "err", err)
		_ = reply(s, i, ephemeral("❌ Something went wrong."))
	}
}

func (b *Bot) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "stats":
		return b.cmdStats(ctx, s, i, data)
	case "leaderboard":
		return b.cmdLeaderboard(ctx, s, i, data)
	case "badges":
		return b.cmdBadges(ctx, s, i, data)
	case "prestige":
		return b.cmdPrestige(ctx, s, i)
	case "setreward":
		return b.cmdSetReward(ctx, s, i, data)
	}
	return nil
}

func (b *Bot) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	action, param, owner := parseCustomID(i.MessageComponentData().CustomID)
	switch action {
	case "badges":
		board, err := b.deps.Badges.Board(ctx, param)
		if err != nil {
			return err
		}
		embed := badgesEmbed(param, board, param == invoker(i).ID)
		embed.Title = "🏅 Badges"
		return reply(s, i, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		})

	case "rank":
		u, err := b.deps.Store.GetUser(ctx, param)
		if errors.Is(err, store.ErrNotFound) {
			return reply(s, i, ephemeral("❌ No data found."))
		}
		if err != nil {
			return err
		}
		rank, err := b.deps.Store.Rank(ctx, param)
		if err != nil {
			return err
		}
		return reply(s, i, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{rankEmbed(rank, u)},
			Flags:  discordgo.MessageFlagsEphemeral,
		})

	case "prestige":
		if owner != invoker(i).ID {
			return reply(s, i, ephemeral("❌ This is not your prestige!"))
		}
		if param == "cancel" {
			return update(s, i, &discordgo.InteractionResponseData{
				Content:    "❌ Prestige cancelled.",
				Embeds:     []*discordgo.MessageEmbed{},
				Components: []discordgo.MessageComponent{},
			})
		}
		if param != "confirm" {
			return nil
		}

		res, err := b.deps.Prestige.Prestige(ctx, owner)
		var inelig *prestige.IneligibleError
		switch {
		case errors.As(err, &inelig):
			return update(s, i, clearedMessage(fmt.Sprintf("❌ Prestige unlocks at level %d. You are level %d.", inelig.Required, inelig.Level)))
		case errors.Is(err, store.ErrNotFound):
			return update(s, i, clearedMessage("❌ No data."))
		case err != nil:
			return err
		}
		b.logger.Info("prestige", "user", owner, "count", res.PrestigeCount, "new_xp", res.NewXP)
		return update(s, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{prestigeDoneEmbed(res)},
			Components: []discordgo.MessageComponent{},
		})
	}
	return nil
}

func (b *Bot) cmdStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	target := targetUser(i, data)
	u, err := b.deps.Store.GetUser(ctx, target.ID)
	if errors.Is(err, store.ErrNotFound) {
		return reply(s, i, ephemeral("❌ No data for this member."))
	}
	if err != nil {
		return err
	}
	earned, err := b.deps.Store.EarnedBadges(ctx, target.ID)
	if err != nil {
		return err
	}
	return reply(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{statsEmbed(u.DisplayName, u, earned)},
		Components: statsButtons(target.ID),
	})
}

func (b *Bot) cmdLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	var top int64
	if o, ok := optionMap(data.Options)["top"]; ok {
		top = o.IntValue()
	}
	limit := clampTop(top)

	users, err := b.deps.Store.Leaderboard(ctx, limit)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return reply(s, i, ephemeral("❌ No data yet."))
	}
	return reply(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{leaderboardEmbed(users, limit, invoker(i).ID)},
	})
}

func (b *Bot) cmdBadges(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	target := targetUser(i, data)
	board, err := b.deps.Badges.Board(ctx, target.ID)
	if err != nil {
		return err
	}
	return reply(s, i, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{badgesEmbed(displayName(nil, target), board, target.ID == invoker(i).ID)},
	})
}

func (b *Bot) cmdPrestige(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID := invoker(i).ID
	preview, err := b.deps.Prestige.Preview(ctx, userID)
	var inelig *prestige.IneligibleError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return reply(s, i, ephemeral("❌ No data."))
	case errors.As(err, &inelig):
		return reply(s, i, ephemeral(fmt.Sprintf("❌ Prestige unlocks at level %d. You are level %d.", inelig.Required, inelig.Level)))
	case err != nil:
		return err
	}

	u, err := b.deps.Store.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	return reply(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{prestigePreviewEmbed(u, preview)},
		Components: prestigeButtons(userID),
		Flags:      discordgo.MessageFlagsEphemeral,
	})
}

func (b *Bot) cmdSetReward(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if len(data.Options) == 0 {
		return nil
	}
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		level := int(opts["level"].IntValue())
		roleID, _ := opts["role"].Value.(string)
		role := resolvedRole(data, roleID)
		if role != nil && role.Managed {
			return reply(s, i, ephemeral("❌ That role is managed by an integration."))
		}
		name := roleID
		if role != nil {
			name = role.Name
		}

		_, err := b.deps.Rewards.Set(ctx, level, roleID, name)
		if errors.Is(err, rewards.ErrInvalidLevel) || errors.Is(err, rewards.ErrInvalidRole) {
			return reply(s, i, ephemeral("❌ "+err.Error()))
		}
		if err != nil {
			return err
		}
		return reply(s, i, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{rewardChangedEmbed("✅ Reward added",
				fmt.Sprintf("<@&%s> will be granted at level **%d**.", roleID, level), colorGreen)},
		})

	case "remove":
		level := int(opts["level"].IntValue())
		err := b.deps.Rewards.Delete(ctx, level)
		if errors.Is(err, store.ErrNotFound) {
			return reply(s, i, ephemeral(fmt.Sprintf("❌ No reward at level %d.", level)))
		}
		if err != nil {
			return err
		}
		return reply(s, i, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{rewardChangedEmbed("🗑️ Reward removed",
				fmt.Sprintf("Level **%d** removed.", level), colorRed)},
		})

	case "list":
		list, err := b.deps.Rewards.List(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return reply(s, i, ephemeral("❌ No rewards configured."))
		}
		return reply(s, i, &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{rewardsEmbed(list)},
		})
	}
	return nil
}

func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

// targetUser is the "member" option when given, else the invoker.
func targetUser(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) *discordgo.User {
	o, ok := optionMap(data.Options)["member"]
	if !ok {
		return invoker(i)
	}
	id, _ := o.Value.(string)
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id, Username: id}
}

func resolvedRole(data discordgo.ApplicationCommandInteractionData, roleID string) *discordgo.Role {
	if data.Resolved == nil {
		return nil
	}
	return data.Resolved.Roles[roleID]
}

func ephemeral(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func clearedMessage(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{},
		Components: []discordgo.MessageComponent{},
	}
}

func reply(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func update(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}
