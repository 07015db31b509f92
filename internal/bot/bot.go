// Package bot connects the progression engine to the Discord gateway.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/gdg-garage/garage-levels/internal/badges"
	"github.com/gdg-garage/garage-levels/internal/models"
	"github.com/gdg-garage/garage-levels/internal/notifier"
	"github.com/gdg-garage/garage-levels/internal/prestige"
	"github.com/gdg-garage/garage-levels/internal/progression"
	"github.com/gdg-garage/garage-levels/internal/rewards"
	"github.com/gdg-garage/garage-levels/internal/voice"
)

const handlerTimeout = 10 * time.Second

type Store interface {
	GetUser(ctx context.Context, userID string) (*models.UserProgress, error)
	Leaderboard(ctx context.Context, limit int) ([]models.UserProgress, error)
	Rank(ctx context.Context, userID string) (int64, error)
	EarnedBadges(ctx context.Context, userID string) ([]models.Badge, error)
}

type Deps struct {
	Store       Store
	Progression *progression.Service
	Badges      *badges.Engine
	Prestige    *prestige.Service
	Rewards     *rewards.Directory
}

type Bot struct {
	session  *discordgo.Session
	appID    string
	guildID  string
	deps     Deps
	notifier notifier.Notifier
	logger   *slog.Logger
}

// New creates the gateway session and registers event handlers. Nothing
// connects until Start.
func New(token, appID, guildID string, deps Deps, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	b := &Bot{
		session:  session,
		appID:    appID,
		guildID:  guildID,
		deps:     deps,
		notifier: notifier.NewDiscordNotifier(session, guildID),
		logger:   logger,
	}

	session.AddHandler(b.ready)
	session.AddHandler(b.guildCreate)
	session.AddHandler(b.messageCreate)
	session.AddHandler(b.voiceStateUpdate)
	session.AddHandler(b.interactionCreate)

	return b, nil
}

// Start opens the gateway connection and registers slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	appID := b.appID
	if appID == "" && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, Commands()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("bot is running", "guild", b.guildID)
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) inScope(guildID string) bool {
	return guildID != "" && (b.guildID == "" || guildID == b.guildID)
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in", "user", r.User.Username)
	if err := s.UpdateWatchStatus(0, "/stats"); err != nil {
		b.logger.Warn("set status", "err", err)
	}
}

// guildCreate fires on every (re)connect. Members already in voice have no
// join event coming, so tracking is resumed from the guild snapshot.
func (b *Bot) guildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if !b.inScope(g.ID) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	members := make(map[string]*discordgo.Member, len(g.Members))
	for _, m := range g.Members {
		if m.User != nil {
			members[m.User.ID] = m
		}
	}

	now := time.Now()
	resumed := 0
	for _, vs := range g.VoiceStates {
		m := members[vs.UserID]
		if m != nil && m.User.Bot {
			continue
		}
		name := displayName(m, nil)
		if name == "" {
			name = vs.UserID
		}
		started, err := b.deps.Progression.Resume(ctx, vs.UserID, name, stateOf(vs), now)
		if err != nil {
			b.logger.Error("resume voice tracking", "user", vs.UserID, "err", err)
			continue
		}
		if started {
			resumed++
		}
	}
	if resumed > 0 {
		b.logger.Info("resumed voice tracking", "guild", g.ID, "count", resumed)
	}
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	res, err := b.deps.Progression.HandleMessage(ctx, progression.MessageEvent{
		UserID:      m.Author.ID,
		DisplayName: displayName(m.Member, m.Author),
		Content:     m.Content,
		InGuild:     b.inScope(m.GuildID),
		At:          time.Now(),
	})
	if err != nil {
		b.logger.Error("message xp", "user", m.Author.ID, "err", err)
		return
	}
	if !res.Awarded {
		return
	}

	if res.LevelUp != nil {
		if err := b.notifier.LevelUp(m.ChannelID, m.Author.ID, res.User, res.LevelUp); err != nil {
			b.logger.Warn("announce level up", "user", m.Author.ID, "err", err)
		}
	}
	if err := b.notifier.Badges(m.Author.ID, res.Badges); err != nil {
		b.logger.Debug("badge dm", "user", m.Author.ID, "err", err)
	}
}

func (b *Bot) voiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if !b.inScope(vs.GuildID) {
		return
	}
	if vs.Member != nil && vs.Member.User != nil && vs.Member.User.Bot {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	name := displayName(vs.Member, nil)
	if name == "" {
		name = vs.UserID
	}
	before := stateOf(vs.BeforeUpdate)

	res, err := b.deps.Progression.HandleVoice(ctx, voice.Event{
		UserID:      vs.UserID,
		DisplayName: name,
		Before:      before,
		After:       stateOf(vs.VoiceState),
		At:          time.Now(),
	})
	if err != nil {
		b.logger.Error("voice xp", "user", vs.UserID, "err", err)
		return
	}
	if res.Outcome.Session == nil {
		return
	}

	if err := b.notifier.VoiceSession(vs.UserID, res.Outcome.Session); err != nil {
		b.logger.Debug("voice dm", "user", vs.UserID, "err", err)
	}
	// Voice channels carry their own text chat; announce where the session ran.
	if res.LevelUp != nil && before.ChannelID != "" {
		if err := b.notifier.LevelUp(before.ChannelID, vs.UserID, res.Outcome.User, res.LevelUp); err != nil {
			b.logger.Warn("announce level up", "user", vs.UserID, "err", err)
		}
	}
	if err := b.notifier.Badges(vs.UserID, res.Badges); err != nil {
		b.logger.Debug("badge dm", "user", vs.UserID, "err", err)
	}
}
