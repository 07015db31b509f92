package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/garage-levels/internal/auth"
	"github.com/gdg-garage/garage-levels/internal/badges"
	"github.com/gdg-garage/garage-levels/internal/bot"
	"github.com/gdg-garage/garage-levels/internal/config"
	"github.com/gdg-garage/garage-levels/internal/cooldown"
	"github.com/gdg-garage/garage-levels/internal/database"
	"github.com/gdg-garage/garage-levels/internal/handlers"
	"github.com/gdg-garage/garage-levels/internal/prestige"
	"github.com/gdg-garage/garage-levels/internal/progression"
	"github.com/gdg-garage/garage-levels/internal/rewards"
	"github.com/gdg-garage/garage-levels/internal/scheduler"
	"github.com/gdg-garage/garage-levels/internal/store"
	"github.com/gdg-garage/garage-levels/internal/voice"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()
	logger := setupLogger(cfg)

	// Connect to Database
	db := database.Connect(cfg)
	st := store.New(db)

	ctx := context.Background()
	if err := badges.Seed(ctx, st); err != nil {
		log.Fatalf("Failed to seed badges: %v", err)
	}

	// Cooldown gate: shared through Redis when configured
	var gate cooldown.Gate
	sched, err := scheduler.New(logger)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if cfg.RedisURL != "" {
		rg, err := cooldown.NewRedis(ctx, cfg.RedisURL, cfg.MessageCooldown)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rg.Close()
		gate = rg
	} else {
		mem := cooldown.NewMemory(cfg.MessageCooldown)
		if err := sched.AddSweep("cooldown-sweep", cfg.CooldownSweepInterval, mem); err != nil {
			log.Fatalf("Failed to schedule cooldown sweep: %v", err)
		}
		gate = mem
	}
	sched.Start()

	// Initialize Services
	rewardDir := rewards.NewDirectory(st)
	badgeEngine := badges.NewEngine(st)
	prestigeSvc := prestige.NewService(st, cfg.PrestigeMinLevel)
	tracker := voice.NewTracker(st, cfg.IsExcludedVoiceChannel, cfg.VoiceXPPerMinute, logger)
	progress := progression.NewService(st, gate, tracker, rewardDir, badgeEngine, progression.Options{
		MilestoneEvery: cfg.MilestoneEvery,
		Logger:         logger,
	})

	if err := progress.Reconcile(ctx); err != nil {
		log.Fatalf("Failed to reconcile voice sessions: %v", err)
	}

	// Start Discord bot
	var discordBot *bot.Bot
	if cfg.DiscordBotToken != "" {
		discordBot, err = bot.New(cfg.DiscordBotToken, cfg.DiscordAppID, cfg.DiscordGuildID, bot.Deps{
			Store:       st,
			Progression: progress,
			Badges:      badgeEngine,
			Prestige:    prestigeSvc,
			Rewards:     rewardDir,
		}, logger)
		if err != nil {
			log.Fatalf("Failed to create bot: %v", err)
		}
		if err := discordBot.Start(); err != nil {
			log.Fatalf("Failed to start bot: %v", err)
		}
	} else {
		logger.Warn("DISCORD_BOT_TOKEN not set, running dashboard only")
	}

	// Initialize Router
	guard := auth.NewAdminGuard(cfg)
	if !guard.Enabled() {
		logger.Warn("ADMIN_API_KEY not set, admin routes are disabled")
	}
	r := handlers.NewRouter(cfg.EnableCORS, guard,
		handlers.NewDashboardHandler(st, cfg.LeaderboardLimit),
		handlers.NewAdminHandler(rewardDir, prestigeSvc))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start Server
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if discordBot != nil {
		if err := discordBot.Stop(); err != nil {
			logger.Error("bot close", "err", err)
		}
	}
	if err := sched.Shutdown(); err != nil {
		logger.Error("scheduler shutdown", "err", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err == nil {
		opts.Level = level
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}
