package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                  string        `mapstructure:"PORT"`
	DatabaseDriver        string        `mapstructure:"DATABASE_DRIVER"`
	DatabasePath          string        `mapstructure:"DATABASE_PATH"`
	DiscordBotToken       string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordGuildID        string        `mapstructure:"DISCORD_GUILD_ID"`
	DiscordAppID          string        `mapstructure:"DISCORD_APP_ID"`
	ExcludedVoiceChannels []string      `mapstructure:"EXCLUDED_VOICE_CHANNELS"`
	VoiceXPPerMinute      int64         `mapstructure:"VOICE_XP_PER_MINUTE"`
	MessageCooldown       time.Duration `mapstructure:"MESSAGE_COOLDOWN"`
	PrestigeMinLevel      int           `mapstructure:"PRESTIGE_MIN_LEVEL"`
	MilestoneEvery        int           `mapstructure:"MILESTONE_EVERY"`
	LeaderboardLimit      int           `mapstructure:"LEADERBOARD_LIMIT"`
	RedisURL              string        `mapstructure:"REDIS_URL"`
	CooldownSweepInterval time.Duration `mapstructure:"COOLDOWN_SWEEP_INTERVAL"`
	AdminAPIKey           string        `mapstructure:"ADMIN_API_KEY"`
	EnableCORS            bool          `mapstructure:"ENABLE_CORS"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
}

// ConfigError reports a setting that cannot be used as given.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	v := viper.New()
	setDefaults(v)

	for _, key := range []string{
		"DISCORD_BOT_TOKEN",
		"DISCORD_GUILD_ID",
		"DISCORD_APP_ID",
		"EXCLUDED_VOICE_CHANNELS",
		"REDIS_URL",
		"ADMIN_API_KEY",
		"ENABLE_CORS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig is Load for entrypoints that cannot continue without a config.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_PATH", "levels.db")
	v.SetDefault("EXCLUDED_VOICE_CHANNELS", []string{})
	v.SetDefault("VOICE_XP_PER_MINUTE", 5)
	v.SetDefault("MESSAGE_COOLDOWN", "5s")
	v.SetDefault("PRESTIGE_MIN_LEVEL", 25)
	v.SetDefault("MILESTONE_EVERY", 10)
	v.SetDefault("LEADERBOARD_LIMIT", 50)
	v.SetDefault("COOLDOWN_SWEEP_INTERVAL", "1m")
	v.SetDefault("ENABLE_CORS", false)
	v.SetDefault("LOG_LEVEL", "info")
}

// Validate rejects values the progression engine cannot run with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return &ConfigError{Field: "DATABASE_DRIVER", Message: fmt.Sprintf("unsupported driver %q", c.DatabaseDriver)}
	}
	if c.DatabasePath == "" {
		return &ConfigError{Field: "DATABASE_PATH", Message: "must not be empty"}
	}
	if c.VoiceXPPerMinute <= 0 {
		return &ConfigError{Field: "VOICE_XP_PER_MINUTE", Message: "must be positive"}
	}
	if c.MessageCooldown <= 0 {
		return &ConfigError{Field: "MESSAGE_COOLDOWN", Message: "must be positive"}
	}
	if c.PrestigeMinLevel <= 0 {
		return &ConfigError{Field: "PRESTIGE_MIN_LEVEL", Message: "must be positive"}
	}
	if c.MilestoneEvery <= 0 {
		return &ConfigError{Field: "MILESTONE_EVERY", Message: "must be positive"}
	}
	if c.LeaderboardLimit <= 0 {
		return &ConfigError{Field: "LEADERBOARD_LIMIT", Message: "must be positive"}
	}
	if c.CooldownSweepInterval <= 0 {
		return &ConfigError{Field: "COOLDOWN_SWEEP_INTERVAL", Message: "must be positive"}
	}
	return nil
}

// IsExcludedVoiceChannel reports whether time in channelID earns no voice XP.
func (c *Config) IsExcludedVoiceChannel(channelID string) bool {
	for _, id := range c.ExcludedVoiceChannels {
		if id == channelID {
			return true
		}
	}
	return false
}
