package shared

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv       string `mapstructure:"APP_ENV"`
	Port         string `mapstructure:"PORT" validate:"required,numeric"`
	MetricsAddr  string `mapstructure:"METRICS_ADDR"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME" validate:"required"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB      int    `mapstructure:"REDIS_DB" validate:"gte=0"`
	CacheTTLSec  int    `mapstructure:"CACHE_TTL_SECONDS" validate:"gte=0"`

	DiscordToken     string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID string `mapstructure:"DISCORD_CHANNEL_ID"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=0"`

	SeedFile    string `mapstructure:"SEED_FILE"`
	SeedURL     string `mapstructure:"SEED_URL" validate:"omitempty,url"`
	SeedAPIKey  string `mapstructure:"SEED_API_KEY"`
	SeedWorkers int    `mapstructure:"SEED_WORKERS" validate:"gte=1"`
}

var defaults = map[string]any{
	"APP_ENV":            "prod",
	"PORT":               "8000",
	"METRICS_ADDR":       "",
	"DATABASE_URL":       "",
	"DATABASE_NAME":      "tours",
	"REDIS_ADDR":         "",
	"REDIS_PASSWORD":     "",
	"REDIS_DB":           0,
	"CACHE_TTL_SECONDS":  60,
	"DISCORD_BOT_TOKEN":  "",
	"DISCORD_CHANNEL_ID": "",
	"RATE_LIMIT_RPS":     0.0,
	"RATE_LIMIT_BURST":   0,
	"SEED_FILE":          "",
	"SEED_URL":           "",
	"SEED_API_KEY":       "",
	"SEED_WORKERS":       4,
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(c); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if c.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL is empty; running without a datastore")
	}
	return c, nil
}

func (c Config) HTTPAddr() string { return "0.0.0.0:" + c.Port }

func (c Config) CacheTTL() time.Duration { return time.Duration(c.CacheTTLSec) * time.Second }

// DiscordEnabled reports whether both the bot token and channel are set.
func (c Config) DiscordEnabled() bool { return c.DiscordToken != "" && c.DiscordChannelID != "" }
