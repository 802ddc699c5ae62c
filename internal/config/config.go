// Package config manages application configuration from defaults, an
// optional config.yaml, and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration. Values can be set via
// environment variables prefixed with EXCUSE_ (e.g. EXCUSE_SERVER_ADDR) or
// through config.yaml. The provider secrets additionally bind to their
// conventional unprefixed names (ANTHROPIC_API_KEY, GEMINI_API_KEY,
// ADMIN_PASSWORD_HASH, SLACK_WEBHOOK_URL).
//
// Secrets are deliberately not required at load time: a missing secret
// surfaces as a generic configuration error on the request that needs it,
// without revealing which one is absent.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	AI        AIConfig        `mapstructure:"ai"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Slack     SlackConfig     `mapstructure:"slack"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,min=1s"`
}

type AIConfig struct {
	AnthropicKey string        `mapstructure:"anthropic_key"`
	GeminiKey    string        `mapstructure:"gemini_key"`
	ClaudeModel  string        `mapstructure:"claude_model" validate:"required"`
	GeminiModel  string        `mapstructure:"gemini_model" validate:"required"`
	Timeout      time.Duration `mapstructure:"timeout"      validate:"required,min=1s,max=5m"`
}

type AdminConfig struct {
	PasswordHash string `mapstructure:"password_hash"`
}

type SlackConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"required,min=1s"`
}

// RateLimitConfig holds the three independent fixed windows.
type RateLimitConfig struct {
	GenerateMax    int           `mapstructure:"generate_max"    validate:"required,gt=0"`
	GenerateWindow time.Duration `mapstructure:"generate_window" validate:"required,min=1s"`
	UnlockMax      int           `mapstructure:"unlock_max"      validate:"required,gt=0"`
	UnlockWindow   time.Duration `mapstructure:"unlock_window"   validate:"required,min=1s"`
	ShareMax       int           `mapstructure:"share_max"       validate:"required,gt=0"`
	ShareWindow    time.Duration `mapstructure:"share_window"    validate:"required,min=1s"`
	PruneInterval  time.Duration `mapstructure:"prune_interval"  validate:"required,min=10s"`
}

// RedisConfig selects the shared limiter store. An empty Addr keeps the
// limiters in process memory.
type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from defaults, config.yaml (optional), and the
// environment, then validates it.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EXCUSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The secrets keep their conventional names from the original
	// deployment environment.
	_ = v.BindEnv("ai.anthropic_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("ai.gemini_key", "GEMINI_API_KEY")
	_ = v.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")
	_ = v.BindEnv("slack.webhook_url", "SLACK_WEBHOOK_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, defaults and env cover everything.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("ai.claude_model", "claude-sonnet-4-5-20250929")
	v.SetDefault("ai.gemini_model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 30*time.Second)

	v.SetDefault("slack.timeout", 15*time.Second)

	v.SetDefault("rate_limit.generate_max", 20)
	v.SetDefault("rate_limit.generate_window", time.Minute)
	v.SetDefault("rate_limit.unlock_max", 3)
	v.SetDefault("rate_limit.unlock_window", 5*time.Minute)
	v.SetDefault("rate_limit.share_max", 10)
	v.SetDefault("rate_limit.share_window", time.Hour)
	v.SetDefault("rate_limit.prune_interval", time.Minute)

	v.SetDefault("redis.addr", "")
}
