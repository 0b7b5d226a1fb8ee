// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full server configuration. Every knob has a default that
// works for a local dev run; only OPENAI_API_KEY changes behaviour by its
// absence (simulated commentary instead of the real provider).
type Config struct {
	Port    int    `env:"PORT" envDefault:"8080"`
	WebRoot string `env:"WEB_ROOT" envDefault:""`

	// AllowedOrigins lists host patterns permitted to open cross-origin
	// websocket connections, for serving the client from another host.
	// Empty keeps the same-origin check.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// OpenAIAPIKey toggles simulated mode when empty.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	CommentaryInterval time.Duration `env:"COMMENTARY_INTERVAL" envDefault:"1200ms"`
	CoachInterval      time.Duration `env:"COACH_INTERVAL" envDefault:"10s"`

	StatePoints      int           `env:"STATE_RATE_POINTS" envDefault:"5"`
	StateWindow      time.Duration `env:"STATE_RATE_WINDOW" envDefault:"1s"`
	CommentaryPoints int           `env:"COMMENTARY_RATE_POINTS" envDefault:"40"`
	CommentaryWindow time.Duration `env:"COMMENTARY_RATE_WINDOW" envDefault:"1m"`

	// RedisAddr selects the shared admission counter store. Empty means a
	// process-local in-memory store (single instance / dev only).
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	// AdminSecret guards the dev token-minting endpoint. Empty disables it.
	AdminSecret string `env:"ADMIN_SECRET" envDefault:""`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.StatePoints <= 0 || c.CommentaryPoints <= 0 {
		return fmt.Errorf("rate budgets must be positive (state=%d, commentary=%d)", c.StatePoints, c.CommentaryPoints)
	}
	if c.StateWindow <= 0 || c.CommentaryWindow <= 0 {
		return fmt.Errorf("rate windows must be positive (state=%s, commentary=%s)", c.StateWindow, c.CommentaryWindow)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}
