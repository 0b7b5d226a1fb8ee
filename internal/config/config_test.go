package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1200*time.Millisecond, cfg.CommentaryInterval)
	assert.Equal(t, 10*time.Second, cfg.CoachInterval)
	assert.Equal(t, 5, cfg.StatePoints)
	assert.Equal(t, time.Second, cfg.StateWindow)
	assert.Equal(t, 40, cfg.CommentaryPoints)
	assert.Equal(t, time.Minute, cfg.CommentaryWindow)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("COMMENTARY_INTERVAL", "2s")
	t.Setenv("STATE_RATE_POINTS", "10")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ALLOWED_ORIGINS", "game.example,play.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.CommentaryInterval)
	assert.Equal(t, 10, cfg.StatePoints)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"game.example", "play.example"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsBadBudgets(t *testing.T) {
	t.Setenv("STATE_RATE_POINTS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RejectsEmptyJWTSecret(t *testing.T) {
	// The env path can never produce an empty secret: env.Parse fills a
	// set-but-empty JWT_SECRET from envDefault. Exercise validate directly.
	cfg, err := Load()
	require.NoError(t, err)

	cfg.JWTSecret = ""
	assert.Error(t, cfg.validate())
}
