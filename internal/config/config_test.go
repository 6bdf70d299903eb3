package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LEVERAGE_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.FeedBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FeedTimeout)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "@every 4h", cfg.RefreshSchedule)
	assert.Equal(t, []string{"Austin, TX", "Dallas, TX", "Houston, TX"}, cfg.RefreshLocations)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("LEVERAGE_DATA_DIR", t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FEED_BASE_URL", "http://localhost:4000")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("REFRESH_SCHEDULE", "@hourly")
	t.Setenv("REFRESH_LOCATIONS", "Denver, CO; Phoenix, AZ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:4000", cfg.FeedBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "@hourly", cfg.RefreshSchedule)
	assert.Equal(t, []string{"Denver, CO", "Phoenix, AZ"}, cfg.RefreshLocations)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("LEVERAGE_DATA_DIR", t.TempDir())
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DEV_MODE", "maybe")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
}

func TestLoad_ResolvesDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LEVERAGE_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.DirExists(t, cfg.DataDir)
}

func TestValidate(t *testing.T) {
	valid := &Config{CacheTTL: time.Hour, FeedTimeout: time.Second}
	assert.NoError(t, valid.Validate())

	noTTL := &Config{FeedTimeout: time.Second}
	assert.Error(t, noTTL.Validate())

	noTimeout := &Config{CacheTTL: time.Hour}
	assert.Error(t, noTimeout.Validate())
}
