package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFailsWithoutCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadFallsBackToGoogleAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.Gemini.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("PORT", "")
	t.Setenv("RASTER_DPI", "not-a-number")
	t.Setenv("RASTER_BACKEND", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("GEMINI_TEMPERATURE", "0.7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-key", cfg.Gemini.APIKey)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 150, cfg.Raster.DPI)
	assert.Equal(t, "pdfium", cfg.Raster.Backend)
	assert.Equal(t, 2, cfg.Raster.Workers)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.InDelta(t, 0.7, cfg.Gemini.Temperature, 0.0001)
	assert.Zero(t, cfg.Gemini.RateLimit)
	assert.Equal(t, 60*time.Second, cfg.Report.Timeout)
	assert.Equal(t, 2, cfg.Report.MaxConcurrency)
}

func TestLoadRateLimit(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("GEMINI_RATE_LIMIT", "0.5")
	t.Setenv("GEMINI_RATE_BURST", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Gemini.RateLimit, 0.0001)
	assert.Equal(t, 3, cfg.Gemini.RateBurst)
}
