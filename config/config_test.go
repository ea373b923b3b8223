package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.FindingsModel)
	assert.Equal(t, "gemini-1.5-flash", cfg.AssessmentModel)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, int64(100*1024), cfg.MaxBodySize)
	assert.Empty(t, cfg.SlackWebhookURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDTEAM_LISTEN", ":9090")
	t.Setenv("REDTEAM_FETCH_TIMEOUT", "10s")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "gemini-1.5-pro", cfg.FindingsModel)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/x", cfg.SlackWebhookURL)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDTEAM_READ_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}
