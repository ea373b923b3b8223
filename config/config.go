// Package config loads service configuration from the process environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultModel is the Gemini model used when a request does not specify one.
// The threat assessment pass always uses this model regardless of the request.
const defaultModel = "gemini-1.5-flash"

// Config holds service configuration
type Config struct {
	// Listen is the address the HTTP server binds to
	Listen string
	// ReadTimeout is the HTTP server read timeout
	ReadTimeout time.Duration
	// WriteTimeout is the HTTP server write timeout
	WriteTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown on termination signals
	ShutdownTimeout time.Duration
	// FetchTimeout bounds outbound page retrieval
	FetchTimeout time.Duration
	// GenerateTimeout bounds each Gemini API call
	GenerateTimeout time.Duration
	// MaxBodySize limits inbound request body size in bytes
	MaxBodySize int64
	// GeminiAPIKey authenticates against the Gemini API; required
	GeminiAPIKey string
	// FindingsModel is the default model for the findings pass
	FindingsModel string
	// AssessmentModel is the fixed model for the threat assessment pass
	AssessmentModel string
	// SlackWebhookURL enables high-threat Slack notifications when set
	SlackWebhookURL string
	// Debug enables debug logging
	Debug bool
	// Pretty enables human readable logging output
	Pretty bool
}

// Load creates a new configuration from the environment, reading a local
// .env file first when one exists. The Gemini API key is the only required
// value; everything else has a default.
func Load() (*Config, error) {
	// best-effort; a missing .env file is not an error
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Config{
		Listen:          getEnv("REDTEAM_LISTEN", ":8080"),
		ReadTimeout:     getDurationEnv("REDTEAM_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDurationEnv("REDTEAM_WRITE_TIMEOUT", 5*time.Minute),
		ShutdownTimeout: getDurationEnv("REDTEAM_SHUTDOWN_TIMEOUT", 30*time.Second),
		FetchTimeout:    getDurationEnv("REDTEAM_FETCH_TIMEOUT", 30*time.Second),
		GenerateTimeout: getDurationEnv("REDTEAM_GENERATE_TIMEOUT", 2*time.Minute),
		MaxBodySize:     getInt64Env("REDTEAM_MAX_BODY_SIZE", 100*1024), // 100KB
		GeminiAPIKey:    apiKey,
		FindingsModel:   getEnv("GEMINI_MODEL", defaultModel),
		AssessmentModel: getEnv("GEMINI_ASSESSMENT_MODEL", defaultModel),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
	}, nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getInt64Env gets an int64 environment variable with a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
