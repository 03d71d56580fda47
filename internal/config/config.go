// Package config provides configuration management for the recipe service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the recipe recommendation server.
type Config struct {
	// ServerAddr is the address the HTTP server listens on (e.g., ":8080").
	ServerAddr string

	// DataDir is the directory for persistent data (SQLite DB, config file).
	DataDir string

	// DatabasePath is the full path to the SQLite database file.
	DatabasePath string

	// LLM provider API keys. Groq is preferred when both are set.
	GroqAPIKey   string
	OpenAIAPIKey string

	// RequestTimeout bounds the handling of one HTTP request, including
	// both outbound LLM calls.
	RequestTimeout time.Duration

	// Telegram integration (optional -- long polling, no public URL needed).
	// TelegramBotToken is the token from @BotFather.
	TelegramBotToken string

	// Slack integration (optional -- Socket Mode).
	// SlackBotToken is the Bot User OAuth Token (xoxb-...).
	SlackBotToken string
	// SlackAppToken is the App-Level Token (xapp-...) required for Socket Mode.
	SlackAppToken string
}

// Load creates a Config from the config file and environment variables.
// Values are resolved in order: environment variable > config file > default.
func Load() (*Config, error) {
	// Load ~/.reciperec/config.env into the environment. godotenv never
	// overwrites variables that are already set, so env vars always win.
	godotenv.Load(ConfigFilePath())

	dataDir := envOr("RECIPEREC_DATA_DIR", defaultDataDir())
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cfg := &Config{
		ServerAddr:       envOr("RECIPEREC_ADDR", ":8080"),
		DataDir:          dataDir,
		DatabasePath:     filepath.Join(dataDir, "reciperec.db"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		RequestTimeout:   envOrDuration("RECIPEREC_REQUEST_TIMEOUT", 2*time.Minute),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		SlackBotToken:    os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:    os.Getenv("SLACK_APP_TOKEN"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.GroqAPIKey == "" && c.OpenAIAPIKey == "" {
		return fmt.Errorf("at least one of GROQ_API_KEY or OPENAI_API_KEY is required")
	}
	return nil
}

// TelegramEnabled returns true if the Telegram bot is configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// SlackEnabled returns true if Slack Socket Mode is configured.
func (c *Config) SlackEnabled() bool {
	return c.SlackBotToken != "" && c.SlackAppToken != ""
}

// ConfigFilePath returns the path of the config file (~/.reciperec/config.env).
func ConfigFilePath() string {
	return filepath.Join(defaultDataDir(), "config.env")
}

func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reciperec"
	}
	return filepath.Join(home, ".reciperec")
}
