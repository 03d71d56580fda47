package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/DakshC17/reciperecommendation/internal/config"
)

// configKey describes a single configuration value.
type configKey struct {
	Key    string
	Desc   string
	Secret bool
}

// allConfigKeys lists every configurable value in display order.
var allConfigKeys = []configKey{
	{"GROQ_API_KEY", "Groq API key (preferred provider)", true},
	{"GROQ_MODEL", "Groq model (default llama3-70b-8192)", false},
	{"OPENAI_API_KEY", "OpenAI API key (fallback provider)", true},
	{"OPENAI_MODEL", "OpenAI model (default gpt-4o-mini)", false},
	{"RECIPEREC_ADDR", "Server listen address (default :8080)", false},
	{"RECIPEREC_REQUEST_TIMEOUT", "Per-request timeout (default 2m)", false},
	{"TELEGRAM_BOT_TOKEN", "Telegram bot token (from @BotFather)", true},
	{"SLACK_BOT_TOKEN", "Slack Bot User OAuth Token (xoxb-...)", true},
	{"SLACK_APP_TOKEN", "Slack App-Level Token (xapp-...)", true},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage reciperec configuration",
	Long: `Manage reciperec configuration (API keys, tokens, addresses).

Configuration is stored in ~/.reciperec/config.env and can be overridden
by environment variables.

  reciperec config set KEY VALUE      Set a single config value
  reciperec config show               Show current configuration
  reciperec config path               Print config file path`,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a config value",
	Long: `Set a single configuration value. Example:
  reciperec config set GROQ_API_KEY gsk_xxxxxxxxxxxx`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display all configured values. Secrets are masked.",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.ConfigFilePath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := strings.ToUpper(args[0])
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (see 'reciperec config show' for valid keys)", key)
	}

	path := config.ConfigFilePath()
	values, err := godotenv.Read(path)
	if err != nil {
		// Missing file is fine; we create it below.
		values = map[string]string{}
	}
	values[key] = args[1]

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := godotenv.Write(values, path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Set %s in %s\n", key, path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	values, err := godotenv.Read(config.ConfigFilePath())
	if err != nil {
		values = map[string]string{}
	}

	for _, ck := range allConfigKeys {
		// Environment variables win over the config file.
		val := os.Getenv(ck.Key)
		if val == "" {
			val = values[ck.Key]
		}

		display := "(not set)"
		if val != "" {
			display = val
			if ck.Secret {
				display = mask(val)
			}
		}
		fmt.Printf("%-28s %-20s %s\n", ck.Key, display, ck.Desc)
	}
	return nil
}

func isKnownKey(key string) bool {
	for _, ck := range allConfigKeys {
		if ck.Key == key {
			return true
		}
	}
	return false
}

// mask hides all but the first and last few characters of a secret.
func mask(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
