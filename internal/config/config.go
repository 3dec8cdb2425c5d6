package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env     string
	Log     LogConfig
	Console ConsoleConfig
	Export  ExportConfig
	NATS    NATSConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// ConsoleConfig holds the interactive console settings
type ConsoleConfig struct {
	Prompt   string
	Greeting string
}

// ExportConfig holds report export settings
type ExportConfig struct {
	FileMode os.FileMode
}

// NATSConfig holds NATS configuration. An empty URL disables the event feed.
type NATSConfig struct {
	URL            string
	Subject        string
	PublishTimeout time.Duration
}

// Enabled reports whether ledger events should be published
func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

// Load reads configuration from environment variables and returns a Config struct
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "warn")

	v.SetDefault("CONSOLE_PROMPT", "Enter a command: ")
	v.SetDefault("CONSOLE_GREETING", "Welcome to the Ecommerce Console App")

	v.SetDefault("EXPORT_FILE_MODE", "0644")

	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_SUBJECT", "ledger.events")
	v.SetDefault("NATS_PUBLISH_TIMEOUT", "2s")

	fileMode, err := strconv.ParseUint(v.GetString("EXPORT_FILE_MODE"), 8, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_FILE_MODE: %w", err)
	}

	publishTimeout, err := time.ParseDuration(v.GetString("NATS_PUBLISH_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS_PUBLISH_TIMEOUT: %w", err)
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Console: ConsoleConfig{
			Prompt:   v.GetString("CONSOLE_PROMPT"),
			Greeting: v.GetString("CONSOLE_GREETING"),
		},
		Export: ExportConfig{
			FileMode: os.FileMode(fileMode),
		},
		NATS: NATSConfig{
			URL:            v.GetString("NATS_URL"),
			Subject:        v.GetString("NATS_SUBJECT"),
			PublishTimeout: publishTimeout,
		},
	}

	return config, nil
}
