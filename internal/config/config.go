// Package config loads bot settings from an optional YAML file with
// environment variable overrides (BOT_TOKEN, DB_PATH, LOG_LEVEL).
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ErrMissingToken is returned when no bot token is configured.
// The process cannot talk to the transport without one.
var ErrMissingToken = errors.New("bot token is not configured")

// Config is the full runtime configuration.
type Config struct {
	// BotToken is the bot's authentication credential.
	BotToken string `mapstructure:"bot_token"`

	// DBPath is the SQLite database file location.
	DBPath string `mapstructure:"db_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from path (optional; a missing file is not
// an error) and the environment. Environment values win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults register the keys so AutomaticEnv can resolve them.
	v.SetDefault("bot_token", "")
	v.SetDefault("db_path", "tasks.db")
	v.SetDefault("log_level", "info")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.BotToken == "" {
		return nil, ErrMissingToken
	}

	return cfg, nil
}
