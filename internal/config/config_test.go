package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avdeeva/task-tracker-bot/internal/config"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := config.Load("")
	require.ErrorIs(t, err, config.ErrMissingToken)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DB_PATH", "/tmp/bot.db")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "123:abc", cfg.BotToken)
	require.Equal(t, "/tmp/bot.db", cfg.DBPath)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	t.Setenv("BOT_TOKEN", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "bot_token: from-file\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.BotToken)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "tasks.db", cfg.DBPath)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "tasks.db", cfg.DBPath)
}
