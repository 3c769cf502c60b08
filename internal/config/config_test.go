package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "123:abc")
	path := writeConfig(t, `
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
database:
  path: "`+filepath.Join(t.TempDir(), "bot.db")+`"
reminders:
  scan_interval_minutes: 1
  cooldown_minutes: 30
admins:
  - 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, time.Minute, cfg.ScanInterval())
	assert.Equal(t, 30*time.Minute, cfg.CooldownWindow())
	assert.True(t, cfg.IsAdmin(42))
	assert.False(t, cfg.IsAdmin(43))
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // default database path is relative
	path := writeConfig(t, "telegram:\n  bot_token: t\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/babycarebot.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Minute, cfg.ScanInterval())
	assert.Equal(t, 10*time.Second, cfg.DrainInterval())
	assert.Equal(t, 600*time.Minute, cfg.CooldownWindow())
	assert.Equal(t, 7*24*time.Hour, cfg.LedgerRetention())
	assert.Equal(t, 300*time.Second, cfg.FamilyCacheTTL())
	assert.Equal(t, "Asia/Bangkok", cfg.Location().String())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
