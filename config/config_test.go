package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Equal(t, "file", cfg.Session.Backend)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchday.yaml")
	data := []byte(`
listen_addr: ":9090"
log_level: debug
model:
  provider: anthropic
  name: claude-sonnet-4-20250514
session:
  backend: sqlite
  path: sessions.db
providers:
  sports_api_key: sk-test
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat, "unset fields keep defaults")
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, "sqlite", cfg.Session.Backend)
	assert.Equal(t, "sessions.db", cfg.Session.Path)
	assert.Equal(t, "sk-test", cfg.Providers.SportsAPIKey)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MATCHDAY_LISTEN_ADDR", ":7070")
	t.Setenv("MATCHDAY_MODEL_PROVIDER", "anthropic")
	t.Setenv("MATCHDAY_SESSION_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "anthropic", cfg.Model.Provider)
	assert.Equal(t, "memory", cfg.Session.Backend)
}
