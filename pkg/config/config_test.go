package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.FetchMaxAttempts)
	assert.Equal(t, time.Microsecond, cfg.FetchBackoff)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, FetchModeHTTP, cfg.FetchMode)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	assert.Equal(t, 48*time.Hour, cfg.JobTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "secret")
	t.Setenv("FETCH_MAX_ATTEMPTS", "3")
	t.Setenv("FETCH_BACKOFF", "250ms")
	t.Setenv("REDIS_DB", "4")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.TMDBAPIKey)
	assert.Equal(t, 3, cfg.FetchMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchBackoff)
	assert.Equal(t, 4, cfg.RedisDB)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=9090\nFETCH_MODE=browser\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, FetchModeBrowser, cfg.FetchMode)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("FETCH_MAX_ATTEMPTS", "0")
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
