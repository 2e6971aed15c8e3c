package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":8081", cfg.HTTP.Addr)
	assert.Equal(t, ":8080", cfg.Mock.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend:9000/api")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orderdesk.yml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://file/api\n  timeout: 2s\nhttp:\n  addr: \":9999\"\n"), 0o600))
	t.Setenv("HTTP_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://file/api", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv("API_TIMEOUT", "0s")
	_, err := Load("")
	assert.Error(t, err)
}
