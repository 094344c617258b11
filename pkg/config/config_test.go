package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, ProfilesBackendPostgres, cfg.Profiles.Backend)
	assert.Equal(t, 1000, cfg.Settings.SearchLimit)
	assert.Equal(t, 50, cfg.Settings.RowsPerPage)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GATEWAY_URL", "https://monitor.example.com/api_jsonrpc.php")
	t.Setenv("GATEWAY_TIMEOUT", "3s")
	t.Setenv("PROFILES_BACKEND", "MEMORY")
	t.Setenv("DEFAULT_SEARCH_LIMIT", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://monitor.example.com/api_jsonrpc.php", cfg.Gateway.URL)
	assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, ProfilesBackendMemory, cfg.Profiles.Backend)
	assert.Equal(t, 1000, cfg.Settings.SearchLimit)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}
