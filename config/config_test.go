package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.False(t, cfg.Dev())
	assert.Equal(t, "http://localhost:8080/api/track-visitor", cfg.VisitorEndpoint())
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.TrustedProxies)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RECRUIT_TEST_ONLY=1\n"), 0o600))
	t.Setenv("APP_ENV", "Development")
	t.Setenv("PORT", "9090")
	t.Setenv("PUBLIC_BASE_URL", "https://jobs.example.com/")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Dev())
	assert.Equal(t, "https://jobs.example.com", cfg.BaseURL())
	assert.Equal(t, "https://jobs.example.com/api/track-visitor", cfg.VisitorEndpoint())
	assert.Equal(t, "1", os.Getenv("RECRUIT_TEST_ONLY"))
	os.Unsetenv("RECRUIT_TEST_ONLY")
}

func TestVisitorEndpointOverride(t *testing.T) {
	cfg := Config{Port: "8080", TrackVisitorURL: "https://ingest.example.com/v"}
	assert.Equal(t, "https://ingest.example.com/v", cfg.VisitorEndpoint())
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("CLICKHOUSE_NATIVE_PORT", "not-an-int")

	var cfg Config
	err := ParseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
