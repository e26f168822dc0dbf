package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pengelbrecht/chsearch/internal/registry"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{registry.APIKeyEnv, EnvBaseURL, EnvLogFile, EnvLogLevel, EnvOTLPEndpoint, EnvServiceName} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, registry.DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, DefaultServiceName, cfg.ServiceName)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(registry.APIKeyEnv, " secret ")
	t.Setenv(EnvBaseURL, "http://localhost:9999")
	t.Setenv(EnvLogFile, "/tmp/chsearch.log")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvOTLPEndpoint, "localhost:4318")
	t.Setenv(EnvServiceName, "chsearch-dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, "/tmp/chsearch.log", cfg.LogFile)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "localhost:4318", cfg.OTLPEndpoint)
	assert.Equal(t, "chsearch-dev", cfg.ServiceName)
}

func TestLoad_BadLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "chatty")

	cfg, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLogLevel)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
