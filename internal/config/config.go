// Package config loads chsearch settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pengelbrecht/chsearch/internal/registry"
)

// Environment variable names.
const (
	EnvBaseURL      = "CHSEARCH_BASE_URL"
	EnvLogFile      = "CHSEARCH_LOG"
	EnvLogLevel     = "CHSEARCH_LOG_LEVEL"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// DefaultServiceName is reported to the trace collector when
// OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "chsearch"

type Config struct {
	// APIKey may be empty; the registry client reports the missing
	// credential.
	APIKey  string
	BaseURL string

	// LogFile is empty when logging is disabled.
	LogFile  string
	LogLevel slog.Level

	// OTLPEndpoint is empty when tracing is disabled.
	OTLPEndpoint string
	ServiceName  string
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load reads the configuration. An unrecognised log level is an error; the
// returned Config is still usable and falls back to info.
func Load() (Config, error) {
	cfg := Config{
		APIKey:       getenv(registry.APIKeyEnv, ""),
		BaseURL:      getenv(EnvBaseURL, registry.DefaultBaseURL),
		LogFile:      getenv(EnvLogFile, ""),
		LogLevel:     slog.LevelInfo,
		OTLPEndpoint: getenv(EnvOTLPEndpoint, ""),
		ServiceName:  getenv(EnvServiceName, DefaultServiceName),
	}

	level, err := parseLevel(getenv(EnvLogLevel, "info"))
	if err != nil {
		return cfg, err
	}
	cfg.LogLevel = level
	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	return level, nil
}
