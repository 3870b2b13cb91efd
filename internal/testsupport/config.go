package testsupport

import (
	"path/filepath"
	"testing"

	"bingeboard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.TMDB.APIKey = "test"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithTMDB points the TMDB client at baseURL with the given key.
func WithTMDB(baseURL, key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.TMDB.BaseURL = baseURL
		cfg.TMDB.APIKey = key
	}
}

// WithLLM points the assistant model at baseURL.
func WithLLM(baseURL, key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.LLM.BaseURL = baseURL
		cfg.LLM.APIKey = key
	}
}

// WithAPIToken enables bearer authentication on the HTTP API.
func WithAPIToken(token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.APIToken = token
	}
}
