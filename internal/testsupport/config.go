package testsupport

import (
	"path/filepath"
	"testing"

	"skycast/internal/config"
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
	cfg.Ingest.SourcePath = filepath.Join(base, "flights.csv")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithScorerURL points the test config at a scorer endpoint, usually an
// httptest server.
func WithScorerURL(url string) ConfigOption {
	return func(c *config.Config) {
		c.Scorer.BaseURL = url
	}
}

// WithBatchSize overrides the ingestion batch size on the test config.
func WithBatchSize(size int) ConfigOption {
	return func(c *config.Config) {
		c.Ingest.BatchSize = size
	}
}
