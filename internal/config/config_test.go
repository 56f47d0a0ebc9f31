package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skycast/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Ingest.BatchSize != 1000 {
		t.Fatalf("expected default batch size 1000, got %d", cfg.Ingest.BatchSize)
	}
	if cfg.Scorer.HealthTimeoutSeconds != 5 || cfg.Scorer.ScoreTimeoutSeconds != 10 {
		t.Fatalf("unexpected scorer timeouts: %+v", cfg.Scorer)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
api_bind = "127.0.0.1:0"

[ingest]
source_path = "` + filepath.Join(dir, "flights.csv") + `"
batch_size = 250

[scorer]
base_url = "http://localhost:5005/"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Ingest.BatchSize != 250 {
		t.Fatalf("expected batch size 250, got %d", cfg.Ingest.BatchSize)
	}
	if strings.HasSuffix(cfg.Scorer.BaseURL, "/") {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Scorer.BaseURL)
	}
	if cfg.DatabasePath() != filepath.Join(dir, "data", "flights.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero batch size", func(c *config.Config) { c.Ingest.BatchSize = -1 }},
		{"bad bind", func(c *config.Config) { c.Paths.APIBind = "not-an-address" }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"empty scorer url", func(c *config.Config) { c.Scorer.BaseURL = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.APIBind = "127.0.0.1:0"
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[scorer]") {
		t.Fatal("sample config missing scorer section")
	}
}
