package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeIngest(); err != nil {
		return err
	}
	c.normalizeScorer()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeIngest() error {
	if c.Ingest.SourcePath == "" {
		if value, ok := os.LookupEnv("SKYCAST_FLIGHT_DATA"); ok {
			c.Ingest.SourcePath = value
		}
	}
	if strings.TrimSpace(c.Ingest.SourcePath) != "" {
		expanded, err := expandPath(c.Ingest.SourcePath)
		if err != nil {
			return fmt.Errorf("ingest.source_path: %w", err)
		}
		c.Ingest.SourcePath = expanded
	}
	if c.Ingest.BatchSize == 0 {
		c.Ingest.BatchSize = defaultIngestBatchSize
	}
	return nil
}

func (c *Config) normalizeScorer() {
	c.Scorer.BaseURL = strings.TrimRight(strings.TrimSpace(c.Scorer.BaseURL), "/")
	if c.Scorer.BaseURL == "" {
		c.Scorer.BaseURL = defaultScorerBaseURL
	}
	if c.Scorer.HealthTimeoutSeconds == 0 {
		c.Scorer.HealthTimeoutSeconds = defaultScorerHealthTimeout
	}
	if c.Scorer.ScoreTimeoutSeconds == 0 {
		c.Scorer.ScoreTimeoutSeconds = defaultScorerScoreTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
