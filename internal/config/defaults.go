package config

const (
	defaultDataDir              = "~/.local/share/skycast/data"
	defaultLogDir               = "~/.local/share/skycast/logs"
	defaultAPIBind              = "127.0.0.1:3000"
	defaultIngestBatchSize      = 1000
	defaultScorerBaseURL        = "http://127.0.0.1:5000"
	defaultScorerHealthTimeout  = 5
	defaultScorerScoreTimeout   = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
			APIBind: defaultAPIBind,
		},
		Ingest: Ingest{
			BatchSize: defaultIngestBatchSize,
		},
		Scorer: Scorer{
			BaseURL:              defaultScorerBaseURL,
			HealthTimeoutSeconds: defaultScorerHealthTimeout,
			ScoreTimeoutSeconds:  defaultScorerScoreTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
