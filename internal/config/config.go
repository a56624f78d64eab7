// Package config defines process configuration and its loading.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Output formats understood by the report encoder.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// WorkerCount sets the number of batch scoring workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// QueueSize bounds the in-memory job queue used by batch scoring.
	QueueSize int `koanf:"queue_size" validate:"gte=1"`

	// DedupeSize is how many batch run IDs are remembered to reject resubmits.
	DedupeSize int `koanf:"dedupe_size" validate:"gte=1"`

	// OutputFormat is the default report encoding.
	OutputFormat string `koanf:"output_format" validate:"oneof=json yaml msgpack"`

	// Audit runs the score validator after every run and embeds its outcome.
	Audit bool `koanf:"audit"`

	// LeaderboardLimit is the default leaderboard size.
	LeaderboardLimit int `koanf:"leaderboard_limit" validate:"gte=1,ltefield=MaxLeaderboardLimit"`

	// MaxLeaderboardLimit caps any requested leaderboard size.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit" validate:"gte=1"`

	// MinTrustScore is the default leaderboard score floor.
	MinTrustScore float64 `koanf:"min_trust_score" validate:"gte=0,lte=100"`

	// MetricsFile, when set, receives a Prometheus textfile after each command.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		WorkerCount:         runtime.NumCPU(),
		QueueSize:           1_024,
		DedupeSize:          50_000,
		OutputFormat:        FormatJSON,
		Audit:               false,
		LeaderboardLimit:    100,
		MaxLeaderboardLimit: 1_000,
		MinTrustScore:       0,
	}
}
