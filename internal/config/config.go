// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ScoreMin and ScoreMax bound the rating score range (inclusive).
	ScoreMin int `koanf:"score_min"`
	ScoreMax int `koanf:"score_max"`

	// MaxListLimit caps GET /competitions?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	// JournalSize bounds the in-memory activity journal.
	JournalSize int `koanf:"journal_size"`

	// SweepIntervalSeconds controls how often phase gauges are recounted.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds"`

	// AuthSecret is the HS256 key used to verify bearer tokens.
	// Required unless AuthDisabled is set.
	AuthSecret string `koanf:"auth_secret"`

	// AuthDisabled switches actor identification to the X-Actor-Id and
	// X-Actor-Role headers. Local runs and tests only.
	AuthDisabled bool `koanf:"auth_disabled"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9090",
		ScoreMin:             1,
		ScoreMax:             5,
		MaxListLimit:         100,
		JournalSize:          1024,
		SweepIntervalSeconds: 15,
		AuthDisabled:         false,
	}
}
