// Package smoketest drives a running engine through the full competition
// lifecycle over HTTP and verifies every guard along the way.
package smoketest

import "time"

// Default configuration values for the smoke run.
const (
	DefaultBaseURL = "http://localhost:9090"
	DefaultTimeout = 30 * time.Second
)

// Config controls a smoke run.
type Config struct {
	// BaseURL of the running service.
	BaseURL string

	// Timeout for each HTTP request.
	Timeout time.Duration

	// AdminToken is the bearer token used for admin calls. When empty the
	// run assumes the server trusts X-Actor headers (auth_disabled mode).
	AdminToken string

	// Category used for the throwaway competition.
	Category string

	// KeepCompetition leaves the created competition in place rather than
	// deleting it at the end.
	KeepCompetition bool
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		Category: "smoke",
	}
}
