// Package config holds environment-derived settings for the ambient
// stack only (logging, metrics, tracing, error reporting). Simulation
// physics parameters are never read from the environment; they are set
// exclusively through the per-force and per-simulation builders so that
// two runs with identical builder calls always produce identical
// layouts regardless of the machine or environment they run on.
package config

import (
	"os"

	"github.com/onnwee/forcelayout/internal/utils"
)

// Config holds the ambient-layer settings derived from the environment.
type Config struct {
	LogLevel              string
	MetricsEnabled        bool
	TracingEnabled        bool
	ErrorReportingEnabled bool
}

var cached *Config

// Load reads env vars once and caches the result.
func Load() *Config {
	if cached != nil {
		return cached
	}
	level := os.Getenv("FORCELAYOUT_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	cached = &Config{
		LogLevel:              level,
		MetricsEnabled:        utils.GetEnvAsBool("FORCELAYOUT_METRICS", false),
		TracingEnabled:        utils.GetEnvAsBool("FORCELAYOUT_TRACING", false),
		ErrorReportingEnabled: utils.GetEnvAsBool("FORCELAYOUT_ERROR_REPORTING", false),
	}
	return cached
}

// ResetForTest clears cached config; for use in tests only.
func ResetForTest() { cached = nil }
