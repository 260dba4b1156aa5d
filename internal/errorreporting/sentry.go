// Package errorreporting wires an optional Sentry hook for the one
// class of error the simulation recovers from instead of crashing:
// pathological force parameters driving particle state non-finite.
// There is no PII in particle coordinates, so this package carries no
// scrubbing logic, unlike an HTTP-facing error reporter.
package errorreporting

import (
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
)

// Init configures Sentry from SENTRY_DSN. If the DSN is unset,
// reporting stays disabled and CaptureError/CaptureStabilityWarning
// become no-ops.
func Init(environment string) error {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          getRelease(),
		TracesSampleRate: 1.0,
		AttachStacktrace: true,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize Sentry: %w", err)
	}
	return nil
}

func getRelease() string {
	if release := os.Getenv("SENTRY_RELEASE"); release != "" {
		return release
	}
	if version := os.Getenv("SERVICE_VERSION"); version != "" {
		return version
	}
	return "dev"
}

// CaptureError reports err to Sentry, a no-op if reporting is disabled
// or err is nil.
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}

// CaptureStabilityWarning reports that the ManyBody stability guard had
// to clamp a tick that would otherwise have produced a non-finite
// displacement.
func CaptureStabilityWarning(alpha float64, particleCount int) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetExtra("alpha", alpha)
		scope.SetExtra("particle_count", particleCount)
		sentry.CaptureMessage("forcelayout: clamped non-finite displacement during tick")
	})
}

// IsEnabled reports whether Sentry reporting is configured.
func IsEnabled() bool {
	return os.Getenv("SENTRY_DSN") != ""
}
