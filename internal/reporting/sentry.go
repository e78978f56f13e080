// Package reporting forwards errors that never reach a client (failed
// confirmation emails, recovered panics) to Sentry when SENTRY_DSN is set.
package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

type Config struct {
	DSN         string
	Environment string
	Release     string
}

// Init is a no-op when cfg.DSN is empty; CaptureError then does nothing.
func Init(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	return nil
}

func Enabled() bool {
	hub := sentry.CurrentHub()
	return hub != nil && hub.Client() != nil
}

func CaptureError(err error, extras map[string]interface{}) {
	if err == nil || !Enabled() {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events; call it on shutdown.
func Flush(timeout time.Duration) {
	if Enabled() {
		sentry.Flush(timeout)
	}
}
