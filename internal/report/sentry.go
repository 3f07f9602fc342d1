// Package report forwards unexpected errors to Sentry.
// With an empty DSN the Sentry client is disabled and every call is a no-op.
package report

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
)

// Setup initialises the Sentry client and tags the global scope with runtime details.
func Setup(dsn, env, version string) error {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          version,
		AttachStacktrace: true,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("goarch", runtime.GOARCH)
		scope.SetContext("host_info", map[string]interface{}{
			"hostname": hostname(),
		})
	})

	return nil
}

// Flush waits for buffered events to be delivered.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// Error reports err with optional tags. A nil error is ignored.
func Error(err error, tags map[string]string) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentry.LevelError)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
