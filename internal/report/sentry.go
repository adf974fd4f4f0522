package report

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// SetupSentry initializes the Sentry client from SENTRY_DSN. With an empty
// DSN the client is a no-op, so local development needs no configuration.
func SetupSentry() {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		EnableTracing:    true,
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	sentry.CaptureMessage("bikewatching started")
}

// FlushSentry drains buffered Sentry events before shutdown.
func FlushSentry() {
	sentry.Flush(2 * time.Second)
}
