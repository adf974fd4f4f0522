package config

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	BASE_BACKOFF   = 1 * time.Second
	MAX_BACKOFF    = 2 * time.Minute
	BACKOFF_FACTOR = 2.0
	JITTER_FACTOR  = 0.5
)

// DoWithBackoff performs the request, retrying transport failures and 5xx
// responses with exponential backoff and jitter until maxRetries is
// exhausted or the context is done. The startup dataset fetches run
// through this so a briefly unavailable feed does not abort the service.
func DoWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	var lastErr error
	delay := BASE_BACKOFF

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.WithContext(ctx))
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			resp.Body.Close()
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
		}

		jitter := time.Duration(rand.Float64() * float64(delay) * JITTER_FACTOR)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay + jitter):
		}

		delay = time.Duration(float64(delay) * BACKOFF_FACTOR)
		if delay > MAX_BACKOFF {
			delay = MAX_BACKOFF
		}
	}
}
