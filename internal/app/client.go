package app

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/lmalottucsd/bikewatching/internal/metrics"
)

// latencyTrackingRoundTripper wraps another RoundTripper to record the
// latency of each outgoing request in the Prometheus histogram, labeled
// by URL, method and status.
type latencyTrackingRoundTripper struct {
	next http.RoundTripper
}

func (rt *latencyTrackingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	// Scheme + host + path only; query params would explode label cardinality.
	safeURL := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	metrics.OutgoingLatency.WithLabelValues(safeURL, req.Method, status).Observe(duration)

	return resp, err
}

// NewPooledClient returns the HTTP client used for the startup dataset
// fetches. The trip CSV runs to tens of megabytes, so the overall client
// timeout is generous while connection establishment still fails fast.
func NewPooledClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	instrumentedTransport := &latencyTrackingRoundTripper{next: transport}

	return &http.Client{
		Transport: instrumentedTransport,
		Timeout:   2 * time.Minute,
	}
}
