package github

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport logs each outbound API request with method, path, status,
// and duration. It sits below the cache, so only requests that reach the
// network are logged.
type loggingTransport struct {
	next http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		slog.Debug("github http request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start).Round(time.Microsecond),
			"error", err,
		)
		return nil, err
	}

	slog.Debug("github http request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start).Round(time.Microsecond),
	)
	return resp, nil
}
