package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPError carries status/body for non-2xx responses so callers can
// decide what to do with the failure.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 400))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// RetryConfig controls retry behavior for page fetches.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   800 * time.Millisecond,
		MaxDelay:    30 * time.Second,
	}
}

// Get fetches url with bounded retries. Retries cover transient network
// errors, 429 and 5xx (honoring Retry-After); other statuses fail fast.
// The body is always drained so the connection can be reused.
func Get(ctx context.Context, client *http.Client, url string, header http.Header, cfg RetryConfig) ([]byte, error) {
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}

		resp, err := client.Do(req)
		if err != nil {
			if !isRetryableNetErr(err) {
				return nil, err
			}
			lastErr = err
			if err := sleepBackoff(ctx, attempt, cfg, 0); err != nil {
				return nil, err
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			if err := sleepBackoff(ctx, attempt, cfg, 0); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		herr := &HTTPError{Method: req.Method, URL: url, StatusCode: resp.StatusCode, Body: body}
		if !isRetryableStatus(resp.StatusCode) {
			return nil, herr
		}
		lastErr = herr
		if err := sleepBackoff(ctx, attempt, cfg, parseRetryAfter(resp)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusRequestTimeout ||
		(code >= 500 && code <= 599)
}

func sleepBackoff(ctx context.Context, attempt int, cfg RetryConfig, retryAfter time.Duration) error {
	sleep := retryAfter
	if sleep <= 0 {
		sleep = cfg.BaseDelay * time.Duration(1<<(attempt-1))
		if sleep > cfg.MaxDelay {
			sleep = cfg.MaxDelay
		}
		// jitter 0..400ms
		sleep += time.Duration(rand.Intn(400)) * time.Millisecond
	}

	t := time.NewTimer(sleep)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isRetryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return nerr.Timeout()
	}

	// common transient I/O errors surface as plain strings
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof")
}

// parseRetryAfter reads the Retry-After header (seconds or HTTP date).
// Returns 0 when missing/invalid.
func parseRetryAfter(resp *http.Response) time.Duration {
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
