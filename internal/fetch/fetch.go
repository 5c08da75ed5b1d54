package fetch

import (
	"context"
	"fmt"

	"udemy-crawl/internal/config"
	"udemy-crawl/internal/pacing"
)

// Fetcher returns the rendered markup of a page. Implementations own
// session/browser mechanics; callers only see markup or an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Func adapts a plain function to a Fetcher, mainly for tests.
type Func func(ctx context.Context, url string) (string, error)

func (f Func) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// WithRetry wraps a fetcher with the crawl retry policy: retries
// navigation failures up to the configured count with a short randomized
// pause between attempts. Retry lives here, at the capability boundary,
// not inside the extractors.
func WithRetry(inner Fetcher, set config.Settings, pacer pacing.Pacer) Fetcher {
	return &retryFetcher{inner: inner, set: set, pacer: pacer}
}

type retryFetcher struct {
	inner Fetcher
	set   config.Settings
	pacer pacing.Pacer
}

func (r *retryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.set.FetchRetries; attempt++ {
		if attempt > 0 {
			fmt.Printf("[fetch] WARN: retrying (%d/%d) %s\n", attempt, r.set.FetchRetries, url)
			if err := r.pacer.Pause(ctx, r.set.RetryPause); err != nil {
				return "", err
			}
		}
		markup, err := r.inner.Fetch(ctx, url)
		if err == nil {
			return markup, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", lastErr
		}
	}
	return "", fmt.Errorf("fetch: giving up after %d retries: %w", r.set.FetchRetries, lastErr)
}
