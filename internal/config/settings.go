package config

import "time"

// Range is a [Min, Max] duration interval a pacer picks from.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Settings are the crawl tuning knobs. The value is built once and passed
// down explicitly; components never reach for globals, so tests can
// substitute deterministic values (zero pacing, no retries).
type Settings struct {
	// PageLoadTimeout bounds a single page navigation.
	PageLoadTimeout time.Duration

	// FetchRetries is the number of retries after the first failed attempt.
	FetchRetries int

	// ScrollSteps is the base number of human-scroll increments on a page.
	ScrollSteps int

	// Jitter is the short pause between scripted browser interactions.
	Jitter Range
	// ScrollPause is the pause between individual scroll increments.
	ScrollPause Range
	// RetryPause is the pause between failed navigation attempts.
	RetryPause Range
	// ReadPause simulates reading a detail page before parsing it.
	ReadPause Range
	// PagePause is the pause between successive listing pages.
	PagePause Range
}

func DefaultSettings() Settings {
	return Settings{
		PageLoadTimeout: 60 * time.Second,
		FetchRetries:    2,
		ScrollSteps:     12,

		Jitter:      Range{400 * time.Millisecond, 900 * time.Millisecond},
		ScrollPause: Range{300 * time.Millisecond, 800 * time.Millisecond},
		RetryPause:  Range{800 * time.Millisecond, 1600 * time.Millisecond},
		ReadPause:   Range{5 * time.Second, 10 * time.Second},
		PagePause:   Range{10 * time.Second, 20 * time.Second},
	}
}
