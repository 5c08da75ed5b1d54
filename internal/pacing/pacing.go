package pacing

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"udemy-crawl/internal/config"
)

// Pacer introduces human-like delays between crawl actions. It is a
// strategy so the crawl loops can be tested with no real sleeping.
type Pacer interface {
	// Pause blocks for a random duration inside r, or until ctx is done.
	Pause(ctx context.Context, r config.Range) error
}

// Random is the production pacer: uniform random wait inside the range.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandom() *Random {
	return &Random{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *Random) Pause(ctx context.Context, r config.Range) error {
	return Sleep(ctx, p.Between(r))
}

// Between picks a duration in [r.Min, r.Max].
func (p *Random) Between(r config.Range) time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	p.mu.Lock()
	d := r.Min + time.Duration(p.rnd.Int63n(int64(r.Max-r.Min)))
	p.mu.Unlock()
	return d
}

// Nop waits for nothing. Used by tests and dry runs.
type Nop struct{}

func (Nop) Pause(context.Context, config.Range) error { return nil }

// Sleep is a context-aware time.Sleep.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
