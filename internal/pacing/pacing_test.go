package pacing

import (
	"context"
	"errors"
	"testing"
	"time"

	"udemy-crawl/internal/config"
)

func TestRandomBetweenStaysInRange(t *testing.T) {
	p := NewRandom()
	r := config.Range{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for i := 0; i < 100; i++ {
		d := p.Between(r)
		if d < r.Min || d > r.Max {
			t.Fatalf("Between = %v, want within [%v, %v]", d, r.Min, r.Max)
		}
	}
}

func TestRandomBetweenDegenerateRange(t *testing.T) {
	p := NewRandom()
	r := config.Range{Min: 5 * time.Millisecond, Max: 5 * time.Millisecond}
	if d := p.Between(r); d != r.Min {
		t.Errorf("Between = %v, want %v", d, r.Min)
	}
}

func TestSleepCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Sleep(ctx, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep = %v, want context.Canceled", err)
	}
}

func TestNopDoesNotWait(t *testing.T) {
	start := time.Now()
	if err := (Nop{}).Pause(context.Background(), config.Range{Min: time.Hour, Max: time.Hour}); err != nil {
		t.Fatalf("Nop.Pause returned error: %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("Nop.Pause actually waited")
	}
}
