package app

import (
	"context"
	"time"
)

// Pacer caps the frame rate by sleeping out the rest of each frame's budget.
type Pacer struct {
	budget time.Duration
	last   time.Time
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration)
}

// NewPacer returns a pacer for fps frames per second. Zero or less disables pacing.
func NewPacer(fps int) *Pacer {
	var budget time.Duration
	if fps > 0 {
		budget = time.Second / time.Duration(fps)
	}
	return &Pacer{
		budget: budget,
		now:    time.Now,
		sleep:  sleepContext,
	}
}

func (p *Pacer) Budget() time.Duration {
	return p.budget
}

// Reset starts the first frame now.
func (p *Pacer) Reset() {
	p.last = p.now()
}

// Wait ends the current frame and returns how long it slept.
func (p *Pacer) Wait(ctx context.Context) time.Duration {
	if p.budget <= 0 {
		return 0
	}

	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}

	remaining := p.budget - now.Sub(p.last)
	if remaining <= 0 {
		// Running late, do not try to catch up.
		p.last = now
		return 0
	}

	p.sleep(ctx, remaining)
	p.last = now.Add(remaining)
	return remaining
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
