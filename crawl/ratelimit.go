package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the politeness delay between successive fetches. The first
// call passes immediately; each subsequent call blocks until the configured
// interval has elapsed since the previous one, so no delay is paid after the
// final fetch.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given inter-request delay. A
// non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request is allowed or the context is canceled.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
