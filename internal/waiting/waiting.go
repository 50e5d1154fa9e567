// Package waiting paces poll loops so they can be tuned and tested.
package waiting

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the default delay between polls.
//
// It matches the smallest timer granularity most schedulers honor for a
// zero-delay timeout, so polling is as responsive as a tick-by-tick loop.
const DefaultInterval = time.Millisecond

// Pacer decides when the next poll of a loop may run.
//
// A Pacer belongs to a single poll loop and is not safe for concurrent use.
type Pacer interface {
	// Wait blocks until the next poll is due or ctx is done.
	//
	// The first call returns immediately.
	Wait(ctx context.Context) error
}

// PacerFactory creates a Pacer for each new poll loop.
type PacerFactory interface {
	New() Pacer
}

// NewPacerFactory returns a factory for pacers that poll every interval.
//
// If maxInterval is greater than interval, the delay doubles after every
// poll until it reaches maxInterval. A zero interval yields to the
// scheduler between polls instead of sleeping.
func NewPacerFactory(interval, maxInterval time.Duration) PacerFactory {
	if interval < 0 {
		interval = 0
	}
	if maxInterval < interval {
		maxInterval = interval
	}
	return &pacerFactory{interval: interval, maxInterval: maxInterval}
}

type pacerFactory struct {
	interval    time.Duration
	maxInterval time.Duration
}

func (f *pacerFactory) New() Pacer {
	if f.interval == 0 {
		return &yieldPacer{}
	}

	return &ratePacer{
		limiter:     rate.NewLimiter(rate.Every(f.interval), 1),
		interval:    f.interval,
		maxInterval: f.maxInterval,
	}
}

// ratePacer spaces polls with a single-token rate limiter.
type ratePacer struct {
	limiter     *rate.Limiter
	interval    time.Duration
	maxInterval time.Duration
	polls       int
}

func (p *ratePacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		return err
	}

	if p.polls > 0 && p.interval < p.maxInterval {
		p.interval = min(p.interval*2, p.maxInterval)
		p.limiter.SetLimit(rate.Every(p.interval))
	}
	p.polls++

	return nil
}

// yieldPacer lets other goroutines run between polls without sleeping.
type yieldPacer struct {
	started bool
}

func (p *yieldPacer) Wait(ctx context.Context) error {
	if p.started {
		runtime.Gosched()
	}
	p.started = true

	if ctx.Err() != nil {
		return context.Cause(ctx)
	}
	return nil
}
