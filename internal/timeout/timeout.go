// Package timeout bounds a wait with a single deadline.
package timeout

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeoutExceeded is the cancel cause of a Governor's context once its
// deadline passes.
var ErrTimeoutExceeded = errors.New("wait timeout exceeded")

// Governor owns the deadline of one wait.
//
// Expiry, Abort and Disarm share one gate: whichever runs first decides
// the outcome and the others have no effect.
type Governor struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	timer  *time.Timer

	once  sync.Once
	won   bool
	fired chan struct{}
}

// Arm starts a governor whose context is canceled with ErrTimeoutExceeded
// after d. A zero or negative d never expires.
func Arm(parent context.Context, d time.Duration) *Governor {
	ctx, cancel := context.WithCancelCause(parent)
	g := &Governor{
		ctx:    ctx,
		cancel: cancel,
		fired:  make(chan struct{}),
	}

	if d > 0 {
		g.timer = time.AfterFunc(d, func() {
			g.Abort(ErrTimeoutExceeded)
		})
	}

	return g
}

// Context is canceled when the governor fires or is disarmed.
func (g *Governor) Context() context.Context {
	return g.ctx
}

// Abort cancels the wait with cause, unless it was already settled.
//
// Reports whether this call settled it.
func (g *Governor) Abort(cause error) bool {
	settled := false
	g.once.Do(func() {
		settled = true
		g.cancel(cause)
		close(g.fired)
	})
	return settled
}

// Disarm stops the deadline after the wait resolved.
//
// It returns true if the wait won, and false if the governor had already
// fired, in which case the caller must discard its result.
func (g *Governor) Disarm() bool {
	g.once.Do(func() {
		g.won = true
		if g.timer != nil {
			g.timer.Stop()
		}
		g.cancel(context.Canceled)
	})
	return g.won
}

// Fired is closed once the governor has fired or been aborted.
func (g *Governor) Fired() <-chan struct{} {
	return g.fired
}

// Cause returns why the wait was aborted, or nil if it was not.
func (g *Governor) Cause() error {
	select {
	case <-g.fired:
		return context.Cause(g.ctx)
	default:
		return nil
	}
}
