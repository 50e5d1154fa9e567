package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lumipallolabs/anticipate/internal/logging"
	"github.com/lumipallolabs/anticipate/internal/watcher"
)

// ErrAlreadyStarted is returned by Start if a wait is already running.
var ErrAlreadyStarted = errors.New("core: wait already started")

// Controller runs one wait and reports its progress without UI dependencies
type Controller struct {
	mu sync.RWMutex

	state   WaitState
	started bool

	watcher *watcher.Watcher
}

// NewController creates a controller that waits using w
func NewController(w *watcher.Watcher) *Controller {
	return &Controller{watcher: w}
}

// State returns a snapshot of the current state
func (c *Controller) State() WaitState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start probes path, captures its baseline and begins waiting on it.
//
// The returned channel receives a WaitStartedEvent, then exactly one
// ResolvedEvent or ErrorEvent, and is then closed. An error is returned
// only if the session could not be created.
func (c *Controller) Start(ctx context.Context, path string) (<-chan Event, error) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	session, err := c.watcher.NewSession(path)
	if err != nil {
		c.fail(err)
		return nil, err
	}

	target := session.Target()
	phase := phaseFor(target)

	c.mu.Lock()
	c.state = WaitState{
		Phase:     phase,
		Target:    target,
		Entries:   session.Entries(),
		StartTime: time.Now(),
	}
	c.mu.Unlock()

	// Buffered for every event this wait can emit, so the run never
	// blocks on a consumer that stopped reading.
	eventCh := make(chan Event, 2)
	eventCh <- WaitStartedEvent{
		Target:  target,
		Phase:   phase,
		Entries: session.Entries(),
	}

	go c.run(ctx, session, eventCh)

	return eventCh, nil
}

// run executes the wait in a goroutine
func (c *Controller) run(ctx context.Context, session *watcher.Session, eventCh chan Event) {
	defer close(eventCh)

	logging.Debug.Debug("[Controller] waiting", "path", session.Target().Path, "kind", session.Target().Kind)

	result, err := session.Wait(ctx)
	if err != nil {
		c.fail(err)
		eventCh <- ErrorEvent{Err: err}
		return
	}

	c.mu.Lock()
	c.state.Phase = PhaseResolved
	c.state.Result = result
	c.mu.Unlock()

	logging.Debug.Debug("[Controller] resolved", "path", result.Path, "trigger", result.Trigger)
	eventCh <- ResolvedEvent{Result: result}
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Phase = PhaseFailed
	c.state.Err = err
}
