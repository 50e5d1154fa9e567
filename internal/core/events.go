package core

import "github.com/lumipallolabs/anticipate/internal/model"

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// WaitStartedEvent is emitted once the target was probed and its
// baseline captured, before polling begins
type WaitStartedEvent struct {
	Target  model.Target
	Phase   Phase
	Entries int // directory entries in the baseline
}

func (WaitStartedEvent) isEvent() {}

// ResolvedEvent is emitted when the awaited condition was met
type ResolvedEvent struct {
	Result model.Result
}

func (ResolvedEvent) isEvent() {}

// ErrorEvent is emitted when the wait ended without resolving
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}
