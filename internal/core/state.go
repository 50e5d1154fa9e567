package core

import (
	"time"

	"github.com/lumipallolabs/anticipate/internal/model"
)

// Phase represents where a wait is in its lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingCreation
	PhaseAwaitingModification
	PhaseResolved
	PhaseFailed
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingCreation:
		return "Awaiting creation"
	case PhaseAwaitingModification:
		return "Awaiting modification"
	case PhaseResolved:
		return "Resolved"
	case PhaseFailed:
		return "Failed"
	default:
		return ""
	}
}

// IsWaiting returns true while polling is in progress
func (p Phase) IsWaiting() bool {
	return p == PhaseAwaitingCreation || p == PhaseAwaitingModification
}

// phaseFor returns the waiting phase for a freshly probed target
func phaseFor(target model.Target) Phase {
	if target.Exists() {
		return PhaseAwaitingModification
	}
	return PhaseAwaitingCreation
}

// WaitState holds the current wait state (read-only view)
type WaitState struct {
	Phase     Phase
	Target    model.Target
	Entries   int
	StartTime time.Time
	Result    model.Result
	Err       error
}

// Elapsed returns time since the wait started
func (s WaitState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(100 * time.Millisecond)
}
