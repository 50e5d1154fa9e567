// Package watcher waits for a path to be created or modified.
//
// Detection is by polling only: a missing path is probed until it exists,
// an existing file until its mtime differs from the one captured when the
// wait began, and an existing directory until its entry set changes or a
// wait on any of its entries resolves.
package watcher

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lumipallolabs/anticipate/internal/logging"
	"github.com/lumipallolabs/anticipate/internal/model"
	"github.com/lumipallolabs/anticipate/internal/scanner"
	"github.com/lumipallolabs/anticipate/internal/waiting"
)

// Params configures a Watcher. Every field is optional.
type Params struct {
	Logger *log.Logger

	// Scanner probes the filesystem. If unset, a fastwalk Walker is used.
	Scanner scanner.Scanner

	// Pacers paces every poll loop.
	//
	// If unset, loops poll every waiting.DefaultInterval without backoff.
	Pacers waiting.PacerFactory
}

// Watcher starts wait sessions on paths.
type Watcher struct {
	logger  *log.Logger
	scanner scanner.Scanner
	pacers  waiting.PacerFactory
}

// New returns a Watcher, filling unset params with defaults.
func New(params Params) *Watcher {
	if params.Logger == nil {
		params.Logger = logging.Debug
	}
	if params.Scanner == nil {
		params.Scanner = scanner.NewWalker(2)
	}
	if params.Pacers == nil {
		params.Pacers = waiting.NewPacerFactory(
			waiting.DefaultInterval,
			waiting.DefaultInterval,
		)
	}

	return &Watcher{
		logger:  params.Logger,
		scanner: params.Scanner,
		pacers:  params.Pacers,
	}
}

// Await blocks until path is created or, if it already exists, modified.
//
// It returns ctx's cancel cause if ctx is done first, and a
// *PathVanishedError if the path disappears while awaiting modification.
func (w *Watcher) Await(ctx context.Context, path string) (model.Result, error) {
	session, err := w.NewSession(path)
	if err != nil {
		return model.Result{}, err
	}
	return session.Wait(ctx)
}

// NewSession probes path and captures its baseline without waiting.
//
// This lets callers report whether the path exists before blocking.
func (w *Watcher) NewSession(path string) (*Session, error) {
	return w.newSession(path, true)
}
