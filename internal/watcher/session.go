package watcher

import (
	"context"
	"io/fs"
	"sync/atomic"

	"github.com/lumipallolabs/anticipate/internal/model"
)

// Session is one wait on one path.
//
// Its baseline is captured once, when the session is created, and never
// refreshed. A Session resolves at most once.
type Session struct {
	w      *Watcher
	target model.Target
	root   bool // false for sub-sessions on directory entries

	file model.FileBaseline
	dir  model.DirectoryBaseline

	used atomic.Bool
}

func (w *Watcher) newSession(path string, root bool) (*Session, error) {
	target, err := w.scanner.Stat(path)
	if err != nil {
		// Probe failures mean "not there yet".
		w.logger.Debug("stat failed, treating as absent", "path", path, "err", err)
		target = model.Absent(path)
	}

	s := &Session{w: w, target: target, root: root}

	switch {
	case !target.Exists():
		// Nothing to capture.

	case s.descends():
		names, err := w.scanner.List(path)
		if err != nil {
			return nil, &PathVanishedError{Path: path, Err: err}
		}
		s.dir = model.NewDirectoryBaseline(names)
		w.logger.Debug("captured directory baseline", "path", path, "entries", len(names))

	default:
		s.file = model.NewFileBaseline(target)
		w.logger.Debug("captured file baseline", "path", path, "mtime", target.ModTime)
	}

	return s, nil
}

// Target returns the probe taken when the session was created.
func (s *Session) Target() model.Target {
	return s.target
}

// Entries returns the number of directory entries in the baseline.
func (s *Session) Entries() int {
	return s.dir.Len()
}

// Wait blocks until the session's condition is satisfied, the path
// vanishes, or ctx is done.
//
// Absent paths resolve with model.ConditionCreated, existing ones with
// model.ConditionModified.
func (s *Session) Wait(ctx context.Context) (model.Result, error) {
	if !s.used.CompareAndSwap(false, true) {
		return model.Result{}, ErrSessionUsed
	}

	switch {
	case !s.target.Exists():
		s.w.logger.Debug("awaiting creation", "path", s.target.Path)
		return s.poll(ctx, s.probeExists)

	case s.descends():
		s.w.logger.Debug("awaiting directory change", "path", s.target.Path, "entries", s.dir.Len())
		return s.awaitDirChanged(ctx)

	default:
		s.w.logger.Debug("awaiting file change", "path", s.target.Path)
		return s.poll(ctx, s.probeFileChanged)
	}
}

// descends reports whether the session recurses into directory entries.
//
// The watched path itself is always descended if it is a directory, even
// through a symlink; nested symlinked directories are not.
func (s *Session) descends() bool {
	if s.root {
		return s.target.IsDir()
	}
	return s.target.Descendable()
}

// probeFunc is one non-blocking check.
type probeFunc func() (model.PollOutcome, model.Result, error)

// poll runs probe on every pacer tick until it stops waiting.
func (s *Session) poll(ctx context.Context, probe probeFunc) (model.Result, error) {
	pacer := s.w.pacers.New()

	for {
		if err := pacer.Wait(ctx); err != nil {
			return model.Result{}, err
		}

		outcome, result, err := probe()
		switch outcome {
		case model.OutcomeSatisfied:
			s.w.logger.Debug("resolved",
				"path", result.Path,
				"condition", result.Condition,
				"trigger", result.Trigger)
			return result, nil

		case model.OutcomeFailed:
			s.w.logger.Debug("poll failed", "path", s.target.Path, "err", err)
			return model.Result{}, err
		}
	}
}

// probeExists is satisfied by the first successful stat.
// Any probe failure is "not yet".
func (s *Session) probeExists() (model.PollOutcome, model.Result, error) {
	target, err := s.w.scanner.Stat(s.target.Path)
	if err != nil || !target.Exists() {
		return model.OutcomeWaiting, model.Result{}, nil
	}

	return model.OutcomeSatisfied, model.Result{
		Path:      s.target.Path,
		Condition: model.ConditionCreated,
		Trigger:   s.target.Path,
	}, nil
}

// probeFileChanged is satisfied once the mtime differs from the baseline.
func (s *Session) probeFileChanged() (model.PollOutcome, model.Result, error) {
	target, err := s.w.scanner.Stat(s.target.Path)
	if err == nil && !target.Exists() {
		err = fs.ErrNotExist
	}
	if err != nil {
		return model.OutcomeFailed, model.Result{}, &PathVanishedError{Path: s.target.Path, Err: err}
	}

	if !s.file.Changed(target) {
		return model.OutcomeWaiting, model.Result{}, nil
	}

	return model.OutcomeSatisfied, model.Result{
		Path:      s.target.Path,
		Condition: model.ConditionModified,
		Trigger:   s.target.Path,
	}, nil
}
