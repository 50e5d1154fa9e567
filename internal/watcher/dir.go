package watcher

import (
	"context"
	"path/filepath"

	"github.com/lumipallolabs/anticipate/internal/model"
	"golang.org/x/sync/errgroup"
)

// awaitDirChanged races the directory's own entry-set comparison against a
// sub-session for every entry in the baseline.
//
// The first to resolve wins. All others are canceled and joined before
// this returns, so no poll loop outlives the wait.
func (s *Session) awaitDirChanged(ctx context.Context) (model.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	grp, grpCtx := errgroup.WithContext(ctx)

	// One slot: only the first resolution is ever consumed.
	won := make(chan model.Result, 1)
	resolve := func(result model.Result) {
		select {
		case won <- result:
			cancel()
		default:
		}
	}

	for _, name := range s.dir.Names() {
		child := filepath.Join(s.target.Path, name)

		grp.Go(func() error {
			result, err := s.awaitEntry(grpCtx, child)
			if err != nil {
				// The directory's own listing notices a vanished entry.
				return nil
			}

			resolve(model.Result{
				Path:      s.target.Path,
				Condition: model.ConditionModified,
				Trigger:   result.Trigger,
			})
			return nil
		})
	}

	grp.Go(func() error {
		result, err := s.poll(grpCtx, s.probeEntries)
		if err != nil {
			return err
		}
		resolve(result)
		return nil
	})

	err := grp.Wait()

	select {
	case result := <-won:
		return result, nil
	default:
	}

	if ctx.Err() != nil && err == nil {
		err = context.Cause(ctx)
	}
	return model.Result{}, err
}

// awaitEntry runs a sub-session for one directory entry.
func (s *Session) awaitEntry(ctx context.Context, path string) (model.Result, error) {
	sub, err := s.w.newSession(path, false)
	if err != nil {
		s.w.logger.Debug("sub-session did not start", "path", path, "err", err)
		return model.Result{}, err
	}

	result, err := sub.Wait(ctx)
	if err != nil && ctx.Err() == nil {
		s.w.logger.Debug("sub-session ended", "path", path, "err", err)
	}
	return result, err
}

// probeEntries is satisfied once an entry is created or deleted.
func (s *Session) probeEntries() (model.PollOutcome, model.Result, error) {
	names, err := s.w.scanner.List(s.target.Path)
	if err != nil {
		return model.OutcomeFailed, model.Result{}, &PathVanishedError{Path: s.target.Path, Err: err}
	}

	diff := s.dir.Compare(names)
	if diff.Empty() {
		return model.OutcomeWaiting, model.Result{}, nil
	}

	s.w.logger.Debug("directory entries changed",
		"path", s.target.Path,
		"created", diff.Created,
		"deleted", diff.Deleted)

	return model.OutcomeSatisfied, model.Result{
		Path:      s.target.Path,
		Condition: model.ConditionModified,
		Trigger:   filepath.Join(s.target.Path, diff.First()),
	}, nil
}
