package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/anticipate/internal/model"
)

// Walker implements Scanner using fastwalk for listings
type Walker struct {
	workers int
}

// NewWalker creates a new filesystem walker
func NewWalker(workers int) *Walker {
	if workers < 1 {
		workers = 2
	}
	return &Walker{workers: workers}
}

// Stat probes path, following symlinks
func (w *Walker) Stat(path string) (model.Target, error) {
	return statPath(path)
}

// List returns the entry names of dir without descending into
// subdirectories
func (w *Walker) List(dir string) ([]string, error) {
	// fastwalk does not follow a symlinked root
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	names := make([]string, 0, 16)

	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // Entry vanished mid-listing
		}

		// Skip the root itself
		if path == root {
			return nil
		}

		mu.Lock()
		names = append(names, d.Name())
		mu.Unlock()

		// One level only; children get their own sessions
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("list %s: %w", dir, walkErr)
	}

	return names, nil
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
