package scanner

import (
	"github.com/lumipallolabs/anticipate/internal/model"
)

// Scanner defines the read-only filesystem probes the watcher polls with
type Scanner interface {
	// Stat probes a path. A path that does not exist is reported as an
	// absent Target with a nil error; any other probe failure is an error.
	Stat(path string) (model.Target, error)

	// List returns the names of the entries directly inside dir
	List(dir string) ([]string, error)
}
