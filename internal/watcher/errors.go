package watcher

import (
	"errors"
	"fmt"
)

// ErrPathVanished matches any *PathVanishedError via errors.Is.
var ErrPathVanished = errors.New("path vanished")

// ErrSessionUsed is returned if Wait is called twice on a Session.
var ErrSessionUsed = errors.New("watcher: session already waited on")

// PathVanishedError reports that a path being polled for modification
// disappeared or became unreadable.
type PathVanishedError struct {
	Path string
	Err  error
}

func (e *PathVanishedError) Error() string {
	return fmt.Sprintf("%s vanished while awaiting modification: %v", e.Path, e.Err)
}

func (e *PathVanishedError) Unwrap() []error {
	return []error{ErrPathVanished, e.Err}
}
