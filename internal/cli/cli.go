// Package cli implements the anticipate command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/anticipate/internal/logging"
	"github.com/lumipallolabs/anticipate/internal/output"
	"github.com/lumipallolabs/anticipate/internal/timeout"
	"github.com/lumipallolabs/anticipate/internal/ui"
	"github.com/lumipallolabs/anticipate/internal/watcher"
)

// Execute runs the command with args and returns the process exit code.
//
// All user-facing errors are reported here, once.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		logging.Debug.Debug("exiting with error", "err", err)
	}
	return report(err, stderr)
}

// report writes err to stderr and maps it to an exit code.
func report(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var usage *UsageError
	var vanished *watcher.PathVanishedError

	var msg string
	switch {
	case errors.As(err, &usage):
		fmt.Fprintln(stderr, paint(stderr, ui.ErrorStyle, fmt.Sprintf("Error: %v", usage.Err)))
		fmt.Fprintln(stderr, UsageLine)
		return 1

	case errors.Is(err, timeout.ErrTimeoutExceeded):
		msg = "Wait timeout exceeded."

	case errors.Is(err, ErrAborted):
		msg = "Wait aborted."

	case errors.As(err, &vanished):
		msg = fmt.Sprintf("Target '%s' vanished while awaiting modification.", vanished.Path)

	default:
		msg = fmt.Sprintf("Error: %v", err)
	}

	fmt.Fprintln(stderr, paint(stderr, ui.ErrorStyle, msg))
	return 1
}

// paint renders s with style when w is a terminal, and leaves it plain
// otherwise.
func paint(w io.Writer, style lipgloss.Style, s string) string {
	if !output.IsTerminal(w) {
		return s
	}
	return style.Render(s)
}
