package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumipallolabs/anticipate/internal/core"
	"github.com/lumipallolabs/anticipate/internal/logging"
	"github.com/lumipallolabs/anticipate/internal/model"
	"github.com/lumipallolabs/anticipate/internal/output"
	"github.com/lumipallolabs/anticipate/internal/timeout"
	"github.com/lumipallolabs/anticipate/internal/ui"
	"github.com/lumipallolabs/anticipate/internal/watcher"
)

// ErrAborted is the cancel cause when the user aborts from the progress view.
var ErrAborted = errors.New("wait aborted")

// runner executes one configured wait.
type runner struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
}

func (r *runner) run(ctx context.Context) error {
	if r.cfg.Debug {
		logging.EnableStderr()
	}
	logging.Debug.Debug("starting",
		"path", r.cfg.Path,
		"timeout", r.cfg.Timeout,
		"interval", r.cfg.Interval,
		"max_interval", r.cfg.MaxInterval)

	// The deadline covers probing the target as well as waiting on it.
	gov := timeout.Arm(ctx, r.cfg.Timeout)

	w := watcher.New(watcher.Params{
		Logger: logging.Debug,
		Pacers: r.cfg.pacers(),
	})
	c := core.NewController(w)

	events, err := c.Start(gov.Context(), r.cfg.Path)
	if err != nil {
		gov.Disarm()
		return err
	}

	started := (<-events).(core.WaitStartedEvent)
	r.verbose(fmt.Sprintf("Target '%s' %s", r.cfg.Path, startedMessage(started)))

	final, err := r.awaitFinal(started, events)
	if err != nil || final == nil {
		// Aborted, or the progress view failed. Either way the wait is
		// canceled and joined before reporting.
		cause := ErrAborted
		if err != nil {
			cause = err
		}
		gov.Abort(cause)
		for range events {
		}
		return gov.Cause()
	}

	state := c.State()
	logging.Debug.Debug("wait ended", "phase", state.Phase, "elapsed", state.Elapsed())

	switch ev := final.(type) {
	case core.ResolvedEvent:
		if !gov.Disarm() {
			// The deadline fired first; the result is discarded.
			return gov.Cause()
		}
		r.verbose(paint(r.stdout, ui.DoneStyle,
			fmt.Sprintf("Target '%s' %s", r.cfg.Path, resolvedMessage(ev.Result))))

		if r.cfg.Print {
			printer := output.NewPrinter(r.stdout, logging.Debug)
			return printer.Print(r.cfg.Path)
		}
		return nil

	case core.ErrorEvent:
		gov.Disarm()
		return ev.Err
	}

	return fmt.Errorf("unexpected event %T", final)
}

// awaitFinal returns the event that ended the wait. It returns a nil
// event if the user aborted from the progress view.
func (r *runner) awaitFinal(started core.WaitStartedEvent, events <-chan core.Event) (core.Event, error) {
	if r.cfg.Progress && output.IsTerminal(r.stderr) {
		return r.runProgress(started, events)
	}

	var final core.Event
	for ev := range events {
		final = ev
	}
	return final, nil
}

func (r *runner) runProgress(started core.WaitStartedEvent, events <-chan core.Event) (core.Event, error) {
	p := tea.NewProgram(
		ui.NewApp(started, events),
		tea.WithOutput(r.stderr),
	)

	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}

	app := m.(ui.App)
	if app.Aborted() {
		return nil, nil
	}
	return app.Final(), nil
}

func (r *runner) verbose(line string) {
	if !r.cfg.Verbose {
		return
	}
	fmt.Fprintln(r.stdout, line)
}

func startedMessage(ev core.WaitStartedEvent) string {
	if ev.Target.Exists() {
		return "exists. Awaiting modification."
	}
	return "does not exist. Awaiting creation."
}

func resolvedMessage(result model.Result) string {
	verb := "was modified."
	if result.Condition == model.ConditionCreated {
		verb = "was created."
	}
	if result.Nested() {
		return fmt.Sprintf("%s (change at '%s')", verb, result.Trigger)
	}
	return verb
}
