package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/anticipate/internal/core"
	"github.com/lumipallolabs/anticipate/internal/logging"
)

// eventMsg carries one controller event into the update loop
type eventMsg struct {
	event core.Event
}

// eventsClosedMsg is sent when the controller closed its event channel
type eventsClosedMsg struct{}

// spinnerTickMsg triggers spinner animation
type spinnerTickMsg struct{}

// Spinner frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Timing constants
const (
	spinnerTickInterval = 80 * time.Millisecond
	dotAnimationSpeed   = 400 // milliseconds per frame
)

// App is the progress view shown while a wait is running
type App struct {
	keys   KeyMap
	events <-chan core.Event
	state  core.WaitState
	now    func() time.Time

	// Outcome
	final   core.Event
	aborted bool

	spinnerFrame int
	width        int
}

// NewApp creates a progress view for a wait that already started.
func NewApp(started core.WaitStartedEvent, events <-chan core.Event) App {
	return App{
		keys:   DefaultKeyMap(),
		events: events,
		now:    time.Now,
		state: core.WaitState{
			Phase:     started.Phase,
			Target:    started.Target,
			Entries:   started.Entries,
			StartTime: time.Now(),
		},
	}
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return tea.Batch(a.listenForEvents(), tickSpinner())
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Abort) {
			logging.Debug.Debug("[UI] wait aborted by user", "key", msg.String())
			a.aborted = true
			return a, tea.Quit
		}
		return a, nil

	case eventMsg:
		switch ev := msg.event.(type) {
		case core.ResolvedEvent:
			a.state.Phase = core.PhaseResolved
			a.state.Result = ev.Result
			a.final = ev
			return a, tea.Quit
		case core.ErrorEvent:
			a.state.Phase = core.PhaseFailed
			a.state.Err = ev.Err
			a.final = ev
			return a, tea.Quit
		}
		return a, a.listenForEvents()

	case eventsClosedMsg:
		return a, tea.Quit

	case spinnerTickMsg:
		// Keep ticking while waiting to force UI redraws
		if !a.state.Phase.IsWaiting() || a.aborted {
			return a, nil
		}
		a.spinnerFrame = (a.spinnerFrame + 1) % len(spinnerFrames)
		return a, tickSpinner()
	}

	return a, nil
}

// Final returns the event that ended the wait, or nil if the user
// aborted it first.
func (a App) Final() core.Event {
	return a.final
}

// Aborted reports whether the user aborted the wait.
func (a App) Aborted() bool {
	return a.aborted
}

// listenForEvents returns a command that waits for the next controller event
func (a App) listenForEvents() tea.Cmd {
	events := a.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: event}
	}
}

func tickSpinner() tea.Cmd {
	return tea.Tick(spinnerTickInterval, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// View implements tea.Model
func (a App) View() string {
	// The program's last frame stays on screen; leave nothing behind once
	// the wait is over.
	if !a.state.Phase.IsWaiting() || a.aborted {
		return ""
	}

	spin := ActiveStyle.Render(spinnerFrames[a.spinnerFrame])
	dotCount := (int(a.now().UnixMilli()/dotAnimationSpeed) % 3) + 1
	phase := ActiveStyle.Render(a.state.Phase.String() + strings.Repeat(".", dotCount))

	path := PathStyle.Render(fmt.Sprintf("'%s'", a.state.Target.Path))
	detail := a.state.Target.Kind.String()
	if a.state.Target.IsDir() {
		detail = fmt.Sprintf("%s, %d entries", detail, a.state.Entries)
	}

	elapsed := FormatElapsed(a.now().Sub(a.state.StartTime))
	var hints []string
	for _, b := range a.keys.ShortHelp() {
		hints = append(hints, HelpKey.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	help := HelpStyle.Render(strings.Join(hints, " · "))

	line := fmt.Sprintf("%s %s %s (%s) · %s %s", spin, phase, path, detail, elapsed, help)
	if a.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(a.width).Render(line)
	}
	return line
}
