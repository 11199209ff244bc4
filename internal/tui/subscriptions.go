package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
)

// PollInterval is how often the board refetches when no change feed is
// connected
const PollInterval = 5 * time.Second

// failureBuffer bounds how many unreported failures are kept
const failureBuffer = 16

// LanesMsg carries a new snapshot from the service
type LanesMsg struct {
	Lanes board.Lanes
}

// FailureMsg reports a change that was rolled back or a refetch that failed
type FailureMsg struct {
	Err error
}

// RefreshedMsg is sent when a requested refetch finished
type RefreshedMsg struct {
	Err error
}

// PollMsg asks for a refetch when polling
type PollMsg struct{}

// Hooks connects a board service to the program. The service calls the hooks
// from its own goroutines; the program reads the channels.
type Hooks struct {
	lanes    chan board.Lanes
	failures chan error
}

// NewHooks creates the channels
func NewHooks() *Hooks {
	return &Hooks{
		lanes:    make(chan board.Lanes, 1),
		failures: make(chan error, failureBuffer),
	}
}

// Options returns the service options that feed the channels
func (h *Hooks) Options() []taskboard.Option {
	return []taskboard.Option{
		taskboard.WithLanesHook(h.pushLanes),
		taskboard.WithFailureHook(h.pushFailure),
	}
}

// pushLanes keeps only the newest snapshot; the service serializes calls
func (h *Hooks) pushLanes(l board.Lanes) {
	select {
	case <-h.lanes:
	default:
	}
	h.lanes <- l
}

// pushFailure never blocks the service; failures beyond the buffer are dropped
func (h *Hooks) pushFailure(err error) {
	select {
	case h.failures <- err:
	default:
	}
}

// ListenForLanes waits for the next snapshot
func ListenForLanes(h *Hooks) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		return LanesMsg{Lanes: <-h.lanes}
	}
}

// ListenForFailures waits for the next failure
func ListenForFailures(h *Hooks) tea.Cmd {
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		return FailureMsg{Err: <-h.failures}
	}
}

// SchedulePoll fires a PollMsg after PollInterval
func SchedulePoll() tea.Cmd {
	return tea.Tick(PollInterval, func(time.Time) tea.Msg { return PollMsg{} })
}

// RefreshCmd refetches the board off the update loop
func RefreshCmd(m *Model) tea.Cmd {
	svc, ctx := m.Service, m.Ctx
	return func() tea.Msg {
		return RefreshedMsg{Err: svc.Reconcile(ctx)}
	}
}
