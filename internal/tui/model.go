// Package tui holds the model of the interactive board. Key handling lives in
// tui/handlers, drawing in tui/render, and tui/core ties them to Bubble Tea.
package tui

import (
	"context"
	"slices"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
	"github.com/thenoetrevino/lanes/internal/tui/state"
	"github.com/thenoetrevino/lanes/internal/types"
)

// Model represents the application state for the TUI
type Model struct {
	Ctx     context.Context
	Service *taskboard.Service
	Board   *models.Board
	Config  *config.Config
	Keys    KeyMap

	// Lanes is the last snapshot handed out by the service
	Lanes board.Lanes

	UiState           *state.UIState
	NotificationState *state.NotificationState
	ConnectionState   *state.ConnectionState

	TitleInput textinput.Model
	Detail     viewport.Model
	Help       help.Model

	// DeleteTarget is the task awaiting delete confirmation
	DeleteTarget *models.Task

	hooks *Hooks
}

// InitialModel creates the model for a board service. The service should be
// built with hooks.Options() so its changes reach the program.
func InitialModel(ctx context.Context, svc *taskboard.Service, b *models.Board, cfg *config.Config, hooks *Hooks, live bool) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = models.MaxTitleLength

	return Model{
		Ctx:               ctx,
		Service:           svc,
		Board:             b,
		Config:            cfg,
		Keys:              NewKeyMap(cfg.KeyMappings),
		Lanes:             svc.Lanes(),
		UiState:           state.NewUIState(),
		NotificationState: state.NewNotificationState(),
		ConnectionState:   state.NewConnectionState(live),
		TitleInput:        ti,
		Detail:            viewport.New(),
		Help:              help.New(),
		hooks:             hooks,
	}
}

// Init starts listening to the service and, without a change feed, polling
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForLanes(m.hooks), ListenForFailures(m.hooks)}
	if m.ConnectionState.Status() != state.Live {
		cmds = append(cmds, SchedulePoll())
	}
	return tea.Batch(cmds...)
}

// Hooks returns the channels the service reports through
func (m *Model) Hooks() *Hooks {
	return m.hooks
}

// Viewer is the user the board is partitioned for
func (m *Model) Viewer() models.Assignee {
	return m.Service.Viewer()
}

// CurrentTasks returns the tasks of the selected lane
func (m *Model) CurrentTasks() []*models.Task {
	return m.Lanes.Get(m.UiState.Lane())
}

// CurrentTask returns the selected task, or nil in an empty lane
func (m *Model) CurrentTask() *models.Task {
	tasks := m.CurrentTasks()
	i := m.UiState.SelectedTask()
	if i < 0 || i >= len(tasks) {
		return nil
	}
	return tasks[i]
}

// SetLanes replaces the snapshot and keeps the selection on the same task
// when it still exists
func (m *Model) SetLanes(l board.Lanes) {
	var selected types.TaskID
	if t := m.CurrentTask(); t != nil {
		selected = t.ID
	}
	m.Lanes = l

	if selected != "" {
		tasks := m.CurrentTasks()
		if i := slices.IndexFunc(tasks, func(t *models.Task) bool { return t.ID == selected }); i >= 0 {
			m.UiState.SetSelectedTask(i)
		}
	}
	m.UiState.ClampSelection(len(m.CurrentTasks()))
}

// FollowTask moves the selection to wherever the task now is
func (m *Model) FollowTask(id types.TaskID) {
	lane, i, ok := m.Lanes.Find(id)
	if !ok {
		m.UiState.ClampSelection(len(m.CurrentTasks()))
		return
	}
	m.UiState.SetSelectedLane(slices.Index(models.AllLanes, lane))
	m.UiState.SetSelectedTask(i)
}

// Refresh pulls the service's current lanes into the model
func (m *Model) Refresh() {
	m.SetLanes(m.Service.Lanes())
}
