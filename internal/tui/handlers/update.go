package handlers

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func Update(m *tui.Model, msg tea.Msg) tea.Cmd {
	// Check if context is cancelled (graceful shutdown)
	select {
	case <-m.Ctx.Done():
		return tea.Quit
	default:
	}

	switch msg := msg.(type) {
	case tui.LanesMsg:
		m.SetLanes(msg.Lanes)
		return tui.ListenForLanes(m.Hooks())

	case tui.FailureMsg:
		slog.Debug("board change failed", "board_id", m.Board.ID, "error", msg.Err)
		m.NotificationState.Add(state.LevelWarning, describe(msg.Err))
		return tui.ListenForFailures(m.Hooks())

	case tui.RefreshedMsg:
		if msg.Err != nil {
			m.ConnectionState.MarkOutOfSync()
			m.NotificationState.Add(state.LevelError, "Refresh failed: "+msg.Err.Error())
			return nil
		}
		m.ConnectionState.Recover()
		m.Refresh()
		return nil

	case tui.PollMsg:
		return tea.Batch(tui.RefreshCmd(m), tui.SchedulePoll())

	case tea.KeyPressMsg:
		return HandleKeyMsg(m, msg)

	case tea.WindowSizeMsg:
		return HandleWindowResize(m, msg)
	}

	// The title input blinks its cursor with its own messages
	if m.UiState.Mode() == state.AddTaskMode {
		var cmd tea.Cmd
		m.TitleInput, cmd = m.TitleInput.Update(msg)
		return cmd
	}
	return nil
}

// HandleKeyMsg dispatches key messages to the appropriate mode handler.
func HandleKeyMsg(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch m.UiState.Mode() {
	case state.NormalMode:
		return HandleNormalMode(m, msg)
	case state.HelpMode:
		return HandleHelpMode(m, msg)
	case state.DeleteConfirmMode:
		return HandleDeleteConfirm(m, msg)
	case state.DetailMode:
		return HandleDetailMode(m, msg)
	case state.AddTaskMode:
		return HandleAddTaskMode(m, msg)
	}
	return nil
}

// HandleWindowResize handles terminal resize events.
func HandleWindowResize(m *tui.Model, msg tea.WindowSizeMsg) tea.Cmd {
	m.UiState.SetWidth(msg.Width)
	m.UiState.SetHeight(msg.Height)
	return nil
}
