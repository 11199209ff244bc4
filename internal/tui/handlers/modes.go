package handlers

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/state"
)

// ============================================================================
// HELP MODE
// ============================================================================

// HandleHelpMode closes the help overlay on any of its dismiss keys.
func HandleHelpMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "?", "esc", "q", "enter":
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

// ============================================================================
// DELETE CONFIRMATION
// ============================================================================

// HandleDeleteConfirm deletes the task on "y" and cancels on "n" or esc.
func HandleDeleteConfirm(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		target := m.DeleteTarget
		m.DeleteTarget = nil
		m.UiState.SetMode(state.NormalMode)
		if target == nil {
			return nil
		}
		if _, err := m.Service.DeleteTask(m.Ctx, target.ID); err != nil {
			m.NotificationState.Add(state.LevelError, describe(err))
			return nil
		}
		m.NotificationState.Add(state.LevelInfo, "Deleted "+target.Title)
		m.Refresh()
	case "n", "N", "esc":
		m.DeleteTarget = nil
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

// ============================================================================
// DETAIL VIEW
// ============================================================================

// HandleDetailMode scrolls the detail viewport until it is closed.
func HandleDetailMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "enter":
		m.UiState.SetMode(state.NormalMode)
		return nil
	}
	var cmd tea.Cmd
	m.Detail, cmd = m.Detail.Update(msg)
	return cmd
}

// ============================================================================
// ADD TASK
// ============================================================================

// HandleAddTaskMode edits the new task's title. Enter creates the task in
// the backlog, esc cancels.
func HandleAddTaskMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		closeInput(m)
		return nil
	case "enter":
		title := strings.TrimSpace(m.TitleInput.Value())
		if title == "" {
			m.NotificationState.Add(state.LevelWarning, "Title cannot be empty")
			return nil
		}
		closeInput(m)
		t, _, err := m.Service.AddTask(m.Ctx, models.NewTask{Title: title})
		if err != nil {
			m.NotificationState.Add(state.LevelError, describe(err))
			return nil
		}
		m.Refresh()
		m.FollowTask(t.ID)
		ensureVisible(m)
		return nil
	}

	var cmd tea.Cmd
	m.TitleInput, cmd = m.TitleInput.Update(msg)
	return cmd
}

func closeInput(m *tui.Model) {
	m.TitleInput.Blur()
	m.TitleInput.Reset()
	m.UiState.SetMode(state.NormalMode)
}
