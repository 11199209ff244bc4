package handlers

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/components"
	"github.com/thenoetrevino/lanes/internal/tui/state"
	"github.com/thenoetrevino/lanes/internal/types"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// HandleNormalMode dispatches key events in NormalMode to specific handlers.
func HandleNormalMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	m.NotificationState.Clear()
	k := m.Keys

	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.ShowHelp):
		m.UiState.SetMode(state.HelpMode)
	case key.Matches(msg, k.PrevLane):
		handleNavigateLane(m, -1)
	case key.Matches(msg, k.NextLane):
		handleNavigateLane(m, 1)
	case key.Matches(msg, k.PrevTask):
		handleNavigateTask(m, -1)
	case key.Matches(msg, k.NextTask):
		handleNavigateTask(m, 1)
	case key.Matches(msg, k.MoveTaskLeft):
		handleMoveTask(m, -1)
	case key.Matches(msg, k.MoveTaskRight):
		handleMoveTask(m, 1)
	case key.Matches(msg, k.MoveTaskUp):
		handleReorder(m, -1)
	case key.Matches(msg, k.MoveTaskDown):
		handleReorder(m, 1)
	case key.Matches(msg, k.ToggleDone):
		handleMutation(m, m.Service.ToggleCompletion)
	case key.Matches(msg, k.ClaimTask):
		handleMutation(m, m.Service.Claim)
	case key.Matches(msg, k.UnclaimTask):
		handleMutation(m, m.Service.Unclaim)
	case key.Matches(msg, k.DeleteTask):
		handleDeleteTask(m)
	case key.Matches(msg, k.ViewTask):
		handleViewTask(m)
	case key.Matches(msg, k.AddTask):
		return handleAddTask(m)
	case key.Matches(msg, k.Refresh):
		return tui.RefreshCmd(m)
	}
	return nil
}

// handleNavigateLane moves the selection to a neighbouring lane.
func handleNavigateLane(m *tui.Model, delta int) {
	next := m.UiState.SelectedLane() + delta
	if next < 0 || next >= len(models.AllLanes) {
		return
	}
	m.UiState.SetSelectedLane(next)
	m.UiState.SetSelectedTask(0)
	ensureVisible(m)
}

// handleNavigateTask moves the selection within the lane.
func handleNavigateTask(m *tui.Model, delta int) {
	next := m.UiState.SelectedTask() + delta
	if next < 0 || next >= len(m.CurrentTasks()) {
		return
	}
	m.UiState.SetSelectedTask(next)
	ensureVisible(m)
}

// handleMoveTask moves the selected task to a neighbouring lane. The
// selection follows the task.
func handleMoveTask(m *tui.Model, delta int) {
	t := m.CurrentTask()
	if t == nil {
		return
	}
	target := m.UiState.SelectedLane() + delta
	if target < 0 || target >= len(models.AllLanes) {
		m.NotificationState.Add(state.LevelInfo, "No lane on that side")
		return
	}
	if _, err := m.Service.MoveTask(m.Ctx, t.ID, models.AllLanes[target]); err != nil {
		m.NotificationState.Add(state.LevelError, describe(err))
		return
	}
	m.Refresh()
	m.FollowTask(t.ID)
	ensureVisible(m)
}

// handleReorder swaps the selected task with its neighbour. The order is
// only kept for this session.
func handleReorder(m *tui.Model, delta int) {
	t := m.CurrentTask()
	if t == nil {
		return
	}
	if err := m.Service.Reorder(t.ID, m.UiState.SelectedTask()+delta); err != nil {
		m.NotificationState.Add(state.LevelError, describe(err))
		return
	}
	m.Refresh()
	m.FollowTask(t.ID)
	ensureVisible(m)
}

// handleMutation applies a claim, unclaim or completion to the selected task.
// The board changes right away; failures to save arrive later as FailureMsg.
func handleMutation(m *tui.Model, op func(context.Context, types.TaskID) (*taskboard.Pending, error)) {
	t := m.CurrentTask()
	if t == nil {
		return
	}
	if _, err := op(m.Ctx, t.ID); err != nil {
		m.NotificationState.Add(state.LevelError, describe(err))
		return
	}
	m.Refresh()
	m.FollowTask(t.ID)
	ensureVisible(m)
}

// handleDeleteTask asks for confirmation before deleting.
func handleDeleteTask(m *tui.Model) {
	t := m.CurrentTask()
	if t == nil {
		return
	}
	m.DeleteTarget = t
	m.UiState.SetMode(state.DeleteConfirmMode)
}

// handleViewTask opens the selected task in the detail view.
func handleViewTask(m *tui.Model) {
	t := m.CurrentTask()
	if t == nil {
		return
	}
	width := detailWidth(m)
	m.Detail.SetWidth(width)
	m.Detail.SetHeight(max(m.UiState.Height()*3/4-4, 5))
	m.Detail.SetContent(components.RenderTaskDetail(t, m.Viewer().UserID, width))
	m.Detail.GotoTop()
	m.UiState.SetMode(state.DetailMode)
}

// handleAddTask opens the title prompt.
func handleAddTask(m *tui.Model) tea.Cmd {
	m.TitleInput.Reset()
	m.UiState.SetMode(state.AddTaskMode)
	return m.TitleInput.Focus()
}

// ensureVisible scrolls the selected lane to the selected task
func ensureVisible(m *tui.Model) {
	m.UiState.EnsureTaskVisible(components.MaxVisibleTasks(m.UiState.ContentHeight()))
}

// detailWidth is the wrap width of the detail view
func detailWidth(m *tui.Model) int {
	return max(min(m.UiState.Width()*3/4, 100)-6, 30)
}
