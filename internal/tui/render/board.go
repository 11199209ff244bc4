package render

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/components"
)

// ViewBoard renders the header, the three lanes side by side and the status bar
func ViewBoard(m *tui.Model) string {
	width := m.UiState.Width()
	viewer := m.Viewer()

	notification := ""
	if n, ok := m.NotificationState.Latest(); ok {
		notification = components.RenderNotification(n)
	}
	header := components.RenderHeader(m.Board.Name, viewer.Name, width, notification)

	laneViews := make([]string, 0, len(models.AllLanes))
	for i, lane := range models.AllLanes {
		selected := i == m.UiState.SelectedLane()
		selectedTask := -1
		if selected {
			selectedTask = m.UiState.SelectedTask()
		}
		laneViews = append(laneViews, components.RenderLane(components.LaneProps{
			Lane:         lane,
			Tasks:        m.Lanes.Get(lane),
			Viewer:       viewer.UserID,
			Selected:     selected,
			SelectedTask: selectedTask,
			ScrollOffset: m.UiState.TaskScrollOffset(lane),
			Width:        m.UiState.LaneWidth(),
			Height:       m.UiState.ContentHeight(),
			IsPending:    m.Service.IsPending,
		}))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, laneViews...)

	status := components.RenderStatusBar(components.StatusBarProps{
		Width:      width,
		Connection: m.ConnectionState.Status(),
		Help:       m.Help.ShortHelpView(m.Keys.ShortHelp()),
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, board, status)
}
