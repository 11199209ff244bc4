package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/state"
)

// View is the main view dispatcher that renders the current state of the application.
// This implements the "View" part of the Model-View-Update pattern.
func View(m *tui.Model) tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	// The board is always the base layer; dialogs float above it
	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(ViewBoard(m)),
	}

	var modal *lipgloss.Layer
	switch m.UiState.Mode() {
	case state.HelpMode:
		modal = RenderHelpLayer(m)
	case state.DeleteConfirmMode:
		modal = RenderDeleteConfirmLayer(m)
	case state.DetailMode:
		modal = RenderDetailLayer(m)
	case state.AddTaskMode:
		modal = RenderAddTaskLayer(m)
	}
	if modal != nil {
		layers = append(layers, modal)
	}

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}
