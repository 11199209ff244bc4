package render

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/tui"
	"github.com/thenoetrevino/lanes/internal/tui/components"
	"github.com/thenoetrevino/lanes/internal/tui/layers"
)

// RenderHelpLayer renders the full key reference as a centered layer
func RenderHelpLayer(m *tui.Model) *lipgloss.Layer {
	content := lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Keys"),
		"",
		m.Help.FullHelpView(m.Keys.FullHelp()),
		"",
		components.SubtleStyle.Render("? or esc to close"),
	)
	box := components.HelpBoxStyle.Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderDeleteConfirmLayer asks before deleting the target task
func RenderDeleteConfirmLayer(m *tui.Model) *lipgloss.Layer {
	if m.DeleteTarget == nil {
		return nil
	}
	width := layers.ModalWidth(m.UiState.Width(), 30, 60)
	content := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Delete %q?", m.DeleteTarget.Title),
		"",
		components.SubtleStyle.Render("y to delete, n or esc to cancel"),
	)
	box := components.DeleteConfirmBoxStyle.Width(width).Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderDetailLayer frames the scrollable task detail
func RenderDetailLayer(m *tui.Model) *lipgloss.Layer {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.Detail.View(),
		components.SubtleStyle.Render("esc to close"),
	)
	box := components.DetailBoxStyle.Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderAddTaskLayer renders the new task prompt
func RenderAddTaskLayer(m *tui.Model) *lipgloss.Layer {
	width := layers.ModalWidth(m.UiState.Width(), 30, 70)
	content := lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("New task"),
		"",
		m.TitleInput.View(),
		"",
		components.SubtleStyle.Render("enter to add to backlog, esc to cancel"),
	)
	box := components.CreateInputBoxStyle.Width(width).Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}
