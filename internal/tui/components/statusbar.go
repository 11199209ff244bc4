package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/tui/state"
	"github.com/thenoetrevino/lanes/internal/tui/theme"
)

// StatusBarProps describes the bottom line of the board
type StatusBarProps struct {
	Width      int
	Connection state.ConnectionStatus
	// Help is the rendered short help, shown on the right
	Help string
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: sync status
// Right side: key hints
func RenderStatusBar(props StatusBarProps) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	dot := "○"
	switch props.Connection {
	case state.Live:
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Mine)).Render("●")
	case state.OutOfSync:
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)).Render("●")
	}
	leftRendered := dot + style.Render(" "+props.Connection.String())
	rightRendered := props.Help

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered)
}
