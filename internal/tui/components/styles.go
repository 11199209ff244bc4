// Package components provides reusable UI components and styles.
// InitStyles re-applies a configured theme; the default theme is loaded at init.
package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	// LaneStyle defines the appearance of the three lanes
	LaneStyle lipgloss.Style

	// TaskStyle defines the appearance of individual tasks as cards
	TaskStyle lipgloss.Style

	// TitleStyle defines the appearance of titles (lane names, board header)
	TitleStyle lipgloss.Style

	// SubtleStyle is used for metadata and hints
	SubtleStyle lipgloss.Style

	// MineStyle highlights the viewer's own name
	MineStyle lipgloss.Style

	// DoneStyle strikes through finished task titles
	DoneStyle lipgloss.Style

	// DeleteConfirmBoxStyle defines the base style for deletion confirmations (red border)
	DeleteConfirmBoxStyle lipgloss.Style

	// HelpBoxStyle defines the base style for help screen
	HelpBoxStyle lipgloss.Style

	// DetailBoxStyle frames the task detail view
	DetailBoxStyle lipgloss.Style

	// CreateInputBoxStyle defines the base style for the new task dialog
	CreateInputBoxStyle lipgloss.Style

	// InfoBannerStyle defines the appearance of info notifications
	InfoBannerStyle lipgloss.Style

	// WarningBannerStyle defines the appearance of warnings
	WarningBannerStyle lipgloss.Style

	// ErrorBannerStyle defines the appearance of error messages
	ErrorBannerStyle lipgloss.Style

	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style
)

func init() {
	InitStyles(config.DefaultTheme())
}

// InitStyles initializes all styles with the given theme
func InitStyles(t config.Theme) {
	theme.Init(t)

	LaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.LaneBorder)).
		PaddingLeft(1).
		PaddingRight(1)

	TaskStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Subtle)).
		Padding(0)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Highlight))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	MineStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Mine))

	DoneStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(lipgloss.Color(theme.Done))

	DeleteConfirmBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Error)).
		Padding(1)

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.LaneBorder)).
		Padding(1, 2)

	DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(1, 2)

	CreateInputBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Mine)).
		Padding(1)

	InfoBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal)).
		Bold(true).
		Padding(0, 1)

	WarningBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Selected)).
		Bold(true).
		Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error)).
		Bold(true).
		Padding(0, 1)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Align(lipgloss.Center)
}
