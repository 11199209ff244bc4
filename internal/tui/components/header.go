package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/tui/state"
)

// RenderHeader renders the board name, the viewer and the latest notification
// right aligned on one line
func RenderHeader(boardName, viewerName string, width int, notification string) string {
	left := TitleStyle.Render(boardName) + SubtleStyle.Render("  as @"+viewerName)
	gapWidth := max(width-lipgloss.Width(left)-lipgloss.Width(notification), 1)
	return left + strings.Repeat(" ", gapWidth) + notification
}

// RenderNotification renders a notification as an inline banner
func RenderNotification(n state.Notification) string {
	switch n.Level {
	case state.LevelError:
		return ErrorBannerStyle.Render("✗ " + n.Message)
	case state.LevelWarning:
		return WarningBannerStyle.Render("! " + n.Message)
	}
	return InfoBannerStyle.Render("• " + n.Message)
}
