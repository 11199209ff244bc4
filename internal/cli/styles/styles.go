// Package styles holds the lipgloss styles shared by the human-readable
// CLI output
package styles

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Lane:", "Assignees:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description", "My Tasks"

	// Lane styles
	MineStyle lipgloss.Style
	DoneStyle lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

func init() {
	Init(config.DefaultTheme())
}

// Init initializes all CLI styles with the given theme
func Init(theme config.Theme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.LaneBorder)).
		Bold(true).
		MarginTop(1)

	MineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Mine))

	DoneStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Done)).
		Strikethrough(true)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Mine))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Error))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderCategoryChip renders a category as "[name]" with its color
func RenderCategoryChip(cat *models.Category) string {
	if cat == nil {
		return ""
	}
	style := lipgloss.NewStyle().Bold(true)
	if cat.Color != "" {
		style = style.Foreground(lipgloss.Color(cat.Color))
	}
	return style.Render("[" + cat.Name + "]")
}

// RenderAssignees renders assignee names as "@alice, @bob"
func RenderAssignees(assignees []models.Assignee) string {
	if len(assignees) == 0 {
		return SubtitleStyle.Render("unassigned")
	}
	names := make([]string, len(assignees))
	for i, a := range assignees {
		names[i] = "@" + a.Name
	}
	return ValueStyle.Render(strings.Join(names, ", "))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
