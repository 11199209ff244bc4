package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/tui/theme"
	"github.com/thenoetrevino/lanes/internal/types"
)

// TaskCardHeight is the fixed height of a task card, borders included
const TaskCardHeight = 4

// dueLayout is how due dates are shown on cards
const dueLayout = "Jan 2"

// TaskProps describes one card
type TaskProps struct {
	Task     *models.Task
	Viewer   types.UserID
	Selected bool
	// Pending marks a change that is not yet confirmed by the store
	Pending bool
	Width   int
}

// RenderTask renders a single task as a card
//
//	┌──────────────────────┐
//	│ {Task Title}         │
//	│ @assignee [category] │
//	└──────────────────────┘
func RenderTask(p TaskProps) string {
	inner := max(p.Width-2, 8)
	line := lipgloss.NewStyle().MaxWidth(inner)

	title := " " + p.Task.Title
	if p.Pending {
		title = " ⟳" + title
	}
	titleStyle := lipgloss.NewStyle().Bold(true)
	if p.Task.Status == models.StatusDone {
		titleStyle = DoneStyle
	}

	content := line.Render(titleStyle.Render(title)) + "\n" + line.Render(" "+renderTaskMeta(p.Task, p.Viewer))

	style := TaskStyle.Width(p.Width)
	if p.Selected {
		style = style.BorderForeground(lipgloss.Color(theme.Selected))
	}
	return style.Render(content)
}

// renderTaskMeta renders assignees, the category chip and the due date
func renderTaskMeta(t *models.Task, viewer types.UserID) string {
	parts := []string{RenderAssignees(t.Assignees, viewer)}
	if t.Category != nil && t.Category.Name != "" {
		parts = append(parts, RenderCategoryChip(t.Category))
	}
	if t.DueDate != nil {
		parts = append(parts, SubtleStyle.Render("due "+t.DueDate.Format(dueLayout)))
	}
	return strings.Join(parts, " ")
}

// RenderAssignees lists assignees, the viewer highlighted
func RenderAssignees(assignees []models.Assignee, viewer types.UserID) string {
	if len(assignees) == 0 {
		return SubtleStyle.Italic(true).Render("unassigned")
	}
	names := make([]string, len(assignees))
	for i, a := range assignees {
		if a.UserID == viewer {
			names[i] = MineStyle.Render("@" + a.Name)
		} else {
			names[i] = SubtleStyle.Render("@" + a.Name)
		}
	}
	return strings.Join(names, SubtleStyle.Render(", "))
}

// RenderCategoryChip renders a category in its color
func RenderCategoryChip(c *models.Category) string {
	color := c.Color
	if color == "" {
		color = theme.Subtle
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render("[" + c.Name + "]")
}
