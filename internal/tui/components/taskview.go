package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/board"
	"github.com/thenoetrevino/lanes/internal/markdown"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

const detailTimeLayout = "2006-01-02 15:04"

// RenderTaskDetail renders everything known about a task, the description
// as markdown wrapped to width
func RenderTaskDetail(t *models.Task, viewer types.UserID, width int) string {
	label := SubtleStyle.Width(11)

	row := func(name, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(name), value)
	}

	rows := []string{
		TitleStyle.Render(t.Title),
		SubtleStyle.Render(string(t.ID)),
		"",
		row("Lane", LaneTitle(board.LaneOf(t, viewer))),
		row("Status", string(t.Status)),
		row("Assignees", RenderAssignees(t.Assignees, viewer)),
	}
	if t.Category != nil && t.Category.Name != "" {
		rows = append(rows, row("Category", RenderCategoryChip(t.Category)))
	}
	if t.DueDate != nil {
		rows = append(rows, row("Due", t.DueDate.Format("2006-01-02")))
	}
	rows = append(rows, row("Created", t.CreatedAt.Local().Format(detailTimeLayout)))
	if t.CompletedAt != nil {
		rows = append(rows, row("Completed", t.CompletedAt.Local().Format(detailTimeLayout)))
	}

	desc := markdown.Render(t.Description, width)
	if desc == "" {
		desc = SubtleStyle.Italic(true).Render("No description")
	}
	rows = append(rows, "", desc)

	return strings.Join(rows, "\n")
}
