package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/tui/theme"
	"github.com/thenoetrevino/lanes/internal/types"
)

// laneOverhead is border(2) + header(1) + top indicator(1) + bottom indicator(1)
const laneOverhead = 5

// LaneProps describes one lane
type LaneProps struct {
	Lane         models.Lane
	Tasks        []*models.Task
	Viewer       types.UserID
	Selected     bool
	SelectedTask int // -1 when the lane is not selected
	ScrollOffset int
	Width        int
	Height       int
	IsPending    func(types.TaskID) bool
}

// LaneTitle is the heading of a lane
func LaneTitle(l models.Lane) string {
	switch l {
	case models.LaneMyTasks:
		return "My Tasks"
	case models.LaneDone:
		return "Done"
	}
	return "Backlog"
}

// MaxVisibleTasks is how many cards fit in a lane of the given height
func MaxVisibleTasks(height int) int {
	return max((height-laneOverhead)/TaskCardHeight, 1)
}

// RenderLane renders a lane with its title and tasks
//
// Layout:
//
//	{Lane Name} ({count})
//	▲ (if scrolled down)
//	{Task 1}
//	{Task 2}
//	▼ (if more tasks below)
func RenderLane(p LaneProps) string {
	header := fmt.Sprintf("%s (%d)", LaneTitle(p.Lane), len(p.Tasks))
	content := TitleStyle.Render(header) + "\n"
	cardWidth := max(p.Width-4, 10)

	if len(p.Tasks) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Padding(1, 0)
		content += emptyStyle.Render("No tasks")
	} else {
		maxVisible := MaxVisibleTasks(p.Height)
		offset := max(0, min(p.ScrollOffset, len(p.Tasks)-1))

		// Always reserve space for the top indicator
		if offset > 0 {
			content += IndicatorStyle.Width(cardWidth).Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		end := min(offset+maxVisible, len(p.Tasks))
		var cards []string
		for i, t := range p.Tasks[offset:end] {
			cards = append(cards, RenderTask(TaskProps{
				Task:     t,
				Viewer:   p.Viewer,
				Selected: p.Selected && offset+i == p.SelectedTask,
				Pending:  p.IsPending != nil && p.IsPending(t.ID),
				Width:    cardWidth,
			}))
		}
		content += strings.Join(cards, "\n")

		if end < len(p.Tasks) {
			content += "\n" + IndicatorStyle.Width(cardWidth).Render("▼ more below")
		}
	}

	style := LaneStyle.Width(p.Width)
	if p.Selected {
		style = style.BorderForeground(lipgloss.Color(theme.Selected))
	}
	if p.Height > 0 {
		style = style.Height(p.Height)
	}
	return style.Render(content)
}
