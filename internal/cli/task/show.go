package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
	"github.com/thenoetrevino/lanes/internal/markdown"
	"github.com/thenoetrevino/lanes/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task_id>",
		Short: "Show a task's details",
		Long: `Show a task with its lane, assignees and rendered description.

Examples:
  lanes task show 7f1c2a9e --board=team
  lanes task show 7f1c2a9e-0d4b-4c55-9a1e-3b2f6d8e0c11 --json
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(&showHandler{}),
	}
	addTaskFlags(cmd)
	return cmd
}

// showHandler implements handler.Handler for task details
type showHandler struct{}

// Execute implements the Handler interface
func (h *showHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	t, err := lookup(ctx, args)
	if err != nil {
		return nil, err
	}
	t = models.Normalize(t)

	view := cli.NewTaskView(t, viewer(ctx, args))
	return result{task: view, message: renderCard(t, view)}, nil
}

func renderCard(t *models.Task, view cli.TaskView) string {
	var content strings.Builder

	content.WriteString(styles.TitleStyle.Render(t.Title))
	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(string(t.ID)))
	content.WriteString("\n\n")

	field := func(label, value string) {
		content.WriteString(fmt.Sprintf("%s %s\n", styles.LabelStyle.Render(label), value))
	}
	field("Lane:", styles.ValueStyle.Render(view.Lane))
	field("Status:", styles.ValueStyle.Render(string(t.Status)))
	field("Assignees:", styles.RenderAssignees(t.Assignees))
	if t.Category != nil {
		field("Category:", styles.RenderCategoryChip(t.Category))
	}
	if t.DueDate != nil {
		field("Due:", styles.ValueStyle.Render(t.DueDate.Format(cli.DueDateLayout)))
	}
	if !t.CreatedAt.IsZero() {
		field("Created:", styles.SubtitleStyle.Render(t.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM")))
	}
	if t.CompletedAt != nil {
		field("Completed:", styles.SubtitleStyle.Render(t.CompletedAt.Local().Format("Jan 2, 2006 3:04 PM")))
	}

	if desc := markdown.Render(t.Description, styles.CardWidth-6); desc != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		content.WriteString(desc)
	}

	return styles.RenderCard(strings.TrimRight(content.String(), "\n"))
}
