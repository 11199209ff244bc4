package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task_id>",
		Short: "Edit a task's details",
		Long: `Edit a task's title, description, due date or category.
Status is changed with move, done, claim and unclaim.

Examples:
  # Rename a task
  lanes task update 7f1c2a9e --board=team --title="Fix login redirect loop"

  # Clear the due date and category
  lanes task update 7f1c2a9e --board=team --due=none --category=none

  # Read the description from a file
  lanes task update 7f1c2a9e --board=team --description=- < notes.md
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(&updateHandler{}),
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description in markdown (use - for stdin)")
	cmd.Flags().String("category", "", "Category id or name, or none")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD), or none")
	addTaskFlags(cmd)

	return cmd
}

// updateHandler implements handler.Handler for task edits
type updateHandler struct{}

// Execute implements the Handler interface
func (h *updateHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	t, err := lookup(ctx, args)
	if err != nil {
		return nil, err
	}

	fields, err := parseFields(ctx, args, t)
	if err != nil {
		return nil, err
	}
	if fields.IsEmpty() {
		return nil, cli.WithExitCode(
			fmt.Errorf("%w: nothing to update, pass --title, --description, --due or --category", models.ErrValidation),
			cli.ExitUsage)
	}

	after, err := args.CLI.Mutate(ctx, t, func(s *taskboard.Service) (*taskboard.Pending, error) {
		return s.UpdateTask(ctx, t.ID, fields)
	})
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, fmt.Errorf("%w: %s was removed", models.ErrTaskNotFound, t.ID)
	}

	view := cli.NewTaskView(after, viewer(ctx, args))
	return result{task: view, message: fmt.Sprintf("✓ Updated %s", view)}, nil
}

// parseFields builds the partial update from the flags that were given
func parseFields(ctx context.Context, args *handler.Arguments, t *models.Task) (models.TaskFields, error) {
	var fields models.TaskFields

	if args.IsSet("title") {
		title := args.GetString("title", "")
		fields.Title = &title
	}
	if args.IsSet("description") {
		desc, err := readDescription(args)
		if err != nil {
			return fields, err
		}
		fields.Description = &desc
	}
	if args.IsSet("due") {
		due, err := cli.ParseDueDate(args.GetString("due", ""))
		if err != nil {
			return fields, err
		}
		fields.DueDate = models.SetTime(due)
	}
	if args.IsSet("category") {
		ref := strings.TrimSpace(args.GetString("category", ""))
		if ref == "" || strings.EqualFold(ref, "none") {
			fields.Category = &models.Category{}
		} else {
			cat, err := cli.ResolveCategory(ctx, args.CLI.App.Repo(), t.BoardID, ref)
			if err != nil {
				return fields, err
			}
			fields.Category = cat
		}
	}
	return fields, nil
}
