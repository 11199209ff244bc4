package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <task_id> <lane>",
		Short: "Move a task into a lane",
		Long: `Move a task into one of your lanes: backlog, my-tasks or done.

Moving a task into my-tasks starts it and adds you to its assignees. Moving it
into done completes it and always adds you to its assignees. Moving it back
to the backlog keeps its assignees. Completed work can only be moved out of
done by its assignees.

Examples:
  # Start working on a task
  lanes task move 7f1c2a9e-0d4b-4c55-9a1e-3b2f6d8e0c11 my-tasks

  # Short ids work when the board is given
  lanes task move 7f1c2a9e done --board=team

  # JSON output for agents
  lanes task move 7f1c2a9e backlog --board=team --json
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.SimpleCommand(&transitionHandler{
			op: func(ctx context.Context, s *taskboard.Service, t *models.Task, args *handler.Arguments) (*taskboard.Pending, error) {
				lane, err := cli.ParseLane(args.Arg(1))
				if err != nil {
					return nil, err
				}
				return s.MoveTask(ctx, t.ID, lane)
			},
			describe: func(view cli.TaskView) string {
				return fmt.Sprintf("✓ Moved %s to %s", view, view.Lane)
			},
		}),
	}
	addTaskFlags(cmd)
	return cmd
}

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task_id>",
		Short: "Toggle a task's completion",
		Long: `Complete an open task, or reopen a completed one.

Completing a task adds you to its assignees. Reopening a task puts it back in
your lane. Anyone can toggle an unclaimed task; a claimed task only by its
assignees.

Examples:
  # Complete a task
  lanes task done 7f1c2a9e --board=team

  # Quiet mode for bash capture
  lanes task done 7f1c2a9e --board=team --quiet
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(&transitionHandler{
			op: func(ctx context.Context, s *taskboard.Service, t *models.Task, _ *handler.Arguments) (*taskboard.Pending, error) {
				return s.ToggleCompletion(ctx, t.ID)
			},
			describe: func(view cli.TaskView) string {
				if view.Status == string(models.StatusDone) {
					return fmt.Sprintf("✓ Completed %s", view)
				}
				return fmt.Sprintf("✓ Reopened %s", view)
			},
		}),
	}
	addTaskFlags(cmd)
	return cmd
}

// ClaimCmd returns the task claim subcommand
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim <task_id>",
		Short: "Add yourself to a task's assignees",
		Long: `Join a task's assignees without changing its status. A claimed backlog
task stays in the backlog until it is moved.

Examples:
  lanes task claim 7f1c2a9e --board=team
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(&transitionHandler{
			op: func(ctx context.Context, s *taskboard.Service, t *models.Task, _ *handler.Arguments) (*taskboard.Pending, error) {
				return s.Claim(ctx, t.ID)
			},
			describe: func(view cli.TaskView) string {
				return fmt.Sprintf("✓ Claimed %s", view)
			},
		}),
	}
	addTaskFlags(cmd)
	return cmd
}

// UnclaimCmd returns the task unclaim subcommand
func UnclaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unclaim <task_id>",
		Short: "Remove yourself from a task's assignees",
		Long: `Leave a task. When you were its only assignee the task returns to the
backlog, even if it was completed.

Examples:
  lanes task unclaim 7f1c2a9e --board=team
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(&transitionHandler{
			op: func(ctx context.Context, s *taskboard.Service, t *models.Task, _ *handler.Arguments) (*taskboard.Pending, error) {
				return s.Unclaim(ctx, t.ID)
			},
			describe: func(view cli.TaskView) string {
				return fmt.Sprintf("✓ Released %s", view)
			},
		}),
	}
	addTaskFlags(cmd)
	return cmd
}

// transitionHandler runs one lane change through the board service and
// reports the task as it ends up
type transitionHandler struct {
	op       func(ctx context.Context, s *taskboard.Service, t *models.Task, args *handler.Arguments) (*taskboard.Pending, error)
	describe func(view cli.TaskView) string
}

// Execute implements the Handler interface
func (h *transitionHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	t, err := lookup(ctx, args)
	if err != nil {
		return nil, err
	}

	after, err := args.CLI.Mutate(ctx, t, func(s *taskboard.Service) (*taskboard.Pending, error) {
		return h.op(ctx, s, t, args)
	})
	if err != nil {
		return nil, err
	}
	if after == nil {
		return nil, fmt.Errorf("%w: %s was removed", models.ErrTaskNotFound, t.ID)
	}

	view := cli.NewTaskView(after, viewer(ctx, args))
	return result{task: view, message: h.describe(view)}, nil
}
