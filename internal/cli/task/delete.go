package task

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/services/taskboard"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task_id>",
		Short: "Delete a task",
		Long:  "Delete a task by id (requires confirmation unless --force, --json or --quiet).",
		Args:  cobra.ExactArgs(1),
		RunE:  handler.SimpleCommand(&deleteHandler{}),
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	addTaskFlags(cmd)

	return cmd
}

// deleteHandler implements handler.Handler for task deletion
type deleteHandler struct{}

// Execute implements the Handler interface
func (h *deleteHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	t, err := lookup(ctx, args)
	if err != nil {
		return nil, err
	}
	view := cli.NewTaskView(t, viewer(ctx, args))

	// Ask for confirmation unless forced or driven by a script
	f := args.Formatter
	if !args.GetBool("force") && !f.JSON && !f.Quiet {
		cmd := args.GetCmd()
		fmt.Fprintf(cmd.OutOrStdout(), "Delete task %s '%s'? (y/N): ", cli.ShortID(t.ID), t.Title)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil, nil
		}
	}

	if _, err := args.CLI.Mutate(ctx, t, func(s *taskboard.Service) (*taskboard.Pending, error) {
		return s.DeleteTask(ctx, t.ID)
	}); err != nil {
		return nil, err
	}

	return result{task: view, message: fmt.Sprintf("✓ Deleted %s", view)}, nil
}
