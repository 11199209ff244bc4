package task

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/models"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [board]",
		Short: "Add a task to a board's backlog",
		Long: `Add a new, unassigned task to a board. New tasks start in the backlog.

Examples:
  # Simple task (human-readable output)
  lanes task add team --title="Fix login redirect"

  # JSON output for agents
  lanes task add team --title="Fix login redirect" --json

  # Quiet mode for bash capture
  TASK_ID=$(lanes task add team --title="Fix login redirect" --quiet)

  # Board from 'eval $(lanes use board team)'
  lanes task add --title="Fix login redirect"

  # Full example with all options
  lanes task add team \
    --title="Write release notes" \
    --description="Cover the sync changes" \
    --category=docs \
    --due=2026-11-01
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.Command(&addHandler{}, handler.RequireFlags("title")),
	}

	cmd.Flags().String("title", "", "Task title (required)")
	cmd.Flags().String("description", "", "Task description in markdown (use - for stdin)")
	cmd.Flags().String("category", "", "Category id or name")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	handler.AddOutputFlags(cmd)

	return cmd
}

// addHandler implements handler.Handler for task creation
type addHandler struct{}

// Execute implements the Handler interface
func (h *addHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	repo := args.CLI.App.Repo()
	b, err := cli.ResolveBoard(ctx, repo, cli.BoardRef(args.Arg(0)))
	if err != nil {
		return nil, err
	}

	nt := models.NewTask{Title: args.GetString("title", "")}
	if nt.Description, err = readDescription(args); err != nil {
		return nil, err
	}
	if nt.DueDate, err = cli.ParseDueDate(args.GetString("due", "")); err != nil {
		return nil, err
	}
	if ref := args.GetString("category", ""); ref != "" {
		if nt.Category, err = cli.ResolveCategory(ctx, repo, b.ID, ref); err != nil {
			return nil, err
		}
	}

	s, err := args.CLI.LoadBoard(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	created, p, err := s.AddTask(ctx, nt)
	if err := cli.Settle(ctx, p, err); err != nil {
		return nil, err
	}

	view := cli.NewTaskView(created, s.Viewer().UserID)
	return result{
		task:    view,
		message: fmt.Sprintf("✓ Added %s to %s's backlog", view, b.Name),
	}, nil
}

// readDescription returns --description, reading stdin for "-"
func readDescription(args *handler.Arguments) (string, error) {
	desc := args.GetString("description", "")
	if desc != "-" {
		return desc, nil
	}
	data, err := io.ReadAll(args.GetCmd().InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read description from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
