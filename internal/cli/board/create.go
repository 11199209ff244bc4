package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new board",
		Long: `Create a new, empty board.

Examples:
  # Create a board (human-readable output)
  lanes board create "Team"

  # Quiet mode for bash capture
  BOARD_ID=$(lanes board create "Team" --quiet)
`,
		Args: cobra.ExactArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runCreate)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, args *handler.Arguments) (any, error) {
	b, err := args.CLI.App.Repo().CreateBoard(ctx, args.Arg(0))
	if err != nil {
		return nil, err
	}
	view := cli.NewBoardView(b)
	return created{id: view.ID, data: view, message: success("Created board %s", view)}, nil
}
