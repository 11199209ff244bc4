package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/launcher"
)

// TUICmd returns the board tui subcommand
func TUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [board]",
		Short: "Open the interactive board",
		Long: `Open a board in the terminal with your three lanes side by side.
Press ? inside the board for its key bindings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runTUI)),
	}
	return cmd
}

func runTUI(ctx context.Context, args *handler.Arguments) (any, error) {
	b, err := cli.ResolveBoard(ctx, args.CLI.App.Repo(), cli.BoardRef(args.Arg(0)))
	if err != nil {
		return nil, err
	}
	return nil, launcher.Launch(ctx, args.CLI.App, b)
}
