package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
)

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [board]",
		Short: "Show your lanes of a board",
		Long: `Show a board split into your three lanes: open work in the backlog,
the tasks you are assigned to, and completed tasks.

Examples:
  lanes board show team
  lanes board show team --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runShow)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	b, err := cli.ResolveBoard(ctx, args.CLI.App.Repo(), cli.BoardRef(args.Arg(0)))
	if err != nil {
		return nil, err
	}

	s, err := args.CLI.LoadBoard(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	return cli.NewLanesView(b, s.Viewer().UserID, s.Lanes()), nil
}
