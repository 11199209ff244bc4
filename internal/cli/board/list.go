package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		Args:  cobra.NoArgs,
		RunE:  handler.SimpleCommand(handler.HandlerFunc(runList)),
	}
	handler.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	boards, err := args.CLI.App.Repo().ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	list := make(boardList, 0, len(boards))
	for _, b := range boards {
		list = append(list, cli.NewBoardView(b))
	}
	return list, nil
}
