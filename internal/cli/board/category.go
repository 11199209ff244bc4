package board

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
)

// CategoryCmd returns the board category subcommand
func CategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category <board> <name>",
		Short: "Add a task category to a board",
		Long: `Add a category tasks on the board can be tagged with.

Examples:
  lanes board category team Bug --color="#FF5F5F"
  CATEGORY_ID=$(lanes board category team Docs --quiet)
`,
		Args: cobra.ExactArgs(2),
		RunE: handler.Command(handler.HandlerFunc(runCategory), handler.ValidateColorFlag("color")),
	}
	cmd.Flags().String("color", "", "Category color in hex format #RRGGBB")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runCategory(ctx context.Context, args *handler.Arguments) (any, error) {
	repo := args.CLI.App.Repo()
	b, err := cli.ResolveBoard(ctx, repo, args.Arg(0))
	if err != nil {
		return nil, err
	}
	cat, err := repo.CreateCategory(ctx, b.ID, args.Arg(1), args.GetString("color", ""))
	if err != nil {
		return nil, err
	}
	view := cli.NewCategoryView(cat)
	return created{
		id:      view.ID,
		data:    view,
		message: success("Added category %s to %s", styles.RenderCategoryChip(cat), b.Name),
	}, nil
}
