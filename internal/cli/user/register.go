package user

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// RegisterCmd returns the user register subcommand
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [user_id]",
		Short: "Register a user or update their display name",
		Long: `Register a user in the directory so boards show their name instead of
their id. Without a user id the current viewer is registered.

Examples:
  lanes user register --name "Alice Liddell"
  lanes user register bob --name "Bob" --avatar https://example.com/bob.png
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runRegister)),
	}
	cmd.Flags().String("name", "", "Display name (defaults to the user id)")
	cmd.Flags().String("avatar", "", "Avatar URL")
	handler.AddOutputFlags(cmd)
	return cmd
}

func runRegister(ctx context.Context, args *handler.Arguments) (any, error) {
	id := types.UserID(args.Arg(0))
	if id.IsZero() {
		id = args.CLI.App.ViewerID()
	}

	u, err := args.CLI.App.Repo().UpsertUser(ctx, models.User{
		ID:        id,
		Name:      args.GetString("name", ""),
		AvatarURL: args.GetString("avatar", ""),
	})
	if err != nil {
		return nil, err
	}
	return registered{view: cli.NewUserView(u)}, nil
}
