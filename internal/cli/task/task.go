// Package task holds all cli commands related to tasks
// e.g., lanes task ...
package task

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/handler"
	"github.com/thenoetrevino/lanes/internal/models"
	"github.com/thenoetrevino/lanes/internal/types"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(ClaimCmd())
	cmd.AddCommand(UnclaimCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// result is what task commands print: the task for --json and --quiet, a
// sentence for humans
type result struct {
	task    cli.TaskView
	message string
}

func (r result) GetID() string { return r.task.ID }

func (r result) String() string { return r.message }

func (r result) MarshalJSON() ([]byte, error) { return json.Marshal(r.task) }

// addTaskFlags registers the flags shared by commands that take a task id
func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().String("board", "", "Board id or name; allows a task id prefix (default $LANES_BOARD)")
	handler.AddOutputFlags(cmd)
}

// lookup resolves the task named by the first positional argument
func lookup(ctx context.Context, args *handler.Arguments) (*models.Task, error) {
	return cli.ResolveTask(ctx, args.CLI.App.Repo(), cli.BoardRef(args.GetString("board", "")), args.Arg(0))
}

// viewer is the id the command's lanes are computed for
func viewer(ctx context.Context, args *handler.Arguments) types.UserID {
	v, err := args.CLI.App.Viewer(ctx)
	if err != nil {
		return ""
	}
	return v.UserID
}
