package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli/board"
	"github.com/thenoetrevino/lanes/internal/cli/task"
	"github.com/thenoetrevino/lanes/internal/cli/tutorial"
	"github.com/thenoetrevino/lanes/internal/cli/use"
	"github.com/thenoetrevino/lanes/internal/cli/user"
)

// NewRootCmd builds the lanes command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lanes",
		Short: "Lanes - a shared task board split into your lanes",
		Long: `Lanes is a multi-user task board. Every board is shown to you as three
lanes: open work, your work and finished work. Move a task into my-tasks to
start it and join its assignees. Claimed tasks can only be finished by their
assignees.

Run 'lanes tutorial' for a short walkthrough.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())

	return rootCmd
}

// Execute runs the command line against ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
