package use

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
)

// BoardCmd returns the use board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board [board]",
		Short: "Set board context for current shell session",
		Long: `Set the current board using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(lanes use board team)      # Use the board named team
  eval $(lanes use board --clear)   # Clear board context
  lanes use board --show            # Show current board

The ` + cli.BoardEnvVar + ` environment variable is set in your current shell
session only. A board passed to other commands takes precedence over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseBoard,
	}

	cmd.Flags().Bool("clear", false, "Clear the current board context")
	cmd.Flags().Bool("show", false, "Show the current board context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	stderr := cmd.ErrOrStderr()

	if showFlag {
		return showCurrentBoard(ctx)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(stderr, "Would clear %s\n", cli.BoardEnvVar)
			return nil
		}
		fmt.Println("unset " + cli.BoardEnvVar)
		fmt.Fprintln(stderr, "Cleared board context")
		return nil
	}

	if len(args) == 0 {
		return cli.WithExitCode(errors.New("board required\nUsage: eval $(lanes use board <board>)"), cli.ExitUsage)
	}

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("error closing CLI", "error", err)
		}
	}()

	b, err := cli.ResolveBoard(ctx, c.App.Repo(), args[0])
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintf(stderr, "Would set %s=%s (%s)\n", cli.BoardEnvVar, b.ID, b.Name)
		return nil
	}

	// stdout is meant for eval
	fmt.Printf("export %s=%s\n", cli.BoardEnvVar, b.ID)
	fmt.Fprintf(stderr, "Now using board %s: %s\n", b.ID, b.Name)
	return nil
}

func showCurrentBoard(ctx context.Context) error {
	current := os.Getenv(cli.BoardEnvVar)
	if current == "" {
		fmt.Println("No board context set")
		fmt.Println("Use 'eval $(lanes use board <board>)' to set one")
		return nil
	}

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("initialization error: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			slog.Error("error closing CLI", "error", err)
		}
	}()

	b, err := cli.ResolveBoard(ctx, c.App.Repo(), current)
	if err != nil {
		fmt.Printf("Current board: %s (board not found)\n", current)
		return nil
	}

	fmt.Printf("Current board: %s (%s)\n", b.ID, b.Name)
	return nil
}
