// Package use holds all cli commands related to setting contextual information
// e.g., lanes use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command sets context that applies to subsequent commands,
so the board does not have to be passed every time.

Examples:
  eval $(lanes use board team)     # Use the board named team
  eval $(lanes use board --clear)  # Clear the board context
  lanes use board --show           # Show the current board`,
	}

	cmd.AddCommand(BoardCmd())

	return cmd
}
