// Package board holds all cli commands related to boards
// e.g., lanes board ...
package board

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
)

// BoardCmd returns the board parent command
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(WatchCmd())
	cmd.AddCommand(CategoryCmd())
	cmd.AddCommand(TUICmd())

	return cmd
}

// boardList prints one id per line in quiet mode
type boardList []cli.BoardView

func (l boardList) GetID() string {
	ids := make([]string, len(l))
	for i, b := range l {
		ids[i] = b.ID
	}
	return strings.Join(ids, "\n")
}

func (l boardList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]cli.BoardView(l))
}

func (l boardList) String() string {
	if len(l) == 0 {
		return "No boards found\nUse 'lanes board create <name>' to add one"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d boards:\n\n", len(l))
	for _, v := range l {
		b.WriteString("  " + v.String() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// created pairs a created record with the sentence shown to humans
type created struct {
	id      string
	data    any
	message string
}

func (c created) GetID() string                { return c.id }
func (c created) String() string               { return c.message }
func (c created) MarshalJSON() ([]byte, error) { return json.Marshal(c.data) }

func success(format string, a ...any) string {
	return styles.SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, a...)
}
