// Package user holds all cli commands related to the user directory
// e.g., lanes user ...
package user

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/cli/styles"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the people tasks can be assigned to",
	}

	cmd.AddCommand(RegisterCmd())
	cmd.AddCommand(ListCmd())

	return cmd
}

type userList []cli.UserView

func (l userList) GetID() string {
	ids := make([]string, len(l))
	for i, u := range l {
		ids[i] = u.ID
	}
	return strings.Join(ids, "\n")
}

func (l userList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]cli.UserView(l))
}

func (l userList) String() string {
	if len(l) == 0 {
		return "No users registered\nUse 'lanes user register --name <name>' to add yourself"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d users:\n\n", len(l))
	for _, u := range l {
		b.WriteString("  " + u.String() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type registered struct {
	view cli.UserView
}

func (r registered) GetID() string                { return r.view.ID }
func (r registered) MarshalJSON() ([]byte, error) { return json.Marshal(r.view) }
func (r registered) String() string {
	return styles.SuccessStyle.Render("✓") + " Registered " + r.view.String()
}
