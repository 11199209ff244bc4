// Package tutorial prints the lanes quick start
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/markdown"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show how boards, lanes and claims work",
		Long: `Print a short guide to the lanes workflow.

Use --raw for plain markdown, e.g. to feed it to another tool.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			raw, _ := cmd.Flags().GetBool("raw")
			outputTutorial(raw)
		},
	}
	cmd.Flags().Bool("raw", false, "Print the markdown source")
	return cmd
}

func outputTutorial(raw bool) {
	if raw {
		fmt.Print(tutorialContent)
		return
	}
	fmt.Println(markdown.Render(tutorialContent, markdown.DefaultWidth))
}
