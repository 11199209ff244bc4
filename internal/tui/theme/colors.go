// Package theme holds the colors the board is drawn with
package theme

import "github.com/thenoetrevino/lanes/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Highlight  string
	LaneBorder string
	Selected   string
	Mine       string
	Done       string
	Subtle     string
	Normal     string
	Error      string
)

func init() {
	Init(config.DefaultTheme())
}

// Init sets the theme colors from the configured theme
func Init(t config.Theme) {
	Highlight = t.Accent
	LaneBorder = t.LaneBorder
	Selected = t.Selected
	Mine = t.Mine
	Done = t.Done
	Subtle = t.Subtle
	Normal = t.Normal
	Error = t.Error
}
