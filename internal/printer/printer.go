// Package printer writes the short colored status lines of the lanes
// binaries: the top-level error, the daemon banner and watch warnings.
// Color follows the terminal; NO_COLOR disables it.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix
func Success(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	_, _ = green.Fprintln(w, msg)
}

// Info prints an informational message in cyan
func Info(w io.Writer, format string, a ...any) {
	_, _ = cyan.Fprintf(w, format+"\n", a...)
}

// Warning prints a warning in yellow with a "!" prefix
func Warning(w io.Writer, format string, a ...any) {
	_, _ = yellow.Fprintf(w, "! "+format+"\n", a...)
}

// Error prints err as "Error: ..." in red
func Error(w io.Writer, err error) {
	if err == nil {
		return
	}
	_, _ = red.Fprint(w, "Error:")
	_, _ = fmt.Fprintf(w, " %v\n", err)
}
