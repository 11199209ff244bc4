package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func plain(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestPrinter(t *testing.T) {
	plain(t)

	tests := []struct {
		name  string
		print func(*bytes.Buffer)
		want  string
	}{
		{"success adds check", func(b *bytes.Buffer) { Success(b, "saved %d", 2) }, "✓ saved 2\n"},
		{"success keeps check", func(b *bytes.Buffer) { Success(b, "✓ done") }, "✓ done\n"},
		{"info", func(b *bytes.Buffer) { Info(b, "listening on %s", "/tmp/x.sock") }, "listening on /tmp/x.sock\n"},
		{"warning", func(b *bytes.Buffer) { Warning(b, "sync failed: %v", "boom") }, "! sync failed: boom\n"},
		{"error", func(b *bytes.Buffer) { Error(b, errors.New("no board")) }, "Error: no board\n"},
		{"nil error", func(b *bytes.Buffer) { Error(b, nil) }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
