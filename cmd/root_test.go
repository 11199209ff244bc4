package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := NewRootCmd()

	want := []string{"board", "task", "user", "use", "tutorial"}
	for _, name := range want {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %q", name)
	}
}

func TestRootCmd_ResolvesNestedCommands(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"board", "tui"},
		{"board", "watch"},
		{"task", "claim"},
		{"use", "board"},
		{"user", "register"},
	} {
		c, _, err := root.Find(path)
		if assert.NoError(t, err, "%v", path) {
			assert.Equal(t, path[len(path)-1], c.Name())
		}
	}
}
