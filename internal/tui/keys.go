package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/lanes/internal/config"
)

// KeyMap holds the board's bindings, built from the configured key mappings.
// It implements help.KeyMap.
type KeyMap struct {
	PrevLane      key.Binding
	NextLane      key.Binding
	PrevTask      key.Binding
	NextTask      key.Binding
	MoveTaskLeft  key.Binding
	MoveTaskRight key.Binding
	MoveTaskUp    key.Binding
	MoveTaskDown  key.Binding
	ToggleDone    key.Binding
	ClaimTask     key.Binding
	UnclaimTask   key.Binding
	AddTask       key.Binding
	DeleteTask    key.Binding
	ViewTask      key.Binding
	Refresh       key.Binding
	ShowHelp      key.Binding
	Quit          key.Binding
}

// NewKeyMap builds bindings from the configured keys. Arrow keys always
// navigate in addition to the configured ones.
func NewKeyMap(km config.KeyMappings) KeyMap {
	bind := func(help string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
	}
	return KeyMap{
		PrevLane:      bind("prev lane", km.PrevLane, "left"),
		NextLane:      bind("next lane", km.NextLane, "right"),
		PrevTask:      bind("up", km.PrevTask, "up"),
		NextTask:      bind("down", km.NextTask, "down"),
		MoveTaskLeft:  bind("move left", km.MoveTaskLeft),
		MoveTaskRight: bind("move right", km.MoveTaskRight),
		MoveTaskUp:    bind("reorder up", km.MoveTaskUp),
		MoveTaskDown:  bind("reorder down", km.MoveTaskDown),
		ToggleDone:    bind("done/reopen", km.ToggleDone),
		ClaimTask:     bind("claim", km.ClaimTask),
		UnclaimTask:   bind("unclaim", km.UnclaimTask),
		AddTask:       bind("add task", km.AddTask),
		DeleteTask:    bind("delete", km.DeleteTask),
		ViewTask:      bind("details", km.ViewTask),
		Refresh:       bind("refresh", km.Refresh),
		ShowHelp:      bind("help", km.ShowHelp),
		Quit:          bind("quit", km.Quit, "ctrl+c"),
	}
}

// ShortHelp is shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ClaimTask, k.ToggleDone, k.AddTask, k.ShowHelp, k.Quit}
}

// FullHelp is shown in the help dialog, one column per group
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevLane, k.NextLane, k.PrevTask, k.NextTask, k.ViewTask},
		{k.MoveTaskLeft, k.MoveTaskRight, k.MoveTaskUp, k.MoveTaskDown},
		{k.ClaimTask, k.UnclaimTask, k.ToggleDone, k.AddTask, k.DeleteTask},
		{k.Refresh, k.ShowHelp, k.Quit},
	}
}
