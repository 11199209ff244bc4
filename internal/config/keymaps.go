package config

// KeyMappings defines all configurable key bindings of the terminal board
type KeyMappings struct {
	// Tasks
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	MoveTaskUp    string `yaml:"move_task_up"`
	MoveTaskDown  string `yaml:"move_task_down"`
	ToggleDone    string `yaml:"toggle_done"`
	ClaimTask     string `yaml:"claim_task"`
	UnclaimTask   string `yaml:"unclaim_task"`
	AddTask       string `yaml:"add_task"`
	DeleteTask    string `yaml:"delete_task"`
	ViewTask      string `yaml:"view_task"`

	// Navigation
	PrevLane string `yaml:"prev_lane"`
	NextLane string `yaml:"next_lane"`
	PrevTask string `yaml:"prev_task"`
	NextTask string `yaml:"next_task"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		// Tasks
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		MoveTaskUp:    "K",
		MoveTaskDown:  "J",
		ToggleDone:    "space",
		ClaimTask:     "c",
		UnclaimTask:   "u",
		AddTask:       "a",
		DeleteTask:    "d",
		ViewTask:      "enter",

		// Navigation
		PrevLane: "h",
		NextLane: "l",
		PrevTask: "k",
		NextTask: "j",

		// Other
		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.MoveTaskLeft, defaults.MoveTaskLeft)
	fill(&k.MoveTaskRight, defaults.MoveTaskRight)
	fill(&k.MoveTaskUp, defaults.MoveTaskUp)
	fill(&k.MoveTaskDown, defaults.MoveTaskDown)
	fill(&k.ToggleDone, defaults.ToggleDone)
	fill(&k.ClaimTask, defaults.ClaimTask)
	fill(&k.UnclaimTask, defaults.UnclaimTask)
	fill(&k.AddTask, defaults.AddTask)
	fill(&k.DeleteTask, defaults.DeleteTask)
	fill(&k.ViewTask, defaults.ViewTask)
	fill(&k.PrevLane, defaults.PrevLane)
	fill(&k.NextLane, defaults.NextLane)
	fill(&k.PrevTask, defaults.PrevTask)
	fill(&k.NextTask, defaults.NextTask)
	fill(&k.Refresh, defaults.Refresh)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
