package config

// Theme holds the colors of the terminal board. Values are lipgloss colors
// (hex or ANSI numbers).
type Theme struct {
	Preset string `yaml:"preset"` // "default" or "monochrome"

	Accent     string `yaml:"accent"`
	LaneBorder string `yaml:"lane_border"`
	Selected   string `yaml:"selected"`
	Mine       string `yaml:"mine"`
	Done       string `yaml:"done"`
	Subtle     string `yaml:"subtle"`
	Normal     string `yaml:"normal"`
	Error      string `yaml:"error"`
}

// DefaultTheme is the purple theme
func DefaultTheme() Theme {
	return Theme{
		Preset:     "default",
		Accent:     "#874BFD",
		LaneBorder: "#5F87D7",
		Selected:   "#D75FD7",
		Mine:       "#5FD75F",
		Done:       "#585858",
		Subtle:     "#585858",
		Normal:     "#D0D0D0",
		Error:      "#FF5F5F",
	}
}

// MonochromeTheme is a black and white theme
func MonochromeTheme() Theme {
	return Theme{
		Preset:     "monochrome",
		Accent:     "15",
		LaneBorder: "8",
		Selected:   "15",
		Mine:       "15",
		Done:       "8",
		Subtle:     "8",
		Normal:     "7",
		Error:      "15",
	}
}

// ThemePreset returns a preset by name, falling back to the default
func ThemePreset(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// applyDefaults fills empty colors from the chosen preset
func (t *Theme) applyDefaults() {
	preset := ThemePreset(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&t.Accent, preset.Accent)
	fill(&t.LaneBorder, preset.LaneBorder)
	fill(&t.Selected, preset.Selected)
	fill(&t.Mine, preset.Mine)
	fill(&t.Done, preset.Done)
	fill(&t.Subtle, preset.Subtle)
	fill(&t.Normal, preset.Normal)
	fill(&t.Error, preset.Error)
}
