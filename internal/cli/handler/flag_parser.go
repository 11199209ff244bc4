package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/lanes/internal/cli"
)

// AddOutputFlags registers the agent-friendly output flags every command has
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// RequireFlags returns a flag check that fails when any of names is blank
func RequireFlags(names ...string) func(*cobra.Command) error {
	return func(cmd *cobra.Command) error {
		for _, name := range names {
			v, err := cmd.Flags().GetString(name)
			if err != nil {
				return fmt.Errorf("failed to parse %s flag: %w", name, err)
			}
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("--%s is required", name)
			}
		}
		return nil
	}
}

// ValidateColorFlag returns a flag check for an optional hex color flag
func ValidateColorFlag(name string) func(*cobra.Command) error {
	return func(cmd *cobra.Command) error {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		color, err := cmd.Flags().GetString(name)
		if err != nil {
			return fmt.Errorf("failed to parse %s flag: %w", name, err)
		}
		return cli.ValidateColorHex(color)
	}
}

// Chain runs flag checks in order and stops at the first failure
func Chain(checks ...func(*cobra.Command) error) func(*cobra.Command) error {
	return func(cmd *cobra.Command) error {
		for _, check := range checks {
			if err := check(cmd); err != nil {
				return err
			}
		}
		return nil
	}
}

// OutputFormats extracts JSON and Quiet output flags
func OutputFormats(cmd *cobra.Command) (jsonOutput bool, quietMode bool, err error) {
	jsonOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse json flag: %w", err)
	}

	quietMode, err = cmd.Flags().GetBool("quiet")
	if err != nil {
		return false, false, fmt.Errorf("failed to parse quiet flag: %w", err)
	}

	return jsonOutput, quietMode, nil
}
