package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/config"
)

// applyGlobalFlags sets the process-wide color switch before any command runs.
func applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseToggle("color", value)
	if err != nil {
		return err
	}
	// fatih/color already honors NO_COLOR in auto mode
	color.NoColor = !mode.enabled(func() bool { return !color.NoColor && stdoutIsTerminal() })
	return nil
}

// loadConfig reads --config, or discovers pennmush.toml from the working
// directory, and applies --max-diagnostics on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return config.Config{}, fmt.Errorf("--max-diagnostics must be >= 0")
	}
	if maxDiagnostics > 0 {
		cfg.Check.MaxDiagnostics = maxDiagnostics
	}
	return cfg, nil
}

func quietFlag(cmd *cobra.Command) (bool, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return quiet, nil
}
