package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"macup/internal/config"
)

func newConfigCommand(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage macup configuration",
	}

	configCmd.AddCommand(newConfigInitCommand(app))
	configCmd.AddCommand(newConfigShowCommand(app))

	return configCmd
}

func newConfigInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration to ~/.config/macup/config.yaml as a
starting point for customization. Refuses to overwrite an existing file.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := config.UserConfigPath()
			if err != nil {
				fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
				return NewExitError(1)
			}

			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(app.ErrOut, "Error: config file already exists at %s\n", path)
				return NewExitError(1)
			}

			if err := writeConfigFile(path, config.DefaultConfig()); err != nil {
				fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
				return NewExitError(1)
			}

			fmt.Fprintf(app.Out, "Wrote default config to %s\n", path)
			return nil
		},
	}
}

func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration the run would use, after applying the config
file and environment overrides, as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(app.Config)
			if err != nil {
				fmt.Fprintf(app.ErrOut, "Error: failed to render config: %v\n", err)
				return NewExitError(1)
			}
			fmt.Fprint(app.Out, string(data))
			return nil
		},
	}
}

// writeConfigFile writes cfg as YAML through a temp file and rename, so an
// interrupted write never leaves a half-written config behind.
func writeConfigFile(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize config file: %w", err)
	}
	return nil
}
