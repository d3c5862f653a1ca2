// Package config provides configuration loading and management for macup.
//
// Configuration is loaded using Viper, supporting YAML config files and
// environment variable overrides. The package provides sensible defaults that
// work out of the box, with the ability to skip built-in maintenance steps,
// append custom command steps, and tune cleanup thresholds and notification
// behavior.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [CustomCommand] defines a user-supplied maintenance step
//   - [CleanupSettings] parameterizes the built-in cleanup steps
//
// Configuration priority (highest to lowest):
//  1. Environment variables (MACUP_ prefix)
//  2. Config file specified by MACUP_CONFIG_PATH
//  3. ~/.config/macup/config.yaml
//  4. ~/Library/Application Support/macup/config.yaml (platform-standard)
//  5. [DefaultConfig] defaults
package config

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used to
// shape the step catalog and run behavior. Use [DefaultConfig] to get
// sensible defaults.
type Config struct {
	// SkipSteps lists built-in step names to exclude from the catalog.
	// Matching is case-insensitive on the step name.
	SkipSteps []string `mapstructure:"skip_steps" yaml:"skip_steps"`

	// CustomCommands are user-defined steps appended after the built-in
	// catalog, in order. Disabled entries are ignored.
	CustomCommands []CustomCommand `mapstructure:"custom_commands" yaml:"custom_commands"`

	// Cleanup parameterizes the built-in cache and disk cleanup steps.
	Cleanup CleanupSettings `mapstructure:"cleanup_settings" yaml:"cleanup_settings"`

	// Notifications controls the desktop notification sent after a run.
	Notifications NotificationSettings `mapstructure:"notification_settings" yaml:"notification_settings"`

	// LogLevel sets the structured log verbosity: debug, info, warn, error.
	// The --log-level flag takes precedence when set.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// CustomCommand represents a single user-defined maintenance step.
type CustomCommand struct {
	// Name is the step name shown in progress output and the summary.
	Name string `mapstructure:"name" yaml:"name"`

	// Commands are the shell command strings the step runs in order.
	Commands []string `mapstructure:"commands" yaml:"commands"`

	// Enabled controls whether the step is included in the catalog.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// CleanupSettings parameterizes the built-in cleanup steps.
//
// The age thresholds feed the find -mtime expressions of the
// download-folder cleanup step; the two booleans gate whole command groups.
type CleanupSettings struct {
	// DownloadsDaysOld is the age in days past which files in ~/Downloads
	// are deleted.
	DownloadsDaysOld int `mapstructure:"downloads_days_old" yaml:"downloads_days_old"`

	// ScreenshotsDaysOld is the age in days past which screenshots on
	// ~/Desktop are deleted.
	ScreenshotsDaysOld int `mapstructure:"screenshots_days_old" yaml:"screenshots_days_old"`

	// DmgFilesDaysOld is the age in days past which .dmg files on
	// ~/Desktop are deleted.
	DmgFilesDaysOld int `mapstructure:"dmg_files_days_old" yaml:"dmg_files_days_old"`

	// ClearBrowserCaches includes the browser cache directories in the
	// system cache clearing step.
	ClearBrowserCaches bool `mapstructure:"clear_browser_caches" yaml:"clear_browser_caches"`

	// ClearSystemLogs includes the log and temp file clearing step in the
	// catalog.
	ClearSystemLogs bool `mapstructure:"clear_system_logs" yaml:"clear_system_logs"`
}

// NotificationSettings controls the desktop notification sent after a run.
type NotificationSettings struct {
	// Enabled turns the end-of-run notification on or off.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// SuccessOnly suppresses the notification when any step failed.
	SuccessOnly bool `mapstructure:"success_only" yaml:"success_only"`

	// IncludeStats appends the run statistics to the notification body.
	IncludeStats bool `mapstructure:"include_stats" yaml:"include_stats"`
}

// DefaultConfig returns a new [Config] with sensible defaults.
//
// The defaults match a stock installation: no steps skipped, one disabled
// example custom command, cleanup thresholds of 30/14/7 days with all
// cleanup groups enabled, and notifications enabled with statistics.
func DefaultConfig() *Config {
	return &Config{
		SkipSteps: []string{},
		CustomCommands: []CustomCommand{
			{
				Name:     "Update Homebrew Casks",
				Commands: []string{"brew upgrade --cask"},
				Enabled:  false,
			},
		},
		Cleanup: CleanupSettings{
			DownloadsDaysOld:   30,
			ScreenshotsDaysOld: 14,
			DmgFilesDaysOld:    7,
			ClearBrowserCaches: true,
			ClearSystemLogs:    true,
		},
		Notifications: NotificationSettings{
			Enabled:      true,
			SuccessOnly:  false,
			IncludeStats: true,
		},
		LogLevel: "info",
	}
}
