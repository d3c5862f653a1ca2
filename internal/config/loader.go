package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable that pins the config file
// location, bypassing the search paths.
const EnvConfigPath = "MACUP_CONFIG_PATH"

// envPrefix namespaces all environment variable overrides (MACUP_...).
const envPrefix = "MACUP"

// Loader loads macup configuration via Viper.
//
// Use [NewLoader] to create one, then [Loader.Load] for the standard search
// order or [Loader.LoadFromFile] for an explicit path.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a [Loader] with defaults and environment binding applied.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	applyDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// Load reads configuration from the standard locations.
//
// Search order: the file named by MACUP_CONFIG_PATH (missing or unreadable
// is an error when set explicitly), then the first existing candidate from
// [SearchPaths]. When no file exists, the defaults apply. A file that exists
// but cannot be parsed is an error — a corrupt config is a startup fault,
// not something to silently paper over.
func (l *Loader) Load() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return l.LoadFromFile(path)
	}

	for _, candidate := range SearchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return l.LoadFromFile(candidate)
		}
	}

	return l.unmarshal()
}

// LoadFromFile reads configuration from the given path, with environment
// variables still taking precedence over file values.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SearchPaths returns the candidate config file locations in priority order.
func SearchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "macup", "config.yaml"),
		filepath.Join(home, "Library", "Application Support", "macup", "config.yaml"),
	}
}

// UserConfigPath returns the preferred location for a user config file,
// used by `macup config init` as the write destination.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "macup", "config.yaml"), nil
}

// applyDefaults registers every key with Viper so environment-only overrides
// bind even without a config file. Values mirror [DefaultConfig].
func applyDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("skip_steps", def.SkipSteps)

	customs := make([]map[string]any, 0, len(def.CustomCommands))
	for _, cc := range def.CustomCommands {
		customs = append(customs, map[string]any{
			"name":     cc.Name,
			"commands": cc.Commands,
			"enabled":  cc.Enabled,
		})
	}
	v.SetDefault("custom_commands", customs)

	v.SetDefault("cleanup_settings.downloads_days_old", def.Cleanup.DownloadsDaysOld)
	v.SetDefault("cleanup_settings.screenshots_days_old", def.Cleanup.ScreenshotsDaysOld)
	v.SetDefault("cleanup_settings.dmg_files_days_old", def.Cleanup.DmgFilesDaysOld)
	v.SetDefault("cleanup_settings.clear_browser_caches", def.Cleanup.ClearBrowserCaches)
	v.SetDefault("cleanup_settings.clear_system_logs", def.Cleanup.ClearSystemLogs)

	v.SetDefault("notification_settings.enabled", def.Notifications.Enabled)
	v.SetDefault("notification_settings.success_only", def.Notifications.SuccessOnly)
	v.SetDefault("notification_settings.include_stats", def.Notifications.IncludeStats)

	v.SetDefault("log_level", def.LogLevel)
}
