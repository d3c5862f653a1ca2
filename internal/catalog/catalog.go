// Package catalog holds the built-in maintenance steps and applies the
// user's configuration overlay.
//
// The catalog is a fixed, ordered list of step definitions covering package
// managers, system updates, cache and disk cleanup, and index maintenance.
// Configuration reshapes it in three ways: skip_steps removes built-in
// steps by name (case-insensitive), cleanup_settings parameterizes the
// cleanup commands, and custom_commands appends user-defined steps after
// the built-ins. There is no other extension mechanism; unknown names in
// skip_steps simply match nothing.
//
// Key types:
//   - [Definition]: a named command list before executor binding
//   - [Definitions]: the effective catalog for a configuration
//   - [Steps]: binds definitions to a [shell.Executor]
package catalog

import (
	"fmt"
	"os"
	"strings"

	"macup/internal/config"
	"macup/internal/shell"
	"macup/internal/step"
)

// Definition describes one maintenance step before it is bound to an
// executor: the display name and the shell command strings in execution
// order.
type Definition struct {
	Name     string
	Commands []string
}

// Definitions returns the effective step list for cfg.
//
// Built-in steps appear first, in catalog order, minus those named in
// skip_steps; enabled custom commands follow in configuration order.
func Definitions(cfg *config.Config) []Definition {
	defs := filterSkipped(builtins(cfg), cfg.SkipSteps)

	for _, custom := range cfg.CustomCommands {
		if !custom.Enabled {
			continue
		}
		defs = append(defs, Definition{Name: custom.Name, Commands: custom.Commands})
	}

	return defs
}

// Steps binds definitions to an executor, preserving order.
func Steps(defs []Definition, executor shell.Executor) []step.Step {
	steps := make([]step.Step, 0, len(defs))
	for _, def := range defs {
		steps = append(steps, step.NewCommandStep(def.Name, def.Commands, executor))
	}
	return steps
}

// builtins assembles the built-in catalog, parameterized by the cleanup
// settings.
func builtins(cfg *config.Config) []Definition {
	cleanup := cfg.Cleanup

	systemCaches := []string{
		"sudo dscacheutil -flushcache",
		"sudo killall -HUP mDNSResponder",
	}
	if cleanup.ClearBrowserCaches {
		systemCaches = append(systemCaches,
			"rm -rf ~/Library/Caches/com.apple.Safari/WebKitCache 2>/dev/null || true",
			"rm -rf ~/Library/Caches/Google/Chrome/Default/Cache 2>/dev/null || true",
			"rm -rf ~/Library/Caches/Firefox/Profiles/*/cache2 2>/dev/null || true",
		)
	}

	defs := []Definition{
		{
			Name:     "Updating Homebrew",
			Commands: []string{"brew update", "brew upgrade", "brew cleanup"},
		},
		{
			Name:     "Upgrading App Store apps",
			Commands: []string{"mas upgrade"},
		},
		{
			Name:     "Updating npm packages",
			Commands: []string{"npm update -g"},
		},
		{
			Name:     "Updating Composer packages",
			Commands: []string{"composer global update"},
		},
		{
			Name:     "Installing system updates",
			Commands: []string{"softwareupdate -ia"},
		},
		{
			Name:     "Updating Rust tools",
			Commands: []string{"cargo install-update -a"},
		},
		{
			Name:     "Updating oh-my-zsh",
			Commands: []string{fmt.Sprintf("%s/.oh-my-zsh/tools/upgrade.sh", homeDir())},
		},
		{
			Name:     "Clearing system caches",
			Commands: systemCaches,
		},
		{
			Name: "Cleaning download folders",
			Commands: []string{
				fmt.Sprintf("[ -d ~/Downloads ] && find ~/Downloads -type f -mtime +%d -delete 2>/dev/null || true", cleanup.DownloadsDaysOld),
				fmt.Sprintf("[ -d ~/Desktop ] && find ~/Desktop -name '*.dmg' -mtime +%d -delete 2>/dev/null || true", cleanup.DmgFilesDaysOld),
				fmt.Sprintf("[ -d ~/Desktop ] && find ~/Desktop -name 'Screenshot*' -mtime +%d -delete 2>/dev/null || true", cleanup.ScreenshotsDaysOld),
			},
		},
		{
			Name: "Optimizing disk space",
			Commands: []string{
				"sudo tmutil thinlocalsnapshots / 10000000000 4 2>/dev/null || true",
				"sudo purge",
				"sudo periodic daily weekly monthly",
			},
		},
		{
			Name:     "Updating Ruby gems",
			Commands: []string{"gem update", "gem cleanup"},
		},
		{
			Name: "Optimizing Xcode",
			Commands: []string{
				"rm -rf ~/Library/Developer/Xcode/DerivedData 2>/dev/null || true",
				"rm -rf ~/Library/Developer/Xcode/Archives 2>/dev/null || true",
				"xcrun simctl delete unavailable",
			},
		},
	}

	if cleanup.ClearSystemLogs {
		defs = append(defs, Definition{
			Name: "Clearing logs and temp files",
			Commands: []string{
				"sudo rm -rf /private/var/log/asl/*.asl 2>/dev/null || true",
				"sudo rm -rf /Library/Logs/DiagnosticReports/* 2>/dev/null || true",
				"sudo rm -rf /var/folders/*/*/*/C/* 2>/dev/null || true",
				"rm -rf ~/Library/Application\\ Support/CrashReporter/* 2>/dev/null || true",
			},
		})
	}

	defs = append(defs,
		Definition{
			Name: "Rebuilding Launch Services",
			Commands: []string{
				"/System/Library/Frameworks/CoreServices.framework/Frameworks/LaunchServices.framework/Support/lsregister -kill -r -domain local -domain system -domain user 2>/dev/null || true",
				"killall Finder 2>/dev/null || true",
			},
		},
		Definition{
			Name:     "Updating Mac App Store CLI",
			Commands: []string{"mas outdated"},
		},
		Definition{
			Name: "Optimizing Spotlight index",
			Commands: []string{
				"sudo mdutil -i off / 2>/dev/null || true",
				"sudo mdutil -E / 2>/dev/null || true",
				"sudo mdutil -i on / 2>/dev/null || true",
			},
		},
	)

	return defs
}

// filterSkipped drops definitions whose names appear in skips, compared
// case-insensitively.
func filterSkipped(defs []Definition, skips []string) []Definition {
	if len(skips) == 0 {
		return defs
	}

	skipSet := make(map[string]struct{}, len(skips))
	for _, name := range skips {
		skipSet[strings.ToLower(name)] = struct{}{}
	}

	kept := defs[:0]
	for _, def := range defs {
		if _, skip := skipSet[strings.ToLower(def.Name)]; skip {
			continue
		}
		kept = append(kept, def)
	}
	return kept
}

// homeDir resolves the user's home directory for steps that must address it
// by absolute path. The oh-my-zsh upgrade script is not on PATH, so a tilde
// would defeat the binary lookup. Falls back to a literal tilde, which
// soft-skips the step.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "~"
	}
	return home
}
