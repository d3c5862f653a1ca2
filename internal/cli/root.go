package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"macup/internal/catalog"
	"macup/internal/config"
	"macup/internal/logging"
	"macup/internal/notify"
	"macup/internal/shell"
	"macup/internal/ui"
	"macup/internal/updater"
)

// interStepPause keeps successive step transitions readable in normal mode.
// Quiet mode runs without it.
const interStepPause = 150 * time.Millisecond

// rootOptions holds the root command's flag values.
type rootOptions struct {
	interactive bool
	quiet       bool
	logLevel    string
}

// NewRootCommand builds the macup command tree around app.
//
// The root command itself runs the maintenance steps; `list` and `config`
// are informational subcommands.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "macup",
		Short: "macOS maintenance and update automation",
		Long: `macup runs a curated sequence of macOS maintenance steps: package
manager updates, system updates, cache and disk cleanup, and index rebuilds.

Steps whose tools are not installed are skipped automatically, and a step
failure never aborts the run; the summary reports every outcome.

Example:
  macup              run all maintenance steps
  macup -i           confirm each step before it runs
  macup list         show the steps without running them`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMaintenance(cmd, app, opts)
		},
	}

	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "confirm each step before running it")
	rootCmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "show only essential output")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log verbosity: debug, info, warn or error (defaults to the config value)")

	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// Execute wires the production dependencies, runs the command tree, and
// returns the process exit code.
//
// Step failures do not influence the exit code; a run that finishes exits
// zero. Non-zero codes come from startup faults (an unreadable config
// file), usage errors, and runs cut short.
func Execute() int {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app := &App{
		Config:   cfg,
		Notifier: notify.NewDesktopNotifier(),
		In:       os.Stdin,
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
	}

	if err := NewRootCommand(app).Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runMaintenance assembles the run-scoped pieces and drives the updater.
func runMaintenance(cmd *cobra.Command, app *App, opts *rootOptions) error {
	logger := runLogger(app, opts)
	styles := ui.DefaultStyles()

	if !opts.quiet {
		ui.ClearScreen(app.Out)
		ui.Banner(app.Out, styles)
	}

	executor := app.Executor
	if executor == nil {
		executor = shell.NewLocalExecutor(logger)
	}

	steps := catalog.Steps(catalog.Definitions(app.Config), executor)

	var renderer updater.Renderer
	if opts.quiet {
		renderer = ui.NewQuietRenderer(app.Out, styles)
	} else {
		renderer = ui.NewSpinnerRenderer(app.Out, styles)
	}

	run := updater.New(steps, renderer, logger)
	if opts.interactive {
		run.SetGate(ui.NewTerminalPrompter(app.In, app.Out))
	}
	if !opts.quiet {
		run.SetPause(interStepPause)
	}

	stats, err := run.Run(cmd.Context())
	if err != nil {
		fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
		return NewExitError(1)
	}

	ui.Farewell(app.Out, styles)
	notifyRunFinished(app, logger, stats)

	return nil
}

// runLogger resolves the logger for this invocation. An injected logger
// wins; otherwise the standard log file is opened at the level from the
// --log-level flag or, when the flag is unset, the config. Every record
// carries a unique run_id so interleaved runs stay distinguishable within
// one file.
func runLogger(app *App, opts *rootOptions) *slog.Logger {
	logger := app.Logger
	if logger == nil {
		logger = openFileLogger(app, opts)
	}
	return logger.With("run_id", uuid.NewString())
}

func openFileLogger(app *App, opts *rootOptions) *slog.Logger {
	level := app.Config.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}

	dir, err := logging.DefaultDir()
	if err != nil {
		fmt.Fprintf(app.ErrOut, "Warning: logging disabled: %v\n", err)
		return logging.Discard()
	}

	logger, err := logging.Open(dir, logging.ParseLevel(level))
	if err != nil {
		fmt.Fprintf(app.ErrOut, "Warning: logging disabled: %v\n", err)
		return logging.Discard()
	}
	return logger
}

// notifyRunFinished posts the desktop notification when the settings allow
// it. Delivery problems are logged and otherwise ignored.
func notifyRunFinished(app *App, logger *slog.Logger, stats updater.RunStatistics) {
	settings := app.Config.Notifications
	if !settings.Enabled || app.Notifier == nil {
		return
	}
	if settings.SuccessOnly && stats.Failed > 0 {
		return
	}

	body := "Your system has been updated and cleaned successfully."
	if stats.Failed > 0 {
		body = fmt.Sprintf("Maintenance finished with %d failed step(s).", stats.Failed)
	}
	if settings.IncludeStats {
		body = fmt.Sprintf("%s Completed: %d, Skipped: %d, Failed: %d.",
			body, stats.Completed, stats.Skipped, stats.Failed)
	}

	if err := app.Notifier.Send("macOS Maintenance Complete", body); err != nil {
		logger.Warn("notification not delivered", "error", err)
	}
}
