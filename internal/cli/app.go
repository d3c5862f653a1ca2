package cli

import (
	"io"
	"log/slog"

	"macup/internal/config"
	"macup/internal/notify"
	"macup/internal/shell"
)

// App bundles the collaborators the commands operate on.
//
// Production wiring happens in [Execute]. Tests construct an App with mocks
// and buffers and drive [NewRootCommand] directly.
type App struct {
	// Config is the effective configuration for this invocation.
	Config *config.Config

	// Executor runs step commands. When nil, the run creates a
	// [shell.LocalExecutor] bound to the run logger.
	Executor shell.Executor

	// Notifier posts the end-of-run desktop notification.
	Notifier notify.Notifier

	// Logger receives structured run records. When nil, the run opens the
	// standard log file, downgrading to a discard logger on failure.
	Logger *slog.Logger

	// In, Out, and ErrOut are the command's standard streams.
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}
