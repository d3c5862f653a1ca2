package cli

import (
	"bytes"
	"io"
	"strings"

	"macup/internal/config"
	"macup/internal/logging"
	"macup/internal/notify"
	"macup/internal/shell"
)

// testApp is an [App] wired with mocks and buffers for driving the command
// tree in tests.
type testApp struct {
	app      *App
	executor *shell.MockExecutor
	notifier *notify.MockNotifier
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

// newTestApp builds a testApp around cfg. The mock executor succeeds for
// every command unless scripted otherwise, and stdin is empty.
func newTestApp(cfg *config.Config) *testApp {
	executor := &shell.MockExecutor{}
	notifier := &notify.MockNotifier{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	return &testApp{
		app: &App{
			Config:   cfg,
			Executor: executor,
			Notifier: notifier,
			Logger:   logging.Discard(),
			In:       strings.NewReader(""),
			Out:      out,
			ErrOut:   errOut,
		},
		executor: executor,
		notifier: notifier,
		out:      out,
		errOut:   errOut,
	}
}

// setStdin replaces the app's input stream, for interactive-mode tests.
func (ta *testApp) setStdin(in io.Reader) {
	ta.app.In = in
}

// execute runs the command tree with the given arguments.
func (ta *testApp) execute(args ...string) error {
	rootCmd := NewRootCommand(ta.app)
	rootCmd.SetOut(ta.out)
	rootCmd.SetErr(ta.errOut)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
