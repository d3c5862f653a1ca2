package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macup/internal/catalog"
	"macup/internal/config"
	"macup/internal/shell"
)

// singleStepConfig returns a config whose catalog is one custom echo step,
// keeping non-quiet runs fast in tests.
func singleStepConfig() *config.Config {
	cfg := config.DefaultConfig()
	for _, def := range catalog.Definitions(config.DefaultConfig()) {
		cfg.SkipSteps = append(cfg.SkipSteps, def.Name)
	}
	cfg.CustomCommands = []config.CustomCommand{
		{Name: "Echo hello", Commands: []string{"echo hello"}, Enabled: true},
	}
	return cfg
}

func TestRunCommand_AllStepsSucceed(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())

	err := ta.execute("--quiet")

	require.NoError(t, err)
	out := ta.out.String()
	assert.Contains(t, out, "📊 Update Summary")
	assert.Contains(t, out, "Total steps: 16")
	assert.Contains(t, out, "Completed: 16")
	assert.NotContains(t, out, "Failed:")
	assert.Contains(t, out, "🎉 All updates complete! Your system is squeaky clean!")
	assert.Equal(t, "brew update", ta.executor.Recorded[0])

	require.Len(t, ta.notifier.Sent, 1)
	assert.Equal(t, "macOS Maintenance Complete", ta.notifier.Sent[0].Title)
	assert.Equal(t,
		"Your system has been updated and cleaned successfully. Completed: 16, Skipped: 0, Failed: 0.",
		ta.notifier.Sent[0].Body)
}

func TestRunCommand_StepFailureStillExitsZero(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())
	ta.executor.Results = map[string]shell.Result{
		"brew update": {Status: shell.StatusFailed, ExitCode: 1},
	}

	err := ta.execute("--quiet")

	// A failed step is reported in the summary, never in the exit code.
	require.NoError(t, err)
	out := ta.out.String()
	assert.Contains(t, out, "Completed: 15")
	assert.Contains(t, out, "Failed: 1")

	require.Len(t, ta.notifier.Sent, 1)
	assert.Contains(t, ta.notifier.Sent[0].Body, "Maintenance finished with 1 failed step(s).")
	assert.Contains(t, ta.notifier.Sent[0].Body, "Failed: 1.")
}

func TestRunCommand_FailedCommandDoesNotAbortStep(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())
	ta.executor.Results = map[string]shell.Result{
		"brew upgrade": {Status: shell.StatusFailed, ExitCode: 1},
	}

	err := ta.execute("--quiet")

	require.NoError(t, err)
	recorded := ta.executor.Recorded[:3]
	assert.Equal(t, []string{"brew update", "brew upgrade", "brew cleanup"}, recorded)
}

func TestRunCommand_SoftSkippedCommandsCountAsCompleted(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())
	ta.executor.Default = shell.Result{Status: shell.StatusSkipped, SkipReason: "tool not found, skipping."}

	err := ta.execute("--quiet")

	require.NoError(t, err)
	out := ta.out.String()
	assert.Contains(t, out, "Completed: 16")
	assert.NotContains(t, out, "Failed:")
}

func TestRunCommand_NotificationSuccessOnly(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.SuccessOnly = true
	ta := newTestApp(cfg)
	ta.executor.Results = map[string]shell.Result{
		"brew update": {Status: shell.StatusFailed, ExitCode: 1},
	}

	err := ta.execute("--quiet")

	require.NoError(t, err)
	assert.Empty(t, ta.notifier.Sent)
}

func TestRunCommand_NotificationsDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.Enabled = false
	ta := newTestApp(cfg)

	err := ta.execute("--quiet")

	require.NoError(t, err)
	assert.Empty(t, ta.notifier.Sent)
}

func TestRunCommand_NotificationWithoutStats(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Notifications.IncludeStats = false
	ta := newTestApp(cfg)

	err := ta.execute("--quiet")

	require.NoError(t, err)
	require.Len(t, ta.notifier.Sent, 1)
	assert.Equal(t, "Your system has been updated and cleaned successfully.", ta.notifier.Sent[0].Body)
}

func TestRunCommand_InteractiveDeclineAll(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())
	ta.setStdin(strings.NewReader(strings.Repeat("n\n", 16)))

	err := ta.execute("--interactive", "--quiet")

	require.NoError(t, err)
	assert.Empty(t, ta.executor.Recorded, "declined steps must never execute")
	out := ta.out.String()
	assert.Contains(t, out, "Proceed with: Updating Homebrew? [Y/n]")
	assert.Contains(t, out, "Skipped: 16")
	assert.Contains(t, out, "Completed: 0")
}

func TestRunCommand_InteractiveMixedAnswers(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())
	// Accept the first step, decline the remaining fifteen.
	ta.setStdin(strings.NewReader("y\n" + strings.Repeat("n\n", 15)))

	err := ta.execute("-i", "-q")

	require.NoError(t, err)
	assert.Equal(t, []string{"brew update", "brew upgrade", "brew cleanup"}, ta.executor.Recorded)
	assert.Contains(t, ta.out.String(), "Completed: 1")
	assert.Contains(t, ta.out.String(), "Skipped: 15")
}

func TestRunCommand_InteractivePromptFailureAborts(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())
	// Empty stdin: the first prompt hits EOF and the run cannot continue.

	err := ta.execute("--interactive", "--quiet")

	require.Error(t, err)
	code, ok := IsExitError(err)
	require.True(t, ok, "error should be an ExitError")
	assert.Equal(t, 1, code)
	assert.Contains(t, ta.errOut.String(), "confirmation failed")
	assert.Empty(t, ta.executor.Recorded)
}

func TestRunCommand_QuietSuppressesBanner(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())

	err := ta.execute("--quiet")

	require.NoError(t, err)
	out := ta.out.String()
	assert.NotContains(t, out, "Starting macOS maintenance and updates")
	assert.NotContains(t, out, "\x1b[2J")
}

func TestRunCommand_NormalModeShowsBannerAndProgress(t *testing.T) {
	ta := newTestApp(singleStepConfig())

	err := ta.execute()

	require.NoError(t, err)
	out := ta.out.String()
	assert.Contains(t, out, "\x1b[2J")
	assert.Contains(t, out, "🔧 Starting macOS maintenance and updates...")
	assert.Contains(t, out, "🔧 Starting 1 maintenance steps...")
	assert.Contains(t, out, "[1/1] ✅ Echo hello")
	assert.Contains(t, out, "Total steps: 1")
	assert.Equal(t, []string{"echo hello"}, ta.executor.Recorded)
}

func TestRunCommand_UnknownFlag(t *testing.T) {
	ta := newTestApp(config.DefaultConfig())

	err := ta.execute("--bogus")

	require.Error(t, err)
	_, ok := IsExitError(err)
	assert.False(t, ok, "usage errors are not ExitErrors")
	assert.Empty(t, ta.executor.Recorded)
}
