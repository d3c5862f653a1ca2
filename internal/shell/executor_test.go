package shell

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor() *LocalExecutor {
	return NewLocalExecutor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLocalExecutor_Run_Success(t *testing.T) {
	e := newTestExecutor()

	var mu sync.Mutex
	var lines []string
	sink := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, line)
	}

	res := e.Run(context.Background(), "echo hello", sink)

	assert.Equal(t, StatusSucceeded, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.False(t, res.Failed())
	assert.Contains(t, res.Stdout, "hello")
	assert.Contains(t, lines, "hello")
	assert.NoError(t, res.Err)
	assert.Equal(t, "echo hello", res.Command)
}

func TestLocalExecutor_Run_NonZeroExit(t *testing.T) {
	e := newTestExecutor()

	res := e.Run(context.Background(), "sh -c 'exit 3'", nil)

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 3, res.ExitCode)
	assert.True(t, res.Failed())
	assert.Error(t, res.Err)
}

func TestLocalExecutor_Run_CapturesStderr(t *testing.T) {
	e := newTestExecutor()

	var mu sync.Mutex
	var lines []string
	sink := func(line string) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, line)
	}

	res := e.Run(context.Background(), "sh -c 'echo boom 1>&2; exit 2'", sink)

	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stderr, "boom")
	assert.Contains(t, lines, "boom")
}

func TestLocalExecutor_Run_ShellSyntaxSupported(t *testing.T) {
	// Catalog commands rely on redirects and || fallbacks, so the command
	// string must reach a real shell rather than being exec'd directly.
	e := newTestExecutor()

	res := e.Run(context.Background(), "sh -c 'exit 9' 2>/dev/null || true", nil)

	assert.Equal(t, StatusSucceeded, res.Status)
	assert.Equal(t, 0, res.ExitCode)
}

func TestLocalExecutor_Run_MissingBinarySoftSkips(t *testing.T) {
	e := newTestExecutor()

	res := e.Run(context.Background(), "definitely-not-a-real-binary-12345 --upgrade", nil)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "definitely-not-a-real-binary-12345 not found, skipping.", res.SkipReason)
	assert.False(t, res.Failed())
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Stdout)
}

func TestLocalExecutor_Run_EmptyCommandFails(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{name: "empty string", command: ""},
		{name: "whitespace only", command: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExecutor()

			res := e.Run(context.Background(), tt.command, nil)

			assert.Equal(t, StatusFailed, res.Status)
			assert.Equal(t, -1, res.ExitCode)
			assert.Error(t, res.Err)
		})
	}
}

func TestLocalExecutor_Run_XcrunWithoutXcodeSkips(t *testing.T) {
	e := newTestExecutor()
	e.lookPath = func(string) (string, error) { return "/usr/bin/xcrun", nil }
	e.xcodeProbe = func(context.Context) bool { return false }

	res := e.Run(context.Background(), "xcrun simctl delete unavailable", nil)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "Xcode not found, skipping Xcode-specific commands.", res.SkipReason)
}

func TestLocalExecutor_Run_XcrunBinaryMissingSkips(t *testing.T) {
	e := newTestExecutor()
	// xcrun is absent from PATH; the deeper probe must not rescue it.
	e.xcodeProbe = func(context.Context) bool { return true }

	res := e.Run(context.Background(), "xcrun simctl delete unavailable", nil)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "Xcode not found, skipping Xcode-specific commands.", res.SkipReason)
}

func TestLocalExecutor_Run_NilSink(t *testing.T) {
	e := newTestExecutor()

	res := e.Run(context.Background(), "echo quiet", nil)

	assert.Equal(t, StatusSucceeded, res.Status)
	assert.Contains(t, res.Stdout, "quiet")
}

func TestLocalExecutor_Run_ConcurrentUse(t *testing.T) {
	e := newTestExecutor()

	var wg sync.WaitGroup
	results := make([]Result, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Run(context.Background(), "echo concurrent", nil)
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, StatusSucceeded, res.Status)
		assert.Contains(t, res.Stdout, "concurrent")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{status: StatusSucceeded, want: "succeeded"},
		{status: StatusSkipped, want: "skipped"},
		{status: StatusFailed, want: "failed"},
		{status: Status(42), want: "status(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestTailLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "empty", input: "", max: 3, want: ""},
		{name: "fewer than max", input: "a\nb", max: 3, want: "a\nb"},
		{name: "exactly max", input: "a\nb\nc", max: 3, want: "a\nb\nc"},
		{name: "more than max", input: "a\nb\nc\nd\ne", max: 3, want: "c\nd\ne"},
		{name: "trailing newline ignored", input: "a\nb\nc\n", max: 2, want: "b\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tailLines(tt.input, tt.max))
		})
	}
}

func TestMockExecutor_Run(t *testing.T) {
	mock := &MockExecutor{
		Results: map[string]Result{
			"brew update": {Status: StatusFailed, ExitCode: 1},
		},
		Emit: map[string][]string{
			"brew upgrade": {"Upgrading 3 packages", "Done"},
		},
	}

	var lines []string
	sink := func(line string) { lines = append(lines, line) }

	failed := mock.Run(context.Background(), "brew update", nil)
	emitted := mock.Run(context.Background(), "brew upgrade", sink)

	require.Equal(t, []string{"brew update", "brew upgrade"}, mock.Recorded)
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "brew update", failed.Command)
	assert.Equal(t, StatusSucceeded, emitted.Status)
	assert.Equal(t, []string{"Upgrading 3 packages", "Done"}, lines)
}

func TestMockExecutor_DefaultResult(t *testing.T) {
	mock := &MockExecutor{Default: Result{Status: StatusSkipped, SkipReason: "mas not found, skipping."}}

	res := mock.Run(context.Background(), "mas upgrade", nil)

	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, "mas upgrade", res.Command)
	assert.True(t, strings.HasSuffix(res.SkipReason, "skipping."))
}
