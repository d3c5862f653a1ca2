// Package shell runs maintenance commands against the host shell.
//
// This package handles locating a command's target binary, spawning the
// command through /bin/sh, streaming its output line by line, and
// classifying the outcome. A command whose target binary is not installed
// on the host is a soft-skip ([StatusSkipped]) rather than a failure, so
// optional tooling never counts against a run.
//
// Key types:
//   - [Executor]: interface for running a single command string
//   - [LocalExecutor]: production implementation backed by os/exec
//   - [Result]: per-command outcome with captured output
//
// For testing, use [MockExecutor] which implements [Executor] without
// spawning real processes.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// stderrTailLines is the number of trailing stderr lines attached to the
// log record of a failed command.
const stderrTailLines = 20

// Status classifies the outcome of a single command execution.
type Status int

const (
	// StatusSucceeded means the process ran and exited zero.
	StatusSucceeded Status = iota

	// StatusSkipped means the command's target binary is not installed on
	// this host (a soft-skip). Soft-skips are never counted as failures.
	StatusSkipped

	// StatusFailed means the process exited non-zero or could not be
	// started at all.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one command execution.
//
// A Result is produced for every command an [Executor] is asked to run,
// including commands that were soft-skipped or never started. It is kept
// only long enough to be folded into the step outcome and logged; nothing
// persists it.
type Result struct {
	// Command is the command string as it was requested.
	Command string

	// Status classifies the outcome. Soft-skips ([StatusSkipped]) must
	// never be treated as failures by callers.
	Status Status

	// ExitCode is the process exit code. It is 0 on success, the child's
	// code on a non-zero exit, and -1 when the process could not be
	// started. Meaningless when Status is [StatusSkipped].
	ExitCode int

	// Stdout and Stderr hold the full captured output of the process.
	Stdout string
	Stderr string

	// SkipReason is the human-readable reason for a soft-skip, for example
	// "brew not found, skipping.". Set only when Status is [StatusSkipped].
	SkipReason string

	// Err is the spawn or exit error when Status is [StatusFailed].
	Err error

	// Duration is the wall-clock time spent running the process.
	Duration time.Duration
}

// Failed reports whether the command counts as a failure. Soft-skips and
// successes do not.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// LineSink receives one line of process output at a time for live display.
//
// stdout and stderr are drained by two concurrent readers, so implementations
// must be safe for concurrent use. No ordering is guaranteed between lines
// that originate from different streams. A nil LineSink discards output.
type LineSink func(line string)

// Executor runs a single shell command string to completion.
//
// Run never returns a Go error for a failing child process: a non-zero exit
// or a spawn failure is represented in the [Result], not propagated. The
// [LocalExecutor] type implements this interface against the host; tests
// use [MockExecutor].
type Executor interface {
	// Run executes the command, forwarding output lines to sink as they
	// arrive, and returns the classified outcome. Implementations must be
	// safe to invoke concurrently.
	Run(ctx context.Context, command string, sink LineSink) Result
}

// LocalExecutor runs commands on the local host via /bin/sh.
//
// The first whitespace-separated token of a command is treated as its
// target binary. When that binary cannot be located on PATH the command is
// soft-skipped without spawning anything; `xcrun` commands additionally
// require a usable Xcode installation. Everything else is handed to
// /bin/sh -c so catalog commands may use redirects, `||` fallbacks, and
// home-relative paths.
//
// A LocalExecutor holds no per-call state and is safe for concurrent use.
type LocalExecutor struct {
	logger *slog.Logger

	// lookPath resolves a binary on the search path. Swappable for tests;
	// defaults to exec.LookPath.
	lookPath func(file string) (string, error)

	// xcodeProbe reports whether a usable Xcode installation is present.
	// Swappable for tests; defaults to probing xcode-select.
	xcodeProbe func(ctx context.Context) bool
}

// NewLocalExecutor creates a [LocalExecutor] that logs per-command events
// through the given logger: soft-skips at info level, failures at error
// level with a stderr tail, successes at debug level.
func NewLocalExecutor(logger *slog.Logger) *LocalExecutor {
	return &LocalExecutor{
		logger:     logger,
		lookPath:   exec.LookPath,
		xcodeProbe: xcodeAvailable,
	}
}

// Run implements [Executor] against the local host.
func (e *LocalExecutor) Run(ctx context.Context, command string, sink LineSink) Result {
	res := Result{Command: command}

	fields := strings.Fields(command)
	if len(fields) == 0 {
		res.Status = StatusFailed
		res.ExitCode = -1
		res.Err = errors.New("empty command")
		e.logger.Error("command failed", "command", command, "error", res.Err)
		return res
	}

	bin := fields[0]
	if bin == "xcrun" {
		if _, err := e.lookPath(bin); err != nil || !e.xcodeProbe(ctx) {
			res.Status = StatusSkipped
			res.SkipReason = "Xcode not found, skipping Xcode-specific commands."
			e.logger.Info("command skipped", "command", command, "reason", "xcode unavailable")
			return res
		}
	} else if _, err := e.lookPath(bin); err != nil {
		res.Status = StatusSkipped
		res.SkipReason = fmt.Sprintf("%s not found, skipping.", bin)
		e.logger.Info("command skipped", "command", command, "binary", bin)
		return res
	}

	start := time.Now()
	res = e.spawn(ctx, command, sink, res)
	res.Duration = time.Since(start)

	switch res.Status {
	case StatusFailed:
		e.logger.Error("command failed",
			"command", command,
			"exit_code", res.ExitCode,
			"error", res.Err,
			"stderr", tailLines(res.Stderr, stderrTailLines))
	default:
		e.logger.Debug("command succeeded", "command", command, "duration", res.Duration)
	}
	return res
}

// spawn starts the process and drains both output streams concurrently.
// The two readers are joined before the command is considered finished.
func (e *LocalExecutor) spawn(ctx context.Context, command string, sink LineSink, res Result) Result {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return spawnFailure(res, fmt.Errorf("failed to create stdout pipe: %w", err))
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return spawnFailure(res, fmt.Errorf("failed to create stderr pipe: %w", err))
	}

	if err := cmd.Start(); err != nil {
		return spawnFailure(res, fmt.Errorf("failed to spawn process: %w", err))
	}

	var outBuf, errBuf strings.Builder
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		drainStream(stdout, &outBuf, sink)
	}()
	go func() {
		defer wg.Done()
		drainStream(stderr, &errBuf, sink)
	}()
	wg.Wait()

	err = cmd.Wait()
	res.Stdout = outBuf.String()
	res.Stderr = errBuf.String()

	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = -1
		}
		return res
	}

	res.Status = StatusSucceeded
	res.ExitCode = 0
	return res
}

func spawnFailure(res Result, err error) Result {
	res.Status = StatusFailed
	res.ExitCode = -1
	res.Err = err
	return res
}

// drainStream reads one output stream line by line, forwarding each line to
// the sink and buffering it for the [Result].
func drainStream(pipe io.Reader, buf *strings.Builder, sink LineSink) {
	scanner := bufio.NewScanner(pipe)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')
		if sink != nil {
			sink(line)
		}
	}
	// Scanner errors are not surfaced: pipe closure mid-line is expected
	// when the process exits, and the exit status carries the verdict.
}

// xcodeAvailable reports whether the host has a usable Xcode installation
// by asking xcode-select for the developer directory and checking that it
// contains the simulator tooling.
func xcodeAvailable(ctx context.Context) bool {
	out, err := exec.CommandContext(ctx, "xcode-select", "-p").Output()
	if err != nil {
		return false
	}
	devDir := strings.TrimSpace(string(out))
	if devDir == "" {
		return false
	}
	if _, err := os.Stat(devDir); err != nil {
		return false
	}
	if _, err := os.Stat(filepath.Join(devDir, "usr", "bin", "simctl")); err != nil {
		return false
	}
	return true
}

// tailLines returns the last max lines of s, used to keep failure log
// records bounded.
func tailLines(s string, max int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) <= max {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-max:], "\n")
}
