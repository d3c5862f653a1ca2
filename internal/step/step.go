// Package step models a named maintenance step made of shell commands.
//
// A step is the unit the orchestrator schedules, confirms, and counts. Its
// commands run strictly in order and every command runs regardless of
// earlier failures within the step; the step as a whole fails when at least
// one command fails. Commands whose binaries are absent are soft-skipped by
// the executor and never fail the step.
//
// Key types:
//   - [Step]: interface the orchestrator consumes
//   - [CommandStep]: production step backed by a [shell.Executor]
//   - [Outcome]: ordered per-command results with the step verdict
//   - [Progress]: sink for live execution events
package step

import (
	"context"
	"fmt"

	"macup/internal/shell"
)

// Progress receives live execution events from a running step.
//
// SetMessage updates the transient status text shown for the step. Line
// forwards one line of raw process output and may be called from multiple
// goroutines at once. CommandSkipped and CommandFailed surface notices the
// user should see inline. Use [NopProgress] when no display is attached.
type Progress interface {
	SetMessage(msg string)
	Line(line string)
	CommandSkipped(command, reason string)
	CommandFailed(command string, err error)
}

// NopProgress is a [Progress] that discards every event.
type NopProgress struct{}

func (NopProgress) SetMessage(string)             {}
func (NopProgress) Line(string)                   {}
func (NopProgress) CommandSkipped(string, string) {}
func (NopProgress) CommandFailed(string, error)   {}

// Outcome summarizes one execution of a step.
type Outcome struct {
	// Results holds one entry per command, in execution order.
	Results []shell.Result
}

// Failed reports whether the step failed: true when at least one command
// failed. A step whose commands were all soft-skipped, or a step with no
// commands at all, did not fail.
func (o Outcome) Failed() bool {
	for _, r := range o.Results {
		if r.Failed() {
			return true
		}
	}
	return false
}

// Skipped returns the number of soft-skipped commands.
func (o Outcome) Skipped() int {
	n := 0
	for _, r := range o.Results {
		if r.Status == shell.StatusSkipped {
			n++
		}
	}
	return n
}

// FailedCommands returns the results of the commands that failed, in
// execution order.
func (o Outcome) FailedCommands() []shell.Result {
	var failed []shell.Result
	for _, r := range o.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Step is a named unit of maintenance work.
//
// Run executes the step's commands and reports the aggregate [Outcome]. A
// step never returns a Go error: every way a command can go wrong is
// captured per command in the outcome.
type Step interface {
	Name() string
	Run(ctx context.Context, progress Progress) Outcome
}

// CommandStep is a [Step] defined by an ordered list of shell command
// strings, executed through an injected [shell.Executor].
type CommandStep struct {
	name     string
	commands []string
	executor shell.Executor
}

// NewCommandStep creates a step that runs commands in order via executor.
func NewCommandStep(name string, commands []string, executor shell.Executor) *CommandStep {
	return &CommandStep{name: name, commands: commands, executor: executor}
}

// Name returns the human-readable step name.
func (s *CommandStep) Name() string {
	return s.name
}

// Commands returns the step's command strings in execution order.
func (s *CommandStep) Commands() []string {
	return s.commands
}

// Run executes every command in order. A failing command records its
// failure and execution moves on to the next command; nothing aborts the
// remainder of the step. With more than one command the progress message is
// updated to "name (i of N)" before each command.
func (s *CommandStep) Run(ctx context.Context, progress Progress) Outcome {
	outcome := Outcome{Results: make([]shell.Result, 0, len(s.commands))}

	total := len(s.commands)
	for i, command := range s.commands {
		if total > 1 {
			progress.SetMessage(fmt.Sprintf("%s (%d of %d)", s.name, i+1, total))
		}

		res := s.executor.Run(ctx, command, progress.Line)
		outcome.Results = append(outcome.Results, res)

		switch res.Status {
		case shell.StatusSkipped:
			progress.CommandSkipped(command, res.SkipReason)
		case shell.StatusFailed:
			progress.CommandFailed(command, res.Err)
		}
	}

	return outcome
}
