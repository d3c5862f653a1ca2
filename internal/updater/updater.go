// Package updater orchestrates a maintenance run from start to finish.
//
// The updater drives each [step.Step] through a fixed lifecycle: a step is
// pending, may be gated behind a confirmation, and ends as exactly one of
// skipped (declined at the gate), completed, or failed. Failures are
// isolated; a failed step never prevents later steps from running. The
// per-step verdicts are folded into [RunStatistics] for the end-of-run
// summary.
//
// Key types:
//   - [Updater]: sequential step orchestrator
//   - [Gate]: optional per-step confirmation hook
//   - [Renderer]: display hooks for run and step transitions
//   - [RunStatistics]: aggregate counts for a finished run
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"macup/internal/step"
)

// Gate asks whether a step should run.
//
// Confirm returns false to skip the step. An error means the answer could
// not be obtained at all (for example stdin closed mid-prompt) and aborts
// the remainder of the run.
type Gate interface {
	Confirm(stepName string) (bool, error)
}

// Renderer receives display events as the run progresses.
//
// StepStarted returns the [step.Progress] sink the running step reports
// through; exactly one of StepCompleted or StepFailed follows for every
// started step. StepSkipped is emitted instead when the gate declines a
// step. RunCompleted fires only when the run reaches its natural end.
// Indices are 1-based.
type Renderer interface {
	RunStarted(total int)
	StepStarted(index, total int, name string) step.Progress
	StepSkipped(index, total int, name string)
	StepCompleted(index, total int, name string)
	StepFailed(index, total int, name string)
	RunCompleted(stats RunStatistics)
}

// RunStatistics aggregates the outcome of a maintenance run.
//
// At the natural end of a run Completed+Skipped+Failed equals TotalSteps;
// every step lands in exactly one bucket. Steps whose commands were all
// soft-skipped count as completed.
type RunStatistics struct {
	TotalSteps int
	Completed  int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	Elapsed    time.Duration
}

// Updater runs a fixed sequence of steps in order.
//
// Construct with [New]; the gate and the inter-step pause are optional and
// off by default. Run may be called more than once, each call produces an
// independent [RunStatistics].
type Updater struct {
	steps    []step.Step
	renderer Renderer
	logger   *slog.Logger
	gate     Gate
	pause    time.Duration
}

// New creates an updater over steps. The renderer receives all display
// events and the logger all run and step records.
func New(steps []step.Step, renderer Renderer, logger *slog.Logger) *Updater {
	return &Updater{steps: steps, renderer: renderer, logger: logger}
}

// SetGate installs a per-step confirmation gate. Without a gate every step
// runs unprompted.
func (u *Updater) SetGate(gate Gate) {
	u.gate = gate
}

// SetPause sets a presentation pause inserted after each successful step so
// terminal output remains readable. Zero disables the pause.
func (u *Updater) SetPause(d time.Duration) {
	u.pause = d
}

// Run executes every step in order and returns the aggregate statistics.
//
// Step failures are contained: they are counted and rendered, and the run
// moves on. Run returns a non-nil error only when the run itself is cut
// short, by a gate that cannot obtain an answer or by context cancellation
// between steps. The statistics collected up to that point are still
// returned.
func (u *Updater) Run(ctx context.Context) (RunStatistics, error) {
	total := len(u.steps)
	stats := RunStatistics{TotalSteps: total, StartedAt: time.Now()}

	u.logger.Info("run started", "steps", total)
	u.renderer.RunStarted(total)

	for i, st := range u.steps {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(stats.StartedAt)
			u.logger.Warn("run aborted", "step", st.Name(), "error", err)
			return stats, fmt.Errorf("run aborted: %w", err)
		}

		index := i + 1
		name := st.Name()

		if u.gate != nil {
			proceed, err := u.gate.Confirm(name)
			if err != nil {
				stats.Elapsed = time.Since(stats.StartedAt)
				u.logger.Error("confirmation failed", "step", name, "error", err)
				return stats, fmt.Errorf("confirmation failed for %q: %w", name, err)
			}
			if !proceed {
				stats.Skipped++
				u.logger.Info("step skipped", "step", name, "index", index)
				u.renderer.StepSkipped(index, total, name)
				continue
			}
		}

		u.logger.Info("step started", "step", name, "index", index, "total", total)
		progress := u.renderer.StepStarted(index, total, name)

		outcome := st.Run(ctx, progress)

		if outcome.Failed() {
			stats.Failed++
			u.logger.Error("step failed",
				"step", name,
				"commands", len(outcome.Results),
				"failed_commands", len(outcome.FailedCommands()))
			u.renderer.StepFailed(index, total, name)
			continue
		}

		stats.Completed++
		u.logger.Info("step completed",
			"step", name,
			"commands", len(outcome.Results),
			"skipped_commands", outcome.Skipped())
		u.renderer.StepCompleted(index, total, name)

		if u.pause > 0 {
			time.Sleep(u.pause)
		}
	}

	stats.Elapsed = time.Since(stats.StartedAt)
	u.logger.Info("run completed",
		"total", stats.TotalSteps,
		"completed", stats.Completed,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
		"duration", stats.Elapsed)
	u.renderer.RunCompleted(stats)

	return stats, nil
}
