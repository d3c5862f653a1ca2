package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"macup/internal/step"
	"macup/internal/updater"
)

// spinnerFrames are the animation frames of the live step indicator.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

// spinnerInterval is the frame advance rate.
const spinnerInterval = 120 * time.Millisecond

// clearLine returns the cursor to column one and erases the line, so the
// live indicator can be redrawn in place.
const clearLine = "\r\x1b[2K"

// SpinnerRenderer renders each running step as an animated line with
// pass-through process output printed above it. It implements the
// orchestrator's display hooks and hands each started step a live
// [step.Progress] view.
//
// The renderer relies on the orchestrator's call ordering: at most one step
// is live at a time, and every started step ends in StepCompleted or
// StepFailed before the next event.
type SpinnerRenderer struct {
	w       io.Writer
	styles  Styles
	current *spinnerView
}

// NewSpinnerRenderer creates a renderer writing to w.
func NewSpinnerRenderer(w io.Writer, styles Styles) *SpinnerRenderer {
	return &SpinnerRenderer{w: w, styles: styles}
}

// RunStarted announces the number of steps about to run.
func (r *SpinnerRenderer) RunStarted(total int) {
	fmt.Fprintf(r.w, "🔧 Starting %d maintenance steps...\n\n", total)
}

// StepStarted begins the live line for a step and returns its progress view.
func (r *SpinnerRenderer) StepStarted(index, total int, name string) step.Progress {
	v := newSpinnerView(r.w, r.styles, fmt.Sprintf("[%d/%d] %s...", index, total, name))
	r.current = v
	return v
}

// StepSkipped prints the skip notice for a step declined at the gate.
func (r *SpinnerRenderer) StepSkipped(index, total int, _ string) {
	fmt.Fprintf(r.w, "⏭️  [%d/%d] %s\n", index, total, r.styles.Warning.Render("Skipped."))
}

// StepCompleted stops the live line and prints the completion line.
func (r *SpinnerRenderer) StepCompleted(index, total int, name string) {
	r.stopCurrent()
	fmt.Fprintf(r.w, "%s\n", r.styles.Success.Render(fmt.Sprintf("[%d/%d] ✅ %s", index, total, name)))
}

// StepFailed stops the live line and prints the failure line.
func (r *SpinnerRenderer) StepFailed(index, total int, name string) {
	r.stopCurrent()
	fmt.Fprintf(r.w, "%s\n", r.styles.Failure.Render(fmt.Sprintf("[%d/%d] ❌ Failed: %s", index, total, name)))
}

// RunCompleted prints the summary block.
func (r *SpinnerRenderer) RunCompleted(stats updater.RunStatistics) {
	renderSummary(r.w, r.styles, stats)
}

func (r *SpinnerRenderer) stopCurrent() {
	if r.current != nil {
		r.current.stop()
		r.current = nil
	}
}

// spinnerView is the live display of one running step. All writes go
// through the mutex; process output arrives from concurrent stream readers.
type spinnerView struct {
	w      io.Writer
	styles Styles

	mu       sync.Mutex
	message  string
	frame    int
	finished bool
	done     chan struct{}
}

func newSpinnerView(w io.Writer, styles Styles, message string) *spinnerView {
	v := &spinnerView{
		w:       w,
		styles:  styles,
		message: message,
		done:    make(chan struct{}),
	}

	v.mu.Lock()
	v.redraw()
	v.mu.Unlock()

	go v.spin()
	return v
}

// spin advances the frame until the step finishes.
func (v *spinnerView) spin() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-v.done:
			return
		case <-ticker.C:
			v.mu.Lock()
			if !v.finished {
				v.frame++
				v.redraw()
			}
			v.mu.Unlock()
		}
	}
}

// redraw repaints the live line. Callers must hold the mutex.
func (v *spinnerView) redraw() {
	frame := spinnerFrames[v.frame%len(spinnerFrames)]
	fmt.Fprintf(v.w, "%s%s %s", clearLine, v.styles.Spinner.Render(frame), v.message)
}

// SetMessage replaces the live status text, used for per-command counters.
func (v *spinnerView) SetMessage(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.finished {
		return
	}
	v.message = v.styles.Dim.Render(msg)
	v.redraw()
}

// Line prints one line of process output above the live line.
func (v *spinnerView) Line(line string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.w, clearLine)
	fmt.Fprintln(v.w, line)
	if !v.finished {
		v.redraw()
	}
}

// CommandSkipped prints the soft-skip notice for one command.
func (v *spinnerView) CommandSkipped(_ string, reason string) {
	v.printNotice(v.styles.Warning.Render(reason))
}

// CommandFailed prints the failure notice for one command.
func (v *spinnerView) CommandFailed(command string, err error) {
	v.printNotice(v.styles.Failure.Render(fmt.Sprintf("⚠️ Command failed: %s - %v", command, err)))
}

func (v *spinnerView) printNotice(notice string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.w, clearLine)
	fmt.Fprintln(v.w, notice)
	if !v.finished {
		v.redraw()
	}
}

// stop ends the animation and clears the live line so the step's terminal
// line can take its place.
func (v *spinnerView) stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.finished {
		return
	}
	v.finished = true
	close(v.done)
	fmt.Fprint(v.w, clearLine)
}
