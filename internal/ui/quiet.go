package ui

import (
	"fmt"
	"io"

	"macup/internal/step"
	"macup/internal/updater"
)

// QuietRenderer collapses run progress to a single overwritten line: the
// current step's name followed by a verdict glyph. Process output, skip
// notices, and the inter-step animation are suppressed; the summary still
// prints in full.
type QuietRenderer struct {
	w      io.Writer
	styles Styles
}

// NewQuietRenderer creates a renderer writing to w.
func NewQuietRenderer(w io.Writer, styles Styles) *QuietRenderer {
	return &QuietRenderer{w: w, styles: styles}
}

func (r *QuietRenderer) RunStarted(int) {}

// StepStarted overwrites the progress line with the new step's name. The
// returned progress view discards everything the step reports.
func (r *QuietRenderer) StepStarted(index, total int, name string) step.Progress {
	fmt.Fprintf(r.w, "\r🔧 [%d/%d] %s...", index, total, name)
	return step.NopProgress{}
}

func (r *QuietRenderer) StepSkipped(int, int, string) {}

func (r *QuietRenderer) StepCompleted(int, int, string) {
	fmt.Fprint(r.w, " ✅")
}

func (r *QuietRenderer) StepFailed(int, int, string) {
	fmt.Fprint(r.w, " ❌")
}

// RunCompleted terminates the progress line and prints the summary block.
func (r *QuietRenderer) RunCompleted(stats updater.RunStatistics) {
	fmt.Fprintln(r.w)
	renderSummary(r.w, r.styles, stats)
}
