package ui

import (
	"fmt"
	"io"
	"time"

	"macup/internal/updater"
)

// ClearScreen erases the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\x1b[2J\x1b[1;1H")
}

// Banner prints the opening line of a maintenance run.
func Banner(w io.Writer, styles Styles) {
	fmt.Fprintln(w, styles.Header.Render("🔧 Starting macOS maintenance and updates..."))
	fmt.Fprintln(w)
}

// Farewell prints the closing line after a finished run.
func Farewell(w io.Writer, styles Styles) {
	fmt.Fprintln(w, styles.Success.Render("🎉 All updates complete! Your system is squeaky clean!"))
}

// renderSummary writes the end-of-run summary block. The skipped and failed
// lines appear only when their counts are non-zero.
func renderSummary(w io.Writer, styles Styles, stats updater.RunStatistics) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render("📊 Update Summary"))
	fmt.Fprintf(w, "   ✅ Total steps: %d\n", stats.TotalSteps)
	fmt.Fprintf(w, "   ✅ Completed: %d\n", stats.Completed)
	if stats.Skipped > 0 {
		fmt.Fprintln(w, styles.Warning.Render(fmt.Sprintf("   ⏭️ Skipped: %d", stats.Skipped)))
	}
	if stats.Failed > 0 {
		fmt.Fprintln(w, styles.Failure.Render(fmt.Sprintf("   ❌ Failed: %d", stats.Failed)))
	}
	fmt.Fprintln(w, styles.Info.Render(fmt.Sprintf("   ⏱️ Duration: %s", formatDuration(stats.Elapsed))))
}

// formatDuration renders elapsed time as whole minutes and seconds.
func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}
