// Package ui renders run progress, confirmation prompts, and the summary to
// a terminal.
//
// Two renderers implement the orchestrator's display hooks: [SpinnerRenderer]
// animates each running step and passes process output through above the
// live line, while [QuietRenderer] collapses the run to one compact line.
// [TerminalPrompter] supplies the interactive-mode confirmation gate.
package ui

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles shared by the renderers. Use
// [DefaultStyles] for the standard palette; the zero value renders plain
// text.
type Styles struct {
	// Header styles the banner and the summary heading.
	Header lipgloss.Style

	// Success styles completed steps and the closing line.
	Success lipgloss.Style

	// Failure styles failed steps and command failure notices.
	Failure lipgloss.Style

	// Warning styles skip notices.
	Warning lipgloss.Style

	// Info styles the duration line of the summary.
	Info lipgloss.Style

	// Dim styles the per-command progress counter.
	Dim lipgloss.Style

	// Spinner styles the animated frame glyph.
	Spinner lipgloss.Style
}

// DefaultStyles returns the standard terminal palette.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	}
}
