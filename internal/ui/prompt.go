package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TerminalPrompter asks per-step yes/no questions, implementing the
// orchestrator's confirmation gate for interactive mode.
//
// The default answer is yes: an empty line confirms. Unrecognized input asks
// again. A read failure (for example stdin closing mid-run) is returned as
// an error, which aborts the rest of the run.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in and
// writing questions to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks whether the named step should run.
func (p *TerminalPrompter) Confirm(stepName string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "Proceed with: %s? [Y/n] ", stepName)

		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}
