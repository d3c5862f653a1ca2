package shell

import (
	"context"
	"sync"
)

// MockExecutor implements [Executor] for testing without spawning
// processes.
//
// Results are scripted per command string; commands with no entry receive
// Default. Lines listed in Emit are forwarded to the sink before the
// result is returned, and every invocation is appended to Recorded in
// order.
type MockExecutor struct {
	// Results maps a command string to the result it should produce.
	Results map[string]Result

	// Default is returned for commands absent from Results. Its zero
	// value is a succeeded command.
	Default Result

	// Emit maps a command string to output lines pushed to the sink.
	Emit map[string][]string

	mu sync.Mutex

	// Recorded collects the command strings in invocation order.
	Recorded []string
}

// Run implements [Executor].
func (m *MockExecutor) Run(_ context.Context, command string, sink LineSink) Result {
	m.mu.Lock()
	m.Recorded = append(m.Recorded, command)
	m.mu.Unlock()

	if sink != nil {
		for _, line := range m.Emit[command] {
			sink(line)
		}
	}

	res, ok := m.Results[command]
	if !ok {
		res = m.Default
	}
	if res.Command == "" {
		res.Command = command
	}
	return res
}
