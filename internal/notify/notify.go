// Package notify delivers the end-of-run desktop notification.
//
// Notifications are best-effort: delivery failures are returned for the
// caller to log and never affect the run outcome or exit code.
package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// Notifier posts one desktop notification.
type Notifier interface {
	Send(title, body string) error
}

// DesktopNotifier posts Notification Center notifications through
// osascript.
type DesktopNotifier struct {
	// run executes the AppleScript snippet. Swappable for tests; defaults
	// to invoking osascript.
	run func(script string) error
}

// NewDesktopNotifier creates a [DesktopNotifier] backed by osascript.
func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{run: runOsascript}
}

// Send implements [Notifier].
func (n *DesktopNotifier) Send(title, body string) error {
	script := fmt.Sprintf("display notification \"%s\" with title \"%s\"", escape(body), escape(title))
	if err := n.run(script); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	return nil
}

func runOsascript(script string) error {
	return exec.Command("osascript", "-e", script).Run()
}

// escape makes s safe inside a double-quoted AppleScript string literal.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// MockNotifier implements [Notifier] for testing.
type MockNotifier struct {
	// Sent records every delivered notification in order.
	Sent []Notification

	// Err, when set, is returned by Send after recording.
	Err error
}

// Notification is one recorded Send call.
type Notification struct {
	Title string
	Body  string
}

// Send implements [Notifier].
func (m *MockNotifier) Send(title, body string) error {
	m.Sent = append(m.Sent, Notification{Title: title, Body: body})
	return m.Err
}
