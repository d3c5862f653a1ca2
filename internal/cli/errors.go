package cli

import "fmt"

// ExitError represents a command failure with a specific exit code.
//
// This error type allows Cobra RunE functions to signal non-zero exit codes
// without calling os.Exit() directly, enabling testable CLI behavior. When a
// command fails it returns NewExitError(code), which propagates up to
// [Execute] where [IsExitError] extracts the code for the process exit.
//
// Step failures never produce an ExitError: a run that finishes exits zero
// no matter how many steps failed. Non-zero codes are reserved for startup
// faults and for runs cut short, such as a confirmation prompt that could
// not be read.
type ExitError struct {
	// Code is the exit code to return to the shell.
	// Convention: 0 = success, 1 = general error.
	Code int
}

// Error implements the error interface, returning a string in the format
// "exit status N". This matches the standard os/exec ExitError format for
// consistency with subprocess exit messages.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
//
// Use this in Cobra RunE functions to signal failure after reporting it:
//
//	if err != nil {
//	    fmt.Fprintf(app.ErrOut, "Error: %v\n", err)
//	    return NewExitError(1)
//	}
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError checks if an error is an [ExitError] and extracts its exit
// code.
//
// Returns (code, true) if err is an *ExitError, allowing the caller to
// handle the specific exit code. Returns (0, false) for nil or
// non-ExitError errors.
func IsExitError(err error) (int, bool) {
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code, true
	}
	return 0, false
}
