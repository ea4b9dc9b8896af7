package cli

import "fmt"

// ExitError represents a command execution failure with a specific exit code.
//
// Cobra RunE functions return an ExitError instead of calling os.Exit
// directly, so tests can assert on exit codes without process termination.
// [Execute] extracts the code via [IsExitError] and performs the actual exit.
type ExitError struct {
	// Code is the exit code to return to the shell.
	Code int
}

// Error implements the error interface, matching the os/exec ExitError format.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError creates an [ExitError] with the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// IsExitError checks if an error is an [ExitError] and extracts its exit code.
// Returns (0, false) for nil or non-ExitError errors.
func IsExitError(err error) (int, bool) {
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code, true
	}
	return 0, false
}
