package script

import (
	"errors"
	"fmt"
)

// Errors for script execution.
var (
	// ErrRunnerClosed is returned when running on a closed runner.
	ErrRunnerClosed = errors.New("script runner is closed")

	// ErrExecutionTimeout is returned when a script exceeds its deadline.
	ErrExecutionTimeout = errors.New("script execution timeout")
)

// Error reports a failed script. Cause is the drawing error that raised
// the Lua error, when there was one.
type Error struct {
	Name  string
	Cause error
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("script %s: %v", e.Name, e.Err)
}

// Unwrap exposes both the Lua error and the drawing cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
