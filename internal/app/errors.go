package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrInputNotFound indicates the command file does not exist.
	ErrInputNotFound = errors.New("file not found")
)

// InputError reports a command file that could not be opened.
type InputError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	if errors.Is(e.Err, ErrInputNotFound) {
		return fmt.Sprintf("file not found: %s", e.Path)
	}
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Err
}
