package session

import (
	"errors"
	"fmt"
)

// Session errors. All of them are recoverable; the REPL reports them and
// reads the next command.
var (
	// ErrNoCanvas indicates a drawing command before any C command.
	ErrNoCanvas = errors.New("canvas not created. Use: C <width> <height>")

	// ErrInvalidGeometry indicates a shape the engine cannot draw.
	ErrInvalidGeometry = errors.New("only horizontal/vertical lines supported")

	// ErrSizeLimitExceeded indicates a canvas larger than the configured maximum.
	ErrSizeLimitExceeded = errors.New("canvas size limit exceeded")

	// ErrReservedColor indicates a fill with the line character.
	ErrReservedColor = errors.New("color is reserved")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "save")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
