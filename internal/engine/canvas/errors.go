package canvas

import (
	"errors"
	"fmt"
)

// Errors returned by canvas operations.
var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// OutOfBoundsError reports a point that lies outside the canvas.
type OutOfBoundsError struct {
	Point  Point
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("point %s out of bounds (canvas: %dx%d)", e.Point, e.Width, e.Height)
}

// Is reports whether target is ErrOutOfBounds.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
