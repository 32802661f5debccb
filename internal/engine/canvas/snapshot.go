package canvas

// Snapshot is an immutable copy of a canvas taken for undo/redo, or the
// NoCanvas sentinel recording that no canvas existed.
//
// The zero value is NoCanvas.
type Snapshot struct {
	present bool
	width   int
	height  int
	pixels  []rune
}

// NoCanvas is the snapshot of a session without a canvas.
var NoCanvas = Snapshot{}

// Capture returns a snapshot of c. A nil canvas yields NoCanvas.
func Capture(c *Canvas) Snapshot {
	if c == nil {
		return NoCanvas
	}
	return Snapshot{
		present: true,
		width:   c.width,
		height:  c.height,
		pixels:  append([]rune(nil), c.pixels...),
	}
}

// IsEmpty reports whether the snapshot is NoCanvas.
func (s Snapshot) IsEmpty() bool {
	return !s.present
}

// Width returns the captured width, or 0 for NoCanvas.
func (s Snapshot) Width() int {
	return s.width
}

// Height returns the captured height, or 0 for NoCanvas.
func (s Snapshot) Height() int {
	return s.height
}

// Restore returns a new canvas with the captured contents, or nil for
// NoCanvas. Each call returns an independent copy, so a snapshot can be
// restored any number of times.
func (s Snapshot) Restore() *Canvas {
	if !s.present {
		return nil
	}
	return &Canvas{
		width:  s.width,
		height: s.height,
		pixels: append([]rune(nil), s.pixels...),
	}
}
