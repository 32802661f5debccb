// Package command defines the drawing commands and their text grammar.
//
// Each command is a plain struct. The set is closed: only types in this
// package implement Command, and consumers dispatch with a type switch.
package command

import (
	"fmt"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

// Command is a parsed drawing command.
type Command interface {
	// Name returns the command's grammar token, e.g. "C" or "L".
	Name() string

	// Mutating reports whether the command edits the canvas and therefore
	// needs a history snapshot before it runs. Undo and Redo manage history
	// themselves and are not mutating in this sense.
	Mutating() bool

	// String returns the command in its text form.
	String() string

	sealed()
}

// CreateCanvas replaces the current canvas with a blank one.
type CreateCanvas struct {
	Width  int
	Height int
}

// DrawLine draws a horizontal or vertical line.
type DrawLine struct {
	From canvas.Point
	To   canvas.Point
}

// DrawRectangle draws a rectangle outline from two opposite corners.
type DrawRectangle struct {
	Corner1 canvas.Point
	Corner2 canvas.Point
}

// BucketFill flood-fills the region containing At with Color.
type BucketFill struct {
	At    canvas.Point
	Color rune
}

// Undo reverts the last mutation.
type Undo struct{}

// Redo reapplies the last undone mutation.
type Redo struct{}

// Save writes the rendered canvas to Path.
type Save struct {
	Path string
}

// Help prints the command summary.
type Help struct{}

// Quit ends the session.
type Quit struct{}

func (CreateCanvas) Name() string  { return "C" }
func (DrawLine) Name() string      { return "L" }
func (DrawRectangle) Name() string { return "R" }
func (BucketFill) Name() string    { return "B" }
func (Undo) Name() string          { return "U" }
func (Redo) Name() string          { return "Z" }
func (Save) Name() string          { return "S" }
func (Help) Name() string          { return "H" }
func (Quit) Name() string          { return "Q" }

func (CreateCanvas) Mutating() bool  { return true }
func (DrawLine) Mutating() bool      { return true }
func (DrawRectangle) Mutating() bool { return true }
func (BucketFill) Mutating() bool    { return true }
func (Undo) Mutating() bool          { return false }
func (Redo) Mutating() bool          { return false }
func (Save) Mutating() bool          { return false }
func (Help) Mutating() bool          { return false }
func (Quit) Mutating() bool          { return false }

func (c CreateCanvas) String() string { return fmt.Sprintf("C %d %d", c.Width, c.Height) }
func (c DrawLine) String() string {
	return fmt.Sprintf("L %d %d %d %d", c.From.X, c.From.Y, c.To.X, c.To.Y)
}
func (c DrawRectangle) String() string {
	return fmt.Sprintf("R %d %d %d %d", c.Corner1.X, c.Corner1.Y, c.Corner2.X, c.Corner2.Y)
}
func (c BucketFill) String() string { return fmt.Sprintf("B %d %d %c", c.At.X, c.At.Y, c.Color) }
func (Undo) String() string         { return "U" }
func (Redo) String() string         { return "Z" }
func (c Save) String() string       { return "S " + c.Path }
func (Help) String() string         { return "H" }
func (Quit) String() string         { return "Q" }

func (CreateCanvas) sealed()  {}
func (DrawLine) sealed()      {}
func (DrawRectangle) sealed() {}
func (BucketFill) sealed()    {}
func (Undo) sealed()          {}
func (Redo) sealed()          {}
func (Save) sealed()          {}
func (Help) sealed()          {}
func (Quit) sealed()          {}

// IsDiagonal reports whether the line is neither horizontal nor vertical.
func (c DrawLine) IsDiagonal() bool {
	return c.From.X != c.To.X && c.From.Y != c.To.Y
}

// HelpText is the summary printed by the H command.
const HelpText = `Commands:
  C w h           Create canvas (width x height)
  L x1 y1 x2 y2   Draw line (horizontal or vertical)
  R x1 y1 x2 y2   Draw rectangle
  B x y c         Bucket fill at (x,y) with color c
  U               Undo last action
  Z               Redo last undone action
  S <file>        Save canvas to file
  H               Show this help
  Q               Quit
`
