// Package canvas provides the drawing surface for the engine.
//
// A Canvas is a fixed-size grid of runes addressed with 1-based Points:
// (1,1) is the top-left pixel and (Width, Height) the bottom-right one.
// Borders are not part of the grid; they are added by the renderer.
//
// # Drawing
//
// Lines are axis-aligned and their endpoints may be given in any order:
//
//	c, _ := canvas.New(20, 4)
//	c.DrawLine(canvas.Pt(1, 2), canvas.Pt(6, 2))
//	c.DrawRectangle(canvas.Pt(14, 1), canvas.Pt(18, 3))
//	c.Fill(canvas.Pt(10, 3), 'o')
//
// Callers validate coordinates with ValidateBounds before drawing; the
// drawing methods assume valid input.
//
// # Snapshots
//
// Capture takes a deep copy of a canvas for undo/redo. Restore returns a new,
// independent canvas. NoCanvas is the snapshot of "no canvas exists yet".
package canvas
