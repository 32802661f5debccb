package renderer

import (
	"github.com/dshills/asciicanvas/internal/engine/canvas"
	"github.com/dshills/asciicanvas/internal/renderer/backend"
)

// Draw paints the bordered canvas on b with its top-left border corner at
// (x0, y0). Canvas point (x, y) lands on screen cell (x0+x, y0+y). Cells
// beyond the screen are clipped by the backend.
func Draw(b backend.Backend, c *canvas.Canvas, x0, y0 int) {
	w, h := c.Width(), c.Height()
	border := backend.Cell{Rune: HorizontalBorder, Attr: backend.AttrDim}
	side := backend.Cell{Rune: VerticalBorder, Attr: backend.AttrDim}

	for x := 0; x < w+2; x++ {
		b.SetCell(x0+x, y0, border)
		b.SetCell(x0+x, y0+h+1, border)
	}
	for y := 1; y <= h; y++ {
		b.SetCell(x0, y0+y, side)
		for x := 1; x <= w; x++ {
			b.SetCell(x0+x, y0+y, backend.Cell{Rune: c.Get(canvas.Pt(x, y))})
		}
		b.SetCell(x0+w+1, y0+y, side)
	}
}

// DrawText writes s on row y starting at column x and returns the column
// after the last rune.
func DrawText(b backend.Backend, x, y int, s string, attr backend.Attr) int {
	for _, r := range s {
		b.SetCell(x, y, backend.Cell{Rune: r, Attr: attr})
		x++
	}
	return x
}
