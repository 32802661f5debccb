package canvas

import "fmt"

// Characters used on the canvas.
const (
	// Blank is the character every cell holds after creation.
	Blank = ' '
	// Line is the character painted by DrawLine and DrawRectangle.
	Line = 'x'
)

// Canvas is a fixed-size grid of runes with 1-based coordinates.
// Pixels are stored row-major with 0-based indexes; the conversion happens
// only inside this file.
type Canvas struct {
	width  int
	height int
	pixels []rune
}

// New creates a blank canvas of the given size.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	c := &Canvas{
		width:  width,
		height: height,
		pixels: make([]rune, width*height),
	}
	for i := range c.pixels {
		c.pixels[i] = Blank
	}
	return c, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// index converts a 1-based point to an offset into pixels.
func (c *Canvas) index(p Point) int {
	return (p.Y-1)*c.width + (p.X - 1)
}

// Contains reports whether p lies inside the canvas.
func (c *Canvas) Contains(p Point) bool {
	return p.X >= 1 && p.X <= c.width && p.Y >= 1 && p.Y <= c.height
}

// ValidateBounds returns an *OutOfBoundsError for the first point
// outside the canvas.
func (c *Canvas) ValidateBounds(points ...Point) error {
	for _, p := range points {
		if !c.Contains(p) {
			return &OutOfBoundsError{Point: p, Width: c.width, Height: c.height}
		}
	}
	return nil
}

// Get returns the pixel at p. p must be inside the canvas.
func (c *Canvas) Get(p Point) rune {
	return c.pixels[c.index(p)]
}

// Set paints the pixel at p. p must be inside the canvas.
func (c *Canvas) Set(p Point, r rune) {
	c.pixels[c.index(p)] = r
}

// Row returns row y (1-based) as a string.
func (c *Canvas) Row(y int) string {
	start := (y - 1) * c.width
	return string(c.pixels[start : start+c.width])
}

// DrawLine paints every pixel in the box spanned by from and to.
// For axis-aligned endpoints this is a horizontal or vertical segment;
// endpoint order does not matter.
func (c *Canvas) DrawLine(from, to Point) {
	x1, x2 := min(from.X, to.X), max(from.X, to.X)
	y1, y2 := min(from.Y, to.Y), max(from.Y, to.Y)

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			c.Set(Point{X: x, Y: y}, Line)
		}
	}
}

// DrawRectangle draws the outline of the rectangle with opposite corners
// c1 and c2. The interior is left untouched.
func (c *Canvas) DrawRectangle(c1, c2 Point) {
	topLeft := Point{X: min(c1.X, c2.X), Y: min(c1.Y, c2.Y)}
	bottomRight := Point{X: max(c1.X, c2.X), Y: max(c1.Y, c2.Y)}
	topRight := Point{X: bottomRight.X, Y: topLeft.Y}
	bottomLeft := Point{X: topLeft.X, Y: bottomRight.Y}

	c.DrawLine(topLeft, topRight)
	c.DrawLine(bottomLeft, bottomRight)
	c.DrawLine(topLeft, bottomLeft)
	c.DrawLine(topRight, bottomRight)
}

// Fill repaints the 4-connected region of same-colored pixels containing
// start with color, and returns the number of pixels painted. Pixels of any
// other color bound the region.
//
// The traversal is breadth-first with an explicit queue. A point is marked
// visited when it is enqueued, so no point is ever queued twice; time and
// extra space are proportional to the region, not the canvas.
func (c *Canvas) Fill(start Point, color rune) int {
	target := c.Get(start)
	if target == color {
		return 0
	}

	queue := []Point{start}
	visited := map[Point]struct{}{start: {}}
	painted := 0

	for head := 0; head < len(queue); head++ {
		p := queue[head]
		c.Set(p, color)
		painted++

		for _, n := range [4]Point{p.MoveX(1), p.MoveX(-1), p.MoveY(1), p.MoveY(-1)} {
			if !c.Contains(n) {
				continue
			}
			if _, seen := visited[n]; seen {
				continue
			}
			if c.Get(n) != target {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	return painted
}

// Clone returns an independent deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	return &Canvas{
		width:  c.width,
		height: c.height,
		pixels: append([]rune(nil), c.pixels...),
	}
}

// Equal reports whether both canvases have the same size and pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.width != other.width || c.height != other.height {
		return false
	}
	for i, r := range c.pixels {
		if other.pixels[i] != r {
			return false
		}
	}
	return true
}
