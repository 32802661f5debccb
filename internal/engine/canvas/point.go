package canvas

import "fmt"

// Point is a 1-based canvas coordinate.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// MoveX returns the point shifted horizontally by dx.
func (p Point) MoveX(dx int) Point {
	return Point{X: p.X + dx, Y: p.Y}
}

// MoveY returns the point shifted vertically by dy.
func (p Point) MoveY(dy int) Point {
	return Point{X: p.X, Y: p.Y + dy}
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
