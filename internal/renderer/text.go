package renderer

import (
	"io"
	"strings"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

// Border characters of the text representation.
const (
	HorizontalBorder = '-'
	VerticalBorder   = '|'
)

// Render returns the canvas framed by a one-character border. Every line,
// including the last, ends with '\n'.
func Render(c *canvas.Canvas) string {
	var sb strings.Builder
	sb.Grow((c.Width() + 3) * (c.Height() + 2))
	write(&sb, c)
	return sb.String()
}

// WriteTo writes the same bytes as Render to w.
func WriteTo(w io.Writer, c *canvas.Canvas) (int64, error) {
	n, err := io.WriteString(w, Render(c))
	return int64(n), err
}

func write(sb *strings.Builder, c *canvas.Canvas) {
	border := strings.Repeat(string(HorizontalBorder), c.Width()+2)

	sb.WriteString(border)
	sb.WriteByte('\n')
	for y := 1; y <= c.Height(); y++ {
		sb.WriteRune(VerticalBorder)
		sb.WriteString(c.Row(y))
		sb.WriteRune(VerticalBorder)
		sb.WriteByte('\n')
	}
	sb.WriteString(border)
	sb.WriteByte('\n')
}
