package renderer

import (
	"testing"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
	"github.com/dshills/asciicanvas/internal/renderer/backend"
)

func TestDrawMatchesText(t *testing.T) {
	c, err := canvas.New(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	c.DrawLine(canvas.Pt(1, 1), canvas.Pt(3, 1))

	b := backend.NewNullBackend(10, 6)
	_ = b.Init()
	Draw(b, c, 2, 1)

	want := []string{
		"          ",
		"  ------  ",
		"  |xxx |  ",
		"  |    |  ",
		"  ------  ",
		"          ",
	}
	for y, line := range want {
		if got := b.Line(y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
	if b.GetCell(2, 1).Attr != backend.AttrDim {
		t.Error("border should be dim")
	}
	if b.GetCell(3, 2).Attr != backend.AttrNone {
		t.Error("pixels should be unstyled")
	}
}

func TestDrawClipsToScreen(t *testing.T) {
	c, _ := canvas.New(20, 20)
	b := backend.NewNullBackend(5, 3)
	_ = b.Init()
	Draw(b, c, 0, 0)
	if got := b.Line(0); got != "-----" {
		t.Errorf("row 0 = %q", got)
	}
	if got := b.Line(1); got != "|    " {
		t.Errorf("row 1 = %q", got)
	}
}

func TestDrawText(t *testing.T) {
	b := backend.NewNullBackend(6, 1)
	_ = b.Init()
	if end := DrawText(b, 1, 0, "abc", backend.AttrReverse); end != 4 {
		t.Errorf("end = %d, want 4", end)
	}
	if got := b.Line(0); got != " abc  " {
		t.Errorf("line = %q", got)
	}
}
