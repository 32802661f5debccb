package command

import (
	"errors"
	"testing"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"C 20 4", CreateCanvas{Width: 20, Height: 4}},
		{"c 20 4", CreateCanvas{Width: 20, Height: 4}},
		{"  C   3\t7  ", CreateCanvas{Width: 3, Height: 7}},
		{"L 1 2 6 2", DrawLine{From: canvas.Pt(1, 2), To: canvas.Pt(6, 2)}},
		{"R 14 1 18 3", DrawRectangle{Corner1: canvas.Pt(14, 1), Corner2: canvas.Pt(18, 3)}},
		{"B 10 3 o", BucketFill{At: canvas.Pt(10, 3), Color: 'o'}},
		{"b 1 1 é", BucketFill{At: canvas.Pt(1, 1), Color: 'é'}},
		{"S out.txt", Save{Path: "out.txt"}},
		{"U", Undo{}},
		{"u", Undo{}},
		{"Z", Redo{}},
		{"H", Help{}},
		{"q", Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"", "empty command"},
		{"   ", "empty command"},
		{"X 1 2", "unknown command: X. Type H for help"},
		{"draw", "unknown command: DRAW. Type H for help"},
		{"C 20", "usage: C <width> <height>"},
		{"C 20 4 1", "usage: C <width> <height>"},
		{"C a 4", "width must be a number"},
		{"C 20 0", "height must be positive"},
		{"C -5 4", "width must be positive"},
		{"L 1 2 3", "usage: L <x1> <y1> <x2> <y2>"},
		{"L 1 y 3 4", "y1 must be a number"},
		{"R 1 2 3 0", "y2 must be positive"},
		{"R 1 2", "usage: R <x1> <y1> <x2> <y2>"},
		{"B 1 1", "usage: B <x> <y> <color>"},
		{"B 1 1 oo", "color must be a single character"},
		{"B 0 1 o", "x must be positive"},
		{"S", "usage: S <filename>"},
		{"S a b", "usage: S <filename>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("Parse(%q) error does not match ErrParse", tt.input)
			}
			if err.Error() != tt.msg {
				t.Errorf("Parse(%q) error = %q, want %q", tt.input, err.Error(), tt.msg)
			}
		})
	}
}

func TestMutating(t *testing.T) {
	mutating := []Command{CreateCanvas{}, DrawLine{}, DrawRectangle{}, BucketFill{}}
	for _, c := range mutating {
		if !c.Mutating() {
			t.Errorf("%s should be mutating", c.Name())
		}
	}
	other := []Command{Undo{}, Redo{}, Save{}, Help{}, Quit{}}
	for _, c := range other {
		if c.Mutating() {
			t.Errorf("%s should not be mutating", c.Name())
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, line := range []string{"C 20 4", "L 1 2 6 2", "R 14 1 18 3", "B 10 3 o", "S out.txt", "U", "Z", "H", "Q"} {
		cmd, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", line, err)
		}
		if cmd.String() != line {
			t.Errorf("String() = %q, want %q", cmd.String(), line)
		}
	}
}

func TestIsDiagonal(t *testing.T) {
	if !(DrawLine{From: canvas.Pt(1, 1), To: canvas.Pt(2, 2)}).IsDiagonal() {
		t.Error("(1,1)-(2,2) should be diagonal")
	}
	if (DrawLine{From: canvas.Pt(1, 1), To: canvas.Pt(1, 5)}).IsDiagonal() {
		t.Error("vertical line reported diagonal")
	}
	if (DrawLine{From: canvas.Pt(3, 3), To: canvas.Pt(3, 3)}).IsDiagonal() {
		t.Error("single point reported diagonal")
	}
}
