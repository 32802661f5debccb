package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

// ErrParse is wrapped by every error returned from Parse.
var ErrParse = errors.New("parse error")

// parseError carries a user-facing message and matches ErrParse.
type parseError struct {
	msg string
}

func (e *parseError) Error() string        { return e.msg }
func (e *parseError) Is(target error) bool { return target == ErrParse }

func errorf(format string, args ...any) error {
	return &parseError{msg: fmt.Sprintf(format, args...)}
}

// Usage strings for each command.
const (
	usageCanvas    = "C <width> <height>"
	usageLine      = "L <x1> <y1> <x2> <y2>"
	usageRectangle = "R <x1> <y1> <x2> <y2>"
	usageFill      = "B <x> <y> <color>"
	usageSave      = "S <filename>"
)

// Parse turns one input line into a Command. The first token is
// case-insensitive; arguments are separated by whitespace.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errorf("empty command")
	}

	switch name := strings.ToUpper(fields[0]); name {
	case "C":
		return parseCanvas(fields)
	case "L":
		from, to, err := parseTwoPoints(fields, usageLine)
		if err != nil {
			return nil, err
		}
		return DrawLine{From: from, To: to}, nil
	case "R":
		c1, c2, err := parseTwoPoints(fields, usageRectangle)
		if err != nil {
			return nil, err
		}
		return DrawRectangle{Corner1: c1, Corner2: c2}, nil
	case "B":
		return parseFill(fields)
	case "S":
		if err := require(fields, 2, usageSave); err != nil {
			return nil, err
		}
		return Save{Path: fields[1]}, nil
	case "U":
		return Undo{}, nil
	case "Z":
		return Redo{}, nil
	case "H":
		return Help{}, nil
	case "Q":
		return Quit{}, nil
	default:
		return nil, errorf("unknown command: %s. Type H for help", name)
	}
}

func parseCanvas(f []string) (Command, error) {
	if err := require(f, 3, usageCanvas); err != nil {
		return nil, err
	}
	w, err := positive(f[1], "width")
	if err != nil {
		return nil, err
	}
	h, err := positive(f[2], "height")
	if err != nil {
		return nil, err
	}
	return CreateCanvas{Width: w, Height: h}, nil
}

func parseTwoPoints(f []string, usage string) (canvas.Point, canvas.Point, error) {
	if err := require(f, 5, usage); err != nil {
		return canvas.Point{}, canvas.Point{}, err
	}
	var v [4]int
	for i, name := range [4]string{"x1", "y1", "x2", "y2"} {
		n, err := positive(f[i+1], name)
		if err != nil {
			return canvas.Point{}, canvas.Point{}, err
		}
		v[i] = n
	}
	return canvas.Pt(v[0], v[1]), canvas.Pt(v[2], v[3]), nil
}

func parseFill(f []string) (Command, error) {
	if err := require(f, 4, usageFill); err != nil {
		return nil, err
	}
	x, err := positive(f[1], "x")
	if err != nil {
		return nil, err
	}
	y, err := positive(f[2], "y")
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(f[3]) != 1 {
		return nil, errorf("color must be a single character")
	}
	color, _ := utf8.DecodeRuneInString(f[3])
	return BucketFill{At: canvas.Pt(x, y), Color: color}, nil
}

func require(f []string, n int, usage string) error {
	if len(f) != n {
		return errorf("usage: %s", usage)
	}
	return nil
}

func positive(s, name string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errorf("%s must be a number", name)
	}
	if v <= 0 {
		return 0, errorf("%s must be positive", name)
	}
	return v, nil
}
