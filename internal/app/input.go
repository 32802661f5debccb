package app

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/dshills/asciicanvas/internal/console"
)

// Input is a source of command lines.
type Input struct {
	io.ReadCloser

	// Interactive is true when a person is typing; the prompt is shown
	// only then.
	Interactive bool

	// Name describes the source in logs.
	Name string
}

// StdinInput wraps r as the standard input. It is interactive when r is
// a terminal.
func StdinInput(r io.Reader) *Input {
	interactive := false
	if f, ok := r.(*os.File); ok {
		interactive = console.IsTerminal(f)
	}
	return &Input{
		ReadCloser:  io.NopCloser(r),
		Interactive: interactive,
		Name:        "stdin",
	}
}

// OpenInput returns stdin when path is empty, otherwise the named file.
func OpenInput(path string) (*Input, error) {
	if path == "" {
		return StdinInput(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &InputError{Path: path, Err: ErrInputNotFound}
		}
		return nil, &InputError{Path: path, Err: err}
	}
	return &Input{ReadCloser: f, Name: path}, nil
}
