// Package console provides the output sink used by the drawing REPL.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Console receives everything the REPL prints.
type Console interface {
	// Print writes s without a trailing newline.
	Print(s string)
	// Println writes s followed by a newline.
	Println(s string)
	// PrintError reports a failed command.
	PrintError(msg string)
}

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
)

// System writes to an output and an error stream. Error lines are styled
// when the output is a terminal.
type System struct {
	mu     sync.Mutex
	out    io.Writer
	err    io.Writer
	styled bool
}

// NewSystem returns a console on os.Stdout and os.Stderr.
func NewSystem() *System {
	return NewWriters(os.Stdout, os.Stderr, IsTerminal(os.Stdout))
}

// NewWriters returns a console writing to out and errOut.
func NewWriters(out, errOut io.Writer, styled bool) *System {
	return &System{out: out, err: errOut, styled: styled}
}

// Print implements Console.
func (s *System) Print(str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, str)
}

// Println implements Console.
func (s *System) Println(str string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, str+"\n")
}

// PrintError implements Console. Errors go to the output stream so that
// piped transcripts keep them in order with the renders.
func (s *System) PrintError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := "Error: " + msg
	if s.styled {
		line = errorStyle.Render(line)
	}
	_, _ = io.WriteString(s.out, line+"\n")
}

// Notice writes a secondary message (save notices, help) to the output,
// muted on terminals.
func (s *System) Notice(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.styled {
		msg = mutedStyle.Render(msg)
	}
	_, _ = io.WriteString(s.out, msg+"\n")
}

// Fatal reports an error that ends the program on the error stream.
func (s *System) Fatal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := fmt.Sprintf("Error: %v", err)
	if s.styled {
		line = errorStyle.Bold(true).Render(line)
	}
	_, _ = io.WriteString(s.err, line+"\n")
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Buffer is a Console that records output in memory.
type Buffer struct {
	mu     sync.Mutex
	out    bytes.Buffer
	errors []string
}

// Print implements Console.
func (b *Buffer) Print(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.WriteString(s)
}

// Println implements Console.
func (b *Buffer) Println(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.WriteString(s)
	b.out.WriteByte('\n')
}

// PrintError implements Console.
func (b *Buffer) PrintError(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.errors = append(b.errors, msg)
	b.out.WriteString("Error: " + msg + "\n")
}

// String returns everything written so far.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

// Errors returns the error messages reported so far.
func (b *Buffer) Errors() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.errors...)
}

// Reset clears recorded output.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
	b.errors = nil
}
