// Package watch replays a command file into a fresh session each time
// the file changes.
package watch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/asciicanvas/internal/session"
)

// LineError is a command that failed during a replay.
type LineError struct {
	Line    int
	Command string
	Err     error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Command, e.Err)
}

// Result is the outcome of one replay.
type Result struct {
	Session *session.Session
	Errors  []LineError
}

// Render returns the final canvas text, or "" when no canvas was created.
func (r Result) Render() string {
	if r.Session == nil {
		return ""
	}
	return r.Session.Render()
}

// Replay executes every line of r in a new session built from opts.
// Blank lines are skipped and a Q command stops the replay. Failing
// commands are collected but never stop it, matching the REPL.
func Replay(ctx context.Context, r io.Reader, opts ...session.Option) (Result, error) {
	res := Result{Session: session.New(opts...)}

	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		out, err := res.Session.ExecuteLine(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Errors = append(res.Errors, LineError{Line: n, Command: line, Err: err})
			continue
		}
		if out.Quit {
			break
		}
	}
	return res, sc.Err()
}

// ReplayFile opens path and replays it.
func ReplayFile(ctx context.Context, path string, opts ...session.Option) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("file not found: %s", path)
		}
		return Result{}, err
	}
	defer f.Close()
	return Replay(ctx, f, opts...)
}
