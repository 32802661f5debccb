package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/asciicanvas/internal/session"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Runner executes Lua scripts against one session.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes runs.
type Runner struct {
	L *lua.LState

	mu      sync.Mutex
	session *session.Session
	out     io.Writer
	timeout time.Duration
	raised  error
	closed  bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where print writes. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTimeout sets the per-run deadline.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRunner creates a sandboxed Lua state bound to sess.
func NewRunner(sess *session.Session, opts ...Option) *Runner {
	r := &Runner{
		session: sess,
		out:     io.Discard,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.installAPI()
	return r
}

// Session returns the session scripts draw on.
func (r *Runner) Session() *session.Session {
	return r.session
}

// RunFile reads and executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.RunString(ctx, path, string(code))
}

// RunString executes code. name identifies the chunk in error messages.
func (r *Runner) RunString(ctx context.Context, name, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRunnerClosed
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.L.SetContext(ctx)
	defer r.L.RemoveContext()
	r.raised = nil

	fn, err := r.L.LoadString(code)
	if err != nil {
		return &Error{Name: name, Err: err}
	}

	err = r.doWithRecovery(func() error {
		r.L.Push(fn)
		return r.L.PCall(0, lua.MultRet, nil)
	})
	if err == nil {
		return nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Name: name, Cause: ErrExecutionTimeout, Err: err}
	}
	if ctx.Err() != nil {
		return &Error{Name: name, Cause: ctx.Err(), Err: err}
	}
	return &Error{Name: name, Cause: r.raised, Err: err}
}

// doWithRecovery executes a function with panic recovery.
func (r *Runner) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
	}()
	return fn()
}

// Close releases the Lua state.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}
