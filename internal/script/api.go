package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/asciicanvas/internal/command"
	"github.com/dshills/asciicanvas/internal/engine/canvas"
)

// installAPI registers the drawing functions as Lua globals.
func (r *Runner) installAPI() {
	api := map[string]lua.LGFunction{
		"canvas": r.luaCanvas,
		"line":   r.luaLine,
		"rect":   r.luaRect,
		"fill":   r.luaFill,
		"undo":   r.luaUndo,
		"redo":   r.luaRedo,
		"pixel":  r.luaPixel,
		"size":   r.luaSize,
		"render": r.luaRender,
		"exec":   r.luaExec,
	}
	for name, fn := range api {
		r.L.SetGlobal(name, r.L.NewFunction(fn))
	}
}

// run executes cmd and raises a Lua error on failure.
func (r *Runner) run(L *lua.LState, cmd command.Command) string {
	res, err := r.session.Execute(r.context(L), cmd)
	if err != nil {
		r.raised = err
		L.RaiseError("%s", err.Error())
		return ""
	}
	return res.Message
}

func (r *Runner) context(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func checkPoint(L *lua.LState, n int) canvas.Point {
	return canvas.Pt(L.CheckInt(n), L.CheckInt(n+1))
}

func (r *Runner) luaCanvas(L *lua.LState) int {
	r.run(L, command.CreateCanvas{Width: L.CheckInt(1), Height: L.CheckInt(2)})
	return 0
}

func (r *Runner) luaLine(L *lua.LState) int {
	r.run(L, command.DrawLine{From: checkPoint(L, 1), To: checkPoint(L, 3)})
	return 0
}

func (r *Runner) luaRect(L *lua.LState) int {
	r.run(L, command.DrawRectangle{Corner1: checkPoint(L, 1), Corner2: checkPoint(L, 3)})
	return 0
}

func (r *Runner) luaFill(L *lua.LState) int {
	at := checkPoint(L, 1)
	color := []rune(L.CheckString(3))
	if len(color) != 1 {
		L.ArgError(3, "color must be a single character")
		return 0
	}
	r.run(L, command.BucketFill{At: at, Color: color[0]})
	return 0
}

func (r *Runner) luaUndo(L *lua.LState) int {
	r.run(L, command.Undo{})
	return 0
}

func (r *Runner) luaRedo(L *lua.LState) int {
	r.run(L, command.Redo{})
	return 0
}

func (r *Runner) luaPixel(L *lua.LState) int {
	p := checkPoint(L, 1)
	cv, err := r.session.RequireCanvas()
	if err == nil {
		err = cv.ValidateBounds(p)
	}
	if err != nil {
		r.raised = err
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(string(cv.Get(p))))
	return 1
}

func (r *Runner) luaSize(L *lua.LState) int {
	cv := r.session.Canvas()
	if cv == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(cv.Width()))
	L.Push(lua.LNumber(cv.Height()))
	return 2
}

func (r *Runner) luaRender(L *lua.LState) int {
	L.Push(lua.LString(r.session.Render()))
	return 1
}

func (r *Runner) luaExec(L *lua.LState) int {
	cmd, err := command.Parse(L.CheckString(1))
	if err != nil {
		r.raised = err
		L.RaiseError("%s", err.Error())
		return 0
	}
	if msg := r.run(L, cmd); msg != "" {
		L.Push(lua.LString(msg))
		return 1
	}
	return 0
}
