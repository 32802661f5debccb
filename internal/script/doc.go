// Package script runs Lua drawing scripts against a session.
//
// Scripts execute in a sandboxed gopher-lua state with only the base,
// table, string and math libraries. The drawing API is exposed as
// global functions:
//
//	canvas(w, h)           create a canvas
//	line(x1, y1, x2, y2)   draw a horizontal or vertical line
//	rect(x1, y1, x2, y2)   draw a rectangle
//	fill(x, y, c)          bucket fill with color c
//	undo()  redo()         walk the history
//	pixel(x, y)            character at (x, y)
//	size()                 width, height (nil without a canvas)
//	render()               bordered text of the canvas
//	exec(line)             run a REPL command line
//
// Every drawing call goes through the session, so scripts obey the same
// history rules as typed commands. A failing call raises a Lua error
// carrying the command's message.
package script
