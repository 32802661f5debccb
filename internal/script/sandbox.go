package script

import (
	lua "github.com/yuin/gopher-lua"
)

// openSafeLibraries opens only safe Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package, channel, coroutine.
}

// removedGlobals would let a script load code from outside the sandbox.
var removedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// installSandbox strips loaders and redirects print to the runner output.
func (r *Runner) installSandbox() {
	for _, name := range removedGlobals {
		r.L.SetGlobal(name, lua.LNil)
	}

	r.L.SetGlobal("print", r.L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		for i := 1; i <= n; i++ {
			if i > 1 {
				_, _ = r.out.Write([]byte{'\t'})
			}
			_, _ = r.out.Write([]byte(L.ToStringMeta(L.Get(i)).String()))
		}
		_, _ = r.out.Write([]byte{'\n'})
		return 0
	}))
}
