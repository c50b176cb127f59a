//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("ReswitchNew", js.FuncOf(newSwitch))
	js.Global().Set("ReswitchMatch", js.FuncOf(match))
	js.Global().Set("ReswitchClose", js.FuncOf(closeSwitch))
	js.Global().Set("ReswitchGetBuiltinSwitches", js.FuncOf(getBuiltinSwitches))

	// Keep WASM running
	<-make(chan struct{})
}
