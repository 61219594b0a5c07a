package main

import (
	"runtime"
	"unsafe"
)

//go:nosplit
func noSplit() {}

//go:noinline
func noInline() int {
	return 42
}

//go:norace
func noRace() {}

//go:nocheckptr
func noCheckPtr() unsafe.Pointer {
	return unsafe.Pointer(&struct{}{})
}

//go:nosplit
//go:noinline
func stacked() {}

// Called by the runtime by name.
func panicHook() {}

//export goCallback
func goCallback() {}

type Resource struct {
	id int
}

func release(r *Resource) {
	println("finalizing", r.id)
}

func init() {
	runtime.SetFinalizer(&Resource{id: 1}, release)
}

// Looks like a runtime function but carries no directive.
func [|runtimeLookingName|]() {}

// go:nosplit (a space makes this an ordinary comment)
func [|notADirective|]() {}

func [|UnusedExported|]() {}

func main() {
	_ = noCheckPtr()
}
