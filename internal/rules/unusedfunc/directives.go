package unusedfunc

import (
	"go/ast"
	"strings"
)

// directive is a compiler or cgo directive that makes a function reachable
// without a Go reference.
type directive int

const (
	directiveNone directive = iota
	directiveNosplit
	directiveNoinline
	directiveNorace
	directiveNocheckptr
	directiveLinkname
	directiveCGoExport
	directiveRuntimeHook
)

var directiveNames = map[directive]string{
	directiveNone:        "none",
	directiveNosplit:     "go:nosplit",
	directiveNoinline:    "go:noinline",
	directiveNorace:      "go:norace",
	directiveNocheckptr:  "go:nocheckptr",
	directiveLinkname:    "go:linkname",
	directiveCGoExport:   "export",
	directiveRuntimeHook: "runtime hook",
}

func (d directive) String() string {
	return directiveNames[d]
}

// compilerDirectives are matched against "//" comments with no space.
var compilerDirectives = []directive{
	directiveNosplit,
	directiveNoinline,
	directiveNorace,
	directiveNocheckptr,
	directiveLinkname,
}

// runtimeHooks are called by the runtime by name.
var runtimeHooks = map[string]bool{
	"mallocHook":      true,
	"freeHook":        true,
	"gcCallback":      true,
	"runGCCallbacks":  true,
	"panicHook":       true,
	"recoverHook":     true,
	"scheduleHook":    true,
	"preemptHook":     true,
	"sighandler":      true,
	"cpuProfilerHook": true,
	"memprofHook":     true,
	"uintptrEscapes":  true,
	"allocNotInHeap":  true,
}

// directiveOf returns the first directive in the doc comment of fd.
func directiveOf(fd *ast.FuncDecl) directive {
	if runtimeHooks[fd.Name.Name] {
		return directiveRuntimeHook
	}
	if fd.Doc == nil {
		return directiveNone
	}
	for _, c := range fd.Doc.List {
		if d := parseDirective(c.Text); d != directiveNone {
			return d
		}
	}
	return directiveNone
}

func parseDirective(comment string) directive {
	text, ok := strings.CutPrefix(comment, "//")
	if !ok {
		return directiveNone
	}
	if strings.HasPrefix(text, "export ") {
		return directiveCGoExport
	}
	for _, d := range compilerDirectives {
		if after, ok := strings.CutPrefix(text, d.String()); ok && (after == "" || after[0] == ' ') {
			return d
		}
	}
	return directiveNone
}
