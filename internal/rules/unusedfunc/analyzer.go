// Package unusedfunc reports functions and methods that are declared but never
// referenced.
package unusedfunc

import (
	"bytes"
	"cmp"
	"go/ast"
	"go/token"
	"go/types"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const doc = `report unused functions and methods

An unexported function or method is unused when it cannot be reached from the
package's roots: package-level initializers, entry points, exported API and
methods that may be called through an interface. Functions that only call each
other are unused together. Exported functions are only reported in main and internal packages, or
everywhere with -strict.

Functions with runtime or cgo export directives, functions implemented in or
called from assembly, and functions marked with //nolint:unusedfunc or
//lint:ignore unusedfunc are never reported.`

const name = "unusedfunc"

// Analyzer reports unused functions.
var Analyzer = &analysis.Analyzer{
	Name:     name,
	Doc:      doc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var (
	strict        bool
	skipGenerated bool
)

func init() {
	Analyzer.Flags.BoolVar(&strict, "strict", false, "also report unused exported functions of importable packages")
	Analyzer.Flags.BoolVar(&skipGenerated, "skip-generated", true, "do not report functions declared in generated files")
}

// funcInfo is a declared function and what is known about its uses.
type funcInfo struct {
	fn       *types.Func
	decl     *ast.FuncDecl
	used     bool
	root     bool   // reachable without a reference, e.g. exported API
	keepWhy  string // non-empty when the function must not be reported
	testFile bool
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	asm := scanAssembly(pass)
	funcs := collectFunctions(pass, asm)
	if len(funcs) == 0 {
		return nil, nil
	}

	ifaceMethods := interfaceMethods(pass, insp)
	for _, fi := range funcs {
		fi.root = fi.keepWhy != "" || !reportable(pass, fi, ifaceMethods)
	}
	markUses(pass, funcs)

	for _, fi := range funcs {
		if fi.used {
			continue
		}
		pass.Report(analysis.Diagnostic{
			Pos:      fi.decl.Name.Pos(),
			End:      fi.decl.Name.End(),
			Category: "unused",
			Message:  describe(fi.fn) + " is unused",
		})
	}
	return nil, nil
}

// collectFunctions returns the functions declared in the package, in source
// order, with the reasons to keep them already filled in.
func collectFunctions(pass *analysis.Pass, asm *assemblyInfo) []*funcInfo {
	var funcs []*funcInfo
	for _, file := range pass.Files {
		generated := skipGenerated && ast.IsGenerated(file)
		filename := pass.Fset.File(file.Pos()).Name()
		sup := loadSuppressions(pass.Fset, file)

		for _, decl := range file.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Name == nil || fd.Name.Name == "_" {
				continue
			}
			fn, ok := pass.TypesInfo.Defs[fd.Name].(*types.Func)
			if !ok {
				continue
			}

			fi := &funcInfo{
				fn:       fn,
				decl:     fd,
				testFile: strings.HasSuffix(filename, "_test.go"),
			}
			switch {
			case generated:
				fi.keepWhy = "generated"
			case isEntryPoint(pass.Pkg, fi):
				fi.keepWhy = "entry point"
			case isCGoGenerated(fd.Name.Name):
				fi.keepWhy = "cgo"
			case asm.implements(fd.Name.Name):
				fi.keepWhy = "implemented in assembly"
			case asm.calls(fd.Name.Name):
				fi.keepWhy = "called from assembly"
			default:
				if d := directiveOf(fd); d != directiveNone {
					fi.keepWhy = d.String()
				} else if reason, ok := sup.suppressed(fd.Name.Pos()); ok {
					fi.keepWhy = reason
				}
			}
			funcs = append(funcs, fi)
		}
	}
	return funcs
}

// markUses marks every function reachable from a root function or from a
// reference outside any function declaration.
func markUses(pass *analysis.Pass, funcs []*funcInfo) {
	byObj := make(map[*types.Func]*funcInfo, len(funcs))
	for _, fi := range funcs {
		byObj[fi.fn] = fi
	}
	byPos := slices.Clone(funcs)
	slices.SortFunc(byPos, func(a, b *funcInfo) int {
		return cmp.Compare(a.decl.Pos(), b.decl.Pos())
	})

	var queue []*funcInfo
	mark := func(fi *funcInfo) {
		if !fi.used {
			fi.used = true
			queue = append(queue, fi)
		}
	}
	for _, fi := range funcs {
		if fi.root {
			mark(fi)
		}
	}

	calls := make(map[*funcInfo][]*funcInfo)
	for id, obj := range pass.TypesInfo.Uses {
		fn, ok := obj.(*types.Func)
		if !ok {
			continue
		}
		callee, ok := byObj[fn.Origin()]
		if !ok {
			continue
		}
		switch caller := enclosing(byPos, id.Pos()); caller {
		case nil:
			mark(callee)
		case callee:
			// Recursion does not count as a use.
		default:
			calls[caller] = append(calls[caller], callee)
		}
	}

	for len(queue) > 0 {
		fi := queue[0]
		queue = queue[1:]
		for _, callee := range calls[fi] {
			mark(callee)
		}
	}
}

// enclosing returns the function whose declaration contains pos. funcs must be
// sorted by position.
func enclosing(funcs []*funcInfo, pos token.Pos) *funcInfo {
	i := sort.Search(len(funcs), func(i int) bool { return funcs[i].decl.End() > pos })
	if i < len(funcs) && funcs[i].decl.Pos() <= pos {
		return funcs[i]
	}
	return nil
}

// interfaceMethods collects the method names of interfaces a method could be
// called through: every interface type written in the package and the
// exported interfaces of imported packages.
func interfaceMethods(pass *analysis.Pass, insp *inspector.Inspector) map[string]bool {
	names := make(map[string]bool)
	addIface := func(iface *types.Interface) {
		for m := range iface.Methods() {
			names[m.Name()] = true
		}
	}

	for n := range inspector.All[*ast.InterfaceType](insp) {
		if tv, ok := pass.TypesInfo.Types[n]; ok {
			if iface, ok := tv.Type.Underlying().(*types.Interface); ok {
				addIface(iface)
			}
		}
	}

	for _, imp := range pass.Pkg.Imports() {
		scope := imp.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.Exported() {
				continue
			}
			if iface, ok := tn.Type().Underlying().(*types.Interface); ok {
				addIface(iface)
			}
		}
	}
	return names
}

// reportable applies the visibility rules to an unused function.
func reportable(pass *analysis.Pass, fi *funcInfo, ifaceMethods map[string]bool) bool {
	if isMethod(fi.fn) && ifaceMethods[fi.fn.Name()] {
		return false
	}
	if !fi.fn.Exported() {
		return true
	}
	if fi.testFile {
		return false
	}
	return strict || pass.Pkg.Name() == "main" || isInternal(pass.Pkg.Path())
}

func isMethod(fn *types.Func) bool {
	return fn.Signature().Recv() != nil
}

// isEntryPoint reports functions the toolchain calls by name.
func isEntryPoint(pkg *types.Package, fi *funcInfo) bool {
	name := fi.fn.Name()
	if isMethod(fi.fn) {
		return false
	}
	if name == "init" || (name == "main" && pkg.Name() == "main") {
		return true
	}
	if fi.testFile {
		for _, prefix := range []string{"Test", "Benchmark", "Example", "Fuzz"} {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
	}
	return false
}

// isInternal reports whether path has an internal path segment.
func isInternal(path string) bool {
	return strings.Contains(path, "/internal/") ||
		strings.HasSuffix(path, "/internal") ||
		strings.HasPrefix(path, "internal/") ||
		path == "internal"
}

func isCGoGenerated(name string) bool {
	return strings.HasPrefix(name, "_Cgo_") || strings.HasPrefix(name, "_cgo_")
}

// scanAssembly reads the package's assembly files. Failing to read one is
// not fatal: its functions are then reported like any other.
func scanAssembly(pass *analysis.Pass) *assemblyInfo {
	info := newAssemblyInfo()
	for _, name := range pass.OtherFiles {
		if !strings.HasSuffix(name, ".s") {
			continue
		}
		data, err := pass.ReadFile(name)
		if err == nil {
			err = info.scan(bytes.NewReader(data))
		}
		if err != nil {
			slog.Warn("scanning assembly file", "file", name, "error", err)
		}
	}
	return info
}
