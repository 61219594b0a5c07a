// Package rules is the registry of analyzers the harness and CLI can run by name.
package rules

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/unusedresult"

	"github.com/715d/rulekit/internal/rules/unusedfunc"
)

var registry = map[string]*analysis.Analyzer{
	unusedfunc.Analyzer.Name:   unusedfunc.Analyzer,
	nilness.Analyzer.Name:      nilness.Analyzer,
	unusedresult.Analyzer.Name: unusedresult.Analyzer,
	printf.Analyzer.Name:       printf.Analyzer,
	assign.Analyzer.Name:       assign.Analyzer,
}

// Lookup returns the analyzer registered under name.
func Lookup(name string) (*analysis.Analyzer, bool) {
	a, ok := registry[name]
	return a, ok
}

// Names returns the registered analyzer names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Resolve looks up every name and fails on the first unknown one.
func Resolve(names []string) ([]*analysis.Analyzer, error) {
	analyzers := make([]*analysis.Analyzer, 0, len(names))
	for _, name := range names {
		a, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown analyzer %q (known: %v)", name, Names())
		}
		analyzers = append(analyzers, a)
	}
	return analyzers, nil
}
