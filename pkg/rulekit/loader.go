package rulekit

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"
)

// defaultLoadMode loads everything the checker needs. Dependencies are loaded
// with syntax too so analyzers that export facts can run on them.
const defaultLoadMode = packages.NeedDeps |
	packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedTypesSizes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

// LoaderOptions configures package loading for a materialized test module.
type LoaderOptions struct {
	// Dir is the module root to load from.
	Dir string

	// Patterns are the package patterns to load. Defaults to ".".
	Patterns []string

	// Env is the complete environment of the go command.
	Env []string

	// BuildFlags are passed to the go command, e.g. "-tags=integration".
	BuildFlags []string
}

// LoadPackages loads the packages of a test module. Any package error fails
// the load: a test source that does not type-check cannot be analyzed.
func LoadPackages(ctx context.Context, opts LoaderOptions) ([]*packages.Package, error) {
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Context:    ctx,
		Mode:       defaultLoadMode,
		Dir:        opts.Dir,
		Env:        opts.Env,
		BuildFlags: opts.BuildFlags,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching patterns: %v", patterns)
	}

	var errorMessages []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, err := range pkg.Errors {
			errorMessages = append(errorMessages, fmt.Sprintf("package %s: %v", pkg.PkgPath, err))
		}
	})
	if len(errorMessages) > 0 {
		return nil, fmt.Errorf("package errors:\n%s", strings.Join(errorMessages, "\n"))
	}
	return pkgs, nil
}
