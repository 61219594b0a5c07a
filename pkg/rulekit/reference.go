package rulekit

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/tools/go/packages"
)

// PackageReference requests a module dependency for the analyzed code.
type PackageReference struct {
	Name    string
	Version string
}

func (p PackageReference) String() string {
	return p.Name + "@" + p.Version
}

// TypeReference exposes the package declaring Type to the analyzed code.
type TypeReference struct {
	Type reflect.Type

	// PkgPath is the import path of the package declaring Type. It is empty
	// for predeclared and unnamed types.
	PkgPath string
}

// ReferenceSet is everything the analyzed code can import: the platform's
// standard library plus requested modules and type packages.
type ReferenceSet struct {
	Platform Platform
	Packages []PackageReference
	Types    []TypeReference
}

// newTypeReference resolves t to the package that declares it. Composite
// types resolve through their element type.
func newTypeReference(t reflect.Type) TypeReference {
	ref := TypeReference{Type: t}
	for t != nil && t.Name() == "" {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
			t = t.Elem()
		default:
			t = nil
		}
	}
	if t != nil {
		ref.PkgPath = t.PkgPath()
	}
	return ref
}

// moduleInfo locates the module providing a referenced package.
type moduleInfo struct {
	Path    string
	Version string
	Dir     string
}

// requireVersion is the version written to the test go.mod. Modules without
// a version (the main module, replaced modules) get a placeholder because a
// replace directive points at their directory anyway.
func (m *moduleInfo) requireVersion() string {
	if m.Version == "" {
		return "v0.0.0"
	}
	return m.Version
}

// moduleCache maps package paths to their module. A nil value marks a
// standard library package.
var moduleCache = xsync.NewMap[string, *moduleInfo]()

// resolveModule finds the module that provides pkgPath, as seen from the
// current working directory. It returns nil for standard library packages.
func resolveModule(ctx context.Context, pkgPath string) (*moduleInfo, error) {
	if mod, ok := moduleCache.Load(pkgPath); ok {
		return mod, nil
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedModule,
	}
	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("locate package %s: %w", pkgPath, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("locate package %s: found %d packages", pkgPath, len(pkgs))
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			msgs = append(msgs, e.Error())
		}
		return nil, fmt.Errorf("locate package %s: %s", pkgPath, strings.Join(msgs, "; "))
	}

	var mod *moduleInfo
	if m := pkg.Module; m != nil {
		if m.Replace != nil {
			m = m.Replace
		}
		mod = &moduleInfo{Path: pkg.Module.Path, Version: m.Version, Dir: m.Dir}
	}
	moduleCache.Store(pkgPath, mod)
	return mod, nil
}
