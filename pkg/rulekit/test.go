package rulekit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/txtar"

	"github.com/715d/rulekit/pkg/logsink"
	"github.com/715d/rulekit/pkg/markup"
)

const (
	// TestModulePath is the module path of every materialized test module.
	TestModulePath = "rulekit.test/input"

	// SourceFileName is the name of the analyzed file inside the test module.
	SourceFileName = "input.go"
)

// ConfigDocument is the analyzer configuration attached to a test.
type ConfigDocument struct {
	Path    string
	Content string
}

// Test is a fully configured analyzer test produced by Builder.Build.
type Test struct {
	// Source is the test source as given, markup included.
	Source string

	References ReferenceSet

	// Config is nil when no configuration lines were added.
	Config *ConfigDocument

	analyzers []*analysis.Analyzer
	env       []string
	sink      logsink.Sink
}

// Analyzers returns the analyzers the test runs.
func (t *Test) Analyzers() []*analysis.Analyzer {
	return t.analyzers
}

// Archive renders the test module: a go.mod for the references, the
// markup-free source and the configuration document.
func (t *Test) Archive(ctx context.Context) (*txtar.Archive, error) {
	doc, err := markup.Parse(t.Source)
	if err != nil {
		return nil, err
	}
	gomod, err := t.goMod(ctx)
	if err != nil {
		return nil, err
	}

	ar := &txtar.Archive{
		Comment: []byte("rulekit test module\n"),
		Files: []txtar.File{
			{Name: "go.mod", Data: gomod},
			{Name: SourceFileName, Data: []byte(doc.Text)},
		},
	}
	if t.Config != nil {
		ar.Files = append(ar.Files, txtar.File{
			Name: filepath.Base(t.Config.Path),
			Data: []byte(t.Config.Content),
		})
	}
	return ar, nil
}

func (t *Test) goMod(ctx context.Context) ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt(TestModulePath); err != nil {
		return nil, fmt.Errorf("go.mod: %w", err)
	}
	if err := f.AddGoStmt(t.References.Platform.GoVersion); err != nil {
		return nil, fmt.Errorf("go.mod: %w", err)
	}

	for _, p := range t.References.Packages {
		if err := f.AddRequire(p.Name, p.Version); err != nil {
			return nil, fmt.Errorf("go.mod: require %s: %w", p, err)
		}
	}

	seen := make(map[string]bool)
	for _, ref := range t.References.Types {
		if ref.PkgPath == "" {
			continue
		}
		mod, err := resolveModule(ctx, ref.PkgPath)
		if err != nil {
			return nil, fmt.Errorf("type reference %v: %w", ref.Type, err)
		}
		if mod == nil || seen[mod.Path] {
			continue
		}
		seen[mod.Path] = true

		if err := f.AddRequire(mod.Path, mod.requireVersion()); err != nil {
			return nil, fmt.Errorf("go.mod: require %s: %w", mod.Path, err)
		}
		if mod.Dir != "" {
			if err := f.AddReplace(mod.Path, "", mod.Dir, ""); err != nil {
				return nil, fmt.Errorf("go.mod: replace %s: %w", mod.Path, err)
			}
		}
	}

	data, err := f.Format()
	if err != nil {
		return nil, fmt.Errorf("go.mod: %w", err)
	}
	return data, nil
}

// materialize writes the test module into a new temporary directory. The
// caller removes it.
func (t *Test) materialize(ctx context.Context) (string, error) {
	ar, err := t.Archive(ctx)
	if err != nil {
		return "", err
	}
	fsys, err := txtar.FS(ar)
	if err != nil {
		return "", fmt.Errorf("test module: %w", err)
	}

	dir, err := os.MkdirTemp("", "rulekit-*")
	if err != nil {
		return "", fmt.Errorf("test module: %w", err)
	}
	if err := os.CopyFS(dir, fsys); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("test module: %w", err)
	}
	return dir, nil
}

// environ is the go command environment for loading the test module.
func (t *Test) environ() []string {
	env := append(os.Environ(), "GOFLAGS=-mod=mod", "GOWORK=off")
	return append(env, t.env...)
}

// analyze loads the materialized module and runs the analyzers over it.
func (t *Test) analyze(ctx context.Context, dir string) (*checker.Graph, error) {
	pkgs, err := LoadPackages(ctx, LoaderOptions{Dir: dir, Env: t.environ()})
	if err != nil {
		return nil, err
	}
	graph, err := checker.Analyze(t.analyzers, pkgs, nil)
	if err != nil {
		return nil, fmt.Errorf("running analyzers: %w", err)
	}
	return graph, nil
}
