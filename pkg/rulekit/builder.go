// Package rulekit builds and runs tests for go/analysis analyzers.
//
// A Builder collects the source under test and its configuration, then Build
// turns it into a Test:
//
//	test, err := rulekit.New(logsink.ForTest(t), myanalyzer.Analyzer).
//		WithSource(src).
//		WithConfigLine(`myanalyzer.strict = true`).
//		Build()
//
// Expected diagnostics are marked in the source with test markup, see package
// markup. Test.Verify runs the analyzers and compares what they report with
// the marked spans.
package rulekit

import (
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/715d/rulekit/pkg/logsink"
	"github.com/715d/rulekit/pkg/markup"
	"github.com/715d/rulekit/pkg/syntaxviz"
)

// GlobalConfigPath is the virtual path of the configuration document.
const GlobalConfigPath = "/.globalconfig"

// Builder accumulates the inputs of one analyzer test. It is not safe for
// concurrent use.
type Builder struct {
	sink        logsink.Sink
	analyzers   []*analysis.Analyzer
	code        string
	platform    string
	packages    []PackageReference
	types       []TypeReference
	configLines []string
	env         []string
}

// New returns a builder for a test of the given analyzers. The syntax tree of
// the source is written to sink when the test is built; a nil sink discards it.
func New(sink logsink.Sink, analyzers ...*analysis.Analyzer) *Builder {
	if sink == nil {
		sink = logsink.Discard
	}
	return &Builder{
		sink:      sink,
		analyzers: analyzers,
	}
}

// WithSource sets the source under test. It may contain test markup.
func (b *Builder) WithSource(code string) *Builder {
	b.code = code
	return b
}

// WithPackage adds a module requirement for the analyzed code. Duplicates are
// kept in the reference set; in the generated go.mod the last version wins.
func (b *Builder) WithPackage(name, version string) *Builder {
	b.packages = append(b.packages, PackageReference{Name: name, Version: version})
	return b
}

// WithTypeReference makes the package declaring T importable from the
// analyzed code.
func WithTypeReference[T any](b *Builder) *Builder {
	return b.WithTypeOf(reflect.TypeFor[T]())
}

// WithTypeOf makes the package declaring t importable from the analyzed code.
func (b *Builder) WithTypeOf(t reflect.Type) *Builder {
	b.types = append(b.types, newTypeReference(t))
	return b
}

// WithConfigLine appends a line to the configuration document.
func (b *Builder) WithConfigLine(line string) *Builder {
	b.configLines = append(b.configLines, line)
	return b
}

// WithPlatform selects the Go release the test module targets.
func (b *Builder) WithPlatform(name string) *Builder {
	b.platform = name
	return b
}

// WithEnv adds KEY=value pairs to the environment of the go command when the
// test runs.
func (b *Builder) WithEnv(kv ...string) *Builder {
	b.env = append(b.env, kv...)
	return b
}

// Build returns the configured test. It fails only when the builder itself is
// misused; problems with references or configuration surface when the test runs.
func (b *Builder) Build() (*Test, error) {
	if strings.TrimSpace(b.code) == "" {
		return nil, &UsageError{Msg: "no source code set: call WithSource before Build"}
	}
	platform, ok := LookupPlatform(b.platform)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("unknown platform %q (known: %s)",
			b.platform, strings.Join(Platforms(), ", "))}
	}

	if err := b.logSyntaxTree(); err != nil {
		slog.Warn("logging syntax tree", "error", err)
	}

	test := &Test{
		Source: b.code,
		References: ReferenceSet{
			Platform: platform,
			Packages: slices.Clone(b.packages),
			Types:    slices.Clone(b.types),
		},
		analyzers: slices.Clone(b.analyzers),
		env:       slices.Clone(b.env),
		sink:      b.sink,
	}
	if len(b.configLines) > 0 {
		test.Config = &ConfigDocument{
			Path:    GlobalConfigPath,
			Content: strings.Join(b.configLines, "\n"),
		}
	}
	return test, nil
}

// logSyntaxTree writes the parsed structure of the markup-free source to the
// sink. A source that does not parse cleanly is still shown as far as the
// parser got.
func (b *Builder) logSyntaxTree() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("visualize syntax tree: %v", r)
		}
	}()

	text, err := markup.Strip(b.code)
	if err != nil {
		return err
	}

	fset := token.NewFileSet()
	file, parseErr := parser.ParseFile(fset, SourceFileName, text, parser.ParseComments|parser.SkipObjectResolution)
	if file == nil {
		return fmt.Errorf("parse source: %w", parseErr)
	}
	if parseErr != nil {
		slog.Debug("source has syntax errors", "error", parseErr)
	}

	report := syntaxviz.Visualize(fset, []byte(text), file)
	if err := b.sink.WriteLine(report); err != nil {
		return fmt.Errorf("write syntax tree: %w", err)
	}
	return nil
}
