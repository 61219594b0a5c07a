package rulekit

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/checker"

	"github.com/715d/rulekit/pkg/logsink"
	"github.com/715d/rulekit/pkg/markup"
)

// Run materializes the test module, runs the analyzers over it and collects
// their diagnostics. Diagnostics of analyzers configured with severity none
// are dropped. An analyzer that fails makes the whole run fail; the failure is
// written to the sink and to the log file at logsink.LogFilePath.
func (t *Test) Run(ctx context.Context) (*Result, error) {
	doc, err := markup.Parse(t.Source)
	if err != nil {
		return nil, err
	}
	cfg, err := parseConfig(t.Config, t.analyzers)
	if err != nil {
		return nil, err
	}

	dir, err := t.materialize(ctx)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	restore, err := cfg.apply()
	if err != nil {
		return nil, err
	}
	graph, err := t.analyze(ctx, dir)
	restore()
	if err != nil {
		return nil, err
	}

	res := &Result{Expected: doc.Spans, Source: doc.Text}
	var errs []error
	for _, act := range graph.Roots {
		if act.Err != nil {
			failure := fmt.Errorf("analyzer %s failed on %s: %w", act.Analyzer.Name, act.Package.PkgPath, act.Err)
			t.logFailure(failure)
			errs = append(errs, failure)
			continue
		}
		sev := cfg.severity(act.Analyzer.Name)
		if sev == SeverityNone {
			continue
		}
		for _, d := range act.Diagnostics {
			res.Diagnostics = append(res.Diagnostics, newDiagnostic(act, d.Pos, d.End, d.Category, d.Message, sev))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w\ncheck the log file %s", err, logsink.LogFilePath)
	}
	sortDiagnostics(res.Diagnostics)

	if len(res.Diagnostics) > 0 {
		if err := t.sink.WriteLine(res.Format()); err != nil {
			slog.Warn("logging diagnostics", "error", err)
		}
	}
	return res, nil
}

// logFailure records an analyzer failure in the sink and in the shared log
// file. Logging is best effort.
func (t *Test) logFailure(failure error) {
	if err := t.sink.WriteLine(failure.Error()); err != nil {
		slog.Warn("logging analyzer failure", "error", err)
	}
	if fs, ok := t.sink.(*logsink.FileSink); ok && fs.Path() == logsink.LogFilePath {
		return
	}
	if err := logsink.File("run").WriteLine(failure.Error()); err != nil {
		slog.Warn("logging analyzer failure", "path", logsink.LogFilePath, "error", err)
	}
}

func newDiagnostic(act *checker.Action, pos, end token.Pos, category, msg string, sev Severity) Diagnostic {
	fset := act.Package.Fset
	d := Diagnostic{
		Analyzer: act.Analyzer.Name,
		Category: category,
		Message:  msg,
		Severity: sev,
		Start:    fset.Position(pos),
	}
	d.Start.Filename = filepath.Base(d.Start.Filename)
	if end.IsValid() {
		d.End = fset.Position(end)
		d.End.Filename = filepath.Base(d.End.Filename)
	}
	return d
}

// Verify runs the test and fails tb unless the reported diagnostics match the
// marked spans exactly.
func (t *Test) Verify(tb testing.TB) *Result {
	tb.Helper()

	res, err := t.Run(tb.Context())
	require.NoError(tb, err)
	require.NoError(tb, res.Err(), "diagnostics:\n%s", res.Format())
	return res
}
