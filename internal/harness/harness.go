package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/715d/rulekit/internal/rules"
	"github.com/715d/rulekit/pkg/logsink"
	"github.com/715d/rulekit/pkg/rulekit"
)

// Outcome is the result of running one scenario.
type Outcome struct {
	Scenario *Scenario

	// Success is true when the run matched every expectation.
	Success bool

	// Message summarizes the outcome.
	Message string

	// Details holds one line per mismatch.
	Details []string

	// Diagnostics are what the analyzers reported.
	Diagnostics []rulekit.Diagnostic

	// Err is set when the scenario could not be run at all and no error was
	// expected. It distinguishes a broken scenario from a failing one.
	Err error
}

// Run builds and runs the scenario and compares the reported diagnostics with
// the spans marked in its source.
func Run(ctx context.Context, sc *Scenario, sink logsink.Sink) *Outcome {
	out := &Outcome{Scenario: sc}

	test, err := build(sc, sink)
	if err != nil {
		if expectedError(out, err) {
			return out
		}
		out.Err = err
		out.Message = fmt.Sprintf("Invalid scenario: %v", err)
		return out
	}

	res, err := test.Run(ctx)
	if err != nil {
		if expectedError(out, err) {
			return out
		}
		out.Err = err
		out.Message = fmt.Sprintf("Run failed: %v", err)
		return out
	}
	out.Diagnostics = res.Diagnostics

	if len(sc.ExpectedErrors) > 0 {
		out.Message = fmt.Sprintf("Expected an error containing one of %q", sc.ExpectedErrors)
		return out
	}

	validateResults(out, res)
	return out
}

// expectedError marks the outcome successful when err contains one of the
// scenario's expected errors.
func expectedError(out *Outcome, err error) bool {
	for _, expected := range out.Scenario.ExpectedErrors {
		if strings.Contains(err.Error(), expected) {
			out.Success = true
			out.Message = fmt.Sprintf("Got expected error: %v", err)
			return true
		}
	}
	return false
}

func build(sc *Scenario, sink logsink.Sink) (*rulekit.Test, error) {
	analyzers, err := rules.Resolve(sc.Analyzers)
	if err != nil {
		return nil, err
	}

	b := rulekit.New(sink, analyzers...).
		WithSource(sc.Source).
		WithPlatform(sc.Platform).
		WithEnv(sc.environ()...)
	for _, p := range sc.Packages {
		b.WithPackage(p.Name, p.Version)
	}
	for _, line := range sc.Config {
		b.WithConfigLine(line)
	}
	return b.Build()
}

// validateResults fills in the outcome from the comparison of expected spans
// and reported diagnostics.
func validateResults(out *Outcome, res *rulekit.Result) {
	var missing, unexpected int
	for _, m := range res.Compare() {
		switch m.Kind {
		case rulekit.Missing:
			missing++
			out.Details = append(out.Details, fmt.Sprintf("Should have been reported: %s at %s",
				spanName(m), position(res.Source, m.Span.Start)))
		case rulekit.Unexpected:
			unexpected++
			out.Details = append(out.Details, "Should not have been reported: "+m.Diagnostic.String())
		}
	}

	out.Success = missing == 0 && unexpected == 0
	if out.Success {
		out.Message = fmt.Sprintf("All %d expected diagnostics found", len(res.Expected))
	} else {
		out.Message = fmt.Sprintf("Test failed: %d missing, %d unexpected", missing, unexpected)
	}
}

func spanName(m rulekit.Mismatch) string {
	if m.Span.Name == "" {
		return "diagnostic"
	}
	return m.Span.Name
}

// position renders a byte offset of src as line:column.
func position(src string, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return fmt.Sprintf("%d:%d", line, col)
}
