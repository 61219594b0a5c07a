package rulekit

import (
	"cmp"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/715d/rulekit/pkg/markup"
)

// Diagnostic is one finding reported by an analyzer.
type Diagnostic struct {
	Analyzer string
	Category string
	Message  string
	Severity Severity

	// Start and End locate the diagnostic in the analyzed file. End is the
	// zero Position when the analyzer reported a point.
	Start token.Position
	End   token.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %d:%d %s", d.Severity, d.Analyzer, d.Start.Line, d.Start.Column, d.Message)
}

// matches reports whether d was reported exactly at the span.
func (d Diagnostic) matches(span markup.Span) bool {
	if d.Start.Offset != span.Start {
		return false
	}
	if d.End.IsValid() && d.End.Offset != span.End {
		return false
	}
	return span.Name == "" || span.Name == d.Analyzer || span.Name == d.Category
}

// Result holds what a test run produced alongside what the source expected.
type Result struct {
	// Diagnostics are ordered by position, then analyzer.
	Diagnostics []Diagnostic

	// Expected are the spans marked in the test source.
	Expected []markup.Span

	// Source is the analyzed text with markup removed.
	Source string
}

// MismatchKind tells whether a mismatch is a missing or an unexpected diagnostic.
type MismatchKind int

const (
	Missing MismatchKind = iota
	Unexpected
)

func (k MismatchKind) String() string {
	if k == Missing {
		return "missing"
	}
	return "unexpected"
}

// Mismatch is an expected span no diagnostic matched, or a diagnostic no span
// expected.
type Mismatch struct {
	Kind MismatchKind

	// Span is set for Missing.
	Span markup.Span

	// Diagnostic is set for Unexpected.
	Diagnostic Diagnostic
}

func (m Mismatch) offset() int {
	if m.Kind == Missing {
		return m.Span.Start
	}
	return m.Diagnostic.Start.Offset
}

// describe renders m with the source text it refers to.
func (m Mismatch) describe(src string) string {
	if m.Kind == Unexpected {
		return "unexpected: " + m.Diagnostic.String()
	}
	name := m.Span.Name
	if name == "" {
		name = "any analyzer"
	}
	text := ""
	if m.Span.Start >= 0 && m.Span.End <= len(src) && m.Span.Start <= m.Span.End {
		text = src[m.Span.Start:m.Span.End]
	}
	return fmt.Sprintf("missing: %s at offset %d (%q)", name, m.Span.Start, text)
}

// Compare matches diagnostics against expected spans. Each diagnostic
// satisfies at most one span. The result is ordered by offset with missing
// spans first at equal offsets.
func (r *Result) Compare() []Mismatch {
	used := make([]bool, len(r.Diagnostics))
	var out []Mismatch

	for _, span := range r.Expected {
		found := false
		for i, d := range r.Diagnostics {
			if !used[i] && d.matches(span) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			out = append(out, Mismatch{Kind: Missing, Span: span})
		}
	}
	for i, d := range r.Diagnostics {
		if !used[i] {
			out = append(out, Mismatch{Kind: Unexpected, Diagnostic: d})
		}
	}

	slices.SortStableFunc(out, func(a, b Mismatch) int {
		return cmp.Or(cmp.Compare(a.offset(), b.offset()), cmp.Compare(a.Kind, b.Kind))
	})
	return out
}

// Err returns nil when every expected span was reported and nothing else was.
func (r *Result) Err() error {
	mismatches := r.Compare()
	if len(mismatches) == 0 {
		return nil
	}

	var missing, unexpected int
	lines := make([]string, 0, len(mismatches))
	for _, m := range mismatches {
		if m.Kind == Missing {
			missing++
		} else {
			unexpected++
		}
		lines = append(lines, "  "+m.describe(r.Source))
	}
	return errors.New(fmt.Sprintf("%d missing, %d unexpected diagnostics:\n", missing, unexpected) +
		strings.Join(lines, "\n"))
}

// Format renders the diagnostics one per line.
func (r *Result) Format() string {
	var sb strings.Builder
	for _, d := range r.Diagnostics {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Start.Offset, b.Start.Offset),
			cmp.Compare(a.End.Offset, b.End.Offset),
			cmp.Compare(a.Analyzer, b.Analyzer),
		)
	})
}
