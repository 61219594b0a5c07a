package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/715d/rulekit/internal/harness"
	"github.com/715d/rulekit/pkg/logsink"
)

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	errColor  = color.New(color.FgYellow, color.Bold)
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dirs...]",
		Short: "Run analyzer test scenarios",
		Long: `check discovers scenarios below each directory (default ./testdata), runs them
concurrently and reports PASS or FAIL per scenario.

Exit status is 1 when a scenario fails and 2 when a scenario cannot be run.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"./testdata"}
			}
			return runCheck(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

// Report is the outcome of a check run.
type Report struct {
	Outcomes []*harness.Outcome
	Stats    struct {
		Scenarios int           `json:"scenarios"`
		Passed    int           `json:"passed"`
		Failed    int           `json:"failed"`
		Errors    int           `json:"errors"`
		Duration  time.Duration `json:"duration"`
	}
}

func runCheck(ctx context.Context, w io.Writer, dirs []string) error {
	start := time.Now()

	var scenarios []*harness.Scenario
	for _, dir := range dirs {
		found, err := harness.Discover(dir)
		if err != nil {
			return errWithCode(err, exitError)
		}
		slog.Info("discovered scenarios", "dir", dir, "num", len(found))
		scenarios = append(scenarios, found...)
	}
	if len(scenarios) == 0 {
		return errWithCode(fmt.Errorf("no scenarios found in %v", dirs), exitError)
	}

	report := runScenarios(ctx, scenarios)
	report.Stats.Duration = time.Since(start)
	slog.Info("check completed", "dur", report.Stats.Duration)

	if err := writeReport(w, report); err != nil {
		return errWithCode(fmt.Errorf("format results: %w", err), exitError)
	}

	switch {
	case report.Stats.Errors > 0:
		return errWithCode(nil, exitError)
	case report.Stats.Failed > 0:
		return errWithCode(nil, exitFailures)
	}
	return nil
}

// runScenarios runs every scenario, at most NumCPU at a time. Outcomes keep
// the scenario order.
func runScenarios(ctx context.Context, scenarios []*harness.Scenario) *Report {
	var sink logsink.Sink = logsink.Discard
	if cfg.LogFile {
		sink = logsink.File("check")
	}

	// Each goroutine writes only its own index.
	outcomes := make([]*harness.Outcome, len(scenarios))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, sc := range scenarios {
		g.Go(func() error {
			slog.Debug("running scenario", "name", sc.Name())
			outcomes[i] = harness.Run(ctx, sc, sink)
			return nil
		})
	}
	_ = g.Wait()

	r := &Report{Outcomes: outcomes}
	r.Stats.Scenarios = len(outcomes)
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			r.Stats.Errors++
		case o.Success:
			r.Stats.Passed++
		default:
			r.Stats.Failed++
		}
	}
	return r
}

func writeReport(w io.Writer, r *Report) error {
	var output string
	var err error
	if cfg.JSON {
		output, err = formatJSONOutput(r)
	} else {
		output = formatTextOutput(r)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, output)
	return err
}

func formatTextOutput(r *Report) string {
	var output strings.Builder
	for _, o := range r.Outcomes {
		switch {
		case o.Err != nil:
			output.WriteString(errColor.Sprint("ERROR"))
		case o.Success:
			output.WriteString(passColor.Sprint("PASS "))
		default:
			output.WriteString(failColor.Sprint("FAIL "))
		}
		fmt.Fprintf(&output, " %s", o.Scenario.Name())
		if !o.Success || cfg.Verbose {
			fmt.Fprintf(&output, ": %s", o.Message)
		}
		output.WriteByte('\n')
		if !o.Success {
			for _, d := range o.Details {
				fmt.Fprintf(&output, "      %s\n", d)
			}
		}
	}

	fmt.Fprintf(&output, "\n%d scenarios: %d passed, %d failed, %d errors\n",
		r.Stats.Scenarios, r.Stats.Passed, r.Stats.Failed, r.Stats.Errors)
	return output.String()
}

func formatJSONOutput(r *Report) (string, error) {
	scenarios := make([]jScenario, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		js := jScenario{
			Name:        o.Scenario.Name(),
			Analyzers:   o.Scenario.Analyzers,
			Success:     o.Success,
			Message:     o.Message,
			Details:     o.Details,
			Diagnostics: make([]jDiagnostic, 0, len(o.Diagnostics)),
		}
		if o.Err != nil {
			js.Error = o.Err.Error()
		}
		for _, d := range o.Diagnostics {
			js.Diagnostics = append(js.Diagnostics, jDiagnostic{
				Analyzer: d.Analyzer,
				Category: d.Category,
				Severity: string(d.Severity),
				Message:  d.Message,
				Line:     d.Start.Line,
				Column:   d.Start.Column,
			})
		}
		scenarios = append(scenarios, js)
	}

	data, err := json.MarshalIndent(jOutput{
		Scenarios: scenarios,
		Stats:     r.Stats,
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling json output: %w", err)
	}
	return string(data) + "\n", nil
}

type jOutput struct {
	Scenarios []jScenario `json:"scenarios"`
	Stats     any         `json:"stats"`
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
}

type jScenario struct {
	Name        string        `json:"name"`
	Analyzers   []string      `json:"analyzers"`
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	Details     []string      `json:"details,omitempty"`
	Error       string        `json:"error,omitempty"`
	Diagnostics []jDiagnostic `json:"diagnostics"`
}

type jDiagnostic struct {
	Analyzer string `json:"analyzer"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}
