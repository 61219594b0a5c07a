// Package main implements the rulekit developer CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Config holds the command-line options shared by all subcommands.
type Config struct {
	Verbose bool // enables debug logging to stderr
	JSON    bool // JSON output and log format
	LogFile bool // also append syntax trees and diagnostics to the rulekit log file
}

const (
	exitFailures = 1
	exitError    = 2
)

var (
	// Set via ldflags during build.
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var cfg Config

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if err.Error() != "" {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		var cErr codedError
		if errors.As(err, &cErr) {
			os.Exit(cErr.code)
		}
		os.Exit(exitError)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rulekit",
		Short: "Build, run and debug go/analysis analyzer tests",
		Long: `rulekit runs analyzer test scenarios and shows the syntax trees analyzers see.

A scenario is a directory with scenario.yaml and input.go. Expected
diagnostics are marked in input.go with [|span|] or {|analyzer:span|}.`,
		Example: `  rulekit visualize input.go         # Print the syntax tree of a file
  rulekit check                      # Run every scenario under ./testdata
  rulekit check -v cases/ more/      # Run scenarios with debug logging
  rulekit check --json > report.json # JSON report`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("rulekit version %s\n  commit: %s\n  built:  %s\n", version, gitCommit, buildTime))

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&cfg.JSON, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&cfg.LogFile, "log-file", false, "Append syntax trees and diagnostics to the rulekit log file in the temp directory")

	rootCmd.AddCommand(newVisualizeCmd(), newCheckCmd())
	return rootCmd
}

func setup(_ *cobra.Command, _ []string) error {
	// Disable logger unless verbose flag is set.
	slog.SetDefault(slog.New(slog.DiscardHandler))
	if cfg.Verbose {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
		if cfg.JSON {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
	}
	return nil
}

func errWithCode(err error, code int) error {
	return codedError{err: err, code: code}
}

type codedError struct {
	err  error
	code int
}

func (e codedError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return ""
}

func (e codedError) Unwrap() error { return e.err }
