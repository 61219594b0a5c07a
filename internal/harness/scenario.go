// Package harness runs analyzer test scenarios stored on disk.
//
// A scenario is a directory holding scenario.yaml and input.go. The source
// marks the diagnostics it expects with test markup; scenario.yaml selects the
// analyzers and everything else the builder accepts.
package harness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	// ScenarioFile is the name of the scenario description in a case directory.
	ScenarioFile = "scenario.yaml"

	// SourceFile is the name of the analyzed source in a case directory.
	SourceFile = "input.go"
)

// Scenario describes one test case.
type Scenario struct {
	// Dir is the case directory, relative to the discovery root when
	// discovered.
	Dir string `yaml:"-"`

	// Source is the content of input.go, markup included.
	Source string `yaml:"-"`

	// Analyzers are registry names of the analyzers to run.
	Analyzers []string `yaml:"analyzers"`

	// Platform optionally selects the targeted Go release.
	Platform string `yaml:"platform,omitempty"`

	// Packages are module requirements of the analyzed source.
	Packages []Package `yaml:"packages,omitempty"`

	// Config holds configuration document lines.
	Config []string `yaml:"config,omitempty"`

	// Env sets go command environment variables, e.g. GOOS or CGO_ENABLED.
	Env map[string]string `yaml:"env,omitempty"`

	// ExpectedErrors lists substrings of an error the scenario must fail with,
	// either while building the test or while running it.
	ExpectedErrors []string `yaml:"expected_errors,omitempty"`
}

// Package is a module requirement.
type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Name returns the case name used in test and CLI output.
func (s *Scenario) Name() string {
	return filepath.ToSlash(s.Dir)
}

// validate reports scenario files that cannot describe a run.
func (s *Scenario) validate() error {
	if len(s.Analyzers) == 0 {
		return errors.New("no analyzers listed")
	}
	for i, p := range s.Packages {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Version) == "" {
			return fmt.Errorf("package at index %d needs both name and version", i)
		}
	}
	return nil
}

// environ renders Env as KEY=value pairs in key order.
func (s *Scenario) environ() []string {
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+s.Env[k])
	}
	return env
}

// LoadScenario reads the scenario in dir.
func LoadScenario(dir string) (*Scenario, error) {
	data, err := os.ReadFile(filepath.Join(dir, ScenarioFile))
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc := &Scenario{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Join(dir, ScenarioFile), err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Join(dir, ScenarioFile), err)
	}

	src, err := os.ReadFile(filepath.Join(dir, SourceFile))
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	sc.Source = string(src)
	sc.Dir = filepath.Base(dir)
	return sc, nil
}

// Discover loads every scenario below root, in directory order. Directories
// without a scenario file are skipped.
func Discover(root string) ([]*Scenario, error) {
	var scenarios []*Scenario
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, err := os.Stat(filepath.Join(path, ScenarioFile)); err != nil {
			return nil
		}

		sc, err := LoadScenario(path)
		if err != nil {
			return err
		}
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
			sc.Dir = rel
		}
		scenarios = append(scenarios, sc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover scenarios in %s: %w", root, err)
	}
	return scenarios, nil
}
