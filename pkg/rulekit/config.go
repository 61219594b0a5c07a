package rulekit

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"golang.org/x/tools/go/analysis"
)

// Severity is the level a diagnostic is reported at.
type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultSeverity applies to analyzers the configuration does not mention.
const DefaultSeverity = SeverityWarning

// ErrConfig is matched by every *ConfigError.
var ErrConfig = errors.New("invalid analyzer configuration")

func parseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(s)); sev {
	case SeverityNone, SeverityInfo, SeverityWarning, SeverityError:
		return sev, true
	}
	return "", false
}

// severityKey is the reserved key of an analyzer table. Every other key names
// an analyzer flag.
const severityKey = "severity"

// analyzerConfig is the decoded configuration document. The document is TOML
// with one table per analyzer:
//
//	[unusedfunc]
//	severity = "error"
//	strict = true
//
// Dotted keys (unusedfunc.strict = true) are equivalent.
type analyzerConfig struct {
	path       string
	severities map[string]Severity
	flags      []flagSetting
}

type flagSetting struct {
	analyzer *analysis.Analyzer
	name     string
	value    string
}

func parseConfig(doc *ConfigDocument, analyzers []*analysis.Analyzer) (*analyzerConfig, error) {
	cfg := &analyzerConfig{severities: make(map[string]Severity)}
	if doc == nil {
		return cfg, nil
	}
	cfg.path = doc.Path
	invalid := func(entry string, err error) error {
		return &ConfigError{Entry: entry, Path: doc.Path, Err: err}
	}

	var raw map[string]any
	if _, err := toml.Decode(doc.Content, &raw); err != nil {
		return nil, invalid(syntaxErrorLine(doc.Content, err), err)
	}

	byName := make(map[string]*analysis.Analyzer, len(analyzers))
	for _, a := range analyzers {
		byName[a.Name] = a
	}

	for _, name := range slices.Sorted(maps.Keys(raw)) {
		table, ok := raw[name].(map[string]any)
		if !ok {
			return nil, invalid(name, errors.New("it must be a table of analyzer settings"))
		}
		a, ok := byName[name]
		if !ok {
			return nil, invalid(name, fmt.Errorf("unknown analyzer %q", name))
		}

		for _, key := range slices.Sorted(maps.Keys(table)) {
			entry := name + "." + key
			if key == severityKey {
				s, _ := table[key].(string)
				sev, ok := parseSeverity(s)
				if !ok {
					return nil, invalid(entry, fmt.Errorf("unknown severity %v", table[key]))
				}
				cfg.severities[name] = sev
				continue
			}

			if a.Flags.Lookup(key) == nil {
				return nil, invalid(entry, fmt.Errorf("analyzer %s has no flag %q", name, key))
			}
			value, err := flagValue(table[key])
			if err != nil {
				return nil, invalid(entry, err)
			}
			cfg.flags = append(cfg.flags, flagSetting{analyzer: a, name: key, value: value})
		}
	}
	return cfg, nil
}

// syntaxErrorLine returns the trimmed document line a TOML syntax error points
// at, or an empty string when the error carries no position.
func syntaxErrorLine(content string, err error) string {
	var perr toml.ParseError
	if !errors.As(err, &perr) || perr.Position.Line < 1 {
		return ""
	}
	for i, line := range strings.Split(content, "\n") {
		if i+1 == perr.Position.Line {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// flagValue renders a TOML value the way it would be written on a command line.
func flagValue(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			s, err := flagValue(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	default:
		return "", fmt.Errorf("unsupported value %v of type %T", v, v)
	}
}

// severity returns the configured severity of the named analyzer.
func (c *analyzerConfig) severity(analyzer string) Severity {
	if sev, ok := c.severities[analyzer]; ok {
		return sev
	}
	return DefaultSeverity
}

// flagMu guards analyzer flags. Analyzers are package-level values, so a run
// that sets flags excludes every other run; runs without flag settings share
// the lock.
var flagMu sync.RWMutex

// apply sets the configured analyzer flags and returns a function that
// restores the previous values and releases flagMu.
func (c *analyzerConfig) apply() (restore func(), err error) {
	if len(c.flags) == 0 {
		flagMu.RLock()
		return flagMu.RUnlock, nil
	}

	flagMu.Lock()
	var undo []func()
	restore = func() {
		for _, u := range slices.Backward(undo) {
			u()
		}
		flagMu.Unlock()
	}

	for _, s := range c.flags {
		f := s.analyzer.Flags.Lookup(s.name)
		previous := f.Value.String()
		if err := f.Value.Set(s.value); err != nil {
			restore()
			return nil, &ConfigError{
				Entry: s.analyzer.Name + "." + s.name,
				Path:  c.path,
				Err:   fmt.Errorf("%q is not a valid value: %w", s.value, err),
			}
		}
		undo = append(undo, resetFlag(f, previous))
	}
	return restore, nil
}

func resetFlag(f *flag.Flag, previous string) func() {
	return func() { _ = f.Value.Set(previous) }
}
