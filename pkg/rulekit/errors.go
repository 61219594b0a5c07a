package rulekit

import (
	"errors"
	"fmt"
)

// ErrUsage matches every *UsageError. A usage error means the test fixture
// itself is broken, not that an analyzer misbehaved.
var ErrUsage = errors.New("rulekit: invalid test fixture")

// UsageError reports a misconfigured Builder.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "rulekit: " + e.Msg
}

// Is makes errors.Is(err, ErrUsage) hold for every UsageError.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

// ConfigError reports an entry of a configuration document that cannot be
// applied. It matches ErrConfig.
type ConfigError struct {
	// Entry is the offending key, e.g. "unusedfunc.strict", or the line of a
	// syntax error.
	Entry string

	// Path is the virtual path of the configuration document.
	Path string

	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration entry %q in file %q is invalid because: %v", e.Entry, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfig) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
