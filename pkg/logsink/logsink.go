// Package logsink provides line-oriented sinks for analyzer test debug output.
package logsink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// LogFileName is the name of the shared log file in the temp directory.
const LogFileName = "rulekit.log"

// LogFilePath is where file sinks append by default.
var LogFilePath = filepath.Join(os.TempDir(), LogFileName)

// Sink receives blocks of text, one call per entry.
type Sink interface {
	WriteLine(text string) error
}

// ForTest returns a sink that writes to the test log.
func ForTest(tb testing.TB) Sink {
	return testSink{tb: tb}
}

type testSink struct {
	tb testing.TB
}

func (s testSink) WriteLine(text string) error {
	s.tb.Helper()
	s.tb.Log(text)
	return nil
}

// Discard drops everything written to it.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteLine(string) error { return nil }

// FileSink appends entries to a log file. Each entry records the context name,
// the calling function, the message and the process id.
type FileSink struct {
	path    string
	context string
}

// File returns a sink appending to LogFilePath under the given context name.
func File(context string) *FileSink {
	return &FileSink{path: LogFilePath, context: context}
}

// FileAt returns a sink appending to path.
func FileAt(path, context string) *FileSink {
	return &FileSink{path: path, context: context}
}

// Path returns the file the sink appends to.
func (s *FileSink) Path() string { return s.path }

// fileMu serializes appends from all file sinks in the process.
var fileMu sync.Mutex

// WriteLine appends one entry to the log file, creating it if needed.
func (s *FileSink) WriteLine(text string) error {
	method := callerName(2)

	fileMu.Lock()
	defer fileMu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.LogAttrs(context.Background(), slog.LevelInfo, text,
		slog.String("context", s.context),
		slog.String("method", method),
		slog.Int("pid", os.Getpid()),
	)
	return nil
}

// callerName returns the unqualified function name skip frames above the caller.
func callerName(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
