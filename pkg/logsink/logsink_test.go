package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSink_WriteLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)
	sink := FileAt(path, "FileSinkTest")

	require.NoError(t, sink.WriteLine("test1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	require.NotEmpty(t, content)
	require.Contains(t, content, "context=FileSinkTest")
	require.Contains(t, content, "method=TestFileSink_WriteLine")
	require.Contains(t, content, "msg=test1")
	require.Contains(t, content, fmt.Sprintf("pid=%d", os.Getpid()))
}

func TestFileSink_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), LogFileName)
	sink := FileAt(path, "append")

	require.NoError(t, sink.WriteLine("first"))
	require.NoError(t, sink.WriteLine("second\nline"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2, "multi-line messages stay on one entry line")
	require.Contains(t, lines[0], "msg=first")
	require.Contains(t, lines[1], `msg="second\nline"`)
}

func TestFileSink_UnwritablePath(t *testing.T) {
	sink := FileAt(filepath.Join(t.TempDir(), "missing", "dir", LogFileName), "x")
	require.Error(t, sink.WriteLine("lost"))
}

func TestFile_DefaultPath(t *testing.T) {
	sink := File("ctx")
	require.Equal(t, LogFilePath, sink.Path())
	require.Equal(t, LogFileName, filepath.Base(sink.Path()))
}

func TestDiscard(t *testing.T) {
	require.NoError(t, Discard.WriteLine("anything"))
}

func TestForTest(t *testing.T) {
	require.NoError(t, ForTest(t).WriteLine("visible with -v"))
}
