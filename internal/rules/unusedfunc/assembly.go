package unusedfunc

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

var (
	// textPattern matches a function implemented in assembly: TEXT ·name(SB).
	textPattern = regexp.MustCompile(`TEXT\s+·([a-zA-Z_][a-zA-Z0-9_]*)(?:<[^>]*>)?\(SB\)`)

	// callPattern matches a call or jump from assembly into Go: CALL ·name(SB).
	callPattern = regexp.MustCompile(`(?:CALL|JMP)\s+·([a-zA-Z_][a-zA-Z0-9_]*)(?:<[^>]*>)?\(SB\)`)
)

// assemblyInfo records the package-level symbols the package's assembly
// files define and reference.
type assemblyInfo struct {
	implemented map[string]struct{}
	called      map[string]struct{}
}

func newAssemblyInfo() *assemblyInfo {
	return &assemblyInfo{
		implemented: make(map[string]struct{}),
		called:      make(map[string]struct{}),
	}
}

func (a *assemblyInfo) implements(name string) bool {
	_, ok := a.implemented[name]
	return ok
}

func (a *assemblyInfo) calls(name string) bool {
	_, ok := a.called[name]
	return ok
}

// scan reads one assembly file.
func (a *assemblyInfo) scan(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if m := textPattern.FindStringSubmatch(line); m != nil {
			a.implemented[m[1]] = struct{}{}
		}
		for _, m := range callPattern.FindAllStringSubmatch(line, -1) {
			a.called[m[1]] = struct{}{}
		}
	}
	return scanner.Err()
}
