package unusedfunc

import (
	"go/ast"
	"go/token"
	"regexp"
	"strings"
)

var (
	// nolintPattern matches //nolint:unusedfunc with an optional // reason.
	nolintPattern = regexp.MustCompile(`^//\s*nolint:([^/\s]+)(?:\s*//\s*(.+))?`)

	// genericNolintPattern matches a bare //nolint.
	genericNolintPattern = regexp.MustCompile(`^//\s*nolint(?:\s|$)`)

	// lintIgnorePattern matches //lint:ignore unusedfunc reason.
	lintIgnorePattern = regexp.MustCompile(`^//\s*lint:ignore\s+(\S+)(?:\s+(.+))?`)
)

// suppressions maps source lines of one file to the reason given by a
// suppression comment on that line.
type suppressions struct {
	fset   *token.FileSet
	byLine map[int]string
}

func loadSuppressions(fset *token.FileSet, file *ast.File) *suppressions {
	s := &suppressions{fset: fset, byLine: make(map[int]string)}
	for _, group := range file.Comments {
		for _, c := range group.List {
			if reason, ok := parseSuppression(c.Text); ok {
				s.byLine[fset.Position(c.Pos()).Line] = reason
			}
		}
	}
	return s
}

// suppressed reports whether a declaration at pos carries a suppression
// comment on its own line or the line before.
func (s *suppressions) suppressed(pos token.Pos) (string, bool) {
	line := s.fset.Position(pos).Line
	if reason, ok := s.byLine[line-1]; ok {
		return reason, true
	}
	reason, ok := s.byLine[line]
	return reason, ok
}

// parseSuppression returns the reason of a comment suppressing this analyzer.
// A suppression without a reason gets "suppressed".
func parseSuppression(text string) (string, bool) {
	if m := nolintPattern.FindStringSubmatch(text); m != nil {
		for rule := range strings.SplitSeq(m[1], ",") {
			if strings.TrimSpace(rule) == name {
				return reasonOr(m[2]), true
			}
		}
		return "", false
	}
	if genericNolintPattern.MatchString(text) {
		return reasonOr(""), true
	}
	if m := lintIgnorePattern.FindStringSubmatch(text); m != nil && m[1] == name {
		return reasonOr(m[2]), true
	}
	return "", false
}

func reasonOr(reason string) string {
	if reason = strings.TrimSpace(reason); reason != "" {
		return reason
	}
	return "suppressed"
}
