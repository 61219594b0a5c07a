package unusedfunc

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSuppression(t *testing.T) {
	tests := []struct {
		name       string
		comment    string
		wantReason string
		wantOK     bool
	}{
		{name: "nolint basic", comment: "//nolint:unusedfunc", wantReason: "suppressed", wantOK: true},
		{name: "nolint with reason", comment: "//nolint:unusedfunc // kept for the plugin API", wantReason: "kept for the plugin API", wantOK: true},
		{name: "nolint among rules", comment: "//nolint:errcheck,unusedfunc", wantReason: "suppressed", wantOK: true},
		{name: "nolint other rule", comment: "//nolint:errcheck", wantOK: false},
		{name: "generic nolint", comment: "//nolint", wantReason: "suppressed", wantOK: true},
		{name: "generic nolint with reason", comment: "//nolint // legacy", wantReason: "suppressed", wantOK: true},
		{name: "lint ignore", comment: "//lint:ignore unusedfunc needed by tests", wantReason: "needed by tests", wantOK: true},
		{name: "lint ignore other", comment: "//lint:ignore U1000 reason", wantOK: false},
		{name: "plain comment", comment: "// helper does things", wantOK: false},
		{name: "nolint prefix word", comment: "//nolintable", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := parseSuppression(tt.comment)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestSuppressions_Suppressed(t *testing.T) {
	src := `package p

//nolint:unusedfunc // above
func above() {}

func sameLine() {} //lint:ignore unusedfunc same line

func plain() {}
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	sup := loadSuppressions(fset, file)
	got := make(map[string]string)
	for _, decl := range file.Decls {
		fd := decl.(*ast.FuncDecl)
		if reason, ok := sup.suppressed(fd.Name.Pos()); ok {
			got[fd.Name.Name] = reason
		}
	}
	require.Equal(t, map[string]string{"above": "above", "sameLine": "same line"}, got)
}
