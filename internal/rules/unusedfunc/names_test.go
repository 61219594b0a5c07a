package unusedfunc

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	src := `package p

type Person struct{}

func (p Person) name() string { return "" }
func (p *Person) rename()     {}

type Container[T any] struct{ items []T }

func (c *Container[T]) clear() {}
func (c Container[V]) size() int { return len(c.items) }

func helper() {}
func mapKeys[K comparable, V any](m map[K]V) []K { return nil }
`
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "p.go", src, 0)
	require.NoError(t, err)

	info := &types.Info{Defs: make(map[*ast.Ident]types.Object)}
	_, err = new(types.Config).Check("p", fset, []*ast.File{file}, info)
	require.NoError(t, err)

	got := make(map[string]string)
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		got[fd.Name.Name] = describe(info.Defs[fd.Name].(*types.Func))
	}

	require.Equal(t, map[string]string{
		"name":    "method Person.name",
		"rename":  "method *Person.rename",
		"clear":   "method *Container[T].clear",
		"size":    "method Container[V].size",
		"helper":  "func helper",
		"mapKeys": "func mapKeys[K, V]",
	}, got)
}
