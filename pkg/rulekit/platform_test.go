package rulekit

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupPlatform(t *testing.T) {
	p, ok := LookupPlatform("")
	require.True(t, ok)
	require.Equal(t, DefaultPlatform, p.Name)

	p, ok = LookupPlatform("go1.25")
	require.True(t, ok)
	require.Equal(t, "1.25", p.GoVersion)

	_, ok = LookupPlatform("net8.0")
	require.False(t, ok)
}

func TestPlatforms(t *testing.T) {
	require.Equal(t, []string{"go1.22", "go1.23", "go1.24", "go1.25"}, Platforms())
}

func TestNewTypeReference(t *testing.T) {
	tests := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeFor[Platform](), "github.com/715d/rulekit/pkg/rulekit"},
		{reflect.TypeFor[*Platform](), "github.com/715d/rulekit/pkg/rulekit"},
		{reflect.TypeFor[map[string][]Platform](), "github.com/715d/rulekit/pkg/rulekit"},
		{reflect.TypeFor[chan reflect.Value](), "reflect"},
		{reflect.TypeFor[string](), ""},
		{reflect.TypeFor[func()](), ""},
		{reflect.TypeFor[struct{ X int }](), ""},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			ref := newTypeReference(tt.typ)
			require.Equal(t, tt.want, ref.PkgPath)
			require.Equal(t, tt.typ, ref.Type)
		})
	}
}

func TestResolveModule(t *testing.T) {
	mod, err := resolveModule(t.Context(), "strings")
	require.NoError(t, err)
	require.Nil(t, mod, "standard library has no module")

	mod, err = resolveModule(t.Context(), "github.com/715d/rulekit/pkg/markup")
	require.NoError(t, err)
	require.NotNil(t, mod)
	require.Equal(t, "github.com/715d/rulekit", mod.Path)
	require.Equal(t, "v0.0.0", mod.requireVersion())
	require.NotEmpty(t, mod.Dir)

	cached, ok := moduleCache.Load("github.com/715d/rulekit/pkg/markup")
	require.True(t, ok)
	require.Same(t, mod, cached)
}

func TestPackageReference_String(t *testing.T) {
	require.Equal(t, "golang.org/x/text@v0.20.0", PackageReference{Name: "golang.org/x/text", Version: "v0.20.0"}.String())
}
