package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantText   string
		wantSpans  []Span
		wantCarets []int
	}{
		{
			name:     "no markup",
			src:      "package p\n",
			wantText: "package p\n",
		},
		{
			name:      "unnamed span",
			src:       "func [|f|]() {}",
			wantText:  "func f() {}",
			wantSpans: []Span{{Start: 5, End: 6}},
		},
		{
			name:      "named span",
			src:       "func {|unusedfunc:helper|}() {}",
			wantText:  "func helper() {}",
			wantSpans: []Span{{Name: "unusedfunc", Start: 5, End: 11}},
		},
		{
			name:     "nested spans keep opening order",
			src:      "[|a {|x:b|} c|]",
			wantText: "a b c",
			wantSpans: []Span{
				{Start: 0, End: 5},
				{Name: "x", Start: 2, End: 3},
			},
		},
		{
			name:       "caret",
			src:        "x := $$1",
			wantText:   "x := 1",
			wantCarets: []int{5},
		},
		{
			name:      "empty span",
			src:       "a[||]b",
			wantText:  "ab",
			wantSpans: []Span{{Start: 1, End: 1}},
		},
		{
			name:      "slice expressions are not markup",
			src:       "s[1:2] [|x|]",
			wantText:  "s[1:2] x",
			wantSpans: []Span{{Start: 7, End: 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.wantText, doc.Text)
			require.Equal(t, tt.wantSpans, doc.Spans)
			require.Equal(t, tt.wantCarets, doc.Carets)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		errorContains string
	}{
		{name: "unclosed", src: "a [|b", errorContains: "offset 2 is never closed"},
		{name: "stray close", src: "a |] b", errorContains: "no matching opener"},
		{name: "mismatched close", src: "[|a|}", errorContains: "no matching opener"},
		{name: "named without colon", src: "{|abc|}", errorContains: "no name"},
		{name: "named with empty name", src: "x {|:y|} z", errorContains: "offset 2 has an empty name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.ErrorIs(t, err, ErrMalformed)
			require.ErrorContains(t, err, tt.errorContains)
		})
	}
}

func TestStrip(t *testing.T) {
	text, err := Strip("class [|C|] { }")
	require.NoError(t, err)
	require.Equal(t, "class C { }", text)

	_, err = Strip("[|")
	require.Error(t, err)
}

func TestSpan_Len(t *testing.T) {
	require.Equal(t, 3, Span{Start: 2, End: 5}.Len())
}
