// Package markup parses test markup embedded in analyzer test sources.
//
// Supported markers:
//
//	[|text|]        an expected diagnostic span
//	{|name:text|}   an expected diagnostic span from the analyzer or category "name"
//	$$              a caret position
//
// Spans may nest. All offsets refer to the markup-free text.
package markup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports unbalanced or incomplete markup.
var ErrMalformed = errors.New("malformed test markup")

const (
	openSpan       = "[|"
	closeSpan      = "|]"
	openNamedSpan  = "{|"
	closeNamedSpan = "|}"
	caret          = "$$"
)

// Span is a marked region of the markup-free text.
type Span struct {
	// Name is empty for [|...|] spans.
	Name  string
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Document is the result of stripping markup from a source.
type Document struct {
	// Text is the source with every marker removed.
	Text string

	// Spans holds the marked spans in the order they were opened.
	Spans []Span

	// Carets holds the offsets of $$ markers.
	Carets []int
}

type open struct {
	index  int // into Document.Spans
	named  bool
	offset int // in the marked-up source, for error messages
}

// Parse strips markup from src.
func Parse(src string) (*Document, error) {
	doc := &Document{}
	var out strings.Builder
	out.Grow(len(src))
	var stack []open

	for i := 0; i < len(src); {
		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, openSpan):
			stack = append(stack, open{index: len(doc.Spans), offset: i})
			doc.Spans = append(doc.Spans, Span{Start: out.Len()})
			i += len(openSpan)

		case strings.HasPrefix(rest, openNamedSpan):
			colon := strings.IndexByte(rest, ':')
			if colon < 0 || strings.Contains(rest[:colon], closeNamedSpan) {
				return nil, fmt.Errorf("%w: %q at offset %d has no name terminated by ':'", ErrMalformed, openNamedSpan, i)
			}
			name := rest[len(openNamedSpan):colon]
			if name == "" {
				return nil, fmt.Errorf("%w: %q at offset %d has an empty name", ErrMalformed, openNamedSpan, i)
			}
			stack = append(stack, open{index: len(doc.Spans), named: true, offset: i})
			doc.Spans = append(doc.Spans, Span{Name: name, Start: out.Len()})
			i += colon + 1

		case strings.HasPrefix(rest, closeSpan), strings.HasPrefix(rest, closeNamedSpan):
			named := strings.HasPrefix(rest, closeNamedSpan)
			if len(stack) == 0 || stack[len(stack)-1].named != named {
				return nil, fmt.Errorf("%w: %q at offset %d has no matching opener", ErrMalformed, rest[:2], i)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			doc.Spans[top.index].End = out.Len()
			i += 2

		case strings.HasPrefix(rest, caret):
			doc.Carets = append(doc.Carets, out.Len())
			i += len(caret)

		default:
			out.WriteByte(src[i])
			i++
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, fmt.Errorf("%w: span opened at offset %d is never closed", ErrMalformed, top.offset)
	}
	doc.Text = out.String()
	return doc, nil
}

// Strip returns src without markup. It is shorthand for Parse(src).Text.
func Strip(src string) (string, error) {
	doc, err := Parse(src)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}
