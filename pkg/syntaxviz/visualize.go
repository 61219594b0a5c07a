// Package syntaxviz renders a parsed Go syntax tree as an aligned, one line per
// node text report for debugging analyzer tests.
//
// Each line holds the node's concrete go/ast type indented by depth, its kind
// and the source text it spans:
//
//	File            | File       | package p\n\nfunc f() {}
//	  Ident         | Expr       | p
//	  FuncDecl      | Decl(func) | func f() {}
//	    Ident       | Expr       | f
//	    FuncType    | Type       | func f()
//	      FieldList | FieldList  | ()
//	    BlockStmt   | Stmt       | {}
package syntaxviz

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	separator = " | "
	indent    = "  "
)

// Record describes one visited node.
type Record struct {
	// Depth is 1 for the root and grows by one per level.
	Depth int

	// Kind is the syntactic category, see Kind.
	Kind string

	// TypeName is the concrete go/ast type name.
	TypeName string

	// Text is the source spanned by the node with line breaks escaped.
	Text string
}

var lineBreaks = strings.NewReplacer("\r\n", `\r\n`, "\n", `\n`)

// Collect walks root in pre-order and returns one record per present node.
// Absent child slots (nil optional fields) take part in depth bookkeeping but
// produce no record. src must be the text root was parsed from; fset resolves
// node positions to offsets in it.
func Collect(fset *token.FileSet, src []byte, root ast.Node) []Record {
	w := walker{fset: fset, src: src, records: make([]Record, 0, 256)}
	w.visit(root)
	return w.records
}

// Visualize renders the tree under root as an aligned report with one line per
// present node. The result depends only on its inputs.
func Visualize(fset *token.FileSet, src []byte, root ast.Node) string {
	return Format(Collect(fset, src, root))
}

// Format lays out records in three columns: indented type name, kind and
// source text. The first two columns are padded to their widest entry.
func Format(records []Record) string {
	names := make([]string, len(records))
	var nameWidth, kindWidth int
	for i, r := range records {
		names[i] = strings.Repeat(indent, max(r.Depth-1, 0)) + r.TypeName
		nameWidth = max(nameWidth, runewidth.StringWidth(names[i]))
		kindWidth = max(kindWidth, runewidth.StringWidth(r.Kind))
	}

	var b strings.Builder
	for i, r := range records {
		b.WriteString(runewidth.FillRight(names[i], nameWidth))
		b.WriteString(separator)
		b.WriteString(runewidth.FillRight(r.Kind, kindWidth))
		b.WriteString(separator)
		b.WriteString(r.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

type walker struct {
	fset    *token.FileSet
	src     []byte
	depth   int
	records []Record
}

func (w *walker) visit(n ast.Node) {
	w.depth++
	defer func() { w.depth-- }()

	if n == nil {
		return
	}
	w.records = append(w.records, Record{
		Depth:    w.depth,
		Kind:     Kind(n),
		TypeName: TypeName(n),
		Text:     lineBreaks.Replace(w.text(n)),
	})
	for _, child := range children(n) {
		w.visit(child)
	}
}

// text returns the source slice covered by n, or "" when n's positions do not
// map into src.
func (w *walker) text(n ast.Node) string {
	if w.fset == nil || !n.Pos().IsValid() || !n.End().IsValid() {
		return ""
	}
	file := w.fset.File(n.Pos())
	if file == nil {
		return ""
	}
	start, end := file.Offset(n.Pos()), file.Offset(n.End())
	if start < 0 || end > len(w.src) || start > end {
		return ""
	}
	return string(w.src[start:end])
}
