package syntaxviz

import (
	"go/ast"
	"reflect"
)

// Kind classifies n by syntactic category. Where a token selects the variant
// (operators, literal kinds, declaration keywords) it is appended in
// parentheses, e.g. "Expr(+)", "Decl(type)", "Stmt(:=)".
func Kind(n ast.Node) string {
	switch n := n.(type) {
	case *ast.File:
		return "File"
	case *ast.Comment:
		return "Comment"
	case *ast.CommentGroup:
		return "CommentGroup"
	case *ast.Field:
		return "Field"
	case *ast.FieldList:
		return "FieldList"

	case *ast.BasicLit:
		return qualified("Expr", n.Kind.String())
	case *ast.BinaryExpr:
		return qualified("Expr", n.Op.String())
	case *ast.UnaryExpr:
		return qualified("Expr", n.Op.String())
	case *ast.ArrayType, *ast.StructType, *ast.FuncType,
		*ast.InterfaceType, *ast.MapType, *ast.ChanType:
		return "Type"
	case ast.Expr:
		return "Expr"

	case *ast.AssignStmt:
		return qualified("Stmt", n.Tok.String())
	case *ast.IncDecStmt:
		return qualified("Stmt", n.Tok.String())
	case *ast.BranchStmt:
		return qualified("Stmt", n.Tok.String())
	case *ast.ReturnStmt:
		return "Stmt(return)"
	case *ast.GoStmt:
		return "Stmt(go)"
	case *ast.DeferStmt:
		return "Stmt(defer)"
	case ast.Stmt:
		return "Stmt"

	case *ast.GenDecl:
		return qualified("Decl", n.Tok.String())
	case *ast.FuncDecl:
		return "Decl(func)"
	case ast.Decl:
		return "Decl"

	case ast.Spec:
		return "Spec"
	}
	return "Node"
}

// TypeName returns the concrete go/ast variant name of n, e.g. "FuncDecl".
func TypeName(n ast.Node) string {
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func qualified(category, tok string) string {
	if tok == "" || tok == "ILLEGAL" {
		return category
	}
	return category + "(" + tok + ")"
}
