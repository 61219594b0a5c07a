package syntaxviz

import "go/ast"

// children returns the child slots of n in source order, mirroring the visiting
// order of ast.Walk. Optional slots that hold no node are returned as nil so the
// walker can account for them.
func children(n ast.Node) []ast.Node {
	var s slots
	switch n := n.(type) {
	case *ast.Comment, *ast.BadExpr, *ast.Ident, *ast.BasicLit,
		*ast.BadStmt, *ast.EmptyStmt, *ast.BadDecl:
		// leaves

	case *ast.CommentGroup:
		for _, c := range n.List {
			s.add(c)
		}

	case *ast.Field:
		s.add(opt(n.Doc))
		s.idents(n.Names)
		s.add(n.Type)
		s.add(opt(n.Tag))
		s.add(opt(n.Comment))

	case *ast.FieldList:
		for _, f := range n.List {
			s.add(f)
		}

	// Expressions
	case *ast.Ellipsis:
		s.add(n.Elt)

	case *ast.FuncLit:
		s.add(n.Type)
		s.add(n.Body)

	case *ast.CompositeLit:
		s.add(n.Type)
		s.exprs(n.Elts)

	case *ast.ParenExpr:
		s.add(n.X)

	case *ast.SelectorExpr:
		s.add(n.X)
		s.add(n.Sel)

	case *ast.IndexExpr:
		s.add(n.X)
		s.add(n.Index)

	case *ast.IndexListExpr:
		s.add(n.X)
		s.exprs(n.Indices)

	case *ast.SliceExpr:
		s.add(n.X)
		s.add(n.Low)
		s.add(n.High)
		s.add(n.Max)

	case *ast.TypeAssertExpr:
		s.add(n.X)
		s.add(n.Type)

	case *ast.CallExpr:
		s.add(n.Fun)
		s.exprs(n.Args)

	case *ast.StarExpr:
		s.add(n.X)

	case *ast.UnaryExpr:
		s.add(n.X)

	case *ast.BinaryExpr:
		s.add(n.X)
		s.add(n.Y)

	case *ast.KeyValueExpr:
		s.add(n.Key)
		s.add(n.Value)

	// Types
	case *ast.ArrayType:
		s.add(n.Len)
		s.add(n.Elt)

	case *ast.StructType:
		s.add(n.Fields)

	case *ast.FuncType:
		s.add(opt(n.TypeParams))
		s.add(opt(n.Params))
		s.add(opt(n.Results))

	case *ast.InterfaceType:
		s.add(n.Methods)

	case *ast.MapType:
		s.add(n.Key)
		s.add(n.Value)

	case *ast.ChanType:
		s.add(n.Value)

	// Statements
	case *ast.DeclStmt:
		s.add(n.Decl)

	case *ast.LabeledStmt:
		s.add(n.Label)
		s.add(n.Stmt)

	case *ast.ExprStmt:
		s.add(n.X)

	case *ast.SendStmt:
		s.add(n.Chan)
		s.add(n.Value)

	case *ast.IncDecStmt:
		s.add(n.X)

	case *ast.AssignStmt:
		s.exprs(n.Lhs)
		s.exprs(n.Rhs)

	case *ast.GoStmt:
		s.add(n.Call)

	case *ast.DeferStmt:
		s.add(n.Call)

	case *ast.ReturnStmt:
		s.exprs(n.Results)

	case *ast.BranchStmt:
		s.add(opt(n.Label))

	case *ast.BlockStmt:
		s.stmts(n.List)

	case *ast.IfStmt:
		s.add(n.Init)
		s.add(n.Cond)
		s.add(n.Body)
		s.add(n.Else)

	case *ast.CaseClause:
		s.exprs(n.List)
		s.stmts(n.Body)

	case *ast.SwitchStmt:
		s.add(n.Init)
		s.add(n.Tag)
		s.add(n.Body)

	case *ast.TypeSwitchStmt:
		s.add(n.Init)
		s.add(n.Assign)
		s.add(n.Body)

	case *ast.CommClause:
		s.add(n.Comm)
		s.stmts(n.Body)

	case *ast.SelectStmt:
		s.add(n.Body)

	case *ast.ForStmt:
		s.add(n.Init)
		s.add(n.Cond)
		s.add(n.Post)
		s.add(n.Body)

	case *ast.RangeStmt:
		s.add(n.Key)
		s.add(n.Value)
		s.add(n.X)
		s.add(n.Body)

	// Declarations
	case *ast.ImportSpec:
		s.add(opt(n.Doc))
		s.add(opt(n.Name))
		s.add(n.Path)
		s.add(opt(n.Comment))

	case *ast.ValueSpec:
		s.add(opt(n.Doc))
		s.idents(n.Names)
		s.add(n.Type)
		s.exprs(n.Values)
		s.add(opt(n.Comment))

	case *ast.TypeSpec:
		s.add(opt(n.Doc))
		s.add(n.Name)
		s.add(opt(n.TypeParams))
		s.add(n.Type)
		s.add(opt(n.Comment))

	case *ast.GenDecl:
		s.add(opt(n.Doc))
		for _, spec := range n.Specs {
			s.add(spec)
		}

	case *ast.FuncDecl:
		s.add(opt(n.Doc))
		s.add(opt(n.Recv))
		s.add(n.Name)
		s.add(n.Type)
		s.add(opt(n.Body))

	case *ast.File:
		s.add(opt(n.Doc))
		s.add(n.Name)
		for _, d := range n.Decls {
			s.add(d)
		}
	}
	return s
}

type slots []ast.Node

// add appends one slot. Interface-typed fields convert to a nil ast.Node when
// empty; pointer fields must go through opt first.
func (s *slots) add(n ast.Node) { *s = append(*s, n) }

func (s *slots) exprs(list []ast.Expr) {
	for _, x := range list {
		s.add(x)
	}
}

func (s *slots) stmts(list []ast.Stmt) {
	for _, x := range list {
		s.add(x)
	}
}

func (s *slots) idents(list []*ast.Ident) {
	for _, x := range list {
		s.add(x)
	}
}

// opt turns a nil pointer into an absent slot instead of a non-nil interface
// holding a nil pointer.
func opt[E any, P interface {
	*E
	ast.Node
}](p P) ast.Node {
	if p == nil {
		return nil
	}
	return p
}
