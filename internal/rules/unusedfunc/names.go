package unusedfunc

import (
	"go/types"
	"strings"
)

// describe names fn for a diagnostic: "func helper", "func Map[K, V]",
// "method *Container[T].clear".
func describe(fn *types.Func) string {
	var b strings.Builder
	sig := fn.Signature()

	recv := sig.Recv()
	if recv == nil {
		b.WriteString("func ")
		b.WriteString(fn.Name())
		writeTypeParams(&b, sig.TypeParams())
		return b.String()
	}

	b.WriteString("method ")
	typ := recv.Type()
	if ptr, ok := typ.(*types.Pointer); ok {
		b.WriteByte('*')
		typ = ptr.Elem()
	}
	b.WriteString(typeName(typ))
	b.WriteByte('.')
	b.WriteString(fn.Name())
	return b.String()
}

// typeName returns the unqualified name of a receiver type, with type
// parameters or arguments for generic types.
func typeName(typ types.Type) string {
	switch t := typ.(type) {
	case *types.Named:
		var b strings.Builder
		b.WriteString(t.Obj().Name())
		if args := t.TypeArgs(); args.Len() > 0 {
			b.WriteByte('[')
			for i := range args.Len() {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(types.TypeString(args.At(i), (*types.Package).Name))
			}
			b.WriteByte(']')
		} else {
			writeTypeParams(&b, t.TypeParams())
		}
		return b.String()
	case *types.Alias:
		return t.Obj().Name()
	default:
		return types.TypeString(typ, (*types.Package).Name)
	}
}

func writeTypeParams(b *strings.Builder, params *types.TypeParamList) {
	if params.Len() == 0 {
		return
	}
	b.WriteByte('[')
	for i := range params.Len() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(params.At(i).Obj().Name())
	}
	b.WriteByte(']')
}
