package ast

import "github.com/Happy-Ferret/futhark/internal/typesystem"

// MapTypes applies f to every type recorded in e, including parameter
// annotations and declared return types, without altering the tree shape.
// It is the one traversal the specializer uses to push a substitution
// through a function body.
func MapTypes(e Expression, f func(typesystem.Type) typesystem.Type) Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *IntLit:
		c := *n
		c.Typ = f(n.Typ)
		return &c
	case *FloatLit:
		c := *n
		c.Typ = f(n.Typ)
		return &c
	case *BoolLit:
		c := *n
		c.Typ = f(n.Typ)
		return &c
	case *Var:
		c := *n
		c.Typ = f(n.Typ)
		return &c
	case *Apply:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Arg = MapTypes(n.Arg, f)
		c.Typ = f(n.Typ)
		return &c
	case *Lambda:
		c := *n
		c.Params = mapParamTypes(n.Params, f)
		c.Body = MapTypes(n.Body, f)
		c.RetType = f(n.RetType)
		c.Typ = f(n.Typ)
		return &c
	case *LetPat:
		c := *n
		c.Value = MapTypes(n.Value, f)
		c.Body = MapTypes(n.Body, f)
		c.Typ = f(n.Typ)
		return &c
	case *LetFun:
		c := *n
		c.Params = mapParamTypes(n.Params, f)
		c.RetType = f(n.RetType)
		c.FunBody = MapTypes(n.FunBody, f)
		c.Body = MapTypes(n.Body, f)
		c.Typ = f(n.Typ)
		return &c
	case *If:
		c := *n
		c.Cond = MapTypes(n.Cond, f)
		c.Then = MapTypes(n.Then, f)
		c.Else = MapTypes(n.Else, f)
		c.Typ = f(n.Typ)
		return &c
	case *RecordLit:
		c := *n
		fields := make([]*FieldExpr, len(n.Fields))
		for i, fe := range n.Fields {
			fields[i] = &FieldExpr{Name: fe.Name, Value: MapTypes(fe.Value, f)}
		}
		c.Fields = fields
		c.Typ = f(n.Typ)
		return &c
	case *Project:
		c := *n
		c.Value = MapTypes(n.Value, f)
		c.Typ = f(n.Typ)
		return &c
	case *ArrayLit:
		c := *n
		c.Elems = mapExprs(n.Elems, f)
		c.Typ = f(n.Typ)
		return &c
	case *Index:
		c := *n
		c.Array = MapTypes(n.Array, f)
		c.Indices = mapExprs(n.Indices, f)
		c.Typ = f(n.Typ)
		return &c
	case *Negate:
		c := *n
		c.Value = MapTypes(n.Value, f)
		c.Typ = f(n.Typ)
		return &c
	case *OpSection:
		c := *n
		c.Typ = f(n.Typ)
		return &c
	case *OpSectionLeft:
		c := *n
		c.Operand = MapTypes(n.Operand, f)
		c.Typ = f(n.Typ)
		return &c
	case *OpSectionRight:
		c := *n
		c.Operand = MapTypes(n.Operand, f)
		c.Typ = f(n.Typ)
		return &c
	case *ProjectSection:
		c := *n
		c.Typ = f(n.Typ)
		return &c
	case *IndexSection:
		c := *n
		c.Indices = mapExprs(n.Indices, f)
		c.Typ = f(n.Typ)
		return &c
	case *Map:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	case *Filter:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	case *Reduce:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Neutral = MapTypes(n.Neutral, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	case *Scan:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Neutral = MapTypes(n.Neutral, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	case *Partition:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	case *StreamMap:
		c := *n
		c.Fun = MapTypes(n.Fun, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	case *StreamRed:
		c := *n
		c.Op = MapTypes(n.Op, f)
		c.Fun = MapTypes(n.Fun, f)
		c.Arr = MapTypes(n.Arr, f)
		c.Typ = f(n.Typ)
		return &c
	default:
		return e
	}
}

func mapParamTypes(params []*Param, f func(typesystem.Type) typesystem.Type) []*Param {
	out := make([]*Param, len(params))
	for i, p := range params {
		out[i] = &Param{Token: p.Token, Name: p.Name, Typ: f(p.Typ)}
	}
	return out
}

func mapExprs(es []Expression, f func(typesystem.Type) typesystem.Type) []Expression {
	out := make([]Expression, len(es))
	for i, e := range es {
		out[i] = MapTypes(e, f)
	}
	return out
}
