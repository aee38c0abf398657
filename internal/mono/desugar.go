package mono

import (
	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/config"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

type soacForm struct {
	name  string
	arity int
}

// soacForms maps the combinator intrinsics to their fixed argument counts.
// Only fully applied spines are rewritten; a partially applied combinator
// stays an ordinary application.
var soacForms = map[names.VName]soacForm{}

func init() {
	for _, f := range []soacForm{
		{config.MapFuncName, 2},
		{config.FilterFuncName, 2},
		{config.ReduceFuncName, 3},
		{config.ReduceCommFuncName, 3},
		{config.ScanFuncName, 3},
		{config.PartitionFuncName, 2},
		{config.StreamMapFuncName, 2},
		{config.StreamRedFuncName, 3},
	} {
		v, ok := symbols.IntrinsicTerm(f.name)
		if !ok {
			panic("missing combinator intrinsic " + f.name)
		}
		soacForms[v] = f
	}
}

// recognizeSOAC checks whether an application spine is a fully applied
// combinator intrinsic and, if so, rewrites it into the first-class node.
func (m *Monomorphizer) recognizeSOAC(env *Env, e *ast.Apply) (ast.Expression, bool, error) {
	var args []ast.Expression
	cur := ast.Expression(e)
	for {
		ap, ok := cur.(*ast.Apply)
		if !ok {
			break
		}
		args = append(args, ap.Arg)
		cur = ap.Fun
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}

	head, ok := cur.(*ast.Var)
	if !ok || len(head.Name.Quals) != 0 {
		return nil, false, nil
	}
	form, ok := soacForms[head.Name.Name]
	if !ok || len(args) != form.arity {
		return nil, false, nil
	}

	targs, err := m.transformExpressions(env, args)
	if err != nil {
		return nil, false, err
	}

	switch form.name {
	case config.MapFuncName:
		return &ast.Map{Token: e.Token, Fun: targs[0], Arr: targs[1], Typ: e.Typ}, true, nil
	case config.FilterFuncName:
		return &ast.Filter{Token: e.Token, Fun: targs[0], Arr: targs[1], Typ: e.Typ}, true, nil
	case config.ReduceFuncName:
		return &ast.Reduce{Token: e.Token, Fun: targs[0], Neutral: targs[1], Arr: targs[2], Typ: e.Typ}, true, nil
	case config.ReduceCommFuncName:
		return &ast.Reduce{Token: e.Token, Comm: true, Fun: targs[0], Neutral: targs[1], Arr: targs[2], Typ: e.Typ}, true, nil
	case config.ScanFuncName:
		return &ast.Scan{Token: e.Token, Fun: targs[0], Neutral: targs[1], Arr: targs[2], Typ: e.Typ}, true, nil
	case config.PartitionFuncName:
		return &ast.Partition{Token: e.Token, Fun: targs[0], Arr: targs[1], Typ: e.Typ}, true, nil
	case config.StreamMapFuncName:
		return &ast.StreamMap{Token: e.Token, Fun: targs[0], Arr: targs[1], Typ: e.Typ}, true, nil
	case config.StreamRedFuncName:
		return &ast.StreamRed{Token: e.Token, Op: targs[0], Fun: targs[1], Arr: targs[2], Typ: e.Typ}, true, nil
	}
	return nil, false, nil
}

// transformSOACNode recurses into a combinator node that is already
// first-class, which happens when a recognized spine is re-visited through
// a specialized body.
func (m *Monomorphizer) transformSOACNode(env *Env, expr ast.Expression) (ast.Expression, error) {
	switch e := expr.(type) {
	case *ast.Map:
		fun, arr, err := m.transformPair(env, e.Fun, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.Map{Token: e.Token, Fun: fun, Arr: arr, Typ: e.Typ}, nil
	case *ast.Filter:
		fun, arr, err := m.transformPair(env, e.Fun, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.Filter{Token: e.Token, Fun: fun, Arr: arr, Typ: e.Typ}, nil
	case *ast.Reduce:
		fun, err := m.transformExpression(env, e.Fun)
		if err != nil {
			return nil, err
		}
		neutral, arr, err := m.transformPair(env, e.Neutral, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.Reduce{Token: e.Token, Comm: e.Comm, Fun: fun, Neutral: neutral, Arr: arr, Typ: e.Typ}, nil
	case *ast.Scan:
		fun, err := m.transformExpression(env, e.Fun)
		if err != nil {
			return nil, err
		}
		neutral, arr, err := m.transformPair(env, e.Neutral, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.Scan{Token: e.Token, Fun: fun, Neutral: neutral, Arr: arr, Typ: e.Typ}, nil
	case *ast.Partition:
		fun, arr, err := m.transformPair(env, e.Fun, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.Partition{Token: e.Token, Fun: fun, Arr: arr, Typ: e.Typ}, nil
	case *ast.StreamMap:
		fun, arr, err := m.transformPair(env, e.Fun, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.StreamMap{Token: e.Token, Fun: fun, Arr: arr, Typ: e.Typ}, nil
	case *ast.StreamRed:
		op, err := m.transformExpression(env, e.Op)
		if err != nil {
			return nil, err
		}
		fun, arr, err := m.transformPair(env, e.Fun, e.Arr)
		if err != nil {
			return nil, err
		}
		return &ast.StreamRed{Token: e.Token, Op: op, Fun: fun, Arr: arr, Typ: e.Typ}, nil
	}
	return nil, internalErrorf(expr.GetToken(), "not a combinator node: %T", expr)
}

func (m *Monomorphizer) transformPair(env *Env, a, b ast.Expression) (ast.Expression, ast.Expression, error) {
	ta, err := m.transformExpression(env, a)
	if err != nil {
		return nil, nil, err
	}
	tb, err := m.transformExpression(env, b)
	if err != nil {
		return nil, nil, err
	}
	return ta, tb, nil
}

// desugarOpSection rewrites (op) into \x y -> x op y.
func (m *Monomorphizer) desugarOpSection(env *Env, e *ast.OpSection) (ast.Expression, error) {
	outer, ok := e.Typ.(typesystem.TFunc)
	if !ok {
		return nil, internalErrorf(e.Token, "operator section at non-function type %s", e.Typ)
	}
	inner, ok := outer.Return.(typesystem.TFunc)
	if !ok {
		return nil, internalErrorf(e.Token, "operator section at non-binary type %s", e.Typ)
	}
	x := m.src.New("x")
	y := m.src.New("y")
	op := &ast.Var{Token: e.Token, Name: e.Op, Typ: e.Typ}
	body := &ast.Apply{
		Token: e.Token,
		Fun: &ast.Apply{
			Token: e.Token,
			Fun:   op,
			Arg:   &ast.Var{Token: e.Token, Name: names.QualVName{Name: x}, Typ: outer.Param},
			Typ:   inner,
		},
		Arg: &ast.Var{Token: e.Token, Name: names.QualVName{Name: y}, Typ: inner.Param},
		Typ: inner.Return,
	}
	lam := &ast.Lambda{
		Token: e.Token,
		Params: []*ast.Param{
			{Token: e.Token, Name: x, Typ: outer.Param},
			{Token: e.Token, Name: y, Typ: inner.Param},
		},
		Body:    body,
		RetType: inner.Return,
		Typ:     e.Typ,
	}
	return m.transformExpression(env, lam)
}

// desugarOpSectionLeft rewrites (v op) into \y -> v op y.
func (m *Monomorphizer) desugarOpSectionLeft(env *Env, e *ast.OpSectionLeft) (ast.Expression, error) {
	ft, ok := e.Typ.(typesystem.TFunc)
	if !ok {
		return nil, internalErrorf(e.Token, "operator section at non-function type %s", e.Typ)
	}
	opType := typesystem.TFunc{Param: e.Operand.Type(), Return: e.Typ}
	y := m.src.New("y")
	body := &ast.Apply{
		Token: e.Token,
		Fun: &ast.Apply{
			Token: e.Token,
			Fun:   &ast.Var{Token: e.Token, Name: e.Op, Typ: opType},
			Arg:   e.Operand,
			Typ:   e.Typ,
		},
		Arg: &ast.Var{Token: e.Token, Name: names.QualVName{Name: y}, Typ: ft.Param},
		Typ: ft.Return,
	}
	lam := &ast.Lambda{
		Token:   e.Token,
		Params:  []*ast.Param{{Token: e.Token, Name: y, Typ: ft.Param}},
		Body:    body,
		RetType: ft.Return,
		Typ:     e.Typ,
	}
	return m.transformExpression(env, lam)
}

// desugarOpSectionRight rewrites (op v) into \x -> x op v.
func (m *Monomorphizer) desugarOpSectionRight(env *Env, e *ast.OpSectionRight) (ast.Expression, error) {
	ft, ok := e.Typ.(typesystem.TFunc)
	if !ok {
		return nil, internalErrorf(e.Token, "operator section at non-function type %s", e.Typ)
	}
	opType := typesystem.TFunc{
		Param:  ft.Param,
		Return: typesystem.TFunc{Param: e.Operand.Type(), Return: ft.Return},
	}
	x := m.src.New("x")
	body := &ast.Apply{
		Token: e.Token,
		Fun: &ast.Apply{
			Token: e.Token,
			Fun:   &ast.Var{Token: e.Token, Name: e.Op, Typ: opType},
			Arg:   &ast.Var{Token: e.Token, Name: names.QualVName{Name: x}, Typ: ft.Param},
			Typ:   typesystem.TFunc{Param: e.Operand.Type(), Return: ft.Return},
		},
		Arg: e.Operand,
		Typ: ft.Return,
	}
	lam := &ast.Lambda{
		Token:   e.Token,
		Params:  []*ast.Param{{Token: e.Token, Name: x, Typ: ft.Param}},
		Body:    body,
		RetType: ft.Return,
		Typ:     e.Typ,
	}
	return m.transformExpression(env, lam)
}

// desugarProjectSection rewrites (.a.b) into \x -> x.a.b, resolving each
// intermediate field type from the section's record argument type.
func (m *Monomorphizer) desugarProjectSection(env *Env, e *ast.ProjectSection) (ast.Expression, error) {
	ft, ok := e.Typ.(typesystem.TFunc)
	if !ok {
		return nil, internalErrorf(e.Token, "projection section at non-function type %s", e.Typ)
	}
	x := m.src.New("x")
	var cur ast.Expression = &ast.Var{Token: e.Token, Name: names.QualVName{Name: x}, Typ: ft.Param}
	curType := ft.Param
	for _, field := range e.Fields {
		rec, ok := curType.(typesystem.TRecord)
		if !ok {
			return nil, internalErrorf(e.Token, "projection of %q through non-record type %s", field, curType)
		}
		fieldType, ok := rec.Fields[field]
		if !ok {
			return nil, internalErrorf(e.Token, "projection of missing field %q from %s", field, curType)
		}
		cur = &ast.Project{Token: e.Token, Field: field, Value: cur, Typ: fieldType}
		curType = fieldType
	}
	lam := &ast.Lambda{
		Token:   e.Token,
		Params:  []*ast.Param{{Token: e.Token, Name: x, Typ: ft.Param}},
		Body:    cur,
		RetType: ft.Return,
		Typ:     e.Typ,
	}
	return m.transformExpression(env, lam)
}

// desugarIndexSection rewrites (.[i]) into \x -> x[i].
func (m *Monomorphizer) desugarIndexSection(env *Env, e *ast.IndexSection) (ast.Expression, error) {
	ft, ok := e.Typ.(typesystem.TFunc)
	if !ok {
		return nil, internalErrorf(e.Token, "index section at non-function type %s", e.Typ)
	}
	x := m.src.New("x")
	body := &ast.Index{
		Token:   e.Token,
		Array:   &ast.Var{Token: e.Token, Name: names.QualVName{Name: x}, Typ: ft.Param},
		Indices: e.Indices,
		Typ:     ft.Return,
	}
	lam := &ast.Lambda{
		Token:   e.Token,
		Params:  []*ast.Param{{Token: e.Token, Name: x, Typ: ft.Param}},
		Body:    body,
		RetType: ft.Return,
		Typ:     e.Typ,
	}
	return m.transformExpression(env, lam)
}
