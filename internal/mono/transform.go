package mono

import (
	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// transformFName maps a use of a function name at a concrete type to the
// name of its monomorphic instance, generating that instance on first use.
// Intrinsics and names with no registered template pass through unchanged.
func (m *Monomorphizer) transformFName(env *Env, tok token.Token, v names.VName, concrete typesystem.Type) (names.VName, error) {
	if symbols.IsIntrinsic(v) {
		return v, nil
	}
	pb, ok := env.polyBinding(v)
	if !ok {
		// Lambda parameters, let-bound values and sizes have no template.
		return v, nil
	}

	key := liftKey{fun: v, typ: typesystem.EraseShapes(concrete).String()}
	if cached, ok := m.lifts[key]; ok {
		return cached, nil
	}

	newName := v
	if len(pb.TypeParams) > 0 {
		newName = m.src.NewFrom(v)
	}
	// Record the instance before touching the body, so recursive uses at
	// the same type resolve to the instance under construction instead of
	// instantiating forever.
	m.lifts[key] = newName

	bind, err := m.monomorphizeBinding(env, pb, newName, concrete)
	if err != nil {
		return names.VName{}, err
	}
	m.pending = append(m.pending, genBinding{orig: v, bind: bind})
	return newName, nil
}

// transformExpression rewrites one expression bottom-up: function
// references are redirected to monomorphic instances, sections become
// lambdas, recognized combinator applications become first-class nodes, and
// local generic functions are replaced by their instantiations.
func (m *Monomorphizer) transformExpression(env *Env, expr ast.Expression) (ast.Expression, error) {
	switch e := expr.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.BoolLit:
		return e, nil

	case *ast.Var:
		nv, err := m.transformFName(env, e.Token, e.Name.Name, e.Typ)
		if err != nil {
			return nil, err
		}
		if nv == e.Name.Name {
			return e, nil
		}
		return &ast.Var{Token: e.Token, Name: names.QualVName{Name: nv}, Typ: e.Typ}, nil

	case *ast.Apply:
		if soac, ok, err := m.recognizeSOAC(env, e); err != nil {
			return nil, err
		} else if ok {
			return soac, nil
		}
		fun, err := m.transformExpression(env, e.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := m.transformExpression(env, e.Arg)
		if err != nil {
			return nil, err
		}
		return &ast.Apply{Token: e.Token, Fun: fun, Arg: arg, Typ: e.Typ}, nil

	case *ast.Lambda:
		body, err := m.transformExpression(env, e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Token: e.Token, Params: e.Params, Body: body, RetType: e.RetType, Typ: e.Typ}, nil

	case *ast.LetPat:
		value, err := m.transformExpression(env, e.Value)
		if err != nil {
			return nil, err
		}
		body, err := m.transformExpression(env, e.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LetPat{Token: e.Token, Name: e.Name, Value: value, Body: body, Typ: e.Typ}, nil

	case *ast.LetFun:
		return m.transformLetFun(env, e)

	case *ast.If:
		cond, err := m.transformExpression(env, e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := m.transformExpression(env, e.Then)
		if err != nil {
			return nil, err
		}
		els, err := m.transformExpression(env, e.Else)
		if err != nil {
			return nil, err
		}
		return &ast.If{Token: e.Token, Cond: cond, Then: then, Else: els, Typ: e.Typ}, nil

	case *ast.RecordLit:
		fields := make([]*ast.FieldExpr, len(e.Fields))
		for i, f := range e.Fields {
			value, err := m.transformExpression(env, f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = &ast.FieldExpr{Name: f.Name, Value: value}
		}
		return &ast.RecordLit{Token: e.Token, Fields: fields, Typ: e.Typ}, nil

	case *ast.Project:
		value, err := m.transformExpression(env, e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Project{Token: e.Token, Field: e.Field, Value: value, Typ: e.Typ}, nil

	case *ast.ArrayLit:
		elems := make([]ast.Expression, len(e.Elems))
		for i, el := range e.Elems {
			v, err := m.transformExpression(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &ast.ArrayLit{Token: e.Token, Elems: elems, Typ: e.Typ}, nil

	case *ast.Index:
		arr, err := m.transformExpression(env, e.Array)
		if err != nil {
			return nil, err
		}
		idx, err := m.transformExpressions(env, e.Indices)
		if err != nil {
			return nil, err
		}
		return &ast.Index{Token: e.Token, Array: arr, Indices: idx, Typ: e.Typ}, nil

	case *ast.Negate:
		value, err := m.transformExpression(env, e.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Negate{Token: e.Token, Value: value, Typ: e.Typ}, nil

	case *ast.OpSection:
		return m.desugarOpSection(env, e)
	case *ast.OpSectionLeft:
		return m.desugarOpSectionLeft(env, e)
	case *ast.OpSectionRight:
		return m.desugarOpSectionRight(env, e)
	case *ast.ProjectSection:
		return m.desugarProjectSection(env, e)
	case *ast.IndexSection:
		return m.desugarIndexSection(env, e)

	case *ast.Map:
		return m.transformSOACNode(env, e)
	case *ast.Filter:
		return m.transformSOACNode(env, e)
	case *ast.Reduce:
		return m.transformSOACNode(env, e)
	case *ast.Scan:
		return m.transformSOACNode(env, e)
	case *ast.Partition:
		return m.transformSOACNode(env, e)
	case *ast.StreamMap:
		return m.transformSOACNode(env, e)
	case *ast.StreamRed:
		return m.transformSOACNode(env, e)

	default:
		return nil, internalErrorf(expr.GetToken(), "unhandled expression %T", expr)
	}
}

func (m *Monomorphizer) transformExpressions(env *Env, exprs []ast.Expression) ([]ast.Expression, error) {
	out := make([]ast.Expression, len(exprs))
	for i, e := range exprs {
		v, err := m.transformExpression(env, e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// transformLetFun eliminates a local function binding. A monomorphic local
// function becomes a plain let of a lambda. A generic one is registered as a
// template, its uses in the let-body are instantiated, and the resulting
// instances are re-bound as monomorphic local functions around the new body.
func (m *Monomorphizer) transformLetFun(env *Env, e *ast.LetFun) (ast.Expression, error) {
	if len(e.TypeParams) == 0 {
		lam := &ast.Lambda{
			Token:   e.Token,
			Params:  e.Params,
			Body:    e.FunBody,
			RetType: e.RetType,
			Typ:     e.FunType(),
		}
		let := &ast.LetPat{Token: e.Token, Name: e.Name, Value: lam, Body: e.Body, Typ: e.Typ}
		return m.transformExpression(env, let)
	}

	inner := env.extendPoly(e.Name, PolyBinding{
		Token:      e.Token,
		Name:       e.Name,
		TypeParams: e.TypeParams,
		Params:     e.Params,
		RetType:    e.RetType,
		Body:       e.FunBody,
	})

	saved := m.pending
	m.pending = nil
	body, err := m.transformExpression(inner, e.Body)
	if err != nil {
		m.pending = saved
		return nil, err
	}
	gen := m.pending
	m.pending = saved

	// The cache entries for this binding are scoped to this let. The
	// enclosing function may itself be instantiated again, re-visiting
	// this node; a stale entry would then resolve a use to an instance
	// nested inside a different copy of the body.
	for key := range m.lifts {
		if key.fun == e.Name {
			delete(m.lifts, key)
		}
	}

	// Instances of other functions that the local ones pulled in must
	// float to the top level; only instances of this binding may stay
	// local, where the names they close over remain in scope.
	var mine []genBinding
	for _, g := range gen {
		if g.orig == e.Name {
			mine = append(mine, g)
			continue
		}
		m.pending = append(m.pending, g)
	}

	// Earlier instances are dependencies of later ones, so wrap in
	// reverse: the earliest instance ends up outermost.
	out := body
	for i := len(mine) - 1; i >= 0; i-- {
		b := mine[i].bind
		out = &ast.LetFun{
			Token:   b.Token,
			Name:    b.Name,
			Params:  b.Params,
			RetType: b.RetType,
			FunBody: b.Body,
			Body:    out,
			Typ:     e.Typ,
		}
	}
	return out, nil
}
