package mono

import (
	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

func internalErrorf(tok token.Token, format string, args ...interface{}) error {
	return diagnostics.NewErrorf(diagnostics.ErrI001, tok, format, args...)
}

// monomorphizeBinding produces the monomorphic instance of one template at
// one concrete type. The template's signature is matched structurally
// against the concrete type; the checker guarantees congruence, so a
// mismatch here is an invariant violation, not a user error.
func (m *Monomorphizer) monomorphizeBinding(env *Env, pb PolyBinding, newName names.VName, concrete typesystem.Type) (*ast.ValBind, error) {
	s, err := typesystem.Match(pb.funType(), concrete)
	if err != nil {
		return nil, internalErrorf(pb.Token, "instantiating %s at %s: %v", pb.Name, concrete, err)
	}
	apply := func(t typesystem.Type) typesystem.Type { return t.Apply(s) }

	params := make([]*ast.Param, len(pb.Params))
	paramTypes := make([]typesystem.Type, len(pb.Params))
	for i, p := range pb.Params {
		params[i] = &ast.Param{Token: p.Token, Name: p.Name, Typ: apply(p.Typ)}
		paramTypes[i] = params[i].Typ
	}
	ret := apply(pb.RetType)
	body := ast.MapTypes(pb.Body, apply)

	// Any name used as a size in the instance's signature or body may
	// itself be a binding of the program being monomorphized; route it like
	// any other use so the instance's sizes point at monomorphic bindings.
	sizes := typesystem.SizeNames(typesystem.Arrow(ret, paramTypes...))
	seen := map[names.VName]bool{}
	for _, sz := range sizes {
		seen[sz] = true
	}
	ast.MapTypes(body, func(t typesystem.Type) typesystem.Type {
		for _, sz := range typesystem.SizeNames(t) {
			if !seen[sz] {
				seen[sz] = true
				sizes = append(sizes, sz)
			}
		}
		return t
	})
	rename := map[names.VName]names.VName{}
	for _, sz := range sizes {
		nv, err := m.transformFName(env, pb.Token, sz, typesystem.SizeType)
		if err != nil {
			return nil, err
		}
		if nv != sz {
			rename[sz] = nv
		}
	}
	if len(rename) > 0 {
		for i := range params {
			params[i].Typ = typesystem.RenameSizes(params[i].Typ, rename)
		}
		ret = typesystem.RenameSizes(ret, rename)
		body = ast.MapTypes(body, func(t typesystem.Type) typesystem.Type {
			return typesystem.RenameSizes(t, rename)
		})
	}

	body, err = m.transformExpression(env, body)
	if err != nil {
		return nil, err
	}
	return &ast.ValBind{
		Token:   pb.Token,
		Name:    newName,
		Params:  params,
		RetType: ret,
		Body:    body,
	}, nil
}
