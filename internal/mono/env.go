package mono

import (
	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// PolyBinding is a polymorphic function's reusable template. It is immutable
// once constructed; every instantiation reads the same template.
type PolyBinding struct {
	Token      token.Token
	Name       names.VName
	TypeParams []string
	Params     []*ast.Param
	RetType    typesystem.Type
	Body       ast.Expression
}

func polyFromVal(vb *ast.ValBind) PolyBinding {
	return PolyBinding{
		Token:      vb.Token,
		Name:       vb.Name,
		TypeParams: vb.TypeParams,
		Params:     vb.Params,
		RetType:    vb.RetType,
		Body:       vb.Body,
	}
}

func (pb PolyBinding) funType() typesystem.Type {
	params := make([]typesystem.Type, len(pb.Params))
	for i, p := range pb.Params {
		params[i] = p.Typ
	}
	return typesystem.Arrow(pb.RetType, params...)
}

// Env maps identifiers to the bindings visible for specialization and to
// the type aliases erased before matching. Extension is functional: each
// scope gets its own value.
type Env struct {
	poly    map[names.VName]PolyBinding
	aliases map[names.VName]symbols.TypeBinding
}

func newEnv() *Env {
	return &Env{
		poly:    map[names.VName]PolyBinding{},
		aliases: map[names.VName]symbols.TypeBinding{},
	}
}

func (e *Env) clone() *Env {
	out := newEnv()
	for k, v := range e.poly {
		out.poly[k] = v
	}
	for k, v := range e.aliases {
		out.aliases[k] = v
	}
	return out
}

func (e *Env) extendPoly(v names.VName, pb PolyBinding) *Env {
	out := e.clone()
	out.poly[v] = pb
	return out
}

func (e *Env) extendAlias(v names.VName, tb symbols.TypeBinding) *Env {
	out := e.clone()
	out.aliases[v] = tb
	return out
}

func (e *Env) polyBinding(v names.VName) (PolyBinding, bool) {
	pb, ok := e.poly[v]
	return pb, ok
}

func (e *Env) aliasLookup() typesystem.AliasLookup {
	return func(v names.VName) ([]string, typesystem.Type, bool) {
		tb, ok := e.aliases[v]
		if !ok {
			return nil, nil, false
		}
		return tb.TypeParams, tb.Def, true
	}
}

// liftKey identifies one instantiation: the polymorphic function plus the
// canonical (alias-erased, shape-erased) string of the concrete type it is
// used at.
type liftKey struct {
	fun names.VName
	typ string
}

// genBinding is one generated monomorphic binding together with the
// identifier of the polymorphic binding it was specialized from; the origin
// decides where a local specialization is allowed to nest.
type genBinding struct {
	orig names.VName
	bind *ast.ValBind
}
