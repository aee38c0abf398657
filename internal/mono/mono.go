// Package mono turns a type-checked, module-free, polymorphic program into
// an equivalent program containing only monomorphic functions. Each generic
// function is instantiated at every concrete type it is used with, and
// instantiations are memoized so each (function, type) pair is specialized
// exactly once.
package mono

import (
	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// Monomorphizer owns the per-run state: the fresh-name source, the
// instantiation cache, and the bindings generated for the scope currently
// being transformed. It is exclusively owned by one sequential pass.
type Monomorphizer struct {
	src     *names.Source
	lifts   map[liftKey]names.VName
	pending []genBinding
}

// Transform monomorphizes one compilation unit. The result is an ordered,
// flat list of monomorphic value bindings with entry points preserved and
// all type aliases and polymorphism eliminated.
func Transform(prog *ast.Program, src *names.Source) (*ast.Program, error) {
	m := &Monomorphizer{
		src:   src,
		lifts: map[liftKey]names.VName{},
	}
	env := newEnv()
	var out []ast.Dec

	for _, dec := range prog.Decs {
		switch d := dec.(type) {
		case *ast.TypeBind:
			// Substitute already-known aliases into the definition so
			// aliases-of-aliases resolve transitively, then erase the
			// alias from everything downstream.
			def := typesystem.ExpandWith(d.Def, env.aliasLookup())
			env = env.extendAlias(d.Name, aliasBinding(d, def))

		case *ast.ValBind:
			vb := eraseAliasesVal(d, env)
			env = env.extendPoly(vb.Name, polyFromVal(vb))
			if !vb.Entry {
				// Nothing is generated until a concrete use appears.
				continue
			}
			gen, entry, err := m.transformEntry(env, vb)
			if err != nil {
				return nil, err
			}
			for _, g := range gen {
				out = append(out, g.bind)
			}
			out = append(out, entry)

		case *ast.ModBind:
			return nil, diagnostics.NewErrorf(diagnostics.ErrM001, d.GetToken(),
				"module declaration %q reached monomorphization; input must be module-free", d.Name.Base)

		default:
			return nil, diagnostics.NewErrorf(diagnostics.ErrM001, dec.GetToken(),
				"unsupported declaration %T in monomorphization input", dec)
		}
	}

	return &ast.Program{File: prog.File, Decs: out}, nil
}

// transformEntry forces an entry binding to be specialized immediately at
// the one concrete type obtained by stripping polymorphism from its own
// signature; entry points cannot remain generic.
func (m *Monomorphizer) transformEntry(env *Env, vb *ast.ValBind) ([]genBinding, *ast.ValBind, error) {
	concrete := stripPoly(vb)
	pb, ok := env.polyBinding(vb.Name)
	if !ok {
		return nil, nil, diagnostics.NewErrorf(diagnostics.ErrI001, vb.Token,
			"entry binding %s has no template", vb.Name)
	}

	saved := m.pending
	m.pending = nil

	// An entry keeps its external name even when residual type parameters
	// force a specialization; only the cache entry records the forced type.
	key := liftKey{fun: vb.Name, typ: typesystem.EraseShapes(concrete).String()}
	m.lifts[key] = vb.Name
	entry, err := m.monomorphizeBinding(env, pb, vb.Name, concrete)
	if err != nil {
		m.pending = saved
		return nil, nil, err
	}

	deps := m.pending
	m.pending = saved
	entry.Entry = true
	return deps, entry, nil
}

// stripPoly computes the concrete call type of an entry binding: its own
// signature with any residual type parameters instantiated at the unit type
// and all sizes erased.
func stripPoly(vb *ast.ValBind) typesystem.Type {
	t := vb.FunType()
	if len(vb.TypeParams) > 0 {
		s := typesystem.Subst{}
		for _, p := range vb.TypeParams {
			s[p] = typesystem.Unit
		}
		t = t.Apply(s)
	}
	return typesystem.EraseShapes(t)
}

func eraseAliasesVal(vb *ast.ValBind, env *Env) *ast.ValBind {
	lookup := env.aliasLookup()
	erase := func(t typesystem.Type) typesystem.Type {
		return typesystem.ExpandWith(t, lookup)
	}
	c := *vb
	params := make([]*ast.Param, len(vb.Params))
	for i, p := range vb.Params {
		params[i] = &ast.Param{Token: p.Token, Name: p.Name, Typ: erase(p.Typ)}
	}
	c.Params = params
	c.RetType = erase(vb.RetType)
	c.Body = ast.MapTypes(vb.Body, erase)
	return &c
}

func aliasBinding(d *ast.TypeBind, def typesystem.Type) symbols.TypeBinding {
	return symbols.TypeBinding{TypeParams: d.TypeParams, Def: def, Lifted: d.Lifted}
}
