package check

import (
	"path"
	"strings"

	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// LookupType resolves a qualified type name and returns its binding with
// every embedded type reference rewritten to be reachable from the root
// environment.
func (c *Context) LookupType(tok token.Token, qi names.QualIdent) (names.QualVName, symbols.TypeBinding, error) {
	env, qv, err := symbols.ResolveQualName(symbols.Type, qi, tok, c.env)
	if err != nil {
		return names.QualVName{}, symbols.TypeBinding{}, err
	}
	tb, ok := env.Types[qv.Name]
	if !ok {
		return names.QualVName{}, symbols.TypeBinding{}, diagnostics.NewErrorf(diagnostics.ErrS002, tok,
			"unknown type %q", qi.String())
	}
	tb.Def = c.qualifyTypeRefs(tb.Def, qv.Quals)
	return qv, tb, nil
}

// LookupModule resolves a qualified module name.
func (c *Context) LookupModule(tok token.Token, qi names.QualIdent) (names.QualVName, symbols.Module, error) {
	env, qv, err := symbols.ResolveQualName(symbols.Term, qi, tok, c.env)
	if err != nil {
		return names.QualVName{}, nil, err
	}
	mod, ok := env.Modules[qv.Name]
	if !ok {
		return names.QualVName{}, nil, diagnostics.NewErrorf(diagnostics.ErrS004, tok,
			"unknown module %q", qi.String())
	}
	return qv, mod, nil
}

// LookupSignature resolves a qualified module-type name.
func (c *Context) LookupSignature(tok token.Token, qi names.QualIdent) (names.QualVName, symbols.Sig, error) {
	env, qv, err := symbols.ResolveQualName(symbols.Signature, qi, tok, c.env)
	if err != nil {
		return names.QualVName{}, symbols.Sig{}, err
	}
	sig, ok := env.Signatures[qv.Name]
	if !ok {
		return names.QualVName{}, symbols.Sig{}, diagnostics.NewErrorf(diagnostics.ErrS003, tok,
			"unknown module type %q", qi.String())
	}
	return qv, sig, nil
}

// LookupImport returns the environment of a previously checked module. The
// path is canonicalized against the module currently being checked, so
// relative imports resolve the same way from any nesting.
func (c *Context) LookupImport(tok token.Token, importPath string) (string, *symbols.Environment, error) {
	canonical := CanonicalImport(c.currentImport, importPath)
	env, ok := c.imports[canonical]
	if !ok {
		return "", nil, diagnostics.NewErrorf(diagnostics.ErrS008, tok,
			"unknown import %q", canonical)
	}
	return canonical, env, nil
}

// LookupTerm resolves a qualified term name. A curried function signature
// cannot be used as a plain value, and discard-prefixed names cannot be
// referenced at all.
func (c *Context) LookupTerm(tok token.Token, qi names.QualIdent) (names.QualVName, typesystem.Type, error) {
	env, qv, err := symbols.ResolveQualName(symbols.Term, qi, tok, c.env)
	if err != nil {
		return names.QualVName{}, nil, err
	}
	tb, ok := env.Terms[qv.Name]
	if !ok {
		return names.QualVName{}, nil, diagnostics.NewErrorf(diagnostics.ErrS001, tok,
			"unknown name %q", qi.String())
	}
	if tb.IsFunction {
		return names.QualVName{}, nil, diagnostics.NewErrorf(diagnostics.ErrS007, tok,
			"%q is a function and may not be used as a value", qi.String())
	}
	return qv, c.qualifyTypeRefs(tb.Type, qv.Quals), nil
}

// qualifyTypeRefs rewrites the named type references inside t so they are
// reachable from the root environment: a reference declared inside the
// module the lookup walked through gets that module path prefixed, while
// names already visible at the root are left alone.
func (c *Context) qualifyTypeRefs(t typesystem.Type, quals []names.VName) typesystem.Type {
	if t == nil || len(quals) == 0 {
		return t
	}
	switch typ := t.(type) {
	case typesystem.TCon:
		args := make([]typesystem.Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = c.qualifyTypeRefs(a, quals)
		}
		if _, atRoot := c.rootEnv.Types[typ.Name]; atRoot || len(typ.Quals) > 0 {
			return typesystem.TCon{Quals: typ.Quals, Name: typ.Name, Args: args}
		}
		return typesystem.TCon{Quals: quals, Name: typ.Name, Args: args}
	case typesystem.TArray:
		return typesystem.TArray{Elem: c.qualifyTypeRefs(typ.Elem, quals), Shape: typ.Shape}
	case typesystem.TRecord:
		fields := make(map[string]typesystem.Type, len(typ.Fields))
		for k, v := range typ.Fields {
			fields[k] = c.qualifyTypeRefs(v, quals)
		}
		return typesystem.TRecord{Fields: fields}
	case typesystem.TFunc:
		return typesystem.TFunc{
			Param:  c.qualifyTypeRefs(typ.Param, quals),
			Return: c.qualifyTypeRefs(typ.Return, quals),
		}
	default:
		return t
	}
}

// CanonicalImport resolves an import path relative to the importing module.
// Paths starting with "/" are taken from the project root; anything else is
// relative to the importer's directory.
func CanonicalImport(current, importPath string) string {
	if strings.HasPrefix(importPath, "/") {
		return path.Clean(strings.TrimPrefix(importPath, "/"))
	}
	return path.Clean(path.Join(path.Dir(current), importPath))
}
