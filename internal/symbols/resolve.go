package symbols

import (
	"strings"

	"github.com/Happy-Ferret/futhark/internal/config"
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/token"
)

// ResolveQualName resolves a possibly-qualified surface name against env.
// It walks the qualifier list left to right: each qualifier must name a
// concrete module (in the Term namespace) of the environment reached so
// far, and the leaf is looked up in ns's NameMap of the final environment.
// The returned environment is the one the leaf was found in, so callers can
// cross-reference its tables.
//
// The walk is pure: it touches no fresh-name state and records no warnings.
func ResolveQualName(ns Namespace, qi names.QualIdent, tok token.Token, env *Environment) (*Environment, names.QualVName, error) {
	if len(qi.Quals) == 0 {
		if ns == Term && strings.HasPrefix(qi.Name, config.IgnoredNamePrefix) {
			return nil, names.QualVName{}, diagnostics.NewErrorf(diagnostics.ErrS006, tok,
				"use of %q: a name starting with %q cannot be referenced", qi.Name, config.IgnoredNamePrefix)
		}
		v, ok := env.NameMap[NsKey{Ns: ns, Name: qi.Name}]
		if !ok {
			return nil, names.QualVName{}, unknownLeaf(ns, qi, tok)
		}
		return env, names.QualVName{Name: v}, nil
	}

	head := qi.Quals[0]
	mv, ok := env.NameMap[NsKey{Ns: Term, Name: head}]
	if !ok {
		return nil, names.QualVName{}, diagnostics.NewErrorf(diagnostics.ErrS004, tok,
			"unknown module %q", head)
	}
	mod, ok := env.Modules[mv]
	if !ok {
		return nil, names.QualVName{}, diagnostics.NewErrorf(diagnostics.ErrS004, tok,
			"unknown module %q", head)
	}

	switch m := mod.(type) {
	case ModEnv:
		rest := names.QualIdent{Quals: qi.Quals[1:], Name: qi.Name}
		finalEnv, qv, err := ResolveQualName(ns, rest, tok, m.Env)
		if err != nil {
			return nil, names.QualVName{}, err
		}
		qv.Quals = append([]names.VName{mv}, qv.Quals...)
		return finalEnv, qv, nil
	case ModFunctor:
		return nil, names.QualVName{}, diagnostics.NewErrorf(diagnostics.ErrS005, tok,
			"module %q is parametric and must be applied before use", head)
	default:
		return nil, names.QualVName{}, diagnostics.NewErrorf(diagnostics.ErrI001, tok,
			"unhandled module representation %T for %q", mod, head)
	}
}

func unknownLeaf(ns Namespace, qi names.QualIdent, tok token.Token) *diagnostics.DiagnosticError {
	switch ns {
	case Type:
		return diagnostics.NewErrorf(diagnostics.ErrS002, tok, "unknown type %q", qi.String())
	case Signature:
		return diagnostics.NewErrorf(diagnostics.ErrS003, tok, "unknown module type %q", qi.String())
	default:
		return diagnostics.NewErrorf(diagnostics.ErrS001, tok, "unknown name %q", qi.String())
	}
}
