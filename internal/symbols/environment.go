package symbols

import (
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// Namespace selects which table a name is looked up in. Names in different
// namespaces never collide.
type Namespace int

const (
	Term Namespace = iota
	Type
	Signature
)

func (ns Namespace) String() string {
	switch ns {
	case Term:
		return "term"
	case Type:
		return "type"
	case Signature:
		return "module type"
	default:
		return "unknown"
	}
}

// NsKey keys a NameMap entry: the namespace plus the unqualified surface
// name.
type NsKey struct {
	Ns   Namespace
	Name string
}

// NameMap maps surface names to the globally unique names they resolve to.
type NameMap map[NsKey]names.VName

// TermBinding describes one term-level name. IsFunction marks a curried
// multi-argument signature, which cannot be referenced as a plain value.
type TermBinding struct {
	Type       typesystem.Type
	IsFunction bool
}

// TypeBinding describes one type abbreviation: its parameters, definition
// and whether it is size-lifted.
type TypeBinding struct {
	TypeParams []string
	Def        typesystem.Type
	Lifted     bool
}

// Sig is a module type (signature) binding. The middle-end treats its
// contents as opaque beyond the environment they describe.
type Sig struct {
	Name names.VName
	Env  *Environment
}

// Module is either a concrete environment or a functor. A functor is not a
// scope; resolving through one is an error, not a lookup miss.
type Module interface {
	moduleNode()
}

type ModEnv struct {
	Env *Environment
}

func (ModEnv) moduleNode() {}

// ModFunctor is a module abstracted over a parameter. Only its identity
// matters here; elaboration of functor applications happens upstream.
type ModFunctor struct {
	Param names.VName
}

func (ModFunctor) moduleNode() {}

// Environment is the scope-resolution unit: one NameMap plus the tables the
// resolved names point into. Environments are never mutated after
// construction, only composed.
type Environment struct {
	NameMap    NameMap
	Terms      map[names.VName]TermBinding
	Types      map[names.VName]TypeBinding
	Modules    map[names.VName]Module
	Signatures map[names.VName]Sig
}

func NewEnvironment() *Environment {
	return &Environment{
		NameMap:    make(NameMap),
		Terms:      make(map[names.VName]TermBinding),
		Types:      make(map[names.VName]TypeBinding),
		Modules:    make(map[names.VName]Module),
		Signatures: make(map[names.VName]Sig),
	}
}

// Merge composes two environments; b's NameMap shadows a's. The operation
// is associative with NewEnvironment() as the unit, which is what makes
// opening a module and entering a let the same operation.
func Merge(a, b *Environment) *Environment {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := NewEnvironment()
	for k, v := range a.NameMap {
		out.NameMap[k] = v
	}
	for k, v := range b.NameMap {
		out.NameMap[k] = v
	}
	copyTerms(out.Terms, a.Terms, b.Terms)
	copyTypes(out.Types, a.Types, b.Types)
	for _, src := range []map[names.VName]Module{a.Modules, b.Modules} {
		for k, v := range src {
			out.Modules[k] = v
		}
	}
	for _, src := range []map[names.VName]Sig{a.Signatures, b.Signatures} {
		for k, v := range src {
			out.Signatures[k] = v
		}
	}
	return out
}

func copyTerms(dst map[names.VName]TermBinding, srcs ...map[names.VName]TermBinding) {
	for _, src := range srcs {
		for k, v := range src {
			dst[k] = v
		}
	}
}

func copyTypes(dst map[names.VName]TypeBinding, srcs ...map[names.VName]TypeBinding) {
	for _, src := range srcs {
		for k, v := range src {
			dst[k] = v
		}
	}
}
