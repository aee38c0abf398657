package symbols

import (
	"github.com/Happy-Ferret/futhark/internal/config"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// The intrinsic namespace: a fixed table of built-in identifiers
// pre-populated into the top-level NameMap. Intrinsic tags sit below
// names.FirstGeneratedTag, so membership is a tag check and no intrinsic can
// clash with a generated name. Intrinsics are exempt from specialization.

var (
	intrinsicTerms map[string]names.VName
	intrinsicTypes map[string]names.VName
	baseEnv        *Environment
)

func init() {
	intrinsicTerms = make(map[string]names.VName)
	intrinsicTypes = make(map[string]names.VName)
	baseEnv = NewEnvironment()

	tag := 1

	tv := typesystem.TVar{Name: "t"}
	arr := func(elem typesystem.Type) typesystem.Type {
		return typesystem.TArray{Elem: elem, Shape: []typesystem.Dim{typesystem.DimAny{}}}
	}

	defTerm := func(name string, t typesystem.Type, isFunction bool) {
		v := names.VName{Base: name, Tag: tag}
		tag++
		intrinsicTerms[name] = v
		baseEnv.NameMap[NsKey{Ns: Term, Name: name}] = v
		baseEnv.Terms[v] = TermBinding{Type: t, IsFunction: isFunction}
	}

	binop := func(name string) {
		defTerm(name, typesystem.Arrow(tv, tv, tv), true)
	}
	cmpop := func(name string) {
		defTerm(name, typesystem.Arrow(typesystem.Bool, tv, tv), true)
	}

	for _, op := range []string{"+", "-", "*", "/", "%", "**"} {
		binop(op)
	}
	for _, op := range []string{"==", "!=", "<", "<=", ">", ">="} {
		cmpop(op)
	}
	defTerm("&&", typesystem.Arrow(typesystem.Bool, typesystem.Bool, typesystem.Bool), true)
	defTerm("||", typesystem.Arrow(typesystem.Bool, typesystem.Bool, typesystem.Bool), true)
	defTerm("!", typesystem.Arrow(typesystem.Bool, typesystem.Bool), true)
	defTerm("negate", typesystem.Arrow(tv, tv), true)

	// Second-order array combinators, recognized by the monomorphizer when
	// applied with exactly these shapes.
	a := typesystem.TVar{Name: "a"}
	b := typesystem.TVar{Name: "b"}
	defTerm(config.MapFuncName, typesystem.Arrow(arr(b), typesystem.TFunc{Param: a, Return: b}, arr(a)), true)
	defTerm(config.FilterFuncName, typesystem.Arrow(arr(a), typesystem.TFunc{Param: a, Return: typesystem.Bool}, arr(a)), true)
	defTerm(config.ReduceFuncName, typesystem.Arrow(a, typesystem.Arrow(a, a, a), a, arr(a)), true)
	defTerm(config.ReduceCommFuncName, typesystem.Arrow(a, typesystem.Arrow(a, a, a), a, arr(a)), true)
	defTerm(config.ScanFuncName, typesystem.Arrow(arr(a), typesystem.Arrow(a, a, a), a, arr(a)), true)
	defTerm(config.PartitionFuncName, typesystem.Arrow(arr(a), typesystem.TFunc{Param: a, Return: typesystem.Bool}, arr(a)), true)
	// The chunked variants take a function over whole chunks rather than
	// single elements.
	defTerm(config.StreamMapFuncName, typesystem.Arrow(arr(b), typesystem.TFunc{Param: arr(a), Return: arr(b)}, arr(a)), true)
	defTerm(config.StreamRedFuncName, typesystem.Arrow(b, typesystem.Arrow(b, b, b), typesystem.TFunc{Param: arr(a), Return: b}, arr(a)), true)

	defType := func(prim typesystem.TPrim) {
		v := names.VName{Base: prim.Name, Tag: tag}
		tag++
		intrinsicTypes[prim.Name] = v
		baseEnv.NameMap[NsKey{Ns: Type, Name: prim.Name}] = v
		baseEnv.Types[v] = TypeBinding{Def: prim}
	}
	for _, prim := range []typesystem.TPrim{
		typesystem.Int32, typesystem.Int64,
		typesystem.Float32, typesystem.Float64,
		typesystem.Bool, typesystem.Unit,
	} {
		defType(prim)
	}
}

// IsIntrinsic reports whether v belongs to the fixed builtin namespace.
func IsIntrinsic(v names.VName) bool {
	return v.Tag > 0 && v.Tag < names.FirstGeneratedTag
}

// IntrinsicTerm returns the VName of a builtin term, if one exists.
func IntrinsicTerm(name string) (names.VName, bool) {
	v, ok := intrinsicTerms[name]
	return v, ok
}

// IntrinsicType returns the VName of a builtin type, if one exists.
func IntrinsicType(name string) (names.VName, bool) {
	v, ok := intrinsicTypes[name]
	return v, ok
}

// BaseEnvironment returns a fresh environment containing exactly the
// intrinsic bindings. Front ends merge user scopes on top of it.
func BaseEnvironment() *Environment {
	return Merge(NewEnvironment(), baseEnv)
}
