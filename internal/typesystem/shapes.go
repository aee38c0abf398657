package typesystem

import (
	"strconv"

	"github.com/Happy-Ferret/futhark/internal/names"
)

// Dim is one array dimension: a constant, a named size, or anonymous.
type Dim interface {
	dimNode()
	String() string
}

type DimConst struct {
	Value int64
}

func (DimConst) dimNode() {}

func (d DimConst) String() string { return "[" + strconv.FormatInt(d.Value, 10) + "]" }

// DimNamed references an integer-typed binding used as an array size.
type DimNamed struct {
	Name names.VName
}

func (DimNamed) dimNode() {}

func (d DimNamed) String() string { return "[" + d.Name.String() + "]" }

type DimAny struct{}

func (DimAny) dimNode() {}

func (DimAny) String() string { return "[]" }

// EraseShapes replaces every array dimension with the anonymous dimension.
// Instantiation-cache keys and congruence matching only care about the
// structural shape of a type, never about concrete sizes.
func EraseShapes(t Type) Type {
	switch typ := t.(type) {
	case TArray:
		shape := make([]Dim, len(typ.Shape))
		for i := range shape {
			shape[i] = DimAny{}
		}
		return TArray{Elem: EraseShapes(typ.Elem), Shape: shape}
	case TRecord:
		fields := make(map[string]Type, len(typ.Fields))
		for k, v := range typ.Fields {
			fields[k] = EraseShapes(v)
		}
		return TRecord{Fields: fields}
	case TFunc:
		return TFunc{Param: EraseShapes(typ.Param), Return: EraseShapes(typ.Return)}
	case TCon:
		if len(typ.Args) == 0 {
			return typ
		}
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = EraseShapes(a)
		}
		return TCon{Quals: typ.Quals, Name: typ.Name, Args: args}
	default:
		return t
	}
}

// SizeNames collects the named sizes referenced by t, outermost first,
// without duplicates.
func SizeNames(t Type) []names.VName {
	seen := map[names.VName]bool{}
	var out []names.VName
	var walk func(Type)
	walk = func(t Type) {
		switch typ := t.(type) {
		case TArray:
			for _, d := range typ.Shape {
				if nd, ok := d.(DimNamed); ok && !seen[nd.Name] {
					seen[nd.Name] = true
					out = append(out, nd.Name)
				}
			}
			walk(typ.Elem)
		case TRecord:
			for _, k := range sortedFields(typ.Fields) {
				walk(typ.Fields[k])
			}
		case TFunc:
			walk(typ.Param)
			walk(typ.Return)
		case TCon:
			for _, a := range typ.Args {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}

// RenameSizes rewrites named dimensions according to m, leaving everything
// else untouched.
func RenameSizes(t Type, m map[names.VName]names.VName) Type {
	if len(m) == 0 {
		return t
	}
	switch typ := t.(type) {
	case TArray:
		shape := make([]Dim, len(typ.Shape))
		for i, d := range typ.Shape {
			if nd, ok := d.(DimNamed); ok {
				if repl, ok := m[nd.Name]; ok {
					shape[i] = DimNamed{Name: repl}
					continue
				}
			}
			shape[i] = d
		}
		return TArray{Elem: RenameSizes(typ.Elem, m), Shape: shape}
	case TRecord:
		fields := make(map[string]Type, len(typ.Fields))
		for k, v := range typ.Fields {
			fields[k] = RenameSizes(v, m)
		}
		return TRecord{Fields: fields}
	case TFunc:
		return TFunc{Param: RenameSizes(typ.Param, m), Return: RenameSizes(typ.Return, m)}
	case TCon:
		if len(typ.Args) == 0 {
			return typ
		}
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = RenameSizes(a, m)
		}
		return TCon{Quals: typ.Quals, Name: typ.Name, Args: args}
	default:
		return t
	}
}
