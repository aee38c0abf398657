package typesystem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Happy-Ferret/futhark/internal/config"
	"github.com/Happy-Ferret/futhark/internal/names"
)

// Type is the interface for all structural types in the middle-end. By the
// time types reach this package they are fully inferred; the only remaining
// work is substitution and congruence matching.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TVar represents a type variable bound by a polymorphic binding's type
// parameter list.
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// TPrim represents a primitive type (i32, i64, f32, f64, bool, unit).
type TPrim struct {
	Name string
}

// The primitive types the engine cares about. SizeType is the type every
// named array size has.
var (
	Int32    = TPrim{Name: "i32"}
	Int64    = TPrim{Name: "i64"}
	Float32  = TPrim{Name: "f32"}
	Float64  = TPrim{Name: "f64"}
	Bool     = TPrim{Name: "bool"}
	Unit     = TPrim{Name: "unit"}
	SizeType = TPrim{Name: config.SizeTypeName}
)

func (t TPrim) String() string            { return t.Name }
func (t TPrim) Apply(s Subst) Type        { return t }
func (t TPrim) FreeTypeVariables() []TVar { return nil }

// TCon represents a reference to a named (user-declared) type, possibly
// applied to arguments. Qualifiers make the reference reachable from the
// root environment.
type TCon struct {
	Quals []names.VName
	Name  names.VName
	Args  []Type
}

func (t TCon) String() string {
	name := names.QualVName{Quals: t.Quals, Name: t.Name}.String()
	if len(t.Args) == 0 {
		return name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("(%s %s)", name, strings.Join(args, " "))
}

func (t TCon) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TCon) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, a := range t.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TArray represents a multidimensional array type. Shape holds one Dim per
// dimension, outermost first.
type TArray struct {
	Elem  Type
	Shape []Dim
}

func (t TArray) String() string {
	var b strings.Builder
	for _, d := range t.Shape {
		b.WriteString(d.String())
	}
	b.WriteString(t.Elem.String())
	return b.String()
}

func (t TArray) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TArray) FreeTypeVariables() []TVar {
	return t.Elem.FreeTypeVariables()
}

// TRecord represents a record type. Field order in source is irrelevant;
// printing and matching always work over sorted field names.
type TRecord struct {
	Fields map[string]Type
}

func (t TRecord) String() string {
	keys := sortedFields(t.Fields)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, t.Fields[k].String()))
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (t TRecord) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TRecord) FreeTypeVariables() []TVar {
	var vars []TVar
	for _, k := range sortedFields(t.Fields) {
		vars = append(vars, t.Fields[k].FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TFunc represents a function type. The source language is curried, so each
// arrow carries exactly one parameter.
type TFunc struct {
	Param  Type
	Return Type
}

func (t TFunc) String() string {
	param := t.Param.String()
	if _, ok := t.Param.(TFunc); ok {
		param = "(" + param + ")"
	}
	return fmt.Sprintf("%s -> %s", param, t.Return.String())
}

func (t TFunc) Apply(s Subst) Type {
	return applyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TFunc) FreeTypeVariables() []TVar {
	vars := t.Param.FreeTypeVariables()
	vars = append(vars, t.Return.FreeTypeVariables()...)
	return uniqueTVars(vars)
}

// Arrow folds a parameter list and return type into a curried function type.
func Arrow(ret Type, params ...Type) Type {
	t := ret
	for i := len(params) - 1; i >= 0; i-- {
		t = TFunc{Param: params[i], Return: t}
	}
	return t
}

func sortedFields(fields map[string]Type) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func uniqueTVars(vars []TVar) []TVar {
	seen := map[string]bool{}
	var unique []TVar
	for _, v := range vars {
		if !seen[v.Name] {
			seen[v.Name] = true
			unique = append(unique, v)
		}
	}
	return unique
}
