package typesystem

import (
	"testing"

	"github.com/Happy-Ferret/futhark/internal/names"
)

func TestMatchVariable(t *testing.T) {
	s, err := Match(TVar{Name: "t"}, Int32)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if got := s["t"]; got != Type(Int32) {
		t.Errorf("t bound to %v, want i32", got)
	}
}

func TestMatchIdentitySignature(t *testing.T) {
	// t -> t matched against i32 -> i32
	abstract := TFunc{Param: TVar{Name: "t"}, Return: TVar{Name: "t"}}
	concrete := TFunc{Param: Int32, Return: Int32}
	s, err := Match(abstract, concrete)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if s["t"] != Type(Int32) {
		t.Errorf("t bound to %v, want i32", s["t"])
	}
}

func TestMatchRecordFieldOrderIrrelevant(t *testing.T) {
	abstract := TRecord{Fields: map[string]Type{"b": TVar{Name: "t"}, "a": Int32}}
	concrete := TRecord{Fields: map[string]Type{"a": Int32, "b": Float64}}
	s, err := Match(abstract, concrete)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if s["t"] != Type(Float64) {
		t.Errorf("t bound to %v, want f64", s["t"])
	}
}

func TestMatchArrayPeeling(t *testing.T) {
	n := names.VName{Base: "n", Tag: 2000}
	abstract := TArray{Elem: TVar{Name: "t"}, Shape: []Dim{DimAny{}}}
	concrete := TArray{Elem: Int32, Shape: []Dim{DimNamed{Name: n}, DimConst{Value: 3}}}
	s, err := Match(abstract, concrete)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	// One dimension peeled: t must bind to the remaining 1-D array.
	arr, ok := s["t"].(TArray)
	if !ok {
		t.Fatalf("t bound to %v, want inner array", s["t"])
	}
	if len(arr.Shape) != 1 || arr.Elem != Type(Int32) {
		t.Errorf("t bound to %v, want []i32 with one dim", arr)
	}
}

func TestMatchIncongruentIsError(t *testing.T) {
	if _, err := Match(TFunc{Param: Int32, Return: Int32}, Int32); err == nil {
		t.Errorf("function vs primitive should be incongruent")
	}
	if _, err := Match(TRecord{Fields: map[string]Type{"a": Int32}}, TRecord{Fields: map[string]Type{"b": Int32}}); err == nil {
		t.Errorf("records with different fields should be incongruent")
	}
}

func TestApplyAndCompose(t *testing.T) {
	body := TFunc{
		Param:  TVar{Name: "a"},
		Return: TArray{Elem: TVar{Name: "b"}, Shape: []Dim{DimAny{}}},
	}
	s := Subst{"a": Int32, "b": Bool}
	got := body.Apply(s)
	want := "i32 -> []bool"
	if got.String() != want {
		t.Errorf("Apply = %s, want %s", got, want)
	}

	s1 := Subst{"a": TVar{Name: "b"}}
	s2 := Subst{"b": Float64}
	composed := s1.Compose(s2)
	if composed["a"] != Type(Float64) {
		t.Errorf("Compose: a = %v, want f64", composed["a"])
	}
}

func TestApplySelfReferenceTerminates(t *testing.T) {
	s := Subst{"a": TVar{Name: "a"}}
	got := TVar{Name: "a"}.Apply(s)
	if got != Type(TVar{Name: "a"}) {
		t.Errorf("self-referential substitution changed the variable: %v", got)
	}
}

func TestEraseShapes(t *testing.T) {
	n := names.VName{Base: "n", Tag: 2001}
	typ := TArray{
		Elem:  TRecord{Fields: map[string]Type{"xs": TArray{Elem: Int32, Shape: []Dim{DimConst{Value: 4}}}}},
		Shape: []Dim{DimNamed{Name: n}},
	}
	got := EraseShapes(typ)
	if got.String() != "[]{xs: []i32}" {
		t.Errorf("EraseShapes = %s, want []{xs: []i32}", got)
	}
}

func TestSizeNames(t *testing.T) {
	n := names.VName{Base: "n", Tag: 2002}
	m := names.VName{Base: "m", Tag: 2003}
	typ := TFunc{
		Param:  TArray{Elem: Int32, Shape: []Dim{DimNamed{Name: n}}},
		Return: TArray{Elem: Int32, Shape: []Dim{DimNamed{Name: m}, DimNamed{Name: n}}},
	}
	got := SizeNames(typ)
	if len(got) != 2 || got[0] != n || got[1] != m {
		t.Errorf("SizeNames = %v, want [n m]", got)
	}
}

func TestExpandAlias(t *testing.T) {
	pair := names.VName{Base: "pair", Tag: 3000}
	deep := names.VName{Base: "deep", Tag: 3001}
	aliases := map[names.VName]struct {
		params []string
		def    Type
	}{
		// type pair 'a = {fst: a, snd: a}
		pair: {params: []string{"a"}, def: TRecord{Fields: map[string]Type{"fst": TVar{Name: "a"}, "snd": TVar{Name: "a"}}}},
		// type deep = pair i32, already expanded when recorded
		deep: {params: nil, def: TRecord{Fields: map[string]Type{"fst": Int32, "snd": Int32}}},
	}
	lookup := func(v names.VName) ([]string, Type, bool) {
		a, ok := aliases[v]
		return a.params, a.def, ok
	}

	got := ExpandWith(TCon{Name: pair, Args: []Type{Float64}}, lookup)
	if got.String() != "{fst: f64, snd: f64}" {
		t.Errorf("ExpandWith = %s", got)
	}

	got = ExpandWith(TArray{Elem: TCon{Name: deep}, Shape: []Dim{DimAny{}}}, lookup)
	if got.String() != "[]{fst: i32, snd: i32}" {
		t.Errorf("ExpandWith nested = %s", got)
	}
}
