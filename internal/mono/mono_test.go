package mono

import (
	"errors"
	"testing"

	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

func qv(v names.VName) names.QualVName { return names.QualVName{Name: v} }

func varOf(v names.VName, t typesystem.Type) *ast.Var {
	return &ast.Var{Name: qv(v), Typ: t}
}

func fn(params ...typesystem.Type) typesystem.Type {
	last := params[len(params)-1]
	return typesystem.Arrow(last, params[:len(params)-1]...)
}

// identityBind builds id 't (x: t): t = x.
func identityBind(src *names.Source) *ast.ValBind {
	id := src.New("id")
	x := src.New("x")
	tv := typesystem.TVar{Name: "t"}
	return &ast.ValBind{
		Name:       id,
		TypeParams: []string{"t"},
		Params:     []*ast.Param{{Name: x, Typ: tv}},
		RetType:    tv,
		Body:       varOf(x, tv),
	}
}

func callAt(fun names.VName, t typesystem.Type, arg ast.Expression) *ast.Apply {
	return &ast.Apply{Fun: varOf(fun, fn(t, t)), Arg: arg, Typ: t}
}

func mustTransform(t *testing.T, prog *ast.Program, src *names.Source) *ast.Program {
	t.Helper()
	out, err := Transform(prog, src)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return out
}

func valBinds(t *testing.T, prog *ast.Program) []*ast.ValBind {
	t.Helper()
	out := make([]*ast.ValBind, len(prog.Decs))
	for i, d := range prog.Decs {
		vb, ok := d.(*ast.ValBind)
		if !ok {
			t.Fatalf("dec %d: got %T, want *ast.ValBind", i, d)
		}
		out[i] = vb
	}
	return out
}

func TestIdentityTwoInstantiationsThirdReuses(t *testing.T) {
	src := names.NewSource()
	id := identityBind(src)
	main := src.New("main")

	i32, f64 := typesystem.Int32, typesystem.Float64
	body := &ast.RecordLit{
		Fields: []*ast.FieldExpr{
			{Name: "a", Value: callAt(id.Name, i32, &ast.IntLit{Value: 1, Typ: i32})},
			{Name: "b", Value: callAt(id.Name, f64, &ast.FloatLit{Value: 1.0, Typ: f64})},
			{Name: "c", Value: callAt(id.Name, i32, &ast.IntLit{Value: 2, Typ: i32})},
		},
		Typ: typesystem.TRecord{Fields: map[string]typesystem.Type{"a": i32, "b": f64, "c": i32}},
	}
	prog := &ast.Program{Decs: []ast.Dec{
		id,
		&ast.ValBind{Entry: true, Name: main, RetType: body.Typ, Body: body},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 3 {
		t.Fatalf("got %d bindings, want 3 (two id instances plus the entry)", len(binds))
	}
	if binds[0].Name == binds[1].Name {
		t.Fatalf("instances at i32 and f64 share name %s", binds[0].Name)
	}
	for i := 0; i < 2; i++ {
		if binds[i].Name == id.Name {
			t.Errorf("instance %d kept the template name %s", i, id.Name)
		}
		if len(binds[i].TypeParams) != 0 {
			t.Errorf("instance %d still has type params %v", i, binds[i].TypeParams)
		}
	}
	if binds[0].Params[0].Typ.String() != "i32" {
		t.Errorf("first instance parameter type = %s, want i32", binds[0].Params[0].Typ)
	}
	if binds[1].Params[0].Typ.String() != "f64" {
		t.Errorf("second instance parameter type = %s, want f64", binds[1].Params[0].Typ)
	}
	entry := binds[2]
	if !entry.Entry || entry.Name != main {
		t.Fatalf("last binding = %s (entry=%v), want entry main", entry.Name, entry.Entry)
	}

	rec := entry.Body.(*ast.RecordLit)
	ref := func(i int) names.VName {
		return rec.Fields[i].Value.(*ast.Apply).Fun.(*ast.Var).Name.Name
	}
	if ref(0) != binds[0].Name {
		t.Errorf("first call references %s, want %s", ref(0), binds[0].Name)
	}
	if ref(1) != binds[1].Name {
		t.Errorf("second call references %s, want %s", ref(1), binds[1].Name)
	}
	if ref(2) != ref(0) {
		t.Errorf("third call references %s, want reuse of %s", ref(2), ref(0))
	}
}

func TestCacheSharedAcrossEntries(t *testing.T) {
	src := names.NewSource()
	id := identityBind(src)
	i32 := typesystem.Int32

	entry := func(name string) *ast.ValBind {
		return &ast.ValBind{
			Entry:   true,
			Name:    src.New(name),
			RetType: i32,
			Body:    callAt(id.Name, i32, &ast.IntLit{Value: 1, Typ: i32}),
		}
	}
	prog := &ast.Program{Decs: []ast.Dec{id, entry("e1"), entry("e2")}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 3 {
		t.Fatalf("got %d bindings, want 3 (one shared instance, two entries)", len(binds))
	}
	inst := binds[0].Name
	for i := 1; i < 3; i++ {
		got := binds[i].Body.(*ast.Apply).Fun.(*ast.Var).Name.Name
		if got != inst {
			t.Errorf("entry %d references %s, want shared instance %s", i, got, inst)
		}
	}
}

func TestMonomorphicBindingKeepsName(t *testing.T) {
	src := names.NewSource()
	one := src.New("one")
	i32 := typesystem.Int32
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Name: one, RetType: i32, Body: &ast.IntLit{Value: 1, Typ: i32}},
		&ast.ValBind{
			Entry:   true,
			Name:    src.New("main"),
			RetType: i32,
			Body:    varOf(one, i32),
		},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 2 {
		t.Fatalf("got %d bindings, want 2", len(binds))
	}
	if binds[0].Name != one {
		t.Errorf("monomorphic binding renamed to %s, want %s", binds[0].Name, one)
	}
	if got := binds[1].Body.(*ast.Var).Name.Name; got != one {
		t.Errorf("entry references %s, want %s", got, one)
	}
}

func TestUncalledBindingNotEmitted(t *testing.T) {
	src := names.NewSource()
	id := identityBind(src)
	i32 := typesystem.Int32
	prog := &ast.Program{Decs: []ast.Dec{
		id,
		&ast.ValBind{
			Entry:   true,
			Name:    src.New("main"),
			RetType: i32,
			Body:    &ast.IntLit{Value: 0, Typ: i32},
		},
	}}

	out := mustTransform(t, prog, src)
	if len(out.Decs) != 1 {
		t.Fatalf("got %d bindings, want only the entry", len(out.Decs))
	}
}

func TestIntrinsicsPassThrough(t *testing.T) {
	src := names.NewSource()
	plus, ok := symbols.IntrinsicTerm("+")
	if !ok {
		t.Fatal("intrinsic + not registered")
	}
	i32 := typesystem.Int32
	body := &ast.Apply{
		Fun: &ast.Apply{
			Fun: varOf(plus, fn(i32, i32, i32)),
			Arg: &ast.IntLit{Value: 1, Typ: i32},
			Typ: fn(i32, i32),
		},
		Arg: &ast.IntLit{Value: 2, Typ: i32},
		Typ: i32,
	}
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: i32, Body: body},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	got := binds[0].Body.(*ast.Apply).Fun.(*ast.Apply).Fun.(*ast.Var).Name.Name
	if got != plus {
		t.Errorf("intrinsic reference rewritten to %s", got)
	}
}

func TestLocalGenericNestsInstancesLocally(t *testing.T) {
	src := names.NewSource()
	g := src.New("g")
	x := src.New("x")
	tv := typesystem.TVar{Name: "t"}
	i32, b := typesystem.Int32, typesystem.Bool

	letBody := &ast.RecordLit{
		Fields: []*ast.FieldExpr{
			{Name: "a", Value: callAt(g, i32, &ast.IntLit{Value: 1, Typ: i32})},
			{Name: "b", Value: callAt(g, b, &ast.BoolLit{Value: true, Typ: b})},
		},
		Typ: typesystem.TRecord{Fields: map[string]typesystem.Type{"a": i32, "b": b}},
	}
	body := &ast.LetFun{
		Name:       g,
		TypeParams: []string{"t"},
		Params:     []*ast.Param{{Name: x, Typ: tv}},
		RetType:    tv,
		FunBody:    varOf(x, tv),
		Body:       letBody,
		Typ:        letBody.Typ,
	}
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: body.Typ, Body: body},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 1 {
		t.Fatalf("got %d top-level bindings, want 1: local instances must not float", len(binds))
	}

	outer, ok := binds[0].Body.(*ast.LetFun)
	if !ok {
		t.Fatalf("entry body is %T, want nested LetFun", binds[0].Body)
	}
	innerFun, ok := outer.Body.(*ast.LetFun)
	if !ok {
		t.Fatalf("second instance missing, body is %T", outer.Body)
	}
	// The i32 instance was generated first, so it wraps outermost.
	if outer.Params[0].Typ.String() != "i32" {
		t.Errorf("outer instance at %s, want i32", outer.Params[0].Typ)
	}
	if innerFun.Params[0].Typ.String() != "bool" {
		t.Errorf("inner instance at %s, want bool", innerFun.Params[0].Typ)
	}

	rec := innerFun.Body.(*ast.RecordLit)
	if got := rec.Fields[0].Value.(*ast.Apply).Fun.(*ast.Var).Name.Name; got != outer.Name {
		t.Errorf("i32 call references %s, want %s", got, outer.Name)
	}
	if got := rec.Fields[1].Value.(*ast.Apply).Fun.(*ast.Var).Name.Name; got != innerFun.Name {
		t.Errorf("bool call references %s, want %s", got, innerFun.Name)
	}
}

func TestLocalGenericDependencyFloatsToTop(t *testing.T) {
	src := names.NewSource()
	id := identityBind(src)
	g := src.New("g")
	x := src.New("x")
	tv := typesystem.TVar{Name: "t"}
	i32 := typesystem.Int32

	// g 't (x: t): t = id x: specializing g must float an id instance to
	// the top level, where id is in scope.
	body := &ast.LetFun{
		Name:       g,
		TypeParams: []string{"t"},
		Params:     []*ast.Param{{Name: x, Typ: tv}},
		RetType:    tv,
		FunBody: &ast.Apply{
			Fun: varOf(id.Name, typesystem.TFunc{Param: tv, Return: tv}),
			Arg: varOf(x, tv),
			Typ: tv,
		},
		Body: callAt(g, i32, &ast.IntLit{Value: 3, Typ: i32}),
		Typ:  i32,
	}
	prog := &ast.Program{Decs: []ast.Dec{
		id,
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: i32, Body: body},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 2 {
		t.Fatalf("got %d top-level bindings, want id instance plus entry", len(binds))
	}
	idInst := binds[0]
	if idInst.Params[0].Typ.String() != "i32" {
		t.Errorf("floated instance at %s, want i32", idInst.Params[0].Typ)
	}
	gInst, ok := binds[1].Body.(*ast.LetFun)
	if !ok {
		t.Fatalf("entry body is %T, want local LetFun instance", binds[1].Body)
	}
	if got := gInst.FunBody.(*ast.Apply).Fun.(*ast.Var).Name.Name; got != idInst.Name {
		t.Errorf("local instance calls %s, want floated %s", got, idInst.Name)
	}
}

func TestLocalGenericRegeneratedPerEnclosingInstance(t *testing.T) {
	src := names.NewSource()
	outer := src.New("outer")
	g := src.New("g")
	x := src.New("x")
	y := src.New("y")
	tv := typesystem.TVar{Name: "t"}
	uv := typesystem.TVar{Name: "u"}
	i32, f64 := typesystem.Int32, typesystem.Float64

	// outer 't (y: t): t = let g 'u (x: u): u = x in g y. Every instance
	// of outer must bind its own g instance; the one nested in the first
	// instance is out of scope in the second.
	outerBind := &ast.ValBind{
		Name:       outer,
		TypeParams: []string{"t"},
		Params:     []*ast.Param{{Name: y, Typ: tv}},
		RetType:    tv,
		Body: &ast.LetFun{
			Name:       g,
			TypeParams: []string{"u"},
			Params:     []*ast.Param{{Name: x, Typ: uv}},
			RetType:    uv,
			FunBody:    varOf(x, uv),
			Body:       callAt(g, tv, varOf(y, tv)),
			Typ:        tv,
		},
	}
	body := &ast.RecordLit{
		Fields: []*ast.FieldExpr{
			{Name: "a", Value: callAt(outer, i32, &ast.IntLit{Value: 1, Typ: i32})},
			{Name: "b", Value: callAt(outer, f64, &ast.FloatLit{Value: 1.0, Typ: f64})},
		},
		Typ: typesystem.TRecord{Fields: map[string]typesystem.Type{"a": i32, "b": f64}},
	}
	prog := &ast.Program{Decs: []ast.Dec{
		outerBind,
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: body.Typ, Body: body},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 3 {
		t.Fatalf("got %d bindings, want two outer instances plus the entry", len(binds))
	}
	local := make([]names.VName, 2)
	for i := 0; i < 2; i++ {
		lf, ok := binds[i].Body.(*ast.LetFun)
		if !ok {
			t.Fatalf("outer instance %d body is %T, want LetFun binding its own g instance", i, binds[i].Body)
		}
		call := lf.Body.(*ast.Apply).Fun.(*ast.Var).Name.Name
		if call != lf.Name {
			t.Errorf("instance %d calls %s, want its local %s", i, call, lf.Name)
		}
		local[i] = lf.Name
	}
	if local[0] == local[1] {
		t.Errorf("both outer instances share local instance %s", local[0])
	}
}

func TestNonGenericLetFunBecomesLetPat(t *testing.T) {
	src := names.NewSource()
	f := src.New("f")
	x := src.New("x")
	i32 := typesystem.Int32

	body := &ast.LetFun{
		Name:    f,
		Params:  []*ast.Param{{Name: x, Typ: i32}},
		RetType: i32,
		FunBody: varOf(x, i32),
		Body:    callAt(f, i32, &ast.IntLit{Value: 1, Typ: i32}),
		Typ:     i32,
	}
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: i32, Body: body},
	}}

	out := mustTransform(t, prog, src)
	let, ok := valBinds(t, out)[0].Body.(*ast.LetPat)
	if !ok {
		t.Fatalf("entry body is %T, want LetPat", valBinds(t, out)[0].Body)
	}
	if let.Name != f {
		t.Errorf("let binds %s, want %s", let.Name, f)
	}
	if _, ok := let.Value.(*ast.Lambda); !ok {
		t.Errorf("let value is %T, want Lambda", let.Value)
	}
}

func TestEntryForcedMonomorphic(t *testing.T) {
	src := names.NewSource()
	x := src.New("x")
	main := src.New("main")
	tv := typesystem.TVar{Name: "t"}
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{
			Entry:      true,
			Name:       main,
			TypeParams: []string{"t"},
			Params:     []*ast.Param{{Name: x, Typ: tv}},
			RetType:    tv,
			Body:       varOf(x, tv),
		},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 1 {
		t.Fatalf("got %d bindings, want 1", len(binds))
	}
	entry := binds[0]
	if !entry.Entry {
		t.Error("forced instance lost its entry flag")
	}
	if entry.Name != main {
		t.Errorf("forced instance renamed to %s, want the external name %s", entry.Name, main)
	}
	if got := entry.Params[0].Typ.String(); got != "unit" {
		t.Errorf("residual type parameter instantiated at %s, want unit", got)
	}
	if len(entry.TypeParams) != 0 {
		t.Errorf("entry still has type params %v", entry.TypeParams)
	}
}

func TestAliasErasure(t *testing.T) {
	src := names.NewSource()
	pairName := src.New("pair")
	boxName := src.New("box")
	i32 := typesystem.Int32
	pairDef := typesystem.TRecord{Fields: map[string]typesystem.Type{"x": i32, "y": i32}}

	prog := &ast.Program{Decs: []ast.Dec{
		&ast.TypeBind{Name: pairName, Def: pairDef},
		// box = pair: aliases-of-aliases must resolve transitively.
		&ast.TypeBind{Name: boxName, Def: typesystem.TCon{Name: pairName}},
		&ast.ValBind{
			Entry:   true,
			Name:    src.New("main"),
			RetType: typesystem.TCon{Name: boxName},
			Body: &ast.RecordLit{
				Fields: []*ast.FieldExpr{
					{Name: "x", Value: &ast.IntLit{Value: 1, Typ: i32}},
					{Name: "y", Value: &ast.IntLit{Value: 2, Typ: i32}},
				},
				Typ: typesystem.TCon{Name: boxName},
			},
		},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 1 {
		t.Fatalf("got %d bindings, want 1: aliases must be erased, not emitted", len(binds))
	}
	if _, ok := binds[0].RetType.(typesystem.TRecord); !ok {
		t.Errorf("return type = %s (%T), want expanded record", binds[0].RetType, binds[0].RetType)
	}
	if _, ok := binds[0].Body.Type().(typesystem.TRecord); !ok {
		t.Errorf("body type = %s, want expanded record", binds[0].Body.Type())
	}
}

func TestModuleDeclarationRejected(t *testing.T) {
	src := names.NewSource()
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ModBind{Name: src.New("m")},
	}}

	_, err := Transform(prog, src)
	var derr *diagnostics.DiagnosticError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want DiagnosticError", err)
	}
	if derr.Code != diagnostics.ErrM001 {
		t.Errorf("code = %s, want %s", derr.Code, diagnostics.ErrM001)
	}
}

func TestInstantiationMismatchIsInternal(t *testing.T) {
	src := names.NewSource()
	id := identityBind(src)
	i32 := typesystem.Int32

	// The call site claims id has a non-function type, which a correct
	// front end can never produce.
	prog := &ast.Program{Decs: []ast.Dec{
		id,
		&ast.ValBind{
			Entry:   true,
			Name:    src.New("main"),
			RetType: i32,
			Body:    varOf(id.Name, i32),
		},
	}}

	_, err := Transform(prog, src)
	var derr *diagnostics.DiagnosticError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want DiagnosticError", err)
	}
	if !derr.IsInternal() {
		t.Errorf("code = %s, want internal %s", derr.Code, diagnostics.ErrI001)
	}
}

func TestNamedSizeRoutedThroughInstance(t *testing.T) {
	src := names.NewSource()
	n := src.New("n")
	f := src.New("f")
	xs := src.New("xs")
	i32 := typesystem.Int32
	arrN := typesystem.TArray{Elem: i32, Shape: []typesystem.Dim{typesystem.DimNamed{Name: n}}}

	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Name: n, RetType: typesystem.SizeType, Body: &ast.IntLit{Value: 10, Typ: typesystem.SizeType}},
		&ast.ValBind{
			Name:    f,
			Params:  []*ast.Param{{Name: xs, Typ: arrN}},
			RetType: i32,
			Body:    &ast.IntLit{Value: 0, Typ: i32},
		},
		&ast.ValBind{
			Entry:   true,
			Name:    src.New("main"),
			RetType: i32,
			Body: &ast.Apply{
				Fun: varOf(f, typesystem.TFunc{Param: arrN, Return: i32}),
				Arg: &ast.ArrayLit{Elems: nil, Typ: arrN},
				Typ: i32,
			},
		},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 3 {
		t.Fatalf("got %d bindings, want 3: size binding must be pulled in", len(binds))
	}
	// The size binding is a dependency of f's instance and must precede it.
	if binds[0].Name != n {
		t.Errorf("first binding = %s, want size %s", binds[0].Name, n)
	}
	if binds[1].Name != f {
		t.Errorf("second binding = %s, want %s", binds[1].Name, f)
	}
	sizes := typesystem.SizeNames(binds[1].Params[0].Typ)
	if len(sizes) != 1 || sizes[0] != n {
		t.Errorf("instance parameter sizes = %v, want [%s]", sizes, n)
	}
}

func TestSectionsDesugarToLambdas(t *testing.T) {
	src := names.NewSource()
	plus, ok := symbols.IntrinsicTerm("+")
	if !ok {
		t.Fatal("intrinsic + not registered")
	}
	i32 := typesystem.Int32

	t.Run("bare operator", func(t *testing.T) {
		sec := &ast.OpSection{Op: qv(plus), Typ: fn(i32, i32, i32)}
		prog := &ast.Program{Decs: []ast.Dec{
			&ast.ValBind{Entry: true, Name: src.New("main"), RetType: sec.Typ, Body: sec},
		}}
		lam, ok := valBinds(t, mustTransform(t, prog, src))[0].Body.(*ast.Lambda)
		if !ok {
			t.Fatal("section did not become a lambda")
		}
		if len(lam.Params) != 2 {
			t.Fatalf("got %d params, want 2", len(lam.Params))
		}
		head := lam.Body.(*ast.Apply).Fun.(*ast.Apply).Fun.(*ast.Var)
		if head.Name.Name != plus {
			t.Errorf("desugared head = %s, want +", head.Name.Name)
		}
	})

	t.Run("right operand fixed", func(t *testing.T) {
		sec := &ast.OpSectionRight{
			Op:      qv(plus),
			Operand: &ast.IntLit{Value: 2, Typ: i32},
			Typ:     fn(i32, i32),
		}
		prog := &ast.Program{Decs: []ast.Dec{
			&ast.ValBind{Entry: true, Name: src.New("main"), RetType: sec.Typ, Body: sec},
		}}
		lam, ok := valBinds(t, mustTransform(t, prog, src))[0].Body.(*ast.Lambda)
		if !ok {
			t.Fatal("section did not become a lambda")
		}
		if len(lam.Params) != 1 {
			t.Fatalf("got %d params, want 1", len(lam.Params))
		}
		app := lam.Body.(*ast.Apply)
		if _, ok := app.Arg.(*ast.IntLit); !ok {
			t.Errorf("fixed operand not in argument position, got %T", app.Arg)
		}
		inner := app.Fun.(*ast.Apply)
		if got := inner.Arg.(*ast.Var).Name.Name; got != lam.Params[0].Name {
			t.Errorf("lambda parameter not in left position, got %s", got)
		}
	})

	t.Run("projection", func(t *testing.T) {
		rec := typesystem.TRecord{Fields: map[string]typesystem.Type{"a": i32}}
		sec := &ast.ProjectSection{
			Fields: []string{"a"},
			Typ:    typesystem.TFunc{Param: rec, Return: i32},
		}
		prog := &ast.Program{Decs: []ast.Dec{
			&ast.ValBind{Entry: true, Name: src.New("main"), RetType: sec.Typ, Body: sec},
		}}
		lam, ok := valBinds(t, mustTransform(t, prog, src))[0].Body.(*ast.Lambda)
		if !ok {
			t.Fatal("section did not become a lambda")
		}
		proj := lam.Body.(*ast.Project)
		if proj.Field != "a" {
			t.Errorf("projected field = %s, want a", proj.Field)
		}
		if got := proj.Value.(*ast.Var).Name.Name; got != lam.Params[0].Name {
			t.Errorf("projection target = %s, want lambda parameter", got)
		}
	})

	t.Run("projection of missing field", func(t *testing.T) {
		sec := &ast.ProjectSection{
			Fields: []string{"b"},
			Typ:    typesystem.TFunc{Param: typesystem.TRecord{Fields: map[string]typesystem.Type{"a": i32}}, Return: i32},
		}
		prog := &ast.Program{Decs: []ast.Dec{
			&ast.ValBind{Entry: true, Name: src.New("main"), RetType: sec.Typ, Body: sec},
		}}
		_, err := Transform(prog, src)
		var derr *diagnostics.DiagnosticError
		if !errors.As(err, &derr) || !derr.IsInternal() {
			t.Fatalf("got %v, want internal error", err)
		}
	})

	t.Run("index", func(t *testing.T) {
		arr := typesystem.TArray{Elem: i32, Shape: []typesystem.Dim{typesystem.DimAny{}}}
		sec := &ast.IndexSection{
			Indices: []ast.Expression{&ast.IntLit{Value: 0, Typ: typesystem.SizeType}},
			Typ:     typesystem.TFunc{Param: arr, Return: i32},
		}
		prog := &ast.Program{Decs: []ast.Dec{
			&ast.ValBind{Entry: true, Name: src.New("main"), RetType: sec.Typ, Body: sec},
		}}
		lam, ok := valBinds(t, mustTransform(t, prog, src))[0].Body.(*ast.Lambda)
		if !ok {
			t.Fatal("section did not become a lambda")
		}
		idx := lam.Body.(*ast.Index)
		if got := idx.Array.(*ast.Var).Name.Name; got != lam.Params[0].Name {
			t.Errorf("index target = %s, want lambda parameter", got)
		}
		if len(idx.Indices) != 1 {
			t.Errorf("got %d indices, want 1", len(idx.Indices))
		}
	})
}

func TestSOACRecognition(t *testing.T) {
	src := names.NewSource()
	mapV, ok := symbols.IntrinsicTerm("map")
	if !ok {
		t.Fatal("intrinsic map not registered")
	}
	i32 := typesystem.Int32
	arr := typesystem.TArray{Elem: i32, Shape: []typesystem.Dim{typesystem.DimAny{}}}
	x := src.New("x")
	lam := &ast.Lambda{
		Params:  []*ast.Param{{Name: x, Typ: i32}},
		Body:    varOf(x, i32),
		RetType: i32,
		Typ:     fn(i32, i32),
	}
	arrLit := &ast.ArrayLit{Elems: []ast.Expression{&ast.IntLit{Value: 1, Typ: i32}}, Typ: arr}

	full := &ast.Apply{
		Fun: &ast.Apply{
			Fun: varOf(mapV, fn(fn(i32, i32), arr, arr)),
			Arg: lam,
			Typ: fn(arr, arr),
		},
		Arg: arrLit,
		Typ: arr,
	}
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: arr, Body: full},
	}}

	got := valBinds(t, mustTransform(t, prog, src))[0].Body
	mp, ok := got.(*ast.Map)
	if !ok {
		t.Fatalf("full map application is %T, want *ast.Map", got)
	}
	if _, ok := mp.Fun.(*ast.Lambda); !ok {
		t.Errorf("map function is %T, want Lambda", mp.Fun)
	}

	// A partial application must stay an ordinary application.
	partial := &ast.Apply{
		Fun: varOf(mapV, fn(fn(i32, i32), arr, arr)),
		Arg: lam,
		Typ: fn(arr, arr),
	}
	prog2 := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main2"), RetType: partial.Typ, Body: partial},
	}}
	got2 := valBinds(t, mustTransform(t, prog2, src))[0].Body
	if _, ok := got2.(*ast.Apply); !ok {
		t.Errorf("partial map application rewritten to %T", got2)
	}
}

func TestStreamCombinatorRecognition(t *testing.T) {
	src := names.NewSource()
	smap, ok := symbols.IntrinsicTerm("stream_map")
	if !ok {
		t.Fatal("intrinsic stream_map not registered")
	}
	sred, ok := symbols.IntrinsicTerm("stream_red")
	if !ok {
		t.Fatal("intrinsic stream_red not registered")
	}
	plus, _ := symbols.IntrinsicTerm("+")
	i32 := typesystem.Int32
	arr := typesystem.TArray{Elem: i32, Shape: []typesystem.Dim{typesystem.DimAny{}}}
	arrLit := &ast.ArrayLit{Elems: []ast.Expression{&ast.IntLit{Value: 1, Typ: i32}}, Typ: arr}

	chunk := src.New("chunk")
	chunkFun := &ast.Lambda{
		Params:  []*ast.Param{{Name: chunk, Typ: arr}},
		Body:    varOf(chunk, arr),
		RetType: arr,
		Typ:     fn(arr, arr),
	}
	mapSpine := &ast.Apply{
		Fun: &ast.Apply{
			Fun: varOf(smap, fn(fn(arr, arr), arr, arr)),
			Arg: chunkFun,
			Typ: fn(arr, arr),
		},
		Arg: arrLit,
		Typ: arr,
	}
	prog := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main"), RetType: arr, Body: mapSpine},
	}}
	got := valBinds(t, mustTransform(t, prog, src))[0].Body
	sm, ok := got.(*ast.StreamMap)
	if !ok {
		t.Fatalf("full stream_map application is %T, want *ast.StreamMap", got)
	}
	if _, ok := sm.Fun.(*ast.Lambda); !ok {
		t.Errorf("chunk function is %T, want Lambda", sm.Fun)
	}

	sum := src.New("sum")
	sumFun := &ast.Lambda{
		Params:  []*ast.Param{{Name: sum, Typ: arr}},
		Body:    &ast.IntLit{Value: 0, Typ: i32},
		RetType: i32,
		Typ:     fn(arr, i32),
	}
	redSpine := &ast.Apply{
		Fun: &ast.Apply{
			Fun: &ast.Apply{
				Fun: varOf(sred, fn(fn(i32, i32, i32), fn(arr, i32), arr, i32)),
				Arg: varOf(plus, fn(i32, i32, i32)),
				Typ: fn(fn(arr, i32), arr, i32),
			},
			Arg: sumFun,
			Typ: fn(arr, i32),
		},
		Arg: arrLit,
		Typ: i32,
	}
	prog2 := &ast.Program{Decs: []ast.Dec{
		&ast.ValBind{Entry: true, Name: src.New("main2"), RetType: i32, Body: redSpine},
	}}
	got2 := valBinds(t, mustTransform(t, prog2, src))[0].Body
	sr, ok := got2.(*ast.StreamRed)
	if !ok {
		t.Fatalf("full stream_red application is %T, want *ast.StreamRed", got2)
	}
	if op, ok := sr.Op.(*ast.Var); !ok || op.Name.Name != plus {
		t.Errorf("operator position holds %T, want the + intrinsic", sr.Op)
	}
}

func TestRecursivePolymorphicTerminates(t *testing.T) {
	src := names.NewSource()
	loop := src.New("loop")
	x := src.New("x")
	tv := typesystem.TVar{Name: "t"}
	i32 := typesystem.Int32

	// loop 't (x: t): t = loop x. Degenerate, but instantiation must
	// terminate via the cache rather than specialize forever.
	rec := &ast.ValBind{
		Name:       loop,
		TypeParams: []string{"t"},
		Params:     []*ast.Param{{Name: x, Typ: tv}},
		RetType:    tv,
		Body: &ast.Apply{
			Fun: varOf(loop, typesystem.TFunc{Param: tv, Return: tv}),
			Arg: varOf(x, tv),
			Typ: tv,
		},
	}
	prog := &ast.Program{Decs: []ast.Dec{
		rec,
		&ast.ValBind{
			Entry:   true,
			Name:    src.New("main"),
			RetType: i32,
			Body:    callAt(loop, i32, &ast.IntLit{Value: 1, Typ: i32}),
		},
	}}

	out := mustTransform(t, prog, src)
	binds := valBinds(t, out)
	if len(binds) != 2 {
		t.Fatalf("got %d bindings, want 2", len(binds))
	}
	inst := binds[0]
	self := inst.Body.(*ast.Apply).Fun.(*ast.Var).Name.Name
	if self != inst.Name {
		t.Errorf("recursive call references %s, want the instance itself %s", self, inst.Name)
	}
}
