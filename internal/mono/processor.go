package mono

import (
	"errors"

	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/config"
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/pipeline"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// MonomorphizeProcessor runs the specialization engine as a pipeline stage.
type MonomorphizeProcessor struct{}

func (mp *MonomorphizeProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil {
		return ctx
	}

	prog := restrictEntries(ctx.Program, ctx.Options)
	if ctx.Options.SafeOnly {
		if err := checkFirstOrderEntries(prog); err != nil {
			ctx.Error = err
			return ctx
		}
	}

	out, err := Transform(prog, ctx.Names)
	if err != nil {
		var derr *diagnostics.DiagnosticError
		if errors.As(err, &derr) {
			ctx.Error = derr
		} else {
			ctx.Error = diagnostics.NewError(diagnostics.ErrI001, token.Token{}, err.Error())
		}
		return ctx
	}
	ctx.Program = out
	return ctx
}

// restrictEntries demotes entry bindings the options do not ask for, so they
// are specialized on demand like any other binding instead of forced.
func restrictEntries(prog *ast.Program, opts *config.Options) *ast.Program {
	if len(opts.EntryPoints) == 0 {
		return prog
	}
	decs := make([]ast.Dec, len(prog.Decs))
	for i, dec := range prog.Decs {
		vb, ok := dec.(*ast.ValBind)
		if !ok || !vb.Entry || opts.WantsEntry(vb.Name.Base) {
			decs[i] = dec
			continue
		}
		demoted := *vb
		demoted.Entry = false
		decs[i] = &demoted
	}
	return &ast.Program{File: prog.File, Decs: decs}
}

func checkFirstOrderEntries(prog *ast.Program) *diagnostics.DiagnosticError {
	for _, dec := range prog.Decs {
		vb, ok := dec.(*ast.ValBind)
		if !ok || !vb.Entry {
			continue
		}
		for _, p := range vb.Params {
			if containsFunc(p.Typ) {
				return diagnostics.NewErrorf(diagnostics.ErrM002, vb.Token,
					"entry %s takes a function-typed parameter", vb.Name)
			}
		}
		if containsFunc(vb.RetType) {
			return diagnostics.NewErrorf(diagnostics.ErrM002, vb.Token,
				"entry %s returns a function", vb.Name)
		}
	}
	return nil
}

func containsFunc(t typesystem.Type) bool {
	switch t := t.(type) {
	case typesystem.TFunc:
		return true
	case typesystem.TArray:
		return containsFunc(t.Elem)
	case typesystem.TRecord:
		for _, ft := range t.Fields {
			if containsFunc(ft) {
				return true
			}
		}
	case typesystem.TCon:
		for _, a := range t.Args {
			if containsFunc(a) {
				return true
			}
		}
	}
	return false
}
