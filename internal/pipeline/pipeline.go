// Package pipeline chains the middle-end passes over one compilation unit.
package pipeline

import (
	"github.com/Happy-Ferret/futhark/internal/ast"
	"github.com/Happy-Ferret/futhark/internal/config"
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
)

// PipelineContext is the state threaded through the passes: the program
// being rewritten, the environments the front end produced, and the
// diagnostics accumulated so far.
type PipelineContext struct {
	FilePath string
	Program  *ast.Program
	Env      *symbols.Environment
	Imports  map[string]*symbols.Environment
	Options  *config.Options
	Names    *names.Source
	Warnings *diagnostics.Warnings
	Error    *diagnostics.DiagnosticError
}

func NewContext(filePath string, prog *ast.Program, opts *config.Options) *PipelineContext {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	return &PipelineContext{
		FilePath: filePath,
		Program:  prog,
		Options:  opts,
		Names:    names.NewSource(),
		Warnings: diagnostics.NewWarnings(),
	}
}

// Processor is one pass over the context.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. The first fatal diagnostic aborts the
// run; a later stage fed a half-rewritten program would only compound it.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Error != nil {
			return ctx
		}
	}
	if ctx.Options.Werror && ctx.Warnings.Len() > 0 {
		w := ctx.Warnings.Sorted()[0]
		ctx.Error = diagnostics.NewErrorf(diagnostics.ErrW001, w.Token,
			"warnings treated as errors: %s", w.Message)
	}
	return ctx
}
