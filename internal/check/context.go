// Package check provides the single capability bundle threaded through all
// checking and resolution code: scope access, an import table, warning
// accumulation and fresh-name generation. Everything is synchronous and
// single-threaded; the first fatal diagnostic aborts the enclosing run.
package check

import (
	"github.com/Happy-Ferret/futhark/internal/diagnostics"
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/symbols"
	"github.com/Happy-Ferret/futhark/internal/token"
)

// Context carries the state of one checking run.
type Context struct {
	env           *symbols.Environment
	rootEnv       *symbols.Environment
	imports       map[string]*symbols.Environment
	currentImport string
	warnings      *diagnostics.Warnings
	names         *names.Source
}

// NewContext builds a context rooted at root. currentImport is the canonical
// path of the module being checked; imports maps canonical import paths to
// the environments of previously checked modules.
func NewContext(root *symbols.Environment, imports map[string]*symbols.Environment, currentImport string, src *names.Source) *Context {
	if imports == nil {
		imports = map[string]*symbols.Environment{}
	}
	return &Context{
		env:           root,
		rootEnv:       root,
		imports:       imports,
		currentImport: currentImport,
		warnings:      diagnostics.NewWarnings(),
		names:         src,
	}
}

// Env returns the current environment.
func (c *Context) Env() *symbols.Environment { return c.env }

// RootEnv returns the outermost environment. It decides how much
// qualification a type reference needs to be reachable from the top level.
func (c *Context) RootEnv() *symbols.Environment { return c.rootEnv }

// Warnings returns the warnings accumulated so far.
func (c *Context) Warnings() *diagnostics.Warnings { return c.warnings }

// Warn records a warning at a location. Warnings never abort anything.
func (c *Context) Warn(tok token.Token, message string) {
	c.warnings.Add(tok, message)
}

// NewName generates a fresh identifier from a base name.
func (c *Context) NewName(base string) names.VName {
	return c.names.New(base)
}

// LocalEnv runs f with the current environment extended by ext. The
// extension is block-scoped: it is reverted when f returns, whether or not
// f failed.
func (c *Context) LocalEnv(ext *symbols.Environment, f func() error) error {
	saved := c.env
	c.env = symbols.Merge(saved, ext)
	err := f()
	c.env = saved
	return err
}

// ReplaceEnv runs f with the current environment replaced outright, used
// when descending into a module whose scope does not inherit the enclosing
// one.
func (c *Context) ReplaceEnv(env *symbols.Environment, f func() error) error {
	saved := c.env
	c.env = env
	err := f()
	c.env = saved
	return err
}
