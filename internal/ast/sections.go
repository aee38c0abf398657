package ast

import (
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// Operator, projection and index sections are surface sugar the
// monomorphizer desugars into ordinary lambdas, so the rest of the transform
// never special-cases them.

// OpSection is a bare operator used as a function, e.g. (+).
type OpSection struct {
	Token token.Token
	Op    names.QualVName
	Typ   typesystem.Type
}

func (e *OpSection) expressionNode()       {}
func (e *OpSection) TokenLiteral() string  { return e.Token.Lexeme }
func (e *OpSection) GetToken() token.Token { return e.Token }
func (e *OpSection) Type() typesystem.Type { return e.Typ }

// OpSectionLeft is an operator with its left operand fixed, e.g. (2+).
type OpSectionLeft struct {
	Token   token.Token
	Op      names.QualVName
	Operand Expression
	Typ     typesystem.Type
}

func (e *OpSectionLeft) expressionNode()       {}
func (e *OpSectionLeft) TokenLiteral() string  { return e.Token.Lexeme }
func (e *OpSectionLeft) GetToken() token.Token { return e.Token }
func (e *OpSectionLeft) Type() typesystem.Type { return e.Typ }

// OpSectionRight is an operator with its right operand fixed, e.g. (+2).
type OpSectionRight struct {
	Token   token.Token
	Op      names.QualVName
	Operand Expression
	Typ     typesystem.Type
}

func (e *OpSectionRight) expressionNode()       {}
func (e *OpSectionRight) TokenLiteral() string  { return e.Token.Lexeme }
func (e *OpSectionRight) GetToken() token.Token { return e.Token }
func (e *OpSectionRight) Type() typesystem.Type { return e.Typ }

// ProjectSection is field projection used as a function, e.g. (.a.b).
type ProjectSection struct {
	Token  token.Token
	Fields []string
	Typ    typesystem.Type
}

func (e *ProjectSection) expressionNode()       {}
func (e *ProjectSection) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ProjectSection) GetToken() token.Token { return e.Token }
func (e *ProjectSection) Type() typesystem.Type { return e.Typ }

// IndexSection is indexing used as a function, e.g. (.[i]).
type IndexSection struct {
	Token   token.Token
	Indices []Expression
	Typ     typesystem.Type
}

func (e *IndexSection) expressionNode()       {}
func (e *IndexSection) TokenLiteral() string  { return e.Token.Lexeme }
func (e *IndexSection) GetToken() token.Token { return e.Token }
func (e *IndexSection) Type() typesystem.Type { return e.Typ }
