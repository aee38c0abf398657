package ast

import (
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Dec is a top-level declaration. The monomorphizer's input is module-free:
// the only declarations it accepts are value bindings and type
// abbreviations.
type Dec interface {
	Node
	decNode()
}

// Expression is a Node that carries the type the front end inferred for it.
type Expression interface {
	Node
	expressionNode()
	Type() typesystem.Type
}

// Program is one fully checked compilation unit.
type Program struct {
	File string
	Decs []Dec
}

// Param is a formal value parameter.
type Param struct {
	Token token.Token
	Name  names.VName
	Typ   typesystem.Type
}

func (p *Param) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// ValBind is a top-level or prelude value binding. Entry bindings are
// externally callable and must end up monomorphic.
type ValBind struct {
	Token      token.Token
	Entry      bool
	Name       names.VName
	TypeParams []string
	Params     []*Param
	RetType    typesystem.Type
	Body       Expression
}

func (vb *ValBind) decNode()             {}
func (vb *ValBind) TokenLiteral() string { return vb.Token.Lexeme }
func (vb *ValBind) GetToken() token.Token {
	if vb == nil {
		return token.Token{}
	}
	return vb.Token
}

// FunType folds the binding's parameters and return type into the curried
// function type of the whole binding.
func (vb *ValBind) FunType() typesystem.Type {
	params := make([]typesystem.Type, len(vb.Params))
	for i, p := range vb.Params {
		params[i] = p.Typ
	}
	return typesystem.Arrow(vb.RetType, params...)
}

// TypeBind is a user type abbreviation. The monomorphizer erases it and
// every use of it.
type TypeBind struct {
	Token      token.Token
	Name       names.VName
	TypeParams []string
	Def        typesystem.Type
	Lifted     bool
}

func (tb *TypeBind) decNode()             {}
func (tb *TypeBind) TokenLiteral() string { return tb.Token.Lexeme }
func (tb *TypeBind) GetToken() token.Token {
	if tb == nil {
		return token.Token{}
	}
	return tb.Token
}

// ModBind is a leftover module-level declaration. A well-formed
// monomorphization input contains none; the node exists only so the pass can
// reject it with a precise diagnostic instead of silently skipping it.
type ModBind struct {
	Token token.Token
	Name  names.VName
}

func (mb *ModBind) decNode()             {}
func (mb *ModBind) TokenLiteral() string { return mb.Token.Lexeme }
func (mb *ModBind) GetToken() token.Token {
	if mb == nil {
		return token.Token{}
	}
	return mb.Token
}
