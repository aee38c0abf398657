package ast

import (
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// First-class forms of the second-order array combinators. The
// monomorphizer recognizes applications of the corresponding intrinsics with
// their fixed argument shapes and rewrites them into these nodes.

// Map applies a function to every element of an array.
type Map struct {
	Token token.Token
	Fun   Expression
	Arr   Expression
	Typ   typesystem.Type
}

func (e *Map) expressionNode()       {}
func (e *Map) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Map) GetToken() token.Token { return e.Token }
func (e *Map) Type() typesystem.Type { return e.Typ }

// Filter keeps the elements satisfying a predicate.
type Filter struct {
	Token token.Token
	Fun   Expression
	Arr   Expression
	Typ   typesystem.Type
}

func (e *Filter) expressionNode()       {}
func (e *Filter) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Filter) GetToken() token.Token { return e.Token }
func (e *Filter) Type() typesystem.Type { return e.Typ }

// Reduce folds an array with an associative operator. Comm marks the
// commutative variant.
type Reduce struct {
	Token   token.Token
	Comm    bool
	Fun     Expression
	Neutral Expression
	Arr     Expression
	Typ     typesystem.Type
}

func (e *Reduce) expressionNode()       {}
func (e *Reduce) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Reduce) GetToken() token.Token { return e.Token }
func (e *Reduce) Type() typesystem.Type { return e.Typ }

// Scan is an inclusive prefix reduction.
type Scan struct {
	Token   token.Token
	Fun     Expression
	Neutral Expression
	Arr     Expression
	Typ     typesystem.Type
}

func (e *Scan) expressionNode()       {}
func (e *Scan) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Scan) GetToken() token.Token { return e.Token }
func (e *Scan) Type() typesystem.Type { return e.Typ }

// Partition splits an array by a predicate.
type Partition struct {
	Token token.Token
	Fun   Expression
	Arr   Expression
	Typ   typesystem.Type
}

func (e *Partition) expressionNode()       {}
func (e *Partition) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Partition) GetToken() token.Token { return e.Token }
func (e *Partition) Type() typesystem.Type { return e.Typ }

// StreamMap applies a function to whole chunks of an array instead of
// single elements.
type StreamMap struct {
	Token token.Token
	Fun   Expression
	Arr   Expression
	Typ   typesystem.Type
}

func (e *StreamMap) expressionNode()       {}
func (e *StreamMap) TokenLiteral() string  { return e.Token.Lexeme }
func (e *StreamMap) GetToken() token.Token { return e.Token }
func (e *StreamMap) Type() typesystem.Type { return e.Typ }

// StreamRed folds per-chunk results of Fun with the associative
// operator Op.
type StreamRed struct {
	Token token.Token
	Op    Expression
	Fun   Expression
	Arr   Expression
	Typ   typesystem.Type
}

func (e *StreamRed) expressionNode()       {}
func (e *StreamRed) TokenLiteral() string  { return e.Token.Lexeme }
func (e *StreamRed) GetToken() token.Token { return e.Token }
func (e *StreamRed) Type() typesystem.Type { return e.Typ }
