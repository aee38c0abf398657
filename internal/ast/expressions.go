package ast

import (
	"github.com/Happy-Ferret/futhark/internal/names"
	"github.com/Happy-Ferret/futhark/internal/token"
	"github.com/Happy-Ferret/futhark/internal/typesystem"
)

// IntLit is an integer literal.
type IntLit struct {
	Token token.Token
	Value int64
	Typ   typesystem.Type
}

func (e *IntLit) expressionNode()        {}
func (e *IntLit) TokenLiteral() string   { return e.Token.Lexeme }
func (e *IntLit) GetToken() token.Token  { return e.Token }
func (e *IntLit) Type() typesystem.Type  { return e.Typ }

// FloatLit is a floating-point literal.
type FloatLit struct {
	Token token.Token
	Value float64
	Typ   typesystem.Type
}

func (e *FloatLit) expressionNode()       {}
func (e *FloatLit) TokenLiteral() string  { return e.Token.Lexeme }
func (e *FloatLit) GetToken() token.Token { return e.Token }
func (e *FloatLit) Type() typesystem.Type { return e.Typ }

// BoolLit is a boolean literal.
type BoolLit struct {
	Token token.Token
	Value bool
	Typ   typesystem.Type
}

func (e *BoolLit) expressionNode()       {}
func (e *BoolLit) TokenLiteral() string  { return e.Token.Lexeme }
func (e *BoolLit) GetToken() token.Token { return e.Token }
func (e *BoolLit) Type() typesystem.Type { return e.Typ }

// Var references a resolved name. After module elaboration the qualifier
// list is empty; it is retained because checking-phase code still sees
// qualified references.
type Var struct {
	Token token.Token
	Name  names.QualVName
	Typ   typesystem.Type
}

func (e *Var) expressionNode()       {}
func (e *Var) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Var) GetToken() token.Token { return e.Token }
func (e *Var) Type() typesystem.Type { return e.Typ }

// Apply is one curried application step.
type Apply struct {
	Token token.Token
	Fun   Expression
	Arg   Expression
	Typ   typesystem.Type
}

func (e *Apply) expressionNode()       {}
func (e *Apply) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Apply) GetToken() token.Token { return e.Token }
func (e *Apply) Type() typesystem.Type { return e.Typ }

// Lambda is an anonymous function.
type Lambda struct {
	Token   token.Token
	Params  []*Param
	Body    Expression
	RetType typesystem.Type
	Typ     typesystem.Type
}

func (e *Lambda) expressionNode()       {}
func (e *Lambda) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Lambda) GetToken() token.Token { return e.Token }
func (e *Lambda) Type() typesystem.Type { return e.Typ }

// LetPat binds one monomorphic value in an expression.
type LetPat struct {
	Token token.Token
	Name  names.VName
	Value Expression
	Body  Expression
	Typ   typesystem.Type
}

func (e *LetPat) expressionNode()       {}
func (e *LetPat) TokenLiteral() string  { return e.Token.Lexeme }
func (e *LetPat) GetToken() token.Token { return e.Token }
func (e *LetPat) Type() typesystem.Type { return e.Typ }

// LetFun binds a local function, possibly generic, in an expression.
type LetFun struct {
	Token      token.Token
	Name       names.VName
	TypeParams []string
	Params     []*Param
	RetType    typesystem.Type
	FunBody    Expression
	Body       Expression
	Typ        typesystem.Type
}

func (e *LetFun) expressionNode()       {}
func (e *LetFun) TokenLiteral() string  { return e.Token.Lexeme }
func (e *LetFun) GetToken() token.Token { return e.Token }
func (e *LetFun) Type() typesystem.Type { return e.Typ }

// FunType folds the local function's parameters and return type into its
// curried function type.
func (e *LetFun) FunType() typesystem.Type {
	params := make([]typesystem.Type, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.Typ
	}
	return typesystem.Arrow(e.RetType, params...)
}

// If is a conditional expression.
type If struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
	Typ   typesystem.Type
}

func (e *If) expressionNode()       {}
func (e *If) TokenLiteral() string  { return e.Token.Lexeme }
func (e *If) GetToken() token.Token { return e.Token }
func (e *If) Type() typesystem.Type { return e.Typ }

// FieldExpr is one field of a record literal.
type FieldExpr struct {
	Name  string
	Value Expression
}

// RecordLit constructs a record value.
type RecordLit struct {
	Token  token.Token
	Fields []*FieldExpr
	Typ    typesystem.Type
}

func (e *RecordLit) expressionNode()       {}
func (e *RecordLit) TokenLiteral() string  { return e.Token.Lexeme }
func (e *RecordLit) GetToken() token.Token { return e.Token }
func (e *RecordLit) Type() typesystem.Type { return e.Typ }

// Project accesses one record field.
type Project struct {
	Token token.Token
	Field string
	Value Expression
	Typ   typesystem.Type
}

func (e *Project) expressionNode()       {}
func (e *Project) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Project) GetToken() token.Token { return e.Token }
func (e *Project) Type() typesystem.Type { return e.Typ }

// ArrayLit constructs an array value.
type ArrayLit struct {
	Token token.Token
	Elems []Expression
	Typ   typesystem.Type
}

func (e *ArrayLit) expressionNode()       {}
func (e *ArrayLit) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ArrayLit) GetToken() token.Token { return e.Token }
func (e *ArrayLit) Type() typesystem.Type { return e.Typ }

// Index reads array elements.
type Index struct {
	Token   token.Token
	Array   Expression
	Indices []Expression
	Typ     typesystem.Type
}

func (e *Index) expressionNode()       {}
func (e *Index) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Index) GetToken() token.Token { return e.Token }
func (e *Index) Type() typesystem.Type { return e.Typ }

// Negate is numeric negation.
type Negate struct {
	Token token.Token
	Value Expression
	Typ   typesystem.Type
}

func (e *Negate) expressionNode()       {}
func (e *Negate) TokenLiteral() string  { return e.Token.Lexeme }
func (e *Negate) GetToken() token.Token { return e.Token }
func (e *Negate) Type() typesystem.Type { return e.Typ }
