package token

import "fmt"

type TokenType string

// The middle-end only sees a handful of token kinds: identifiers attached to
// declarations by the front end, and synthetic tokens minted during
// desugaring.
const (
	ILLEGAL   TokenType = "ILLEGAL"
	IDENT     TokenType = "IDENT"
	ENTRY     TokenType = "ENTRY"
	LET       TokenType = "LET"
	TYPE      TokenType = "TYPE"
	MODULE    TokenType = "MODULE"
	BACKSLASH TokenType = "BACKSLASH"
	LPAREN    TokenType = "LPAREN"
	LBRACKET  TokenType = "LBRACKET"
	DOT       TokenType = "DOT"
)

// Token carries the source position of an AST node. The middle-end never
// re-lexes anything; tokens exist purely for diagnostics.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

// Position renders the token's location as "line:column".
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}

// Synthetic returns a token without a source position, used for nodes the
// compiler invents (section lambdas, generated parameters).
func Synthetic(tt TokenType, lexeme string) Token {
	return Token{Type: tt, Lexeme: lexeme, Literal: lexeme}
}

// At returns an identifier token at an explicit position.
func At(lexeme string, line, column int) Token {
	return Token{Type: IDENT, Lexeme: lexeme, Literal: lexeme, Line: line, Column: column}
}
