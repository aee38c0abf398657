package diagnostics

import (
	"fmt"

	"github.com/Happy-Ferret/futhark/internal/token"
)

// Error codes, grouped by the stage that raises them.
//
//	S*** - scope resolution and checking-context lookups
//	M*** - monomorphization input validation
//	W*** - warning promotion
//	I*** - internal invariant violations (compiler bugs, not user errors)
const (
	ErrS001 = "S001" // unknown name
	ErrS002 = "S002" // unknown type
	ErrS003 = "S003" // unknown module type
	ErrS004 = "S004" // unknown module
	ErrS005 = "S005" // unapplied functor used as a module
	ErrS006 = "S006" // underscore-prefixed name referenced
	ErrS007 = "S007" // function used as a value
	ErrS008 = "S008" // unknown import
	ErrM001 = "M001" // module-level declaration reached monomorphization
	ErrM002 = "M002" // higher-order entry signature rejected in safe mode
	ErrW001 = "W001" // warnings promoted to errors
	ErrI001 = "I001" // internal invariant violated
)

// DiagnosticError is a fatal diagnostic: one source location, one message.
// The first one raised aborts the whole pass; they are never batched.
type DiagnosticError struct {
	Code    string
	Token   token.Token
	Message string
}

func NewError(code string, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func NewErrorf(code string, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: [%s] %s", e.Token.Position(), e.Code, e.Message)
}

// IsInternal reports whether the error indicates a compiler bug rather than
// a user-facing diagnostic. Internal errors mean an upstream pass handed this
// one input it promised could not exist.
func (e *DiagnosticError) IsInternal() bool {
	return e.Code == ErrI001
}
