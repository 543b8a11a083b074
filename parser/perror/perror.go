// Package perror defines the closed taxonomy of parse errors the
// parser can raise (spec §7), each carrying a source range.
//
// This plays the role the teacher's build/fmterr package plays for
// GX: a small position-carrying error type threaded through parsing
// instead of printed as it occurs. Unlike fmterr, which accumulates
// errors across a whole compilation unit for best-effort recovery,
// ParseError is a single value: parsing aborts at the first one
// (spec §7 — no recovery past a first fatal parse error).
package perror

import (
	"fmt"

	"github.com/go-stack/stack"
	"github.com/rxwei/dlvm-core/token"
)

// Code identifies which member of the closed taxonomy an error is.
type Code int

const (
	UnexpectedToken Code = iota
	UnexpectedEndOfInput
	UnexpectedIdentifierKind
	UndefinedIdentifier
	UndefinedNominalType
	RedefinedIdentifier
	TypeMismatch
	NotFunctionType
	InvalidOperands
	CannotNameVoidValue
	AnonymousIdentifierNotInLocal
	InvalidAnonymousIdentifierIndex
	DeclarationCannotHaveBody
	internalError
)

// ParseError is the single error type parsing can fail with.
type ParseError struct {
	Code    Code
	Range   token.Range
	Message string

	// Second is a second range relevant to the diagnostic, used by
	// errors that point at two locations (e.g. declaration_cannot_have_body).
	Second *token.Range

	stack stack.CallStack
}

func (e *ParseError) Error() string {
	if e.Second != nil {
		return fmt.Sprintf("%s at %s (see also %s)", e.Message, e.Range, *e.Second)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Range)
}

func new(code Code, rng token.Range, format string, a ...any) *ParseError {
	return &ParseError{Code: code, Range: rng, Message: fmt.Sprintf(format, a...)}
}

// UnexpectedTokenf reports a token that does not match what the
// grammar expected at this position.
func UnexpectedTokenf(rng token.Range, expected string, got token.Token) *ParseError {
	return new(UnexpectedToken, rng, "expected %s, found %s", expected, got)
}

// UnexpectedEndOfInputf reports running out of tokens while something
// was still expected.
func UnexpectedEndOfInputf(rng token.Range, expected string) *ParseError {
	return new(UnexpectedEndOfInput, rng, "expected %s, found end of input", expected)
}

// UnexpectedIdentifierKindf reports an identifier of the wrong lexical kind.
func UnexpectedIdentifierKindf(rng token.Range, expected token.IdentKind, got token.Token) *ParseError {
	return new(UnexpectedIdentifierKind, rng, "expected %s, found %s", expected, got)
}

// UndefinedIdentifierf reports a reference to an unknown global/local/
// basic-block name.
func UndefinedIdentifierf(rng token.Range, name string) *ParseError {
	return new(UndefinedIdentifier, rng, "undefined identifier %q", name)
}

// UndefinedNominalTypef reports a reference to an unknown nominal type.
func UndefinedNominalTypef(rng token.Range, name string) *ParseError {
	return new(UndefinedNominalType, rng, "undefined nominal type %q", name)
}

// RedefinedIdentifierf reports a duplicate definition of a name within a scope.
func RedefinedIdentifierf(rng token.Range, name string) *ParseError {
	return new(RedefinedIdentifier, rng, "redefined identifier %q", name)
}

// stringer is a minimal indirection so this package does not need to
// import ir for the single String() method TypeMismatchf uses; it
// keeps the error taxonomy reusable independent of the ir package.
type stringer interface {
	String() string
}

// TypeMismatchf reports a written type-signature that disagrees with
// the resolved type of its referent.
func TypeMismatchf(rng token.Range, expected stringer) *ParseError {
	return new(TypeMismatch, rng, "type mismatch: expected %s", expected)
}

// NotFunctionTypef reports a function header whose written type is not
// (canonically) a function type.
func NotFunctionTypef(rng token.Range) *ParseError {
	return new(NotFunctionType, rng, "not a function type")
}

// InvalidOperandsf reports an instruction whose operands do not
// produce a well-typed result.
func InvalidOperandsf(rng token.Range, opcode fmt.Stringer) *ParseError {
	return new(InvalidOperands, rng, "invalid operands to %s", opcode)
}

// CannotNameVoidValuef reports a named instruction whose computed type
// is void.
func CannotNameVoidValuef(rng token.Range) *ParseError {
	return new(CannotNameVoidValue, rng, "cannot name a void value")
}

// AnonymousIdentifierNotInLocalf reports an anonymous SSA reference used
// outside a basic block.
func AnonymousIdentifierNotInLocalf(rng token.Range) *ParseError {
	return new(AnonymousIdentifierNotInLocal, rng, "anonymous identifier used outside a basic block")
}

// InvalidAnonymousIdentifierIndexf reports an anonymous SSA reference
// whose indices do not name a valid, dominating prior instruction.
func InvalidAnonymousIdentifierIndexf(rng token.Range, bb, inst int) *ParseError {
	return new(InvalidAnonymousIdentifierIndex, rng, "invalid anonymous identifier index #%d.%d", bb, inst)
}

// DeclarationCannotHaveBodyf reports a function declaration (extern or
// gradient) followed by a body.
func DeclarationCannotHaveBodyf(declRange, bodyRange token.Range) *ParseError {
	e := new(DeclarationCannotHaveBody, declRange, "a function declaration cannot have a body")
	e.Second = &bodyRange
	return e
}

// Internalf reports a condition that should be unreachable if the
// parser is correct; it captures a trimmed call stack the way the
// teacher's fmterr.Internal marks programmer errors, but with a real
// stack-capture library instead of a bare wrapper.
func Internalf(rng token.Range, format string, a ...any) *ParseError {
	e := new(internalError, rng, format, a...)
	e.stack = stack.Trace().TrimRuntime()
	return e
}

// Stack returns the captured call stack for an internal error, or nil
// for any other error code.
func (e *ParseError) Stack() stack.CallStack {
	return e.stack
}
