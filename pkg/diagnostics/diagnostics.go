// Package diagnostics wraps the core lexer/parser's structured error data
// (span + message) in a coded error type so that callers outside the core —
// the CLI, the validation service, a future linter — can branch on a stable
// failure class instead of parsing prose.
package diagnostics

import (
	"fmt"

	"github.com/samber/oops"

	"github.com/th13vn/solast/pkg/ast"
)

// Kind distinguishes the two families of diagnostics the core produces.
type Kind string

const (
	KindLexical Kind = "lexical"
	KindSyntax  Kind = "syntax"
)

// Lexical error codes.
const (
	CodeUnterminatedString  = "LEX_UNTERMINATED_STRING"
	CodeUnterminatedComment = "LEX_UNTERMINATED_COMMENT"
	CodeInvalidDigit        = "LEX_INVALID_DIGIT"
	CodeMalformedNumber     = "LEX_MALFORMED_NUMBER"
	CodeMalformedHex        = "LEX_MALFORMED_HEX"
	CodeStrayCharacter      = "LEX_STRAY_CHARACTER"
)

// Syntax error codes.
const (
	CodeUnexpectedToken = "SYNTAX_UNEXPECTED_TOKEN"
	CodeUnexpectedEOF   = "SYNTAX_UNEXPECTED_EOF"
	CodeEmptyBody       = "SYNTAX_EMPTY_BODY"
)

// Error is a single structured diagnostic: a span into the source, a kind,
// a stable code, and a human-readable message, wrapped as a real Go error
// via samber/oops so standard errors.Is/As and logging still work.
type Error struct {
	Kind Kind
	Code string
	Span ast.Span
	err  error
}

func newError(kind Kind, code string, span ast.Span, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Kind: kind,
		Code: code,
		Span: span,
		err: oops.
			With("span", span.String()).
			Code(code).
			Errorf("%s", msg),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Span, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// NewLexical builds a Kind=KindLexical diagnostic.
func NewLexical(code string, span ast.Span, format string, args ...any) *Error {
	return newError(KindLexical, code, span, format, args...)
}

// NewSyntax builds a Kind=KindSyntax diagnostic.
func NewSyntax(code string, span ast.Span, format string, args ...any) *Error {
	return newError(KindSyntax, code, span, format, args...)
}

// Bundle collects more than one Error, for tolerant-mode parses.
type Bundle struct {
	Errors []*Error
}

func (b *Bundle) Add(e *Error) {
	b.Errors = append(b.Errors, e)
}

func (b *Bundle) Len() int { return len(b.Errors) }

func (b *Bundle) Error() string {
	if len(b.Errors) == 0 {
		return "no errors"
	}
	if len(b.Errors) == 1 {
		return b.Errors[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", b.Errors[0].Error(), len(b.Errors)-1)
}
