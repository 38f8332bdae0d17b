package diagnostics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/th13vn/solast/pkg/ast"
)

func TestNewLexicalCarriesSpanAndCode(t *testing.T) {
	span := ast.Span{Lo: 3, Hi: 9}
	err := NewLexical(CodeUnterminatedString, span, "unterminated string starting at %d", 3)

	assert.Equal(t, KindLexical, err.Kind)
	assert.Equal(t, CodeUnterminatedString, err.Code)
	assert.Equal(t, span, err.Span)
	assert.Contains(t, err.Error(), CodeUnterminatedString)
	assert.Contains(t, err.Error(), "[3,9)")
}

func TestNewSyntaxWrapsAsOrdinaryError(t *testing.T) {
	span := ast.Span{Lo: 0, Hi: 1}
	err := NewSyntax(CodeUnexpectedToken, span, "unexpected %q", ";")

	var target error = err
	require.Error(t, target)
	assert.True(t, errors.As(target, new(*Error)))
	require.NotNil(t, err.Unwrap())
}

func TestBundleAccumulatesAndSummarizes(t *testing.T) {
	var b Bundle
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, "no errors", b.Error())

	b.Add(NewLexical(CodeStrayCharacter, ast.Span{Lo: 0, Hi: 1}, "stray character %q", '@'))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, b.Errors[0].Error(), b.Error())

	b.Add(NewSyntax(CodeUnexpectedEOF, ast.Span{Lo: 5, Hi: 5}, "unexpected end of input"))
	assert.Equal(t, 2, b.Len())
	assert.Contains(t, b.Error(), "and 1 more")
}
