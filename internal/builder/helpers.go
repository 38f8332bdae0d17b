package builder

import (
	"strconv"
	"strings"

	"github.com/th13vn/solast/internal/lexer"
	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/diagnostics"
)

// Token navigation helpers.

func (b *Builder) peek() lexer.Token {
	if b.pos >= len(b.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return b.tokens[b.pos]
}

func (b *Builder) peekAt(offset int) lexer.Token {
	idx := b.pos + offset
	if idx >= len(b.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return b.tokens[idx]
}

func (b *Builder) previous() lexer.Token {
	if b.pos == 0 {
		return lexer.Token{Type: lexer.EOF}
	}
	return b.tokens[b.pos-1]
}

func (b *Builder) advance() lexer.Token {
	if !b.isAtEnd() {
		b.pos++
	}
	return b.previous()
}

func (b *Builder) isAtEnd() bool {
	return b.peek().Type == lexer.EOF
}

func (b *Builder) check(tt lexer.TokenType) bool {
	return b.peek().Type == tt
}

// match advances and returns true if the current token is one of tts.
func (b *Builder) match(tts ...lexer.TokenType) bool {
	for _, tt := range tts {
		if b.check(tt) {
			b.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type tt, otherwise reports a
// syntax error naming what was expected.
func (b *Builder) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if b.check(tt) {
		return b.advance(), nil
	}
	return lexer.Token{}, b.unexpected(what)
}

func (b *Builder) unexpected(what string) error {
	tok := b.peek()
	if tok.Type == lexer.EOF {
		return diagnostics.NewSyntax(diagnostics.CodeUnexpectedEOF,
			ast.Span{Lo: tok.Lo, Hi: tok.Hi}, "unexpected end of input, expected %s", what)
	}
	return diagnostics.NewSyntax(diagnostics.CodeUnexpectedToken,
		ast.Span{Lo: tok.Lo, Hi: tok.Hi}, "unexpected %s %q, expected %s", tok.Type, tok.Value, what)
}

// synchronize discards tokens up to the next plausible declaration or
// statement boundary, used only by tolerant-mode parses to keep collecting
// diagnostics after an error.
func (b *Builder) synchronize() {
	for !b.isAtEnd() {
		if b.previous().Type == lexer.SEMICOLON || b.previous().Type == lexer.RBRACE {
			return
		}
		switch b.peek().Type {
		case lexer.CONTRACT, lexer.INTERFACE, lexer.LIBRARY, lexer.FUNCTION, lexer.CONSTRUCTOR,
			lexer.STRUCT, lexer.EVENT, lexer.ENUM, lexer.IMPORT, lexer.PRAGMA,
			lexer.IF, lexer.FOR, lexer.WHILE, lexer.RETURN:
			return
		}
		b.advance()
	}
}

// isTypeStart reports whether the current token can begin a type name:
// an elementary type keyword, `mapping`, or a bare identifier (the start of
// a user-defined/unresolved type reference).
func (b *Builder) isTypeStart() bool {
	switch b.peek().Type {
	case lexer.BOOL, lexer.ADDRESS, lexer.STRING_TYPE, lexer.BYTES, lexer.BYTES_N,
		lexer.UINT, lexer.INT, lexer.MAPPING, lexer.IDENTIFIER:
		return true
	}
	return false
}

// isElementaryTypeStart reports whether the current token is one of the
// closed set of primitive elementary type keywords (excludes mapping and
// user-defined/unresolved names).
func (b *Builder) isElementaryTypeStart() bool {
	switch b.peek().Type {
	case lexer.BOOL, lexer.ADDRESS, lexer.STRING_TYPE, lexer.BYTES, lexer.BYTES_N, lexer.UINT, lexer.INT:
		return true
	}
	return false
}

// decodeString resolves backslash escapes in a raw (still-escaped) string
// literal body, and deletes `\<newline>` line-continuation sequences.
func decodeString(raw string) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		if ch != '\\' || i+1 >= len(raw) {
			sb.WriteByte(ch)
			continue
		}
		next := raw[i+1]
		switch next {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		case '0':
			sb.WriteByte(0)
		case 'x':
			if i+3 < len(raw) {
				if v, err := strconv.ParseUint(raw[i+2:i+4], 16, 8); err == nil {
					sb.WriteByte(byte(v))
					i += 2
					break
				}
			}
			sb.WriteByte(next)
		case 'u':
			if i+2 < len(raw) && raw[i+2] == '{' {
				if end := strings.IndexByte(raw[i+3:], '}'); end > 0 {
					hexDigits := raw[i+3 : i+3+end]
					if v, err := strconv.ParseUint(hexDigits, 16, 32); err == nil {
						sb.WriteRune(rune(v))
						i += 2 + end
						break
					}
				}
			}
			sb.WriteByte(next)
		case '\n':
			// line continuation: drop both characters
		case '\r':
			// line continuation: drop both characters, and a following \n
			if i+2 < len(raw) && raw[i+2] == '\n' {
				i++
			}
		default:
			sb.WriteByte(next)
		}
		i++
	}
	return sb.String()
}
