package builder

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/th13vn/solast/internal/lexer"
	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/diagnostics"
)

// parseExpression is the grammar's single entry point for expressions,
// starting at the loosest tier (assignment).
func (b *Builder) parseExpression() (ast.Expression, error) {
	return b.parseAssignment()
}

var assignOps = map[lexer.TokenType]string{
	lexer.ASSIGN:     "=",
	lexer.ASSIGN_ADD: "+=",
	lexer.ASSIGN_SUB: "-=",
	lexer.ASSIGN_MUL: "*=",
	lexer.ASSIGN_DIV: "/=",
	lexer.ASSIGN_MOD: "%=",
	lexer.ASSIGN_AND: "&=",
	lexer.ASSIGN_OR:  "|=",
	lexer.ASSIGN_XOR: "^=",
	lexer.ASSIGN_SHL: "<<=",
	lexer.ASSIGN_SHR: ">>=",
}

// Tier 15: `=` and compound-assigns, right-associative.
func (b *Builder) parseAssignment() (ast.Expression, error) {
	left, err := b.parseConditional()
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[b.peek().Type]; ok {
		b.advance()
		right, err := b.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{
			BaseNode: ast.BaseNode{Type: ast.TypeAssignment, Span: ast.Span{Lo: left.GetSpan().Lo, Hi: right.GetSpan().Hi}},
			Operator: op,
			Left:     left,
			Right:    right,
		}, nil
	}
	return left, nil
}

// Tier 14: `cond ? ifTrue : ifFalse`, right-associative.
func (b *Builder) parseConditional() (ast.Expression, error) {
	cond, err := b.parseOr()
	if err != nil {
		return nil, err
	}
	if !b.check(lexer.QUESTION) {
		return cond, nil
	}
	b.advance()
	trueExpr, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.COLON, ":"); err != nil {
		return nil, err
	}
	falseExpr, err := b.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{
		BaseNode:  ast.BaseNode{Type: ast.TypeConditional, Span: ast.Span{Lo: cond.GetSpan().Lo, Hi: falseExpr.GetSpan().Hi}},
		Condition: cond,
		TrueExpr:  trueExpr,
		FalseExpr: falseExpr,
	}, nil
}

// binaryTier parses a single left-associative precedence tier: next() parses
// the tighter tier, ops maps the tier's token types to operator text.
func (b *Builder) binaryTier(ops map[lexer.TokenType]string, next func() (ast.Expression, error)) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[b.peek().Type]
		if !ok {
			return left, nil
		}
		b.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOperation{
			BaseNode: ast.BaseNode{Type: ast.TypeBinaryOperation, Span: ast.Span{Lo: left.GetSpan().Lo, Hi: right.GetSpan().Hi}},
			Operator: op,
			Left:     left,
			Right:    right,
		}
	}
}

var orOps = map[lexer.TokenType]string{lexer.OR: "||"}
var andOps = map[lexer.TokenType]string{lexer.AND: "&&"}
var equalityOps = map[lexer.TokenType]string{lexer.EQ: "==", lexer.NEQ: "!="}
var relationalOps = map[lexer.TokenType]string{lexer.LT: "<", lexer.GT: ">", lexer.LTE: "<=", lexer.GTE: ">="}
var bitOrOps = map[lexer.TokenType]string{lexer.BIT_OR: "|"}
var bitXorOps = map[lexer.TokenType]string{lexer.BIT_XOR: "^"}
var bitAndOps = map[lexer.TokenType]string{lexer.BIT_AND: "&"}
var shiftOps = map[lexer.TokenType]string{lexer.SHL: "<<", lexer.SHR: ">>"}
var additiveOps = map[lexer.TokenType]string{lexer.ADD: "+", lexer.SUB: "-"}
var multiplicativeOps = map[lexer.TokenType]string{lexer.MUL: "*", lexer.DIV: "/", lexer.MOD: "%"}

func (b *Builder) parseOr() (ast.Expression, error)   { return b.binaryTier(orOps, b.parseAnd) }
func (b *Builder) parseAnd() (ast.Expression, error)  { return b.binaryTier(andOps, b.parseEquality) }
func (b *Builder) parseEquality() (ast.Expression, error) {
	return b.binaryTier(equalityOps, b.parseRelational)
}
func (b *Builder) parseRelational() (ast.Expression, error) {
	return b.binaryTier(relationalOps, b.parseBitOr)
}
func (b *Builder) parseBitOr() (ast.Expression, error)  { return b.binaryTier(bitOrOps, b.parseBitXor) }
func (b *Builder) parseBitXor() (ast.Expression, error) { return b.binaryTier(bitXorOps, b.parseBitAnd) }
func (b *Builder) parseBitAnd() (ast.Expression, error) { return b.binaryTier(bitAndOps, b.parseShift) }
func (b *Builder) parseShift() (ast.Expression, error) {
	return b.binaryTier(shiftOps, b.parseAdditive)
}
func (b *Builder) parseAdditive() (ast.Expression, error) {
	return b.binaryTier(additiveOps, b.parseMultiplicative)
}
func (b *Builder) parseMultiplicative() (ast.Expression, error) {
	return b.binaryTier(multiplicativeOps, b.parseExponent)
}

// Tier 3: `**`, right-associative.
func (b *Builder) parseExponent() (ast.Expression, error) {
	left, err := b.parseUnary()
	if err != nil {
		return nil, err
	}
	if !b.check(lexer.EXP) {
		return left, nil
	}
	b.advance()
	right, err := b.parseExponent()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOperation{
		BaseNode: ast.BaseNode{Type: ast.TypeBinaryOperation, Span: ast.Span{Lo: left.GetSpan().Lo, Hi: right.GetSpan().Hi}},
		Operator: "**",
		Left:     left,
		Right:    right,
	}, nil
}

var prefixUnaryOps = map[lexer.TokenType]string{
	lexer.NOT:     "!",
	lexer.BIT_NOT: "~",
	lexer.DELETE:  "delete",
	lexer.ADD:     "+",
	lexer.SUB:     "-",
	lexer.INC:     "++",
	lexer.DEC:     "--",
}

// Tier 2: prefix `!` `~` `delete` `++` `--` `+` `-`, right-associative.
func (b *Builder) parseUnary() (ast.Expression, error) {
	if op, ok := prefixUnaryOps[b.peek().Type]; ok {
		start := b.advance()
		operand, err := b.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{
			BaseNode: ast.BaseNode{Type: ast.TypeUnaryOperation, Span: ast.Span{Lo: start.Lo, Hi: operand.GetSpan().Hi}},
			Operator: op,
			SubExpr:  operand,
			Prefix:   true,
		}, nil
	}
	return b.parsePostfix()
}

// Tiers 0-1: postfix `++`/`--`, member access, index, call.
func (b *Builder) parsePostfix() (ast.Expression, error) {
	expr, err := b.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case b.check(lexer.PERIOD):
			b.advance()
			nameTok, err := b.expect(lexer.IDENTIFIER, "a member name")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberAccess{
				BaseNode:   ast.BaseNode{Type: ast.TypeMemberAccess, Span: ast.Span{Lo: expr.GetSpan().Lo, Hi: nameTok.Hi}},
				Expr:       expr,
				MemberName: nameTok.Value,
			}
		case b.check(lexer.LBRACK):
			b.advance()
			var index ast.Expression
			if !b.check(lexer.RBRACK) {
				idx, err := b.parseExpression()
				if err != nil {
					return nil, err
				}
				index = idx
			}
			closeTok, err := b.expect(lexer.RBRACK, "]")
			if err != nil {
				return nil, err
			}
			expr = &ast.IndexAccess{
				BaseNode: ast.BaseNode{Type: ast.TypeIndexAccess, Span: ast.Span{Lo: expr.GetSpan().Lo, Hi: closeTok.Hi}},
				Base:     expr,
				Index:    index,
			}
		case b.check(lexer.LPAREN):
			call, err := b.parseCallArguments(expr)
			if err != nil {
				return nil, err
			}
			expr = call
		case b.check(lexer.INC) || b.check(lexer.DEC):
			tok := b.advance()
			op := "++"
			if tok.Type == lexer.DEC {
				op = "--"
			}
			expr = &ast.UnaryOperation{
				BaseNode: ast.BaseNode{Type: ast.TypeUnaryOperation, Span: ast.Span{Lo: expr.GetSpan().Lo, Hi: tok.Hi}},
				Operator: op,
				SubExpr:  expr,
				Prefix:   false,
			}
		default:
			return expr, nil
		}
	}
}

// parseCallArguments parses `(args...)` or `({name: value, ...})` following
// callee, which may itself be a NewExpression.
func (b *Builder) parseCallArguments(callee ast.Expression) (*ast.FunctionCall, error) {
	b.advance() // (

	if b.check(lexer.LBRACE) {
		return b.parseNamedArgumentCall(callee)
	}

	var args []ast.Expression
	if !b.check(lexer.RPAREN) {
		for {
			arg, err := b.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !b.match(lexer.COMMA) {
				break
			}
		}
	}
	closeTok, err := b.expect(lexer.RPAREN, ")")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{
		BaseNode:  ast.BaseNode{Type: ast.TypeFunctionCall, Span: ast.Span{Lo: callee.GetSpan().Lo, Hi: closeTok.Hi}},
		Expr:      callee,
		Arguments: args,
	}, nil
}

func (b *Builder) parseNamedArgumentCall(callee ast.Expression) (*ast.FunctionCall, error) {
	b.advance() // {
	var names []string
	var args []ast.Expression
	if !b.check(lexer.RBRACE) {
		for {
			nameTok, err := b.expect(lexer.IDENTIFIER, "an argument name")
			if err != nil {
				return nil, err
			}
			if _, err := b.expect(lexer.COLON, ":"); err != nil {
				return nil, err
			}
			value, err := b.parseExpression()
			if err != nil {
				return nil, err
			}
			names = append(names, nameTok.Value)
			args = append(args, value)
			if !b.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := b.expect(lexer.RBRACE, "}"); err != nil {
		return nil, err
	}
	closeTok, err := b.expect(lexer.RPAREN, ")")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionCall{
		BaseNode:  ast.BaseNode{Type: ast.TypeFunctionCall, Span: ast.Span{Lo: callee.GetSpan().Lo, Hi: closeTok.Hi}},
		Expr:      callee,
		Arguments: args,
		Names:     names,
	}, nil
}

// Tier 0: primary forms.
func (b *Builder) parsePrimary() (ast.Expression, error) {
	tok := b.peek()

	switch tok.Type {
	case lexer.NUMBER:
		return b.parseNumberLiteral()
	case lexer.HEX_NUMBER:
		return b.parseHexOrAddressLiteral()
	case lexer.STRING:
		b.advance()
		return &ast.StringLiteral{
			BaseNode: ast.BaseNode{Type: ast.TypeStringLiteral, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
			Value:    decodeString(tok.Value),
		}, nil
	case lexer.HEX:
		return b.parseHexStringLiteral()
	case lexer.TRUE, lexer.FALSE:
		b.advance()
		return &ast.BooleanLiteral{
			BaseNode: ast.BaseNode{Type: ast.TypeBooleanLiteral, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
			Value:    tok.Type == lexer.TRUE,
		}, nil
	case lexer.IDENTIFIER:
		b.advance()
		return ident(tok), nil
	case lexer.LBRACK:
		return b.parseArrayLiteral()
	case lexer.LPAREN:
		return b.parseParenthesizedOrTuple()
	case lexer.NEW:
		return b.parseNewExpression()
	default:
		return nil, b.unexpected("an expression")
	}
}

func (b *Builder) parseNumberLiteral() (*ast.NumberLiteral, error) {
	tok := b.advance()
	value, ok := new(big.Int).SetString(tok.Value, 10)
	if !ok {
		return nil, diagnostics.NewLexical(diagnostics.CodeMalformedNumber,
			ast.Span{Lo: tok.Lo, Hi: tok.Hi}, "malformed numeric literal %q", tok.Value)
	}
	return &ast.NumberLiteral{
		BaseNode: ast.BaseNode{Type: ast.TypeNumberLiteral, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
		Text:     tok.Value,
		Value:    value,
	}, nil
}

// parseHexOrAddressLiteral classifies a HEX_NUMBER token as an address (42
// characters, `0x`-prefixed, no underscores) or as an arbitrary-precision
// hex integer otherwise. Classification happens here, not in the lexer.
func (b *Builder) parseHexOrAddressLiteral() (ast.Expression, error) {
	tok := b.advance()
	if len(tok.Value) == 42 && !strings.Contains(tok.Value, "_") {
		return &ast.AddressLiteral{
			BaseNode: ast.BaseNode{Type: ast.TypeAddressLiteral, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
			Text:     tok.Value,
		}, nil
	}

	stripped := strings.ReplaceAll(tok.Value, "_", "")
	value, ok := new(big.Int).SetString(stripped[2:], 16)
	if !ok {
		return nil, diagnostics.NewLexical(diagnostics.CodeMalformedHex,
			ast.Span{Lo: tok.Lo, Hi: tok.Hi}, "malformed hex literal %q", tok.Value)
	}
	return &ast.HexNumberLiteral{
		BaseNode: ast.BaseNode{Type: ast.TypeHexNumberLiteral, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
		Text:     tok.Value,
		Value:    value,
	}, nil
}

func (b *Builder) parseHexStringLiteral() (*ast.HexStringLiteral, error) {
	start := b.advance() // hex
	strTok, err := b.expect(lexer.STRING, "a quoted hex string body")
	if err != nil {
		return nil, err
	}
	body := strings.ReplaceAll(strTok.Value, "_", "")
	raw, err := hex.DecodeString(body)
	if err != nil {
		return nil, diagnostics.NewLexical(diagnostics.CodeMalformedHex,
			ast.Span{Lo: start.Lo, Hi: strTok.Hi}, "malformed hex string literal %q", strTok.Value)
	}
	return &ast.HexStringLiteral{
		BaseNode: ast.BaseNode{Type: ast.TypeHexStringLiteral, Span: ast.Span{Lo: start.Lo, Hi: strTok.Hi}},
		Value:    raw,
	}, nil
}

func (b *Builder) parseArrayLiteral() (*ast.ArrayLiteral, error) {
	start := b.advance() // [
	var elements []ast.Expression
	if !b.check(lexer.RBRACK) {
		for {
			elem, err := b.parseExpression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
			if !b.match(lexer.COMMA) {
				break
			}
		}
	}
	closeTok, err := b.expect(lexer.RBRACK, "]")
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{
		BaseNode: ast.BaseNode{Type: ast.TypeArrayLiteral, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		Elements: elements,
	}, nil
}

// parseParenthesizedOrTuple parses `(e)` (returned unwrapped) or `(e, e, ...)`
// (returned as a TupleExpression), including the empty tuple `()`.
func (b *Builder) parseParenthesizedOrTuple() (ast.Expression, error) {
	start := b.advance() // (
	var components []ast.Expression
	if !b.check(lexer.RPAREN) {
		for {
			elem, err := b.parseExpression()
			if err != nil {
				return nil, err
			}
			components = append(components, elem)
			if !b.match(lexer.COMMA) {
				break
			}
		}
	}
	closeTok, err := b.expect(lexer.RPAREN, ")")
	if err != nil {
		return nil, err
	}
	if len(components) == 1 {
		return components[0], nil
	}
	return &ast.TupleExpression{
		BaseNode:   ast.BaseNode{Type: ast.TypeTupleExpression, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		Components: components,
	}, nil
}

func (b *Builder) parseNewExpression() (*ast.NewExpression, error) {
	start := b.advance() // new
	typeName, err := b.parseComplexType()
	if err != nil {
		return nil, err
	}
	return &ast.NewExpression{
		BaseNode: ast.BaseNode{Type: ast.TypeNewExpression, Span: ast.Span{Lo: start.Lo, Hi: typeName.GetSpan().Hi}},
		TypeName: typeName,
	}, nil
}
