package builder

import (
	"github.com/th13vn/solast/internal/lexer"
	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/diagnostics"
)

func (b *Builder) parseBlock() (*ast.Block, error) {
	start, err := b.expect(lexer.LBRACE, "{")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !b.check(lexer.RBRACE) && !b.isAtEnd() {
		stmt, err := b.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	closeTok, err := b.expect(lexer.RBRACE, "}")
	if err != nil {
		return nil, err
	}
	return &ast.Block{
		BaseNode:   ast.BaseNode{Type: ast.TypeBlock, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		Statements: stmts,
	}, nil
}

// parseStatement dispatches on the leading token. There is no separate
// open/closed statement grammar: recursive descent naturally attaches a
// trailing `else` to the nearest preceding unmatched `if`.
func (b *Builder) parseStatement() (ast.Statement, error) {
	switch b.peek().Type {
	case lexer.LBRACE:
		return b.parseBlock()
	case lexer.IF:
		return b.parseIfStatement()
	case lexer.WHILE:
		return b.parseWhileStatement()
	case lexer.DO:
		return b.parseDoWhileStatement()
	case lexer.FOR:
		return b.parseForStatement()
	case lexer.RETURN:
		return b.parseReturnStatement()
	case lexer.CONTINUE:
		return b.parseContinueStatement()
	case lexer.BREAK:
		return b.parseBreakStatement()
	case lexer.THROW:
		return b.parseThrowStatement()
	case lexer.EMIT:
		return b.parseEmitStatement()
	case lexer.IDENTIFIER:
		if b.peek().Value == "_" && b.peekAt(1).Type == lexer.SEMICOLON {
			start := b.advance()
			semi := b.advance()
			return &ast.PlaceholderStatement{
				BaseNode: ast.BaseNode{Type: ast.TypePlaceholderStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
			}, nil
		}
	}

	if stmt, ok, err := b.tryParseVariableDeclarationStatement(); err != nil {
		return nil, err
	} else if ok {
		return stmt, nil
	}
	return b.parseExpressionStatement()
}

func (b *Builder) parseIfStatement() (*ast.IfStatement, error) {
	start := b.advance() // if
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	trueBody, err := b.parseStatement()
	if err != nil {
		return nil, err
	}
	hi := trueBody.GetSpan().Hi

	var falseBody ast.Statement
	if b.check(lexer.ELSE) {
		b.advance()
		falseBody, err = b.parseStatement()
		if err != nil {
			return nil, err
		}
		hi = falseBody.GetSpan().Hi
	}

	return &ast.IfStatement{
		BaseNode:  ast.BaseNode{Type: ast.TypeIfStatement, Span: ast.Span{Lo: start.Lo, Hi: hi}},
		Condition: cond,
		TrueBody:  trueBody,
		FalseBody: falseBody,
	}, nil
}

func (b *Builder) parseWhileStatement() (*ast.WhileStatement, error) {
	start := b.advance() // while
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := b.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{
		BaseNode:  ast.BaseNode{Type: ast.TypeWhileStatement, Span: ast.Span{Lo: start.Lo, Hi: body.GetSpan().Hi}},
		Condition: cond,
		Body:      body,
	}, nil
}

func (b *Builder) parseDoWhileStatement() (*ast.DoWhileStatement, error) {
	start := b.advance() // do
	body, err := b.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.WHILE, "while"); err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	cond, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{
		BaseNode:  ast.BaseNode{Type: ast.TypeDoWhileStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		Body:      body,
		Condition: cond,
	}, nil
}

func (b *Builder) parseForStatement() (*ast.ForStatement, error) {
	start := b.advance() // for
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}

	var initStmt ast.Statement
	if b.check(lexer.SEMICOLON) {
		b.advance()
	} else {
		stmt, ok, err := b.tryParseVariableDeclarationStatement()
		if err != nil {
			return nil, err
		}
		if ok {
			initStmt = stmt
		} else {
			exprStmt, err := b.parseExpressionStatement()
			if err != nil {
				return nil, err
			}
			initStmt = exprStmt
		}
	}

	var condExpr ast.Expression
	if !b.check(lexer.SEMICOLON) {
		expr, err := b.parseExpression()
		if err != nil {
			return nil, err
		}
		condExpr = expr
	}
	if _, err := b.expect(lexer.SEMICOLON, ";"); err != nil {
		return nil, err
	}

	var loopExpr *ast.ExpressionStatement
	if !b.check(lexer.RPAREN) {
		expr, err := b.parseExpression()
		if err != nil {
			return nil, err
		}
		loopExpr = &ast.ExpressionStatement{
			BaseNode: ast.BaseNode{Type: ast.TypeExpressionStatement, Span: expr.GetSpan()},
			Expr:     expr,
		}
	}
	if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}

	body, err := b.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.ForStatement{
		BaseNode:      ast.BaseNode{Type: ast.TypeForStatement, Span: ast.Span{Lo: start.Lo, Hi: body.GetSpan().Hi}},
		InitExpr:      initStmt,
		ConditionExpr: condExpr,
		LoopExpr:      loopExpr,
		Body:          body,
	}, nil
}

func (b *Builder) parseReturnStatement() (*ast.ReturnStatement, error) {
	start := b.advance() // return
	if b.check(lexer.SEMICOLON) {
		semi := b.advance()
		return &ast.ReturnStatement{
			BaseNode: ast.BaseNode{Type: ast.TypeReturnStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		}, nil
	}

	var exprs []ast.Expression
	first, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, first)
	for b.match(lexer.COMMA) {
		next, err := b.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, next)
	}

	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{
		BaseNode:    ast.BaseNode{Type: ast.TypeReturnStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		Expressions: exprs,
	}, nil
}

func (b *Builder) parseContinueStatement() (*ast.ContinueStatement, error) {
	start := b.advance()
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.ContinueStatement{BaseNode: ast.BaseNode{Type: ast.TypeContinueStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}}}, nil
}

func (b *Builder) parseBreakStatement() (*ast.BreakStatement, error) {
	start := b.advance()
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.BreakStatement{BaseNode: ast.BaseNode{Type: ast.TypeBreakStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}}}, nil
}

func (b *Builder) parseThrowStatement() (*ast.ThrowStatement, error) {
	start := b.advance()
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{BaseNode: ast.BaseNode{Type: ast.TypeThrowStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}}}, nil
}

func (b *Builder) parseEmitStatement() (*ast.EmitStatement, error) {
	start := b.advance() // emit
	expr, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		return nil, diagnostics.NewSyntax(diagnostics.CodeUnexpectedToken,
			expr.GetSpan(), "emit requires an event call expression")
	}
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.EmitStatement{
		BaseNode:  ast.BaseNode{Type: ast.TypeEmitStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		EventCall: call,
	}, nil
}

func (b *Builder) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	start := b.peek()
	expr, err := b.parseExpression()
	if err != nil {
		return nil, err
	}
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{
		BaseNode: ast.BaseNode{Type: ast.TypeExpressionStatement, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		Expr:     expr,
	}, nil
}

// tryParseVariableDeclarationStatement speculatively attempts the local
// variable declaration grammar (single or parenthesized-tuple form),
// backtracking cleanly to let the caller fall back to an expression
// statement when the lookahead doesn't commit to a declaration.
func (b *Builder) tryParseVariableDeclarationStatement() (ast.Statement, bool, error) {
	if !b.isTypeStart() && !b.check(lexer.LPAREN) {
		return nil, false, nil
	}
	saved := b.pos
	stmt, err := b.parseVariableDeclarationStatementBody()
	if err != nil {
		b.pos = saved
		return nil, false, nil
	}
	return stmt, true, nil
}

func (b *Builder) parseVariableDeclarationStatementBody() (*ast.VariableDeclarationStatement, error) {
	start := b.peek()
	var decls []*ast.VariableDeclaration

	if b.check(lexer.LPAREN) {
		b.advance()
		for {
			decl, err := b.parseVariableDeclaration(true)
			if err != nil {
				return nil, err
			}
			if decl.Name == "" {
				return nil, b.unexpected("a variable name")
			}
			decls = append(decls, decl)
			if !b.match(lexer.COMMA) {
				break
			}
		}
		if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
			return nil, err
		}
	} else {
		decl, err := b.parseVariableDeclaration(true)
		if err != nil {
			return nil, err
		}
		if decl.Name == "" {
			return nil, b.unexpected("a variable name")
		}
		decls = append(decls, decl)
	}

	hi := 0
	var initializer ast.Expression
	if b.match(lexer.ASSIGN) {
		expr, err := b.parseExpression()
		if err != nil {
			return nil, err
		}
		initializer = expr
	}

	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	hi = semi.Hi

	return &ast.VariableDeclarationStatement{
		BaseNode:     ast.BaseNode{Type: ast.TypeVariableDeclarationStatement, Span: ast.Span{Lo: start.Lo, Hi: hi}},
		Declarations: decls,
		Initializer:  initializer,
	}, nil
}
