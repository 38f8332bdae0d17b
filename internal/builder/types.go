package builder

import (
	"github.com/th13vn/solast/internal/lexer"
	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/diagnostics"
)

func ident(tok lexer.Token) *ast.Identifier {
	return &ast.Identifier{
		BaseNode: ast.BaseNode{Type: ast.TypeIdentifier, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
		Name:     tok.Value,
	}
}

// parseComplexType dispatches to the elementary, mapping, or unresolved
// (user-defined/identifier) type grammar based on the lookahead token.
func (b *Builder) parseComplexType() (ast.ComplexType, error) {
	switch {
	case b.check(lexer.MAPPING):
		return b.parseMappingType()
	case b.isElementaryTypeStart():
		return b.parsePrimitiveType()
	case b.check(lexer.IDENTIFIER):
		return b.parseUnresolvedType()
	default:
		return nil, b.unexpected("a type name")
	}
}

func (b *Builder) parsePrimitiveType() (*ast.PrimitiveType, error) {
	tok := b.advance()
	name := ""
	width := tok.Width
	payable := false

	switch tok.Type {
	case lexer.BOOL:
		name = "bool"
	case lexer.STRING_TYPE:
		name = "string"
	case lexer.BYTES, lexer.BYTES_N:
		name = "bytes"
	case lexer.UINT:
		name = "uint"
	case lexer.INT:
		name = "int"
	case lexer.ADDRESS:
		name = "address"
		if b.check(lexer.PAYABLE) {
			payable = true
			b.advance()
		}
	}

	dims, hi, err := b.parseArrayDimensions()
	if err != nil {
		return nil, err
	}
	if hi < tok.Hi {
		hi = tok.Hi
	}

	return &ast.PrimitiveType{
		BaseNode:        ast.BaseNode{Type: ast.TypePrimitiveType, Span: ast.Span{Lo: tok.Lo, Hi: hi}},
		Name:            name,
		Width:           width,
		Payable:         payable,
		ArrayDimensions: dims,
	}, nil
}

// parseArrayDimensions consumes zero or more `[` [expr] `]` suffixes.
func (b *Builder) parseArrayDimensions() ([]ast.Expression, int, error) {
	var dims []ast.Expression
	hi := 0
	for b.check(lexer.LBRACK) {
		b.advance()
		var dim ast.Expression
		if !b.check(lexer.RBRACK) {
			expr, err := b.parseExpression()
			if err != nil {
				return nil, 0, err
			}
			dim = expr
		}
		closeTok, err := b.expect(lexer.RBRACK, "]")
		if err != nil {
			return nil, 0, err
		}
		dims = append(dims, dim)
		hi = closeTok.Hi
	}
	return dims, hi, nil
}

func (b *Builder) parseMappingType() (*ast.MappingType, error) {
	start := b.advance() // mapping
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	keyType, err := b.parseComplexType()
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.ARROW, "=>"); err != nil {
		return nil, err
	}
	valueType, err := b.parseComplexType()
	if err != nil {
		return nil, err
	}
	closeTok, err := b.expect(lexer.RPAREN, ")")
	if err != nil {
		return nil, err
	}
	return &ast.MappingType{
		BaseNode:  ast.BaseNode{Type: ast.TypeMappingType, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		KeyType:   keyType,
		ValueType: valueType,
	}, nil
}

// parseUnresolvedType wraps an identifier-rooted reference — a bare name, a
// dotted member chain, and/or trailing `[...]` suffixes — as a single
// deferred expression. Whether each bracket suffix denotes an array
// dimension or an index expression is left to a later semantic pass.
func (b *Builder) parseUnresolvedType() (*ast.UnresolvedType, error) {
	expr, err := b.parseTypeRefExpression()
	if err != nil {
		return nil, err
	}
	return &ast.UnresolvedType{
		BaseNode: ast.BaseNode{Type: ast.TypeUnresolvedType, Span: expr.GetSpan()},
		Expr:     expr,
	}, nil
}

func (b *Builder) parseTypeRefExpression() (ast.Expression, error) {
	tok, err := b.expect(lexer.IDENTIFIER, "a type name")
	if err != nil {
		return nil, err
	}
	var expr ast.Expression = ident(tok)

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
		default:
			return expr, nil
		}
	}
}

func (b *Builder) parseStructDefinition() (*ast.StructDefinition, error) {
	docs := b.docsAt(b.pos)
	start := b.advance() // struct
	nameTok, err := b.expect(lexer.IDENTIFIER, "struct name")
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}

	var members []*ast.VariableDeclaration
	for !b.check(lexer.RBRACE) && !b.isAtEnd() {
		member, err := b.parseVariableDeclaration(false)
		if err != nil {
			return nil, err
		}
		if _, err := b.expect(lexer.SEMICOLON, ";"); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	closeTok, err := b.expect(lexer.RBRACE, "}")
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, diagnostics.NewSyntax(diagnostics.CodeEmptyBody,
			ast.Span{Lo: start.Lo, Hi: closeTok.Hi}, "struct %q has no members", nameTok.Value)
	}

	return &ast.StructDefinition{
		BaseNode:    ast.BaseNode{Type: ast.TypeStructDefinition, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		Name:        nameTok.Value,
		Members:     members,
		DocComments: docs,
	}, nil
}

// parseVariableDeclaration parses `Type [storageLocation] [name]`. Storage
// locations are only recognised when allowStorageLocation is set (local
// variables and function parameters, not struct members).
func (b *Builder) parseVariableDeclaration(allowStorageLocation bool) (*ast.VariableDeclaration, error) {
	start := b.peek()
	typeName, err := b.parseComplexType()
	if err != nil {
		return nil, err
	}

	hi := typeName.GetSpan().Hi
	var storage *ast.StorageLocation
	if allowStorageLocation {
		var kind string
		switch b.peek().Type {
		case lexer.MEMORY:
			kind = "memory"
		case lexer.STORAGE:
			kind = "storage"
		case lexer.CALLDATA:
			kind = "calldata"
		}
		if kind != "" {
			tok := b.advance()
			storage = &ast.StorageLocation{
				BaseNode: ast.BaseNode{Type: ast.TypeStorageLocation, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
				Kind:     kind,
			}
			hi = tok.Hi
		}
	}

	name := ""
	if b.check(lexer.IDENTIFIER) {
		tok := b.advance()
		name = tok.Value
		hi = tok.Hi
	}

	return &ast.VariableDeclaration{
		BaseNode:        ast.BaseNode{Type: ast.TypeVariableDeclaration, Span: ast.Span{Lo: start.Lo, Hi: hi}},
		TypeName:        typeName,
		StorageLocation: storage,
		Name:            name,
	}, nil
}

func (b *Builder) parseEventParameter() (*ast.EventParameter, error) {
	start := b.peek()
	typeName, err := b.parseComplexType()
	if err != nil {
		return nil, err
	}
	hi := typeName.GetSpan().Hi

	indexed := false
	if b.check(lexer.INDEXED) {
		tok := b.advance()
		indexed = true
		hi = tok.Hi
	}

	name := ""
	if b.check(lexer.IDENTIFIER) {
		tok := b.advance()
		name = tok.Value
		hi = tok.Hi
	}

	return &ast.EventParameter{
		BaseNode: ast.BaseNode{Type: ast.TypeEventParameter, Span: ast.Span{Lo: start.Lo, Hi: hi}},
		TypeName: typeName,
		Indexed:  indexed,
		Name:     name,
	}, nil
}

func (b *Builder) parseEventDefinition() (*ast.EventDefinition, error) {
	docs := b.docsAt(b.pos)
	start := b.advance() // event
	nameTok, err := b.expect(lexer.IDENTIFIER, "event name")
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}

	var params []*ast.EventParameter
	if !b.check(lexer.RPAREN) {
		for {
			p, err := b.parseEventParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, p)
			if !b.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}

	anonymous := false
	if b.check(lexer.ANONYMOUS) {
		b.advance()
		anonymous = true
	}

	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, diagnostics.NewSyntax(diagnostics.CodeEmptyBody,
			ast.Span{Lo: start.Lo, Hi: semi.Hi}, "event %q has no parameters", nameTok.Value)
	}

	return &ast.EventDefinition{
		BaseNode:    ast.BaseNode{Type: ast.TypeEventDefinition, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		Name:        nameTok.Value,
		Parameters:  params,
		Anonymous:   anonymous,
		DocComments: docs,
	}, nil
}

func (b *Builder) parseEnumDefinition() (*ast.EnumDefinition, error) {
	docs := b.docsAt(b.pos)
	start := b.advance() // enum
	nameTok, err := b.expect(lexer.IDENTIFIER, "enum name")
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}

	var members []*ast.EnumValue
	for !b.check(lexer.RBRACE) {
		tok, err := b.expect(lexer.IDENTIFIER, "an enum value")
		if err != nil {
			return nil, err
		}
		members = append(members, &ast.EnumValue{
			BaseNode: ast.BaseNode{Type: ast.TypeEnumValue, Span: ast.Span{Lo: tok.Lo, Hi: tok.Hi}},
			Name:     tok.Value,
		})
		if !b.check(lexer.RBRACE) {
			if _, err := b.expect(lexer.COMMA, ","); err != nil {
				return nil, err
			}
		}
	}
	closeTok, err := b.expect(lexer.RBRACE, "}")
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, diagnostics.NewSyntax(diagnostics.CodeEmptyBody,
			ast.Span{Lo: start.Lo, Hi: closeTok.Hi}, "enum %q has no members", nameTok.Value)
	}

	return &ast.EnumDefinition{
		BaseNode:    ast.BaseNode{Type: ast.TypeEnumDefinition, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		Name:        nameTok.Value,
		Members:     members,
		DocComments: docs,
	}, nil
}

var variableAttributeKeywords = map[lexer.TokenType]ast.VariableAttributeKind{
	lexer.PUBLIC:   ast.VarAttrPublic,
	lexer.EXTERNAL: ast.VarAttrExternal,
	lexer.INTERNAL: ast.VarAttrInternal,
	lexer.PRIVATE:  ast.VarAttrPrivate,
	lexer.CONSTANT: ast.VarAttrConstant,
}

func (b *Builder) parseContractVariableDefinition() (*ast.ContractVariableDefinition, error) {
	docs := b.docsAt(b.pos)
	start := b.peek()
	typeName, err := b.parseComplexType()
	if err != nil {
		return nil, err
	}

	var attrs []ast.VariableAttributeKind
	for {
		attr, ok := variableAttributeKeywords[b.peek().Type]
		if !ok {
			break
		}
		b.advance()
		attrs = append(attrs, attr)
	}

	nameTok, err := b.expect(lexer.IDENTIFIER, "variable name")
	if err != nil {
		return nil, err
	}
	hi := nameTok.Hi

	var initializer ast.Expression
	if b.match(lexer.ASSIGN) {
		initializer, err = b.parseExpression()
		if err != nil {
			return nil, err
		}
		hi = initializer.GetSpan().Hi
	}

	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}
	hi = semi.Hi

	return &ast.ContractVariableDefinition{
		BaseNode:    ast.BaseNode{Type: ast.TypeContractVariableDefinition, Span: ast.Span{Lo: start.Lo, Hi: hi}},
		TypeName:    typeName,
		Attributes:  attrs,
		Name:        nameTok.Value,
		Initializer: initializer,
		DocComments: docs,
	}, nil
}

func (b *Builder) parseParameterList(allowStorageLocation bool) ([]*ast.VariableDeclaration, error) {
	if _, err := b.expect(lexer.LPAREN, "("); err != nil {
		return nil, err
	}
	var params []*ast.VariableDeclaration
	for !b.check(lexer.RPAREN) {
		p, err := b.parseVariableDeclaration(allowStorageLocation)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
		if !b.check(lexer.RPAREN) {
			if _, err := b.expect(lexer.COMMA, ","); err != nil {
				return nil, err
			}
		}
	}
	if _, err := b.expect(lexer.RPAREN, ")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (b *Builder) parseFunctionDefinition() (*ast.FunctionDefinition, error) {
	docs := b.docsAt(b.pos)
	start := b.peek()

	isConstructor := false
	name := ""
	if b.check(lexer.CONSTRUCTOR) {
		b.advance()
		isConstructor = true
	} else {
		b.advance() // function
		if b.check(lexer.IDENTIFIER) {
			name = b.advance().Value
		}
	}

	params, err := b.parseParameterList(true)
	if err != nil {
		return nil, err
	}

	var visibility ast.Visibility
	var mutability ast.StateMutability
modifiers:
	for {
		switch b.peek().Type {
		case lexer.PUBLIC:
			visibility = ast.VisibilityPublic
		case lexer.EXTERNAL:
			visibility = ast.VisibilityExternal
		case lexer.INTERNAL:
			visibility = ast.VisibilityInternal
		case lexer.PRIVATE:
			visibility = ast.VisibilityPrivate
		case lexer.PURE:
			mutability = ast.StateMutabilityPure
		case lexer.VIEW:
			mutability = ast.StateMutabilityView
		case lexer.PAYABLE:
			mutability = ast.StateMutabilityPayable
		default:
			break modifiers
		}
		b.advance()
	}

	var returnParams []*ast.VariableDeclaration
	if b.check(lexer.RETURNS) {
		b.advance()
		returnParams, err = b.parseParameterList(true)
		if err != nil {
			return nil, err
		}
	}

	var body *ast.Block
	hi := 0
	if b.check(lexer.SEMICOLON) && !isConstructor {
		hi = b.advance().Hi
	} else {
		body, err = b.parseBlock()
		if err != nil {
			return nil, err
		}
		hi = body.GetSpan().Hi
	}

	return &ast.FunctionDefinition{
		BaseNode:         ast.BaseNode{Type: ast.TypeFunctionDefinition, Span: ast.Span{Lo: start.Lo, Hi: hi}},
		IsConstructor:    isConstructor,
		Name:             name,
		Parameters:       params,
		Visibility:       visibility,
		StateMutability:  mutability,
		ReturnParameters: returnParams,
		Body:             body,
		DocComments:      docs,
	}, nil
}
