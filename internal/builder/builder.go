// Package builder implements the recursive-descent grammar that turns a
// token stream into an *ast.SourceUnit.
package builder

import (
	"strings"

	"github.com/th13vn/solast/internal/lexer"
	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/diagnostics"
)

// Options controls non-contractual, tooling-facing parse behaviour.
type Options struct {
	// Tolerant makes Build collect more than one diagnostic by
	// resynchronising at the next declaration boundary instead of
	// aborting on the first error. The AST returned alongside a non-empty
	// diagnostics bundle is best-effort and not a contractual result.
	Tolerant bool
}

// Builder drives the grammar over a pre-tokenized, doc-comment-folded
// stream.
type Builder struct {
	tokens []lexer.Token
	pos    int
	docs   map[int][]string // token index -> doc comment lines attached to it
	bundle diagnostics.Bundle
	opts   *Options
}

// New tokenizes input and prepares a Builder. A lexical error aborts
// immediately, before any grammar state exists.
func New(input string, opts *Options) (*Builder, error) {
	if opts == nil {
		opts = &Options{}
	}
	raw, err := lexer.New(input).Tokenize()
	if err != nil {
		return nil, err
	}
	tokens, docs := foldDocComments(raw)
	return &Builder{tokens: tokens, docs: docs, opts: opts}, nil
}

// foldDocComments removes doc-comment tokens from the stream, collapsing
// each contiguous run into a line list keyed by the index of the token that
// immediately follows it (the declaration the run attaches to).
func foldDocComments(raw []lexer.Token) ([]lexer.Token, map[int][]string) {
	filtered := make([]lexer.Token, 0, len(raw))
	docs := map[int][]string{}
	var pending []string

	flush := func() {
		if len(pending) > 0 {
			docs[len(filtered)] = pending
			pending = nil
		}
	}

	for _, tok := range raw {
		switch tok.Type {
		case lexer.DOC_COMMENT_LINE:
			pending = append(pending, tok.Value)
		case lexer.DOC_COMMENT_BLOCK:
			pending = append(pending, splitDocBlock(tok.Value)...)
		default:
			flush()
			filtered = append(filtered, tok)
		}
	}
	return filtered, docs
}

// splitDocBlock turns a `/** ... */` body into one line per source line,
// stripping a leading `*` decoration where present.
func splitDocBlock(body string) []string {
	rawLines := strings.Split(body, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		l = strings.TrimPrefix(l, " ")
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// docsAt returns the doc comment lines attached to the token at index pos.
func (b *Builder) docsAt(pos int) []string {
	return b.docs[pos]
}

// Build runs the grammar to completion. In non-tolerant mode (the default
// and the only contractual mode) the first error aborts the parse and no
// AST is returned. In tolerant mode, errors are collected into a Bundle and
// parsing resumes at the next declaration boundary; the returned AST is
// best-effort.
func (b *Builder) Build() (*ast.SourceUnit, error) {
	var children []ast.SourceUnitPart
	startLo := 0
	if len(b.tokens) > 0 {
		startLo = b.tokens[0].Lo
	}

	for !b.isAtEnd() {
		elemStart := b.pos
		part, err := b.parseSourceUnitElement()
		if err != nil {
			b.bundle.Add(asDiag(err))
			if !b.opts.Tolerant {
				return nil, err
			}
			b.synchronize()
			if b.pos == elemStart {
				b.advance()
			}
			continue
		}
		if part != nil {
			children = append(children, part)
		}
	}

	hi := startLo
	if len(children) > 0 {
		hi = children[len(children)-1].GetSpan().Hi
	} else if b.pos > 0 {
		hi = b.tokens[b.pos-1].Hi
	}

	su := &ast.SourceUnit{
		BaseNode: ast.BaseNode{Type: ast.TypeSourceUnit, Span: ast.Span{Lo: startLo, Hi: hi}},
		Children: children,
	}

	if b.bundle.Len() > 0 {
		return su, &b.bundle
	}
	return su, nil
}

func asDiag(err error) *diagnostics.Error {
	if d, ok := err.(*diagnostics.Error); ok {
		return d
	}
	return diagnostics.NewSyntax(diagnostics.CodeUnexpectedToken, ast.Span{}, "%s", err.Error())
}

func (b *Builder) parseSourceUnitElement() (ast.SourceUnitPart, error) {
	switch b.peek().Type {
	case lexer.PRAGMA:
		return b.parsePragmaDirective()
	case lexer.IMPORT:
		return b.parseImportDirective()
	case lexer.CONTRACT:
		return b.parseContractDefinition(ast.ContractKindContract)
	case lexer.INTERFACE:
		return b.parseContractDefinition(ast.ContractKindInterface)
	case lexer.LIBRARY:
		return b.parseContractDefinition(ast.ContractKindLibrary)
	default:
		return nil, b.unexpected("pragma, import, contract, interface, or library")
	}
}

func (b *Builder) parsePragmaDirective() (*ast.PragmaDirective, error) {
	start := b.peek()
	b.advance() // pragma

	nameTok, err := b.expect(lexer.IDENTIFIER, "identifier")
	if err != nil {
		return nil, err
	}
	valueTok, err := b.expect(lexer.STRING, "pragma value")
	if err != nil {
		return nil, err
	}

	return &ast.PragmaDirective{
		BaseNode: ast.BaseNode{Type: ast.TypePragmaDirective, Span: ast.Span{Lo: start.Lo, Hi: valueTok.Hi}},
		Name:     nameTok.Value,
		Value:    valueTok.Value,
	}, nil
}

func (b *Builder) parseImportDirective() (*ast.ImportDirective, error) {
	start := b.peek()
	b.advance() // import

	pathTok, err := b.expect(lexer.STRING, "import path")
	if err != nil {
		return nil, err
	}
	semi, err := b.expect(lexer.SEMICOLON, ";")
	if err != nil {
		return nil, err
	}

	return &ast.ImportDirective{
		BaseNode: ast.BaseNode{Type: ast.TypeImportDirective, Span: ast.Span{Lo: start.Lo, Hi: semi.Hi}},
		Path:     decodeString(pathTok.Value),
	}, nil
}

func (b *Builder) parseContractDefinition(kind ast.ContractKind) (*ast.ContractDefinition, error) {
	docs := b.docsAt(b.pos)
	start := b.peek()
	b.advance() // contract | interface | library

	nameTok, err := b.expect(lexer.IDENTIFIER, "contract name")
	if err != nil {
		return nil, err
	}
	if _, err := b.expect(lexer.LBRACE, "{"); err != nil {
		return nil, err
	}

	var parts []ast.ContractPart
	for !b.check(lexer.RBRACE) && !b.isAtEnd() {
		part, err := b.parseContractBodyElement()
		if err != nil {
			return nil, err
		}
		if part != nil {
			parts = append(parts, part)
		}
	}
	closeTok, err := b.expect(lexer.RBRACE, "}")
	if err != nil {
		return nil, err
	}

	if len(parts) == 0 {
		return nil, diagnostics.NewSyntax(diagnostics.CodeEmptyBody,
			ast.Span{Lo: start.Lo, Hi: closeTok.Hi}, "%s %q has an empty body", kind, nameTok.Value)
	}

	return &ast.ContractDefinition{
		BaseNode:    ast.BaseNode{Type: ast.TypeContractDefinition, Span: ast.Span{Lo: start.Lo, Hi: closeTok.Hi}},
		Kind:        kind,
		Name:        nameTok.Value,
		Parts:       parts,
		DocComments: docs,
	}, nil
}

func (b *Builder) parseContractBodyElement() (ast.ContractPart, error) {
	switch b.peek().Type {
	case lexer.STRUCT:
		return b.parseStructDefinition()
	case lexer.EVENT:
		return b.parseEventDefinition()
	case lexer.ENUM:
		return b.parseEnumDefinition()
	case lexer.FUNCTION, lexer.CONSTRUCTOR:
		return b.parseFunctionDefinition()
	default:
		if b.isTypeStart() {
			return b.parseContractVariableDefinition()
		}
		return nil, b.unexpected("struct, event, enum, function, constructor, or a state variable declaration")
	}
}
