// Package parser is the public surface over the internal lexer/builder: it
// turns source text into a *ast.SourceUnit and re-exports the AST's visitor
// types for callers who don't need internal/builder directly.
package parser

import (
	"io"

	"github.com/th13vn/solast/internal/builder"
	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/diagnostics"
)

// Options configures a parse.
type Options struct {
	// Tolerant collects more than one diagnostic instead of stopping at the
	// first error; see internal/builder.Options for the exact semantics.
	Tolerant bool
}

// Parse parses source text and returns its AST. In non-tolerant mode (the
// default), the first lexical or syntax error aborts the parse and no AST
// is returned; the error is always a *diagnostics.Error or a
// *diagnostics.Bundle. In tolerant mode a non-nil *diagnostics.Bundle may be
// returned alongside a non-nil, best-effort AST.
func Parse(input string, opts *Options) (*ast.SourceUnit, error) {
	if opts == nil {
		opts = &Options{}
	}

	b, err := builder.New(input, &builder.Options{Tolerant: opts.Tolerant})
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// ParseReader reads r to completion and parses the result.
func ParseReader(r io.Reader, opts *Options) (*ast.SourceUnit, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(content), opts)
}

// Visit walks node with visitor, in pre-order, pruning subtrees whose VisitX
// method returns false.
func Visit(node ast.Node, visitor ast.Visitor) {
	ast.Walk(visitor, node)
}

// VisitSimple is the SimpleVisitor counterpart of Visit.
func VisitSimple(node ast.Node, visitor *ast.SimpleVisitor) {
	ast.WalkSimple(visitor, node)
}

// Re-exported so callers implementing a visitor need not import pkg/ast too.
type (
	Visitor       = ast.Visitor
	BaseVisitor   = ast.BaseVisitor
	SimpleVisitor = ast.SimpleVisitor
)

// Error and Bundle are re-exported for callers that want to branch on parse
// failures without importing pkg/diagnostics directly.
type (
	Error  = diagnostics.Error
	Bundle = diagnostics.Bundle
)
