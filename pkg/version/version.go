// Package version interprets `pragma solidity <constraint>` directives
// using real semantic-versioning range matching, rather than re-deriving
// range syntax by hand.
package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/th13vn/solast/pkg/ast"
	"github.com/th13vn/solast/pkg/parser"
)

// Version is a parsed semantic version, e.g. from a compiler release tag.
type Version = semver.Version

// Parse parses a bare version string such as "0.8.20".
func Parse(s string) (*Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

// MustParse parses s and panics if it is not a valid version.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// PragmaConstraint is a `pragma solidity <constraint>` directive, resolved
// to a real semver range so version-detect can answer "does compiler X
// satisfy this file's pragma" instead of just echoing the raw text.
type PragmaConstraint struct {
	Raw        string
	Constraint *semver.Constraints
	// Version is the concrete version named in Raw (the operand of its
	// first comparator, e.g. "0.8.0" out of "^0.8.0" or ">=0.8.0 <0.9.0"):
	// the version the pragma resolves to for reporting purposes, as
	// distinct from Constraint, which only answers "does X satisfy this".
	Version *Version
}

// leadingVersion pulls the first bare version token (e.g. "0.8.0" out of
// "^0.8.0") out of a pragma constraint string, so the concrete version it
// names can be reported alongside the range it compiles to.
var leadingVersion = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// FromPragmaValue interprets a PragmaDirective's Value as a semver
// constraint. Solidity's space-separated "AND" and `||`-separated "OR"
// range syntax is also semver's, so the raw text needs no translation.
func FromPragmaValue(value string) (*PragmaConstraint, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil, fmt.Errorf("empty solidity pragma value")
	}
	constraint, err := semver.NewConstraint(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid solidity pragma constraint %q: %w", raw, err)
	}

	var version *Version
	if m := leadingVersion.FindString(raw); m != "" {
		if v, err := Parse(m); err == nil {
			version = v
		}
	}

	return &PragmaConstraint{Raw: raw, Constraint: constraint, Version: version}, nil
}

// Satisfies reports whether v satisfies the pragma's constraint.
func (c *PragmaConstraint) Satisfies(v *Version) bool {
	return c.Constraint.Check(v)
}

// Detect parses source and resolves its first `pragma solidity ...`
// directive to a PragmaConstraint. Unlike a text scan, this walks the real
// AST, so a pragma that appears inside a string literal or comment (which
// the lexer already strips or quotes off) can never be mistaken for one.
func Detect(source string) (*PragmaConstraint, error) {
	constraints, err := DetectAll(source)
	if err != nil {
		return nil, err
	}
	return constraints[0], nil
}

// DetectAll resolves every `pragma solidity ...` directive in source, in
// source order.
func DetectAll(source string) ([]*PragmaConstraint, error) {
	unit, err := parser.Parse(source, &parser.Options{Tolerant: true})
	if err != nil && unit == nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}

	var results []*PragmaConstraint
	for _, child := range unit.Children {
		pragma, ok := child.(*ast.PragmaDirective)
		if !ok || pragma.Name != "solidity" {
			continue
		}
		c, err := FromPragmaValue(pragma.Value)
		if err != nil {
			continue
		}
		results = append(results, c)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("no pragma solidity found")
	}
	return results, nil
}
