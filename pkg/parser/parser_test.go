package parser

import (
	"encoding/json"
	"testing"

	"github.com/th13vn/solast/pkg/ast"
)

func TestParseSimpleContract(t *testing.T) {
	input := `
		pragma solidity ^0.8.0;

		contract SimpleStorage {
			uint256 public value;

			function setValue(uint256 _value) public {
				value = _value;
			}

			function getValue() public view returns (uint256) {
				return value;
			}
		}
	`

	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Type != ast.TypeSourceUnit {
		t.Errorf("expected SourceUnit type, got %s", result.Type)
	}
	if len(result.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(result.Children))
	}

	pragma, ok := result.Children[0].(*ast.PragmaDirective)
	if !ok {
		t.Fatal("first child should be PragmaDirective")
	}
	if pragma.Name != "solidity" || pragma.Value != "^0.8.0" {
		t.Errorf("got pragma %q %q", pragma.Name, pragma.Value)
	}

	contract, ok := result.Children[1].(*ast.ContractDefinition)
	if !ok {
		t.Fatal("second child should be ContractDefinition")
	}
	if contract.Name != "SimpleStorage" || contract.Kind != ast.ContractKindContract {
		t.Errorf("got contract %q kind %q", contract.Name, contract.Kind)
	}
	if len(contract.Parts) != 2 {
		t.Errorf("expected 2 contract parts, got %d", len(contract.Parts))
	}
}

func TestParseSpanCoversSourceText(t *testing.T) {
	input := `pragma solidity ^0.8.0;`
	want := `pragma solidity ^0.8.0` // the terminating `;` is not part of the directive
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pragma := result.Children[0].(*ast.PragmaDirective)
	span := pragma.GetSpan()
	if got := input[span.Lo:span.Hi]; got != want {
		t.Errorf("pragma span selects %q, want %q", got, want)
	}
}

func TestTolerantModeCollectsAndRecovers(t *testing.T) {
	input := `contract Broken { 123 } contract Test { uint256 x; }`

	_, err := Parse(input, nil)
	if err == nil {
		t.Error("expected an error without tolerant mode")
	}

	result, err := Parse(input, &Options{Tolerant: true})
	if err == nil {
		t.Error("tolerant mode should still report the diagnostics it collected")
	}
	if result == nil {
		t.Error("tolerant mode should still return a best-effort AST")
	}
	if _, ok := err.(*Bundle); !ok {
		t.Errorf("expected a *Bundle, got %T", err)
	}
}

func TestJSONOutput(t *testing.T) {
	result, err := Parse(`contract Test { uint256 x; }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["type"] != "SourceUnit" {
		t.Errorf("expected type SourceUnit, got %v", decoded["type"])
	}
}

func TestParseImport(t *testing.T) {
	result, err := Parse(`import "./Other.sol";`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	imp, ok := result.Children[0].(*ast.ImportDirective)
	if !ok {
		t.Fatal("expected ImportDirective")
	}
	if imp.Path != "./Other.sol" {
		t.Errorf("got path %q", imp.Path)
	}
}

func TestParseFunctionVariants(t *testing.T) {
	input := `
		contract Test {
			function publicFunc() public {}
			function privateFunc() private pure returns (uint256) { return 0; }
			function () external payable {}
		}
	`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	if len(contract.Parts) != 3 {
		t.Fatalf("expected 3 functions, got %d", len(contract.Parts))
	}

	fn1 := contract.Parts[0].(*ast.FunctionDefinition)
	if fn1.Name != "publicFunc" || fn1.Visibility != ast.VisibilityPublic {
		t.Errorf("got name %q visibility %q", fn1.Name, fn1.Visibility)
	}

	fn3 := contract.Parts[2].(*ast.FunctionDefinition)
	if fn3.Name != "" {
		t.Errorf("fallback function should have no name, got %q", fn3.Name)
	}
	if fn3.Visibility != ast.VisibilityExternal || fn3.StateMutability != ast.StateMutabilityPayable {
		t.Errorf("got visibility %q mutability %q", fn3.Visibility, fn3.StateMutability)
	}
}

func TestParseConstructorHasNoName(t *testing.T) {
	result, err := Parse(`contract Test { constructor() public {} }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	ctor := contract.Parts[0].(*ast.FunctionDefinition)
	if !ctor.IsConstructor || ctor.Name != "" {
		t.Errorf("got IsConstructor=%v Name=%q", ctor.IsConstructor, ctor.Name)
	}
}

func TestParseStruct(t *testing.T) {
	input := `
		contract Test {
			struct Person {
				string name;
				uint256 age;
				address wallet;
			}
		}
	`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	structDef := contract.Parts[0].(*ast.StructDefinition)
	if structDef.Name != "Person" {
		t.Errorf("got name %q", structDef.Name)
	}
	if len(structDef.Members) != 3 {
		t.Errorf("expected 3 members, got %d", len(structDef.Members))
	}
}

func TestParseEmptyStructRejected(t *testing.T) {
	_, err := Parse(`contract Test { struct Empty {} }`, nil)
	if err == nil {
		t.Error("expected an empty struct to be rejected")
	}
}

func TestParseEmptyContractRejected(t *testing.T) {
	_, err := Parse(`contract Empty {}`, nil)
	if err == nil {
		t.Error("expected an empty contract to be rejected")
	}
}

func TestParseEnum(t *testing.T) {
	result, err := Parse(`contract Test { enum Status { Pending, Active, Completed } }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	enumDef := contract.Parts[0].(*ast.EnumDefinition)
	if enumDef.Name != "Status" {
		t.Errorf("got name %q", enumDef.Name)
	}
	if len(enumDef.Members) != 3 {
		t.Errorf("expected 3 members, got %d", len(enumDef.Members))
	}
}

func TestParseEvent(t *testing.T) {
	input := `contract Test { event Transfer(address indexed from, address indexed to, uint256 value); }`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	eventDef := contract.Parts[0].(*ast.EventDefinition)
	if eventDef.Name != "Transfer" {
		t.Errorf("got name %q", eventDef.Name)
	}
	if len(eventDef.Parameters) != 3 {
		t.Errorf("expected 3 parameters, got %d", len(eventDef.Parameters))
	}
	if !eventDef.Parameters[0].Indexed {
		t.Error("first parameter should be indexed")
	}
}

func TestParseEmptyEventRejected(t *testing.T) {
	_, err := Parse(`contract Test { event E(); }`, nil)
	if err == nil {
		t.Error("expected an empty event to be rejected")
	}
}

func TestParseMapping(t *testing.T) {
	input := `
		contract Test {
			mapping(address => uint256) balances;
			mapping(address => mapping(address => uint256)) allowances;
		}
	`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	if len(contract.Parts) != 2 {
		t.Fatalf("expected 2 state variables, got %d", len(contract.Parts))
	}
	v0 := contract.Parts[0].(*ast.ContractVariableDefinition)
	m, ok := v0.TypeName.(*ast.MappingType)
	if !ok {
		t.Fatalf("expected MappingType, got %T", v0.TypeName)
	}
	if m.KeyType.(*ast.PrimitiveType).Name != "address" {
		t.Errorf("got key type %v", m.KeyType)
	}
}

func TestParseInterfaceAndLibraryKind(t *testing.T) {
	result, err := Parse(`interface IERC20 { function totalSupply() external view returns (uint256); }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Children[0].(*ast.ContractDefinition).Kind != ast.ContractKindInterface {
		t.Error("expected interface kind")
	}

	result, err = Parse(`library SafeMath { function add(uint256 a, uint256 b) internal pure returns (uint256) { return a + b; } }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Children[0].(*ast.ContractDefinition).Kind != ast.ContractKindLibrary {
		t.Error("expected library kind")
	}
}

func TestVisitor(t *testing.T) {
	input := `
		contract Test {
			function foo() public {}
			function bar() private {}
		}
	`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var names []string
	visitor := &ast.SimpleVisitor{
		FunctionDefinitionFn: func(node *ast.FunctionDefinition) {
			names = append(names, node.Name)
		},
	}
	VisitSimple(result, visitor)

	if len(names) != 2 || names[0] != "foo" || names[1] != "bar" {
		t.Errorf("got %v", names)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	input := `contract C { uint256 x = 1 + 2 * 3; }`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.ContractVariableDefinition)
	add, ok := v.Initializer.(*ast.BinaryOperation)
	if !ok || add.Operator != "+" {
		t.Fatalf("expected top-level +, got %#v", v.Initializer)
	}
	mul, ok := add.Right.(*ast.BinaryOperation)
	if !ok || mul.Operator != "*" {
		t.Fatalf("expected * nested on the right of +, got %#v", add.Right)
	}
}

func TestParseFunctionBodyReturnsBinaryOperation(t *testing.T) {
	input := `contract C { function f(uint a, uint b) public pure returns (uint) { return a + b; } }`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.FunctionDefinition)
	if len(fn.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	bin := ret.Expressions[0].(*ast.BinaryOperation)
	if bin.Operator != "+" {
		t.Errorf("got operator %q", bin.Operator)
	}
}

func TestParseAddressLiteralVsHexNumber(t *testing.T) {
	result, err := Parse(`contract C { address a = 0x5B38Da6a701c568545dCfcB03FcB875f56beddC4; uint256 b = 0x1A; }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	parts := result.Children[0].(*ast.ContractDefinition).Parts
	a := parts[0].(*ast.ContractVariableDefinition)
	if _, ok := a.Initializer.(*ast.AddressLiteral); !ok {
		t.Errorf("expected AddressLiteral, got %T", a.Initializer)
	}
	b := parts[1].(*ast.ContractVariableDefinition)
	hex, ok := b.Initializer.(*ast.HexNumberLiteral)
	if !ok {
		t.Fatalf("expected HexNumberLiteral, got %T", b.Initializer)
	}
	if hex.Value.Int64() != 0x1A {
		t.Errorf("got value %v", hex.Value)
	}
}

func TestParseUnresolvedUserType(t *testing.T) {
	result, err := Parse(`contract C { Token t; }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.ContractVariableDefinition)
	unresolved, ok := v.TypeName.(*ast.UnresolvedType)
	if !ok {
		t.Fatalf("expected UnresolvedType, got %T", v.TypeName)
	}
	id, ok := unresolved.Expr.(*ast.Identifier)
	if !ok || id.Name != "Token" {
		t.Errorf("expected Identifier(Token), got %#v", unresolved.Expr)
	}
}

func TestParseStatementAtContractScopeRejected(t *testing.T) {
	_, err := Parse(`contract C { if (x) y; }`, nil)
	if err == nil {
		t.Error("expected a bare statement at contract scope to be rejected")
	}
}

func TestParseDanglingElseBindsToNearestIf(t *testing.T) {
	input := `contract C { function f() public { if (a) if (b) x(); else y(); } }`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.FunctionDefinition)
	outer := fn.Body.Statements[0].(*ast.IfStatement)
	if outer.FalseBody != nil {
		t.Error("outer if should have no else")
	}
	inner := outer.TrueBody.(*ast.IfStatement)
	if inner.FalseBody == nil {
		t.Error("else should bind to the inner if")
	}
}

func TestParseEnumTrailingCommaAccepted(t *testing.T) {
	result, err := Parse(`contract Test { enum Status { Pending, Active, Completed, } }`, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	enumDef := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.EnumDefinition)
	if len(enumDef.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(enumDef.Members))
	}
}

func TestParseParameterListTrailingCommaAccepted(t *testing.T) {
	input := `contract C { function f(uint256 a, uint256 b,) public returns (uint256, uint256,) { return (a, b); } }`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.FunctionDefinition)
	if len(fn.Parameters) != 2 {
		t.Errorf("expected 2 parameters, got %d", len(fn.Parameters))
	}
	if len(fn.ReturnParameters) != 2 {
		t.Errorf("expected 2 return parameters, got %d", len(fn.ReturnParameters))
	}
}

func TestParseStringLiteralEscapes(t *testing.T) {
	input := `contract C { string s = "\x41\u{1F600}\n"; }`
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v := result.Children[0].(*ast.ContractDefinition).Parts[0].(*ast.ContractVariableDefinition)
	str, ok := v.Initializer.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("expected StringLiteral, got %T", v.Initializer)
	}
	want := "A\U0001F600\n"
	if str.Value != want {
		t.Errorf("got %q, want %q", str.Value, want)
	}
}

func TestParseDocCommentsAttachToFollowingDeclaration(t *testing.T) {
	input := "/// Stores a single value.\ncontract Test { uint256 x; }"
	result, err := Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	contract := result.Children[0].(*ast.ContractDefinition)
	if len(contract.DocComments) != 1 || contract.DocComments[0] != "Stores a single value." {
		t.Errorf("got doc comments %v", contract.DocComments)
	}
}
