package ast

import "math/big"

// Node-type discriminators, mirrored into BaseNode.Type for JSON output.
const (
	TypeSourceUnit                   = "SourceUnit"
	TypePragmaDirective               = "PragmaDirective"
	TypeImportDirective               = "ImportDirective"
	TypeContractDefinition            = "ContractDefinition"
	TypeStructDefinition              = "StructDefinition"
	TypeEventDefinition               = "EventDefinition"
	TypeEventParameter                = "EventParameter"
	TypeEnumDefinition                = "EnumDefinition"
	TypeEnumValue                     = "EnumValue"
	TypeContractVariableDefinition    = "ContractVariableDefinition"
	TypeFunctionDefinition            = "FunctionDefinition"
	TypeVariableDeclaration           = "VariableDeclaration"
	TypeStorageLocation               = "StorageLocation"
	TypePrimitiveType                 = "PrimitiveType"
	TypeMappingType                   = "MappingType"
	TypeUnresolvedType                = "UnresolvedType"
	TypeIdentifier                    = "Identifier"
	TypeNumberLiteral                 = "NumberLiteral"
	TypeAddressLiteral                = "AddressLiteral"
	TypeHexNumberLiteral              = "HexNumberLiteral"
	TypeStringLiteral                 = "StringLiteral"
	TypeHexStringLiteral              = "HexStringLiteral"
	TypeBooleanLiteral                = "BooleanLiteral"
	TypeArrayLiteral                  = "ArrayLiteral"
	TypeTupleExpression               = "TupleExpression"
	TypeUnaryOperation                = "UnaryOperation"
	TypeBinaryOperation               = "BinaryOperation"
	TypeAssignment                    = "Assignment"
	TypeConditional                   = "Conditional"
	TypeMemberAccess                  = "MemberAccess"
	TypeIndexAccess                   = "IndexAccess"
	TypeFunctionCall                  = "FunctionCall"
	TypeNewExpression                 = "NewExpression"
	TypeBlock                         = "Block"
	TypeVariableDeclarationStatement  = "VariableDeclarationStatement"
	TypeExpressionStatement           = "ExpressionStatement"
	TypeIfStatement                   = "IfStatement"
	TypeWhileStatement                = "WhileStatement"
	TypeDoWhileStatement              = "DoWhileStatement"
	TypeForStatement                  = "ForStatement"
	TypeContinueStatement             = "ContinueStatement"
	TypeBreakStatement                = "BreakStatement"
	TypeThrowStatement                = "ThrowStatement"
	TypeEmitStatement                 = "EmitStatement"
	TypeReturnStatement               = "ReturnStatement"
	TypePlaceholderStatement          = "PlaceholderStatement"
)

// ContractKind distinguishes the three contract-like declaration forms.
type ContractKind string

const (
	ContractKindContract  ContractKind = "contract"
	ContractKindInterface ContractKind = "interface"
	ContractKindLibrary   ContractKind = "library"
)

// Visibility is the closed set of function/state-variable visibility words.
type Visibility string

const (
	VisibilityDefault  Visibility = ""
	VisibilityPublic   Visibility = "public"
	VisibilityExternal Visibility = "external"
	VisibilityInternal Visibility = "internal"
	VisibilityPrivate  Visibility = "private"
)

// StateMutability is the closed set of function state-mutability words.
type StateMutability string

const (
	StateMutabilityDefault StateMutability = ""
	StateMutabilityPure    StateMutability = "pure"
	StateMutabilityView    StateMutability = "view"
	StateMutabilityPayable StateMutability = "payable"
)

// SourceUnitPart is implemented by every top-level declaration form.
type SourceUnitPart interface {
	Node
	isSourceUnitPart()
}

// ContractPart is implemented by every declaration form that may appear
// directly inside a contract/interface/library body.
type ContractPart interface {
	Node
	isContractPart()
}

// ComplexType is implemented by every type-expression form.
type ComplexType interface {
	Node
	isComplexType()
}

// Expression is implemented by every expression form.
type Expression interface {
	Node
	isExpression()
}

// Statement is implemented by every statement form.
type Statement interface {
	Node
	isStatement()
}

// SourceUnit is the root of a parsed source file: an ordered sequence of
// pragma directives, import directives, and contract-like declarations.
type SourceUnit struct {
	BaseNode
	Children []SourceUnitPart `json:"children"`
}

// PragmaDirective is `pragma <identifier> <value>`, where Value is the
// trimmed text after the identifier, up to the first `;` or the end of the
// line, whichever comes first.
type PragmaDirective struct {
	BaseNode
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (*PragmaDirective) isSourceUnitPart() {}

// ImportDirective is `import <path> ;`.
type ImportDirective struct {
	BaseNode
	Path string `json:"path"`
}

func (*ImportDirective) isSourceUnitPart() {}

// ContractDefinition is a contract, interface, or library declaration.
type ContractDefinition struct {
	BaseNode
	Kind        ContractKind   `json:"kind"`
	Name        string         `json:"name"`
	Parts       []ContractPart `json:"subNodes"`
	DocComments []string       `json:"docComments,omitempty"`
}

func (*ContractDefinition) isSourceUnitPart() {}

// StorageLocation annotates a variable declaration's data location.
type StorageLocation struct {
	BaseNode
	Kind string `json:"kind"` // memory | storage | calldata
}

// VariableDeclaration is the shared shape for struct members, function
// parameters, return parameters, and local variable declarations.
type VariableDeclaration struct {
	BaseNode
	TypeName        ComplexType      `json:"typeName"`
	StorageLocation *StorageLocation `json:"storageLocation,omitempty"`
	Name            string           `json:"name"`
}

// StructDefinition is `struct Name { Type member; ... }`; Members is non-empty.
type StructDefinition struct {
	BaseNode
	Name        string                 `json:"name"`
	Members     []*VariableDeclaration `json:"members"`
	DocComments []string               `json:"docComments,omitempty"`
}

func (*StructDefinition) isContractPart() {}

// EventParameter is one parameter of an event declaration: a type, an
// optional `indexed` flag, and an optional name.
type EventParameter struct {
	BaseNode
	TypeName ComplexType `json:"typeName"`
	Indexed  bool        `json:"indexed"`
	Name     string      `json:"name,omitempty"`
}

// EventDefinition is `event Name(Type [indexed] [name], ...) [anonymous];`;
// Parameters is non-empty.
type EventDefinition struct {
	BaseNode
	Name        string            `json:"name"`
	Parameters  []*EventParameter `json:"parameters"`
	Anonymous   bool              `json:"anonymous"`
	DocComments []string          `json:"docComments,omitempty"`
}

func (*EventDefinition) isContractPart() {}

// EnumValue is one identifier in an enum's member list.
type EnumValue struct {
	BaseNode
	Name string `json:"name"`
}

// EnumDefinition is `enum Name { Value, ... }`; Members is non-empty.
type EnumDefinition struct {
	BaseNode
	Name        string       `json:"name"`
	Members     []*EnumValue `json:"members"`
	DocComments []string     `json:"docComments,omitempty"`
}

func (*EnumDefinition) isContractPart() {}

// VariableAttributeKind is one word from a state variable's attribute list:
// a visibility word or the `constant` keyword.
type VariableAttributeKind string

const (
	VarAttrPublic   VariableAttributeKind = "public"
	VarAttrExternal VariableAttributeKind = "external"
	VarAttrInternal VariableAttributeKind = "internal"
	VarAttrPrivate  VariableAttributeKind = "private"
	VarAttrConstant VariableAttributeKind = "constant"
)

// ContractVariableDefinition is a state-variable declaration inside a
// contract/interface/library body.
type ContractVariableDefinition struct {
	BaseNode
	TypeName    ComplexType             `json:"typeName"`
	Attributes  []VariableAttributeKind `json:"attributes,omitempty"`
	Name        string                  `json:"name"`
	Initializer Expression              `json:"initializer,omitempty"`
	DocComments []string                `json:"docComments,omitempty"`
}

func (*ContractVariableDefinition) isContractPart() {}

// FunctionDefinition covers ordinary functions, constructors (no name), and
// fallback-style anonymous functions (no name, not a constructor).
type FunctionDefinition struct {
	BaseNode
	IsConstructor    bool                   `json:"isConstructor"`
	Name             string                 `json:"name,omitempty"`
	Parameters       []*VariableDeclaration `json:"parameters"`
	Visibility       Visibility             `json:"visibility,omitempty"`
	StateMutability  StateMutability        `json:"stateMutability,omitempty"`
	ReturnParameters []*VariableDeclaration `json:"returnParameters,omitempty"`
	Body             *Block                 `json:"body,omitempty"` // nil => declaration-only
	DocComments      []string               `json:"docComments,omitempty"`
}

func (*FunctionDefinition) isContractPart() {}

// PrimitiveType covers bool, address, string, bytes (dynamic), uintN/intN,
// and bytesN, each optionally array-dimensioned. Width carries the bit-width
// for uintN/intN or the byte-width for bytesN; it is 0 for bool/address/
// string/dynamic bytes. Each entry in ArrayDimensions is nil for an unsized
// dimension (`[]`) or the bound expression for a sized one (`[n]`).
type PrimitiveType struct {
	BaseNode
	Name            string       `json:"name"` // bool | address | string | bytes | uint | int
	Width           int          `json:"width,omitempty"`
	Payable         bool         `json:"payable,omitempty"` // `address payable`
	ArrayDimensions []Expression `json:"arrayDimensions,omitempty"`
}

func (*PrimitiveType) isComplexType() {}

// MappingType is `mapping(KeyType => ValueType)`.
type MappingType struct {
	BaseNode
	KeyType   ComplexType `json:"keyType"`
	ValueType ComplexType `json:"valueType"`
}

func (*MappingType) isComplexType() {}

// UnresolvedType wraps a possibly-type, possibly-expression production that
// the grammar cannot itself classify (a user-defined type name, which is
// syntactically indistinguishable from an identifier expression until a
// later semantic pass resolves it against a symbol table). Any trailing
// `[n]`/`[]` array-dimension suffix is already folded into Expr as ordinary
// IndexAccess nodes by the expression grammar — the same subscript syntax
// is ambiguous between "array type dimension" and "index expression", so
// the parser never tries to split it back out.
type UnresolvedType struct {
	BaseNode
	Expr Expression `json:"expr"`
}

func (*UnresolvedType) isComplexType() {}

// ---- Expressions ----

// Identifier is a bare name reference.
type Identifier struct {
	BaseNode
	Name string `json:"name"`
}

func (*Identifier) isExpression() {}

// NumberLiteral is a decimal integer literal; Value is the arbitrary
// precision integer obtained after stripping `_` separators.
type NumberLiteral struct {
	BaseNode
	Text  string   `json:"text"`
	Value *big.Int `json:"-"`
}

func (*NumberLiteral) isExpression() {}

// AddressLiteral is a 42-character, `0x`-prefixed, underscore-free hex
// literal, classified as an address rather than a hex integer.
type AddressLiteral struct {
	BaseNode
	Text string `json:"text"`
}

func (*AddressLiteral) isExpression() {}

// HexNumberLiteral is a `0x`-prefixed hex integer literal that did not
// qualify as an address literal; Value is the integer after `_` stripping.
type HexNumberLiteral struct {
	BaseNode
	Text  string   `json:"text"`
	Value *big.Int `json:"-"`
}

func (*HexNumberLiteral) isExpression() {}

// StringLiteral is a decoded string literal: escapes resolved and any
// `\<newline>` continuations deleted.
type StringLiteral struct {
	BaseNode
	Value string `json:"value"`
}

func (*StringLiteral) isExpression() {}

// HexStringLiteral is `hex"..."`, decoded to raw bytes.
type HexStringLiteral struct {
	BaseNode
	Value []byte `json:"-"`
}

func (*HexStringLiteral) isExpression() {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	BaseNode
	Value bool `json:"value"`
}

func (*BooleanLiteral) isExpression() {}

// ArrayLiteral is `[e, e, ...]`.
type ArrayLiteral struct {
	BaseNode
	Elements []Expression `json:"elements"`
}

func (*ArrayLiteral) isExpression() {}

// TupleExpression is `(e, e, ...)`, including the empty tuple `()`.
type TupleExpression struct {
	BaseNode
	Components []Expression `json:"components"`
}

func (*TupleExpression) isExpression() {}

// UnaryOperation is a prefix or postfix unary operator application.
type UnaryOperation struct {
	BaseNode
	Operator string     `json:"operator"`
	SubExpr  Expression `json:"subExpression"`
	Prefix   bool       `json:"isPrefix"`
}

func (*UnaryOperation) isExpression() {}

// BinaryOperation is a non-assignment binary operator application.
type BinaryOperation struct {
	BaseNode
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (*BinaryOperation) isExpression() {}

// Assignment is `lhs op= rhs` for `=` and every compound-assign operator.
type Assignment struct {
	BaseNode
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (*Assignment) isExpression() {}

// Conditional is the ternary `cond ? ifTrue : ifFalse`.
type Conditional struct {
	BaseNode
	Condition Expression `json:"condition"`
	TrueExpr  Expression `json:"trueExpression"`
	FalseExpr Expression `json:"falseExpression"`
}

func (*Conditional) isExpression() {}

// MemberAccess is `e.name`.
type MemberAccess struct {
	BaseNode
	Expr       Expression `json:"expression"`
	MemberName string     `json:"memberName"`
}

func (*MemberAccess) isExpression() {}

// IndexAccess is `e[index]`; Index is nil for a bare `e[]` (used in array
// type suffixes borrowed through the unresolved-type expression grammar).
type IndexAccess struct {
	BaseNode
	Base  Expression `json:"base"`
	Index Expression `json:"index,omitempty"`
}

func (*IndexAccess) isExpression() {}

// FunctionCall is `callee(args...)` or `callee({name: value, ...})`. Names is
// non-nil only for the named-argument call form, one entry per Arguments.
type FunctionCall struct {
	BaseNode
	Expr      Expression   `json:"expression"`
	Arguments []Expression `json:"arguments"`
	Names     []string     `json:"names,omitempty"`
}

func (*FunctionCall) isExpression() {}

// NewExpression is `new Type`.
type NewExpression struct {
	BaseNode
	TypeName ComplexType `json:"typeName"`
}

func (*NewExpression) isExpression() {}

// ---- Statements ----

// Block is `{ stmt... }`.
type Block struct {
	BaseNode
	Statements []Statement `json:"statements"`
}

func (*Block) isStatement() {}

// VariableDeclarationStatement is a local variable declaration with an
// optional initializer, e.g. `uint256 x = 1;` or `(uint256 a, uint256 b) = f();`.
type VariableDeclarationStatement struct {
	BaseNode
	Declarations []*VariableDeclaration `json:"variables"`
	Initializer  Expression             `json:"initialValue,omitempty"`
}

func (*VariableDeclarationStatement) isStatement() {}

// ExpressionStatement is a bare expression used as a statement.
type ExpressionStatement struct {
	BaseNode
	Expr Expression `json:"expression"`
}

func (*ExpressionStatement) isStatement() {}

// IfStatement is `if (cond) trueBody [else falseBody]`.
type IfStatement struct {
	BaseNode
	Condition Expression `json:"condition"`
	TrueBody  Statement  `json:"trueBody"`
	FalseBody Statement  `json:"falseBody,omitempty"`
}

func (*IfStatement) isStatement() {}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	BaseNode
	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func (*WhileStatement) isStatement() {}

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	BaseNode
	Body      Statement  `json:"body"`
	Condition Expression `json:"condition"`
}

func (*DoWhileStatement) isStatement() {}

// ForStatement is `for (init; cond; loop) body`, each clause optional.
type ForStatement struct {
	BaseNode
	InitExpr      Statement            `json:"initExpression,omitempty"`
	ConditionExpr Expression           `json:"conditionExpression,omitempty"`
	LoopExpr      *ExpressionStatement `json:"loopExpression,omitempty"`
	Body          Statement            `json:"body"`
}

func (*ForStatement) isStatement() {}

// ContinueStatement is `continue;`.
type ContinueStatement struct{ BaseNode }

func (*ContinueStatement) isStatement() {}

// BreakStatement is `break;`.
type BreakStatement struct{ BaseNode }

func (*BreakStatement) isStatement() {}

// ThrowStatement is `throw;`.
type ThrowStatement struct{ BaseNode }

func (*ThrowStatement) isStatement() {}

// EmitStatement is `emit Event(args...);`.
type EmitStatement struct {
	BaseNode
	EventCall *FunctionCall `json:"eventCall"`
}

func (*EmitStatement) isStatement() {}

// ReturnStatement is `return;`, `return e;`, or `return e, e, ...;`.
type ReturnStatement struct {
	BaseNode
	Expressions []Expression `json:"expressions,omitempty"`
}

func (*ReturnStatement) isStatement() {}

// PlaceholderStatement is the bare `_;` statement.
type PlaceholderStatement struct{ BaseNode }

func (*PlaceholderStatement) isStatement() {}
