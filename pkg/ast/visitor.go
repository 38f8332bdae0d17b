package ast

// Visitor is implemented by callers that want a read-only, fully-typed
// traversal of a parsed tree. Each VisitX method returns true to recurse
// into that node's children, false to prune.
type Visitor interface {
	VisitSourceUnit(node *SourceUnit) bool
	VisitPragmaDirective(node *PragmaDirective) bool
	VisitImportDirective(node *ImportDirective) bool
	VisitContractDefinition(node *ContractDefinition) bool
	VisitStructDefinition(node *StructDefinition) bool
	VisitEventDefinition(node *EventDefinition) bool
	VisitEventParameter(node *EventParameter) bool
	VisitEnumDefinition(node *EnumDefinition) bool
	VisitEnumValue(node *EnumValue) bool
	VisitContractVariableDefinition(node *ContractVariableDefinition) bool
	VisitFunctionDefinition(node *FunctionDefinition) bool
	VisitVariableDeclaration(node *VariableDeclaration) bool
	VisitStorageLocation(node *StorageLocation) bool
	VisitPrimitiveType(node *PrimitiveType) bool
	VisitMappingType(node *MappingType) bool
	VisitUnresolvedType(node *UnresolvedType) bool
	VisitBlock(node *Block) bool
	VisitVariableDeclarationStatement(node *VariableDeclarationStatement) bool
	VisitExpressionStatement(node *ExpressionStatement) bool
	VisitIfStatement(node *IfStatement) bool
	VisitWhileStatement(node *WhileStatement) bool
	VisitDoWhileStatement(node *DoWhileStatement) bool
	VisitForStatement(node *ForStatement) bool
	VisitContinueStatement(node *ContinueStatement) bool
	VisitBreakStatement(node *BreakStatement) bool
	VisitThrowStatement(node *ThrowStatement) bool
	VisitEmitStatement(node *EmitStatement) bool
	VisitReturnStatement(node *ReturnStatement) bool
	VisitPlaceholderStatement(node *PlaceholderStatement) bool
	VisitIdentifier(node *Identifier) bool
	VisitNumberLiteral(node *NumberLiteral) bool
	VisitAddressLiteral(node *AddressLiteral) bool
	VisitHexNumberLiteral(node *HexNumberLiteral) bool
	VisitStringLiteral(node *StringLiteral) bool
	VisitHexStringLiteral(node *HexStringLiteral) bool
	VisitBooleanLiteral(node *BooleanLiteral) bool
	VisitArrayLiteral(node *ArrayLiteral) bool
	VisitTupleExpression(node *TupleExpression) bool
	VisitUnaryOperation(node *UnaryOperation) bool
	VisitBinaryOperation(node *BinaryOperation) bool
	VisitAssignment(node *Assignment) bool
	VisitConditional(node *Conditional) bool
	VisitMemberAccess(node *MemberAccess) bool
	VisitIndexAccess(node *IndexAccess) bool
	VisitFunctionCall(node *FunctionCall) bool
	VisitNewExpression(node *NewExpression) bool
}

// BaseVisitor implements Visitor with every method returning true, so callers
// can embed it and override only the node kinds they care about.
type BaseVisitor struct{}

func (BaseVisitor) VisitSourceUnit(*SourceUnit) bool                                     { return true }
func (BaseVisitor) VisitPragmaDirective(*PragmaDirective) bool                           { return true }
func (BaseVisitor) VisitImportDirective(*ImportDirective) bool                           { return true }
func (BaseVisitor) VisitContractDefinition(*ContractDefinition) bool                     { return true }
func (BaseVisitor) VisitStructDefinition(*StructDefinition) bool                         { return true }
func (BaseVisitor) VisitEventDefinition(*EventDefinition) bool                           { return true }
func (BaseVisitor) VisitEventParameter(*EventParameter) bool                             { return true }
func (BaseVisitor) VisitEnumDefinition(*EnumDefinition) bool                             { return true }
func (BaseVisitor) VisitEnumValue(*EnumValue) bool                                       { return true }
func (BaseVisitor) VisitContractVariableDefinition(*ContractVariableDefinition) bool     { return true }
func (BaseVisitor) VisitFunctionDefinition(*FunctionDefinition) bool                     { return true }
func (BaseVisitor) VisitVariableDeclaration(*VariableDeclaration) bool                   { return true }
func (BaseVisitor) VisitStorageLocation(*StorageLocation) bool                           { return true }
func (BaseVisitor) VisitPrimitiveType(*PrimitiveType) bool                               { return true }
func (BaseVisitor) VisitMappingType(*MappingType) bool                                   { return true }
func (BaseVisitor) VisitUnresolvedType(*UnresolvedType) bool                             { return true }
func (BaseVisitor) VisitBlock(*Block) bool                                               { return true }
func (BaseVisitor) VisitVariableDeclarationStatement(*VariableDeclarationStatement) bool { return true }
func (BaseVisitor) VisitExpressionStatement(*ExpressionStatement) bool                   { return true }
func (BaseVisitor) VisitIfStatement(*IfStatement) bool                                   { return true }
func (BaseVisitor) VisitWhileStatement(*WhileStatement) bool                             { return true }
func (BaseVisitor) VisitDoWhileStatement(*DoWhileStatement) bool                         { return true }
func (BaseVisitor) VisitForStatement(*ForStatement) bool                                 { return true }
func (BaseVisitor) VisitContinueStatement(*ContinueStatement) bool                       { return true }
func (BaseVisitor) VisitBreakStatement(*BreakStatement) bool                             { return true }
func (BaseVisitor) VisitThrowStatement(*ThrowStatement) bool                             { return true }
func (BaseVisitor) VisitEmitStatement(*EmitStatement) bool                               { return true }
func (BaseVisitor) VisitReturnStatement(*ReturnStatement) bool                           { return true }
func (BaseVisitor) VisitPlaceholderStatement(*PlaceholderStatement) bool                 { return true }
func (BaseVisitor) VisitIdentifier(*Identifier) bool                                     { return true }
func (BaseVisitor) VisitNumberLiteral(*NumberLiteral) bool                               { return true }
func (BaseVisitor) VisitAddressLiteral(*AddressLiteral) bool                             { return true }
func (BaseVisitor) VisitHexNumberLiteral(*HexNumberLiteral) bool                         { return true }
func (BaseVisitor) VisitStringLiteral(*StringLiteral) bool                               { return true }
func (BaseVisitor) VisitHexStringLiteral(*HexStringLiteral) bool                         { return true }
func (BaseVisitor) VisitBooleanLiteral(*BooleanLiteral) bool                             { return true }
func (BaseVisitor) VisitArrayLiteral(*ArrayLiteral) bool                                 { return true }
func (BaseVisitor) VisitTupleExpression(*TupleExpression) bool                           { return true }
func (BaseVisitor) VisitUnaryOperation(*UnaryOperation) bool                             { return true }
func (BaseVisitor) VisitBinaryOperation(*BinaryOperation) bool                           { return true }
func (BaseVisitor) VisitAssignment(*Assignment) bool                                     { return true }
func (BaseVisitor) VisitConditional(*Conditional) bool                                   { return true }
func (BaseVisitor) VisitMemberAccess(*MemberAccess) bool                                 { return true }
func (BaseVisitor) VisitIndexAccess(*IndexAccess) bool                                   { return true }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) bool                                 { return true }
func (BaseVisitor) VisitNewExpression(*NewExpression) bool                               { return true }

// SimpleVisitor offers one optional callback per node kind, for callers who
// only want to react to a handful of node types without implementing the
// full Visitor interface. A nil field simply recurses (matches BaseVisitor).
type SimpleVisitor struct {
	BaseVisitor
	ContractDefinitionFn         func(*ContractDefinition)
	FunctionDefinitionFn         func(*FunctionDefinition)
	ContractVariableDefinitionFn func(*ContractVariableDefinition)
	IdentifierFn                 func(*Identifier)
	FunctionCallFn               func(*FunctionCall)
}

func (v *SimpleVisitor) VisitContractDefinition(node *ContractDefinition) bool {
	if v.ContractDefinitionFn != nil {
		v.ContractDefinitionFn(node)
	}
	return true
}

func (v *SimpleVisitor) VisitFunctionDefinition(node *FunctionDefinition) bool {
	if v.FunctionDefinitionFn != nil {
		v.FunctionDefinitionFn(node)
	}
	return true
}

func (v *SimpleVisitor) VisitContractVariableDefinition(node *ContractVariableDefinition) bool {
	if v.ContractVariableDefinitionFn != nil {
		v.ContractVariableDefinitionFn(node)
	}
	return true
}

func (v *SimpleVisitor) VisitIdentifier(node *Identifier) bool {
	if v.IdentifierFn != nil {
		v.IdentifierFn(node)
	}
	return true
}

func (v *SimpleVisitor) VisitFunctionCall(node *FunctionCall) bool {
	if v.FunctionCallFn != nil {
		v.FunctionCallFn(node)
	}
	return true
}

// Walk performs a full traversal of node using v, descending into children
// whenever a VisitX call returns true.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *SourceUnit:
		if v.VisitSourceUnit(n) {
			for _, c := range n.Children {
				Walk(v, c)
			}
		}
	case *PragmaDirective:
		v.VisitPragmaDirective(n)
	case *ImportDirective:
		v.VisitImportDirective(n)
	case *ContractDefinition:
		if v.VisitContractDefinition(n) {
			for _, p := range n.Parts {
				Walk(v, p)
			}
		}
	case *StructDefinition:
		if v.VisitStructDefinition(n) {
			for _, m := range n.Members {
				Walk(v, m)
			}
		}
	case *EventDefinition:
		if v.VisitEventDefinition(n) {
			for _, p := range n.Parameters {
				Walk(v, p)
			}
		}
	case *EventParameter:
		if v.VisitEventParameter(n) {
			Walk(v, n.TypeName)
		}
	case *EnumDefinition:
		if v.VisitEnumDefinition(n) {
			for _, m := range n.Members {
				Walk(v, m)
			}
		}
	case *EnumValue:
		v.VisitEnumValue(n)
	case *ContractVariableDefinition:
		if v.VisitContractVariableDefinition(n) {
			Walk(v, n.TypeName)
			Walk(v, n.Initializer)
		}
	case *FunctionDefinition:
		if v.VisitFunctionDefinition(n) {
			for _, p := range n.Parameters {
				Walk(v, p)
			}
			for _, p := range n.ReturnParameters {
				Walk(v, p)
			}
			if n.Body != nil {
				Walk(v, n.Body)
			}
		}
	case *VariableDeclaration:
		if v.VisitVariableDeclaration(n) {
			Walk(v, n.TypeName)
			if n.StorageLocation != nil {
				Walk(v, n.StorageLocation)
			}
		}
	case *StorageLocation:
		v.VisitStorageLocation(n)
	case *PrimitiveType:
		if v.VisitPrimitiveType(n) {
			for _, d := range n.ArrayDimensions {
				Walk(v, d)
			}
		}
	case *MappingType:
		if v.VisitMappingType(n) {
			Walk(v, n.KeyType)
			Walk(v, n.ValueType)
		}
	case *UnresolvedType:
		if v.VisitUnresolvedType(n) {
			Walk(v, n.Expr)
		}
	case *Block:
		if v.VisitBlock(n) {
			for _, s := range n.Statements {
				Walk(v, s)
			}
		}
	case *VariableDeclarationStatement:
		if v.VisitVariableDeclarationStatement(n) {
			for _, d := range n.Declarations {
				Walk(v, d)
			}
			Walk(v, n.Initializer)
		}
	case *ExpressionStatement:
		if v.VisitExpressionStatement(n) {
			Walk(v, n.Expr)
		}
	case *IfStatement:
		if v.VisitIfStatement(n) {
			Walk(v, n.Condition)
			Walk(v, n.TrueBody)
			Walk(v, n.FalseBody)
		}
	case *WhileStatement:
		if v.VisitWhileStatement(n) {
			Walk(v, n.Condition)
			Walk(v, n.Body)
		}
	case *DoWhileStatement:
		if v.VisitDoWhileStatement(n) {
			Walk(v, n.Body)
			Walk(v, n.Condition)
		}
	case *ForStatement:
		if v.VisitForStatement(n) {
			Walk(v, n.InitExpr)
			Walk(v, n.ConditionExpr)
			if n.LoopExpr != nil {
				Walk(v, n.LoopExpr)
			}
			Walk(v, n.Body)
		}
	case *ContinueStatement:
		v.VisitContinueStatement(n)
	case *BreakStatement:
		v.VisitBreakStatement(n)
	case *ThrowStatement:
		v.VisitThrowStatement(n)
	case *EmitStatement:
		if v.VisitEmitStatement(n) {
			Walk(v, n.EventCall)
		}
	case *ReturnStatement:
		if v.VisitReturnStatement(n) {
			for _, e := range n.Expressions {
				Walk(v, e)
			}
		}
	case *PlaceholderStatement:
		v.VisitPlaceholderStatement(n)
	case *Identifier:
		v.VisitIdentifier(n)
	case *NumberLiteral:
		v.VisitNumberLiteral(n)
	case *AddressLiteral:
		v.VisitAddressLiteral(n)
	case *HexNumberLiteral:
		v.VisitHexNumberLiteral(n)
	case *StringLiteral:
		v.VisitStringLiteral(n)
	case *HexStringLiteral:
		v.VisitHexStringLiteral(n)
	case *BooleanLiteral:
		v.VisitBooleanLiteral(n)
	case *ArrayLiteral:
		if v.VisitArrayLiteral(n) {
			for _, e := range n.Elements {
				Walk(v, e)
			}
		}
	case *TupleExpression:
		if v.VisitTupleExpression(n) {
			for _, e := range n.Components {
				Walk(v, e)
			}
		}
	case *UnaryOperation:
		if v.VisitUnaryOperation(n) {
			Walk(v, n.SubExpr)
		}
	case *BinaryOperation:
		if v.VisitBinaryOperation(n) {
			Walk(v, n.Left)
			Walk(v, n.Right)
		}
	case *Assignment:
		if v.VisitAssignment(n) {
			Walk(v, n.Left)
			Walk(v, n.Right)
		}
	case *Conditional:
		if v.VisitConditional(n) {
			Walk(v, n.Condition)
			Walk(v, n.TrueExpr)
			Walk(v, n.FalseExpr)
		}
	case *MemberAccess:
		if v.VisitMemberAccess(n) {
			Walk(v, n.Expr)
		}
	case *IndexAccess:
		if v.VisitIndexAccess(n) {
			Walk(v, n.Base)
			Walk(v, n.Index)
		}
	case *FunctionCall:
		if v.VisitFunctionCall(n) {
			Walk(v, n.Expr)
			for _, a := range n.Arguments {
				Walk(v, a)
			}
		}
	case *NewExpression:
		if v.VisitNewExpression(n) {
			Walk(v, n.TypeName)
		}
	}
}

// WalkSimple is a convenience wrapper for SimpleVisitor callers.
func WalkSimple(v *SimpleVisitor, node Node) {
	Walk(v, node)
}
