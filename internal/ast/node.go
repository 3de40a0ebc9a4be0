package ast

import "github.com/teranos/glslls/internal/types"

// NodeKind tags every concrete node type in the closed variant set.
// Walk (visit.go) finds a node's children with a Go type switch; the
// tag lets other code branch on a node's kind without one.
type NodeKind int

const (
	KindInvalid NodeKind = iota

	// Expressions
	KindErrorExpr
	KindIdentExpr
	KindIntLit
	KindUintLit
	KindFloatLit
	KindDoubleLit
	KindBoolLit
	KindUnaryExpr
	KindBinaryExpr
	KindAssignExpr
	KindConditionalExpr
	KindCommaExpr
	KindCallExpr
	KindConstructorCallExpr
	KindArrayConstructorExpr
	KindIndexExpr
	KindFieldExpr
	KindPostfixExpr
	KindImplicitCastExpr
	KindParenExpr

	// Statements
	KindErrorStmt
	KindExprStmt
	KindCompoundStmt
	KindDeclStmt
	KindIfStmt
	KindWhileStmt
	KindDoWhileStmt
	KindForStmt
	KindSwitchStmt
	KindCaseLabelStmt
	KindBreakStmt
	KindContinueStmt
	KindDiscardStmt
	KindReturnStmt

	// Declarations
	KindTranslationUnit
	KindVarDecl
	KindFunctionDecl
	KindParamDecl
	KindStructDecl
	KindInterfaceBlockDecl
	KindPrecisionDecl
)

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "unknown"
}

var nodeKindNames = map[NodeKind]string{
	KindInvalid: "invalid", KindErrorExpr: "ErrorExpr", KindIdentExpr: "IdentExpr",
	KindIntLit: "IntLit", KindUintLit: "UintLit", KindFloatLit: "FloatLit", KindDoubleLit: "DoubleLit",
	KindBoolLit: "BoolLit", KindUnaryExpr: "UnaryExpr", KindBinaryExpr: "BinaryExpr",
	KindAssignExpr: "AssignExpr", KindConditionalExpr: "ConditionalExpr", KindCommaExpr: "CommaExpr",
	KindCallExpr: "CallExpr", KindConstructorCallExpr: "ConstructorCallExpr",
	KindArrayConstructorExpr: "ArrayConstructorExpr", KindIndexExpr: "IndexExpr",
	KindFieldExpr: "FieldExpr", KindPostfixExpr: "PostfixExpr", KindImplicitCastExpr: "ImplicitCastExpr",
	KindParenExpr: "ParenExpr",
	KindErrorStmt: "ErrorStmt", KindExprStmt: "ExprStmt", KindCompoundStmt: "CompoundStmt",
	KindDeclStmt: "DeclStmt", KindIfStmt: "IfStmt", KindWhileStmt: "WhileStmt",
	KindDoWhileStmt: "DoWhileStmt", KindForStmt: "ForStmt", KindSwitchStmt: "SwitchStmt",
	KindCaseLabelStmt: "CaseLabelStmt", KindBreakStmt: "BreakStmt", KindContinueStmt: "ContinueStmt",
	KindDiscardStmt: "DiscardStmt", KindReturnStmt: "ReturnStmt",
	KindTranslationUnit: "TranslationUnit", KindVarDecl: "VarDecl", KindFunctionDecl: "FunctionDecl",
	KindParamDecl: "ParamDecl", KindStructDecl: "StructDecl", KindInterfaceBlockDecl: "InterfaceBlockDecl",
	KindPrecisionDecl: "PrecisionDecl",
}

// Node is implemented by every concrete AST node via the embedded Base.
// Children are not reachable through Node itself; each concrete type
// exposes its own typed child fields, and Walk's hand-written type
// switch (visit.go) knows how to walk each concrete type.
type Node interface {
	Base() *NodeBase
	Kind() NodeKind
}

// NodeBase carries the fields every node has in common: its syntactic
// range, a pointer to its syntactic parent for visitor policy
// decisions, and its own tag. Nodes are recorded in an Arena and
// are immutable once the arena's owning compilation finishes.
type NodeBase struct {
	Range  SyntaxRange
	Parent Node
	Tag    NodeKind
}

func (b *NodeBase) Base() *NodeBase { return b }
func (b *NodeBase) Kind() NodeKind  { return b.Tag }

// Expr is implemented by every expression node; all expressions carry
// a deduced type and, when applicable, a resolved declaration/function.
type Expr interface {
	Node
	DeducedType() *types.Desc
	SetDeducedType(*types.Desc)
}

// ExprBase factors the deducedType field shared by every expression.
type ExprBase struct {
	NodeBase
	Type *types.Desc
}

func (e *ExprBase) DeducedType() *types.Desc     { return e.Type }
func (e *ExprBase) SetDeducedType(t *types.Desc) { e.Type = t }

// Stmt is implemented by every statement node; it carries no fields
// beyond NodeBase, but the interface documents intent at call sites.
type Stmt interface {
	Node
	isStmt()
}

// StmtBase factors the common embedding for every statement node.
type StmtBase struct{ NodeBase }

func (*StmtBase) isStmt() {}

// Decl is implemented by every top-level or block-scoped declaration.
type Decl interface {
	Node
	isDecl()
}

// DeclBase factors the common embedding for every declaration node.
type DeclBase struct{ NodeBase }

func (*DeclBase) isDecl() {}

// Arena records every node created for one compilation. Each node is
// allocated on its own and linked to the others by pointer; Add only
// appends it to the arena's slice, which Len counts.
type Arena struct {
	nodes []Node
}

// NewArena creates an empty node arena.
func NewArena() *Arena { return &Arena{} }

// Add records n in the arena and returns it, for chaining at
// construction sites: `n := arena.Add(&IdentExpr{...}).(*IdentExpr)`.
func (a *Arena) Add(n Node) Node {
	a.nodes = append(a.nodes, n)
	return n
}

// Len returns the number of nodes allocated in this arena.
func (a *Arena) Len() int { return len(a.nodes) }
