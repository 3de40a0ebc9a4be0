package ast

// Policy is the decision an Enter callback returns, controlling how a
// traversal proceeds past the current node.
type Policy int

const (
	// Traverse descends into the node's children, then calls Visit and
	// Exit on the way back out.
	Traverse Policy = iota
	// Visit calls Visit on this node but skips its children entirely.
	Visit
	// Leave skips this node and its whole subtree without calling Visit.
	Leave
	// Halt aborts the traversal immediately; no further nodes are visited.
	Halt
)

// Visitor is implemented (partially — every method has a usable
// default via the embedded BaseVisitor) by traversals over the AST.
// Enter is called before a node's children; Visit after descending (or
// immediately, if Enter requested Visit-without-descend); Exit after
// Visit, only when Policy was Traverse.
type Visitor interface {
	Enter(n Node) Policy
	Visit(n Node)
	Exit(n Node)
}

// BaseVisitor is embedded by concrete visitors so they only need to
// override the methods relevant to their traversal; the defaults
// traverse everything and do nothing on Visit/Exit.
type BaseVisitor struct{}

func (BaseVisitor) Enter(Node) Policy { return Traverse }
func (BaseVisitor) Visit(Node)        {}
func (BaseVisitor) Exit(Node)         {}

// Walk drives v over n and its descendants according to the Enter
// policy returned at each node. It returns false if the traversal was
// halted (the caller should stop walking sibling nodes too).
func Walk(v Visitor, n Node) bool {
	if n == nil {
		return true
	}
	switch v.Enter(n) {
	case Halt:
		return false
	case Leave:
		return true
	case Visit:
		v.Visit(n)
		return true
	}
	// Traverse
	if !walkChildren(v, n) {
		return false
	}
	v.Visit(n)
	v.Exit(n)
	return true
}

func walkChildren(v Visitor, n Node) bool {
	switch node := n.(type) {
	case *TranslationUnit:
		for _, d := range node.Decls {
			if !Walk(v, d) {
				return false
			}
		}
	case *VarDecl:
		for i := range node.Declarators {
			if node.Declarators[i].Initializer != nil {
				if !Walk(v, node.Declarators[i].Initializer) {
					return false
				}
			}
		}
	case *FunctionDecl:
		for _, p := range node.Params {
			if !Walk(v, p) {
				return false
			}
		}
		if node.Body != nil {
			if !Walk(v, node.Body) {
				return false
			}
		}
	case *ParamDecl:
		// leaf for traversal purposes
	case *StructDecl:
		for _, m := range node.Members {
			if !Walk(v, m) {
				return false
			}
		}
	case *InterfaceBlockDecl:
		for _, m := range node.Members {
			if !Walk(v, m) {
				return false
			}
		}
	case *PrecisionDecl:
	case *CompoundStmt:
		for _, s := range node.Stmts {
			if !Walk(v, s) {
				return false
			}
		}
	case *DeclStmt:
		if !Walk(v, node.Decl) {
			return false
		}
	case *ExprStmt:
		if node.Expr != nil {
			if !Walk(v, node.Expr) {
				return false
			}
		}
	case *IfStmt:
		if !Walk(v, node.Cond) {
			return false
		}
		if !Walk(v, node.Then) {
			return false
		}
		if node.Else != nil {
			if !Walk(v, node.Else) {
				return false
			}
		}
	case *WhileStmt:
		if !Walk(v, node.Cond) {
			return false
		}
		if !Walk(v, node.Body) {
			return false
		}
	case *DoWhileStmt:
		if !Walk(v, node.Body) {
			return false
		}
		if !Walk(v, node.Cond) {
			return false
		}
	case *ForStmt:
		if node.Init != nil {
			if !Walk(v, node.Init) {
				return false
			}
		}
		if node.Cond != nil {
			if !Walk(v, node.Cond) {
				return false
			}
		}
		if node.Post != nil {
			if !Walk(v, node.Post) {
				return false
			}
		}
		if !Walk(v, node.Body) {
			return false
		}
	case *SwitchStmt:
		if !Walk(v, node.Cond) {
			return false
		}
		for _, c := range node.Cases {
			if !Walk(v, c) {
				return false
			}
		}
	case *CaseLabelStmt:
		if node.Expr != nil {
			if !Walk(v, node.Expr) {
				return false
			}
		}
	case *ReturnStmt:
		if node.Value != nil {
			if !Walk(v, node.Value) {
				return false
			}
		}
	case *BreakStmt, *ContinueStmt, *DiscardStmt, *ErrorStmt, *ErrorExpr,
		*IdentExpr, *IntLit, *UintLit, *FloatLit, *DoubleLit, *BoolLit:
		// leaves
	case *UnaryExpr:
		return Walk(v, node.Sub)
	case *BinaryExpr:
		if !Walk(v, node.Left) {
			return false
		}
		return Walk(v, node.Right)
	case *AssignExpr:
		if !Walk(v, node.Target) {
			return false
		}
		return Walk(v, node.Value)
	case *ConditionalExpr:
		if !Walk(v, node.Cond) {
			return false
		}
		if !Walk(v, node.Then) {
			return false
		}
		return Walk(v, node.Else)
	case *CommaExpr:
		for _, e := range node.Items {
			if !Walk(v, e) {
				return false
			}
		}
	case *CallExpr:
		for _, a := range node.Args {
			if !Walk(v, a) {
				return false
			}
		}
	case *ConstructorCallExpr:
		for _, a := range node.Args {
			if !Walk(v, a) {
				return false
			}
		}
	case *ArrayConstructorExpr:
		if node.Length != nil {
			if !Walk(v, node.Length) {
				return false
			}
		}
		for _, a := range node.Args {
			if !Walk(v, a) {
				return false
			}
		}
	case *IndexExpr:
		if !Walk(v, node.BaseExpr) {
			return false
		}
		return Walk(v, node.Index)
	case *FieldExpr:
		return Walk(v, node.BaseExpr)
	case *PostfixExpr:
		return Walk(v, node.Sub)
	case *ImplicitCastExpr:
		return Walk(v, node.Sub)
	case *ParenExpr:
		return Walk(v, node.Sub)
	}
	return true
}

// ContainsPolicy implements the standard position-pruning traversal
// used by feature handlers: Traverse if the node's range contains pos,
// Leave if the node wholly precedes pos, Halt otherwise (the node
// starts after pos, so nothing later can contain it either, since
// children ranges are nested and siblings are walked in order).
func ContainsPolicy(n Node, pos int) Policy {
	r := n.Base().Range
	switch {
	case r.Begin <= pos && pos < r.End:
		return Traverse
	case r.End <= pos:
		return Leave
	default:
		return Halt
	}
}
