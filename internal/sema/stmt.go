package sema

import (
	"github.com/teranos/glslls/internal/ast"
)

// analyzeTopLevel analyzes one top-level declaration's bodies and
// initializers; name registration already happened in registerTopLevel
// so forward references resolve regardless of order.
func (a *Analyzer) analyzeTopLevel(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		a.resolveQualType(&n.Type)
		for _, decl := range n.Declarators {
			if decl.Initializer != nil {
				a.inferExpr(decl.Initializer)
			}
		}
	case *ast.FunctionDecl:
		a.analyzeFunction(n)
	case *ast.StructDecl:
		// Already registered; nothing further to analyze (members carry
		// no initializers in GLSL).
	case *ast.InterfaceBlockDecl:
		// Already registered.
	case *ast.PrecisionDecl:
		// No further analysis: a precision statement only sets a
		// default and carries no expression to deduce.
	}
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDecl) {
	a.resolveQualType(&fn.ReturnType)
	funcScope := NewScope(a.Global)
	for i, p := range fn.Params {
		a.resolveQualType(&p.QType)
		if p.Type.NameToken.Text != "" {
			funcScope.Declare(p.Type.NameToken.Text, ast.DeclView{Decl: p, Index: i})
		}
	}
	if fn.Body == nil {
		return // prototype only
	}
	prev := a.scope
	a.scope = funcScope
	a.analyzeCompound(fn.Body)
	a.scope = prev
}

func (a *Analyzer) analyzeCompound(cs *ast.CompoundStmt) {
	prev := a.scope
	a.scope = NewScope(prev)
	for _, s := range cs.Stmts {
		a.analyzeStmt(s)
	}
	a.scope = prev
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ErrorStmt:
		// Nothing to analyze: the parser already recorded the syntax
		// error that produced this node.
	case *ast.ExprStmt:
		if n.Expr != nil {
			a.inferExpr(n.Expr)
		}
	case *ast.CompoundStmt:
		a.analyzeCompound(n)
	case *ast.DeclStmt:
		a.registerVarDecl(n.Decl, a.scope)
		a.resolveQualType(&n.Decl.Type)
		for _, decl := range n.Decl.Declarators {
			if decl.Initializer != nil {
				a.inferExpr(decl.Initializer)
			}
		}
	case *ast.IfStmt:
		if n.Cond != nil {
			a.inferExpr(n.Cond)
		}
		a.analyzeStmt(n.Then)
		if n.Else != nil {
			a.analyzeStmt(n.Else)
		}
	case *ast.WhileStmt:
		if n.Cond != nil {
			a.inferExpr(n.Cond)
		}
		a.analyzeStmt(n.Body)
	case *ast.DoWhileStmt:
		a.analyzeStmt(n.Body)
		if n.Cond != nil {
			a.inferExpr(n.Cond)
		}
	case *ast.ForStmt:
		prev := a.scope
		a.scope = NewScope(prev)
		if n.Init != nil {
			a.analyzeStmt(n.Init)
		}
		if n.Cond != nil {
			a.inferExpr(n.Cond)
		}
		if n.Post != nil {
			a.inferExpr(n.Post)
		}
		a.analyzeStmt(n.Body)
		a.scope = prev
	case *ast.SwitchStmt:
		if n.Cond != nil {
			a.inferExpr(n.Cond)
		}
		for _, c := range n.Cases {
			a.analyzeStmt(c)
		}
	case *ast.CaseLabelStmt:
		if n.Expr != nil {
			a.inferExpr(n.Expr)
		}
	case *ast.ReturnStmt:
		if n.Value != nil {
			a.inferExpr(n.Value)
		}
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.DiscardStmt:
		// No payload to analyze.
	}
}
