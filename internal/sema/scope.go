// Package sema implements semantic analysis over a parsed translation
// unit: scoped name resolution, overload resolution, bottom-up type
// deduction with implicit-cast insertion, l-value checking, and
// swizzle/interface-block field visibility.
package sema

import "github.com/teranos/glslls/internal/ast"

// Scope is one lexical binding level: global, function body, or a
// nested compound statement. Name lookup walks Parent chains outward,
// matching GLSL's ordinary shadowing rules.
type Scope struct {
	Parent *Scope
	vars   map[string]ast.DeclView
	funcs  map[string][]*ast.FunctionDecl // overload set, insertion order
}

// NewScope creates a child scope of parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, vars: map[string]ast.DeclView{}, funcs: map[string][]*ast.FunctionDecl{}}
}

// Declare binds name to v in this scope, returning false if name is
// already bound directly in this scope (shadowing an outer scope's
// binding is fine and not reported here; redeclaration within the same
// scope is the caller's redefinition check).
func (s *Scope) Declare(name string, v ast.DeclView) bool {
	if _, exists := s.vars[name]; exists {
		return false
	}
	s.vars[name] = v
	return true
}

// Lookup finds name's nearest enclosing binding, per ordinary scoping.
func (s *Scope) Lookup(name string) (ast.DeclView, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return ast.DeclView{}, false
}

// DeclareFunc appends fn to name's overload set in this scope (always
// the global scope in practice, since GLSL has no nested function
// declarations).
func (s *Scope) DeclareFunc(name string, fn *ast.FunctionDecl) {
	s.funcs[name] = append(s.funcs[name], fn)
}

// LookupFuncs returns name's overload set, searching outward.
func (s *Scope) LookupFuncs(name string) []*ast.FunctionDecl {
	for cur := s; cur != nil; cur = cur.Parent {
		if fns, ok := cur.funcs[name]; ok {
			return fns
		}
	}
	return nil
}
