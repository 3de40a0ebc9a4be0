package sema

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/types"
)

// inferExpr deduces e's type bottom-up, resolving identifiers/calls
// against the current scope and inserting ImplicitCastExpr wrappers
// where a binary operand needed widening. It always returns a non-nil
// *types.Desc; failures deduce to types.ErrorType rather than halting.
func (a *Analyzer) inferExpr(e ast.Expr) *types.Desc {
	if e == nil {
		return types.ErrorType
	}
	switch n := e.(type) {
	case *ast.ErrorExpr:
		n.SetDeducedType(types.ErrorType)
		return types.ErrorType
	case *ast.IntLit:
		return a.setType(n, a.Interner.Scalar(types.Int))
	case *ast.UintLit:
		return a.setType(n, a.Interner.Scalar(types.Uint))
	case *ast.FloatLit:
		return a.setType(n, a.Interner.Scalar(types.Float))
	case *ast.DoubleLit:
		return a.setType(n, a.Interner.Scalar(types.Double))
	case *ast.BoolLit:
		return a.setType(n, a.Interner.Scalar(types.Bool))
	case *ast.IdentExpr:
		return a.inferIdent(n)
	case *ast.ParenExpr:
		t := a.inferExpr(n.Sub)
		return a.setType(n, t)
	case *ast.UnaryExpr:
		t := a.inferExpr(n.Sub)
		return a.setType(n, t)
	case *ast.PostfixExpr:
		t := a.inferExpr(n.Sub)
		return a.setType(n, t)
	case *ast.BinaryExpr:
		return a.inferBinary(n)
	case *ast.AssignExpr:
		return a.inferAssign(n)
	case *ast.ConditionalExpr:
		a.inferExpr(n.Cond)
		thenT := a.inferExpr(n.Then)
		elseT := a.inferExpr(n.Else)
		result := thenT
		if thenT != elseT {
			if types.CanImplicitlyConvert(elseT, thenT) {
				result = thenT
			} else if types.CanImplicitlyConvert(thenT, elseT) {
				result = elseT
			} else {
				result = types.ErrorType
			}
		}
		return a.setType(n, result)
	case *ast.CommaExpr:
		var last *types.Desc = types.VoidType
		for _, it := range n.Items {
			last = a.inferExpr(it)
		}
		return a.setType(n, last)
	case *ast.IndexExpr:
		return a.inferIndex(n)
	case *ast.FieldExpr:
		return a.inferField(n)
	case *ast.CallExpr:
		return a.inferCall(n)
	case *ast.ConstructorCallExpr:
		return a.inferConstructorCall(n)
	case *ast.ArrayConstructorExpr:
		return a.inferArrayConstructor(n)
	case *ast.ImplicitCastExpr:
		return a.inferExpr(n.Sub)
	}
	return types.ErrorType
}

func (a *Analyzer) setType(e ast.Expr, t *types.Desc) *types.Desc {
	e.SetDeducedType(t)
	return t
}

func (a *Analyzer) inferIdent(n *ast.IdentExpr) *types.Desc {
	if v, ok := a.scope.Lookup(n.Name.Text); ok {
		dv := v
		n.ResolvedDecl = &dv
		return a.setType(n, a.typeOfDeclView(dv))
	}
	a.errorfAt(n.Range, diag.CodeUnknownIdentifier, "undeclared identifier %q", n.Name.Text)
	return a.setType(n, types.ErrorType)
}

// typeOfDeclView returns the resolved type of a previously-registered
// binding: a VarDecl declarator, a ParamDecl, or an interface-block
// member accessed by its flattened (blockMemberIndex*1000+declIndex)
// encoding used by registerInterfaceBlock for anonymous instances.
func (a *Analyzer) typeOfDeclView(v ast.DeclView) *types.Desc {
	switch d := v.Decl.(type) {
	case *ast.VarDecl:
		base := d.Type.Resolved
		if base == nil {
			base = a.resolveQualType(&d.Type)
		}
		if v.Index < 0 || v.Index >= len(d.Declarators) {
			return types.ErrorType
		}
		return arrayWrap(a.Interner, base, d.Declarators[v.Index].Array)
	case *ast.ParamDecl:
		base := d.QType.Resolved
		if base == nil {
			base = a.resolveQualType(&d.QType)
		}
		return arrayWrap(a.Interner, base, d.Array)
	case *ast.InterfaceBlockDecl:
		memberIdx := v.Index / 1000
		declIdx := v.Index % 1000
		if memberIdx < 0 || memberIdx >= len(d.Members) {
			return types.ErrorType
		}
		m := d.Members[memberIdx]
		base := m.Type.Resolved
		if base == nil {
			base = a.resolveQualType(&m.Type)
		}
		if declIdx < 0 || declIdx >= len(m.Declarators) {
			return types.ErrorType
		}
		return arrayWrap(a.Interner, base, m.Declarators[declIdx].Array)
	}
	return types.ErrorType
}

func (a *Analyzer) inferBinary(n *ast.BinaryExpr) *types.Desc {
	lt := a.inferExpr(n.Left)
	rt := a.inferExpr(n.Right)
	switch n.Op {
	case ast.BinEq, ast.BinNotEq, ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe:
		a.coerceBinaryOperands(n, lt, rt)
		return a.setType(n, a.Interner.Scalar(types.Bool))
	case ast.BinLogOr, ast.BinLogAnd, ast.BinLogXor:
		return a.setType(n, a.Interner.Scalar(types.Bool))
	}
	result := a.coerceBinaryOperands(n, lt, rt)
	return a.setType(n, result)
}

// coerceBinaryOperands picks the common arithmetic type of lt/rt
// (scalar-broadcast or widening), wrapping whichever side needs an
// implicit conversion in an ImplicitCastExpr so later passes (inlay
// hints) can surface it. It does not attempt full component-wise
// matrix/vector promotion rules beyond what types.CanImplicitlyConvert
// already encodes.
func (a *Analyzer) coerceBinaryOperands(n *ast.BinaryExpr, lt, rt *types.Desc) *types.Desc {
	if lt == rt {
		return lt
	}
	if types.IsError(lt) || types.IsError(rt) {
		return types.ErrorType
	}
	if types.CanImplicitlyConvert(rt, lt) {
		n.Right = a.wrapCast(n.Right, lt)
		return lt
	}
	if types.CanImplicitlyConvert(lt, rt) {
		n.Left = a.wrapCast(n.Left, rt)
		return rt
	}
	a.errorfAt(n.Range, diag.CodeTypeMismatch, "no common type for %s and %s", lt, rt)
	return types.ErrorType
}

// wrapCast builds an ImplicitCastExpr over e deducing to target,
// unless e already deduces to target (nothing to insert).
func (a *Analyzer) wrapCast(e ast.Expr, target *types.Desc) ast.Expr {
	if e.DeducedType() == target {
		return e
	}
	c := &ast.ImplicitCastExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindImplicitCastExpr, Range: ast.SyntaxRange{
		TU: e.Base().Range.TU, Begin: e.Base().Range.Begin, End: e.Base().Range.Begin,
	}}, Type: target}, Sub: e}
	a.Arena.Add(c)
	return c
}

func (a *Analyzer) inferAssign(n *ast.AssignExpr) *types.Desc {
	lt := a.inferExpr(n.Target)
	rt := a.inferExpr(n.Value)
	if !a.isLValue(n.Target) {
		a.errorfAt(n.Range, diag.CodeNotAnLValue, "assignment target is not an l-value")
	}
	if lt != rt && !types.IsError(lt) && !types.IsError(rt) {
		if types.CanImplicitlyConvert(rt, lt) {
			n.Value = a.wrapCast(n.Value, lt)
		} else {
			a.errorfAt(n.Range, diag.CodeTypeMismatch, "cannot assign %s to %s", rt, lt)
		}
	}
	return a.setType(n, lt)
}

// isLValue reports whether e denotes an assignable storage location:
// an identifier bound to a non-const variable, an index/field access
// on an l-value, or a parenthesized l-value.
func (a *Analyzer) isLValue(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.IdentExpr:
		if n.ResolvedDecl == nil {
			return false
		}
		if vd, ok := n.ResolvedDecl.Decl.(*ast.VarDecl); ok {
			return vd.Type.Qualifiers.Storage != ast.StorageConst
		}
		return true
	case *ast.IndexExpr:
		return a.isLValue(n.BaseExpr)
	case *ast.FieldExpr:
		return a.isLValue(n.BaseExpr)
	case *ast.ParenExpr:
		return a.isLValue(n.Sub)
	}
	return false
}

func (a *Analyzer) inferIndex(n *ast.IndexExpr) *types.Desc {
	bt := a.inferExpr(n.BaseExpr)
	a.inferExpr(n.Index)
	switch bt.Kind {
	case types.Array:
		return a.setType(n, bt.Elem)
	case types.Vector:
		return a.setType(n, a.Interner.Scalar(bt.Scalar))
	case types.Matrix:
		return a.setType(n, a.Interner.Vector(bt.Scalar, bt.Rows))
	}
	if !types.IsError(bt) {
		a.errorfAt(n.Range, diag.CodeTypeMismatch, "cannot index into %s", bt)
	}
	return a.setType(n, types.ErrorType)
}

func (a *Analyzer) inferField(n *ast.FieldExpr) *types.Desc {
	bt := a.inferExpr(n.BaseExpr)
	if bt.Kind == types.Vector {
		if count, ok := resolveSwizzle(n.Name.Text, bt.Cols); ok {
			n.IsSwizzle = true
			return a.setType(n, swizzleResultType(a.Interner, bt.Scalar, count))
		}
		a.errorfAt(n.Range, diag.CodeUnknownIdentifier, "invalid swizzle %q", n.Name.Text)
		return a.setType(n, types.ErrorType)
	}
	if bt.Kind == types.Struct {
		for i, m := range bt.Members {
			if m.Name == n.Name.Text {
				dv := ast.DeclView{Index: i}
				n.ResolvedDecl = &dv
				return a.setType(n, m.Type)
			}
		}
		a.errorfAt(n.Range, diag.CodeUnknownIdentifier, "no member %q on %s", n.Name.Text, bt)
		return a.setType(n, types.ErrorType)
	}
	if !types.IsError(bt) {
		a.errorfAt(n.Range, diag.CodeUnknownIdentifier, "cannot access field %q on %s", n.Name.Text, bt)
	}
	return a.setType(n, types.ErrorType)
}

func (a *Analyzer) inferCall(n *ast.CallExpr) *types.Desc {
	argTypes := make([]*types.Desc, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.inferExpr(arg)
	}
	name := n.Callee.Text
	if fns := a.scope.LookupFuncs(name); fns != nil {
		if fn, params, ok := a.resolveUserOverload(fns, argTypes); ok {
			n.ResolvedFunction = fn
			a.wrapCallArgs(n, params, argTypes)
			return a.setType(n, fn.ReturnType.Resolved)
		}
		a.errorfAt(n.Range, diag.CodeOverloadNotFound, "no matching overload for %q", name)
		return a.setType(n, types.ErrorType)
	}
	if overs := a.Builtins.Lookup(name); overs != nil {
		if ret, params, ok := a.resolveBuiltinOverload(overs, argTypes); ok {
			a.wrapCallArgs(n, params, argTypes)
			return a.setType(n, ret)
		}
		a.errorfAt(n.Range, diag.CodeOverloadNotFound, "no matching overload for builtin %q", name)
		return a.setType(n, types.ErrorType)
	}
	a.errorfAt(n.Range, diag.CodeOverloadNotFound, "unknown function %q", name)
	return a.setType(n, types.ErrorType)
}

// wrapCallArgs materializes an ImplicitCastExpr over each call argument
// whose static type differs from the matched overload's parameter type,
// the same bookkeeping coerceBinaryOperands does for binary/assignment
// operands, so inlay hints and anything else querying "the expression
// after implicit casts" see call-site conversions too, not just the
// ones on the built-in arithmetic operators.
func (a *Analyzer) wrapCallArgs(n *ast.CallExpr, params, argTypes []*types.Desc) {
	for i, pt := range params {
		if i >= len(n.Args) || pt == nil || argTypes[i] == pt {
			continue
		}
		n.Args[i] = a.wrapCast(n.Args[i], pt)
	}
}

func (a *Analyzer) resolveUserOverload(fns []*ast.FunctionDecl, args []*types.Desc) (*ast.FunctionDecl, []*types.Desc, bool) {
	var best *ast.FunctionDecl
	var bestParams []*types.Desc
	bestCost := -1
	for _, fn := range fns {
		if len(fn.Params) != len(args) {
			continue
		}
		cost := 0
		matched := true
		params := make([]*types.Desc, len(fn.Params))
		for i, p := range fn.Params {
			pt := p.QType.Resolved
			if pt == nil {
				pt = a.resolveQualType(&p.QType)
			}
			params[i] = pt
			c := types.ConversionCost(args[i], pt)
			if c < 0 {
				matched = false
				break
			}
			cost += c
		}
		if matched && (best == nil || cost < bestCost) {
			best, bestParams, bestCost = fn, params, cost
		}
	}
	return best, bestParams, best != nil
}

func (a *Analyzer) resolveBuiltinOverload(overs []Overload, args []*types.Desc) (*types.Desc, []*types.Desc, bool) {
	var best *types.Desc
	var bestParams []*types.Desc
	bestCost := -1
	for _, o := range overs {
		if len(o.Params) != len(args) {
			continue
		}
		cost := 0
		matched := true
		for i, pt := range o.Params {
			c := types.ConversionCost(args[i], pt)
			if c < 0 {
				matched = false
				break
			}
			cost += c
		}
		if matched && (best == nil || cost < bestCost) {
			best, bestParams, bestCost = o.Return, o.Params, cost
		}
	}
	return best, bestParams, best != nil
}

// inferConstructorCall type-checks `Type(args...)`: a scalar/vector/
// matrix constructor accepts a single scalar, vector or matrix
// argument, or a list of scalar and vector arguments whose component
// counts and component types are not checked; a struct constructor
// takes exactly one argument per member, convertible to that member's
// type.
func (a *Analyzer) inferConstructorCall(n *ast.ConstructorCallExpr) *types.Desc {
	argTypes := make([]*types.Desc, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = a.inferExpr(arg)
	}
	target := a.builtinTypeDesc(n.TypeTok.Text)
	if target == nil {
		for sd, desc := range a.structTypes {
			if sd.Name.Text == n.TypeTok.Text {
				target = desc
				break
			}
		}
	}
	if target == nil {
		a.errorfAt(n.Range, diag.CodeUnknownType, "unknown constructor type %q", n.TypeTok.Text)
		return a.setType(n, types.ErrorType)
	}
	if target.Kind == types.Struct {
		if len(n.Args) != len(target.Members) {
			a.errorfAt(n.Range, diag.CodeTypeMismatch, "struct %s constructor expects %d arguments, got %d", target, len(target.Members), len(n.Args))
		} else {
			for i, m := range target.Members {
				if !types.CanImplicitlyConvert(argTypes[i], m.Type) {
					a.errorfAt(n.Range, diag.CodeTypeMismatch, "argument %d: cannot convert %s to %s", i, argTypes[i], m.Type)
				}
			}
		}
		return a.setType(n, target)
	}
	// Scalar/vector/matrix constructor: a single scalar, vector or
	// matrix argument is accepted as is; otherwise every argument must
	// be a scalar or vector (its component type is not checked).
	if len(argTypes) == 1 && (argTypes[0].Kind == types.ScalarType || argTypes[0].Kind == types.Vector || argTypes[0].Kind == types.Matrix) {
		return a.setType(n, target)
	}
	for _, at := range argTypes {
		if at.Kind != types.ScalarType && at.Kind != types.Vector && !types.IsError(at) {
			a.errorfAt(n.Range, diag.CodeTypeMismatch, "invalid constructor argument type %s", at)
		}
	}
	return a.setType(n, target)
}

// inferArrayConstructor type-checks the `S[2](1,2)` array-constructor
// form: best-effort, since its grammar position is an open question
// the spec resolves by giving it its own node rather than overloading
// IndexExpr/CallExpr (see DESIGN.md). A length mismatch or an
// unconvertible element records a diagnostic but the node still
// deduces to the array type so the rest of the expression keeps going.
func (a *Analyzer) inferArrayConstructor(n *ast.ArrayConstructorExpr) *types.Desc {
	elem := a.builtinTypeDesc(n.ElemTypeTok.Text)
	if elem == nil {
		for sd, desc := range a.structTypes {
			if sd.Name.Text == n.ElemTypeTok.Text {
				elem = desc
				break
			}
		}
	}
	if elem == nil {
		a.errorfAt(n.Range, diag.CodeUnknownType, "unknown element type %q", n.ElemTypeTok.Text)
		elem = types.ErrorType
	}
	length := len(n.Args)
	lenSet := true
	if n.Length != nil {
		if v, ok := arrayLenOf(n.Length); ok {
			if v != length {
				a.errorfAt(n.Range, diag.CodeTypeMismatch, "array constructor length %d does not match %d initializers", v, length)
			}
			length = v
		}
	}
	for i, arg := range n.Args {
		at := a.inferExpr(arg)
		if !types.CanImplicitlyConvert(at, elem) {
			a.errorfAt(n.Range, diag.CodeTypeMismatch, "element %d: cannot convert %s to %s", i, at, elem)
		}
	}
	arr := a.Interner.Array(elem, length, lenSet)
	return a.setType(n, arr)
}
