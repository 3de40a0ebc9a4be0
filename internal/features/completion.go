package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/lexer"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
	"github.com/teranos/glslls/internal/types"
)

// Completion decides the completion context by a targeted AST walk,
// then emits either member-access items (field/swizzle/length on a
// resolved base expression) or the general keyword/declaration set.
func Completion(cfg Config, info *query.Info, preambleDecls []ast.Decl, pos source.Position) CompletionList {
	if !cfg.CompletionEnable {
		return CompletionList{}
	}

	if dotIdx := info.LookupDotTokenIndex(pos); dotIdx >= 0 {
		if base, pending := baseExprBeforeDot(info, dotIdx); base != nil {
			return memberCompletion(base, pending)
		}
	}

	idx := info.LookupTokenByPosition(pos)
	var replaceRange *source.Range
	if idx >= 0 && info.Tokens[idx].Klass == lexer.Identifier {
		r := info.LookupSpelledTextRange(ast.SyntaxRange{TU: info.TU, Begin: idx, End: idx + 1})
		replaceRange = &r
	}

	var items []CompletionItem
	items = append(items, keywordItems(replaceRange)...)
	items = append(items, declItems(preambleDecls, replaceRange)...)
	items = append(items, enclosingLocalItems(info, pos, replaceRange)...)
	return CompletionList{Items: items}
}

// baseExprBeforeDot finds the FieldExpr ending at the `.` token, using
// its base expression's deduced type to drive member completion and
// its own Name token as the swizzle/field text already typed, if any.
func baseExprBeforeDot(info *query.Info, dotIdx int) (ast.Expr, string) {
	v := &dotBaseFinder{target: dotIdx}
	ast.Walk(v, info.Root)
	return v.found, v.pending
}

type dotBaseFinder struct {
	ast.BaseVisitor
	target  int
	found   ast.Expr
	pending string
}

func (f *dotBaseFinder) Enter(n ast.Node) ast.Policy {
	if n.Base().Range.Begin <= f.target && f.target < n.Base().Range.End {
		return ast.Traverse
	}
	if n.Base().Range.End <= f.target {
		return ast.Leave
	}
	return ast.Halt
}

func (f *dotBaseFinder) Visit(n ast.Node) {
	if f.found != nil {
		return
	}
	if fe, ok := n.(*ast.FieldExpr); ok && fe.BaseExpr != nil {
		f.found = fe.BaseExpr
		f.pending = fe.Name.Text
	}
}

func memberCompletion(base ast.Expr, pending string) CompletionList {
	t := base.DeducedType()
	if t == nil {
		return CompletionList{}
	}
	var items []CompletionItem
	switch t.Kind {
	case types.Array, types.Vector, types.Matrix:
		items = append(items, CompletionItem{Label: "length", Kind: ItemMethod})
	}
	if t.Kind == types.Vector {
		items = append(items, swizzleItems(t.Cols, pending)...)
		return CompletionList{Incomplete: true, Items: items}
	}
	if t.Kind == types.Struct {
		for _, m := range t.Members {
			items = append(items, CompletionItem{Label: m.Name, Kind: ItemField, Detail: m.Type.String()})
		}
	}
	return CompletionList{Items: items}
}

// swizzleComponentSets lists the three component alphabets GLSL allows
// for a vector swizzle; one swizzle only ever draws from a single one
// of them (never e.g. ".xr").
var swizzleComponentSets = [][]rune{[]rune("xyzw"), []rune("rgba"), []rune("stpq")}

// swizzleItems extends the swizzle text already typed (pending) by one
// character at a time up to length 4, drawn only from the component
// set its own characters belong to: ".x" on a vec4 offers "x, xx, xy,
// xz, xw", never an "r"/"s"-family component. With no pending text yet
// (the cursor sits right after the `.`), every single-character
// component across all three sets is offered instead.
func swizzleItems(vectorSize int, pending string) []CompletionItem {
	if pending == "" {
		var items []CompletionItem
		for _, alpha := range swizzleComponentSets {
			for _, ch := range alpha {
				items = append(items, CompletionItem{Label: string(ch), Kind: ItemField})
			}
		}
		return items
	}

	set := swizzleSetFor(rune(pending[0]))
	if set == nil || len(pending) >= 4 {
		if set == nil {
			return nil
		}
		return []CompletionItem{{Label: pending, Kind: ItemField}}
	}

	items := []CompletionItem{{Label: pending, Kind: ItemField}}
	for i := 0; i < vectorSize && i < len(set); i++ {
		items = append(items, CompletionItem{Label: pending + string(set[i]), Kind: ItemField})
	}
	return items
}

func swizzleSetFor(ch rune) []rune {
	for _, alpha := range swizzleComponentSets {
		for _, c := range alpha {
			if c == ch {
				return alpha
			}
		}
	}
	return nil
}

func keywordItems(replaceRange *source.Range) []CompletionItem {
	var items []CompletionItem
	for k := lexer.KeywordBegin + 1; k < lexer.KeywordEnd; k++ {
		items = append(items, CompletionItem{Label: k.String(), Kind: ItemKeyword, ReplaceRange: replaceRange})
	}
	return items
}

// declItems emits one item per preamble declaration, filtered to the
// kinds completion should ever suggest (functions, vars, structs;
// precision statements and interface blocks, named or not, are
// skipped).
func declItems(decls []ast.Decl, replaceRange *source.Range) []CompletionItem {
	var items []CompletionItem
	for _, d := range decls {
		items = append(items, declItemsFor(d, replaceRange)...)
	}
	return items
}

func declItemsFor(d ast.Decl, replaceRange *source.Range) []CompletionItem {
	switch n := d.(type) {
	case *ast.FunctionDecl:
		return []CompletionItem{{Label: n.Name.Text, Kind: ItemFunction, Detail: reprintFunctionSignature(n), ReplaceRange: replaceRange}}
	case *ast.StructDecl:
		if n.Name.Text == "" {
			return nil
		}
		return []CompletionItem{{Label: n.Name.Text, Kind: ItemStruct, ReplaceRange: replaceRange}}
	case *ast.VarDecl:
		var out []CompletionItem
		for _, decl := range n.Declarators {
			if decl.NameToken.Text == "" {
				continue
			}
			out = append(out, CompletionItem{Label: decl.NameToken.Text, Kind: ItemVariable, ReplaceRange: replaceRange})
		}
		return out
	}
	return nil
}

// enclosingLocalItems collects global decls plus the enclosing
// function's locals that textually precede the cursor, by a second
// restricted AST walk over the main file.
func enclosingLocalItems(info *query.Info, pos source.Position, replaceRange *source.Range) []CompletionItem {
	idx := info.LookupTokenByPosition(pos)
	if idx < 0 {
		return declItems(info.Root.Decls, replaceRange)
	}
	var items []CompletionItem
	items = append(items, declItems(info.Root.Decls, replaceRange)...)

	for _, d := range info.Root.Decls {
		fn, ok := d.(*ast.FunctionDecl)
		if !ok || fn.Body == nil {
			continue
		}
		if fn.Base().Range.Begin > idx || idx >= fn.Base().Range.End {
			continue
		}
		for _, p := range fn.Params {
			if p.Type.NameToken.Text == "" {
				continue
			}
			items = append(items, CompletionItem{Label: p.Type.NameToken.Text, Kind: ItemTypeParameter, ReplaceRange: replaceRange})
		}
		items = append(items, localsBeforeCursor(fn.Body, idx, replaceRange)...)
	}
	return items
}

func localsBeforeCursor(cs *ast.CompoundStmt, idx int, replaceRange *source.Range) []CompletionItem {
	var items []CompletionItem
	for _, s := range cs.Stmts {
		if s.Base().Range.Begin >= idx {
			break
		}
		switch n := s.(type) {
		case *ast.DeclStmt:
			for _, decl := range n.Decl.Declarators {
				if decl.NameToken.Text == "" {
					continue
				}
				items = append(items, CompletionItem{Label: decl.NameToken.Text, Kind: ItemVariable, ReplaceRange: replaceRange})
			}
		case *ast.CompoundStmt:
			if n.Base().Range.Begin <= idx && idx < n.Base().Range.End {
				items = append(items, localsBeforeCursor(n, idx, replaceRange)...)
			}
		}
	}
	return items
}
