package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// References finds every occurrence of the symbol under pos: a full
// AST walk collecting every IdentExpr/FieldExpr whose ResolvedDecl
// equals the target, plus the declaration site itself when
// includeDeclaration is set.
func References(cfg Config, info *query.Info, mainPath string, pos source.Position, includeDeclaration bool) []Location {
	if !cfg.ReferenceEnable {
		return nil
	}
	n := findEnclosing(info, pos)
	if n == nil {
		return nil
	}
	target, ok := declViewOf(n)
	if !ok {
		return nil
	}

	declTok := declNameToken(target)
	v := &referenceCollector{target: target}
	ast.Walk(v, info.Root)
	if includeDeclaration && declTok.ID.Valid() {
		v.hits = append(v.hits, declTok)
	}

	var out []Location
	for _, tok := range v.hits {
		r := info.LookupSpelledTextRange(ast.SyntaxRange{TU: tok.ID.TU, Begin: tok.ID.Index, End: tok.ID.Index + 1})
		out = append(out, Location{File: mainPath, Range: r})
	}
	return out
}

type referenceCollector struct {
	ast.BaseVisitor
	target ast.DeclView
	hits   []ast.SyntaxToken
}

func (v *referenceCollector) Visit(n ast.Node) {
	switch e := n.(type) {
	case *ast.IdentExpr:
		if e.ResolvedDecl != nil && e.ResolvedDecl.Equal(v.target) {
			v.hits = append(v.hits, e.Name)
		}
	case *ast.FieldExpr:
		if e.ResolvedDecl != nil && e.ResolvedDecl.Equal(v.target) {
			v.hits = append(v.hits, e.Name)
		}
	}
}
