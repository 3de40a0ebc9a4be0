package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
)

// FoldingRange is one collapsible region, given in zero-based lines.
type FoldingRange struct {
	StartLine, EndLine int
}

// FoldingRanges emits a range for every compound statement, struct
// body, and interface-block body whose start and end lines differ.
func FoldingRanges(cfg Config, info *query.Info) []FoldingRange {
	if !cfg.FoldingRangeEnable {
		return nil
	}
	v := &foldingVisitor{info: info}
	ast.Walk(v, info.Root)
	return v.ranges
}

type foldingVisitor struct {
	ast.BaseVisitor
	info   *query.Info
	ranges []FoldingRange
}

func (v *foldingVisitor) Visit(n ast.Node) {
	switch n.(type) {
	case *ast.CompoundStmt, *ast.StructDecl, *ast.InterfaceBlockDecl:
		v.add(n.Base().Range)
	}
}

func (v *foldingVisitor) add(rng ast.SyntaxRange) {
	r := v.info.LookupSpelledTextRange(rng)
	if r.Start.Line == r.End.Line {
		return
	}
	v.ranges = append(v.ranges, FoldingRange{StartLine: r.Start.Line, EndLine: r.End.Line})
}
