package features

import (
	"fmt"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// InlayHintKind distinguishes the three independent emitters so a
// transport layer can apply its own presentation (padding, kind icon)
// per category.
type InlayHintKind int

const (
	HintArgumentName InlayHintKind = iota
	HintImplicitCast
	HintBlockEnd
)

// InlayHint is one hint: a label rendered at Pos, optionally before
// the token at that position (argument-name, implicit-cast) or after
// it (block-end).
type InlayHint struct {
	Pos   source.Position
	Label string
	Kind  InlayHintKind
}

// InlayHints runs the three emitters config gates independently
// enable, over the full range of the document (the LSP request's
// range is a langserver-layer concern: clip results there, not here).
func InlayHints(cfg Config, info *query.Info) []InlayHint {
	if !cfg.InlayHint.Enable {
		return nil
	}
	v := &inlayHintVisitor{cfg: cfg, info: info}
	ast.Walk(v, info.Root)
	return v.hints
}

type inlayHintVisitor struct {
	ast.BaseVisitor
	cfg   Config
	info  *query.Info
	hints []InlayHint
}

func (v *inlayHintVisitor) Visit(n ast.Node) {
	switch e := n.(type) {
	case *ast.CallExpr:
		if v.cfg.InlayHint.EnableArgumentNameHint && e.ResolvedFunction != nil {
			v.emitArgumentNames(e)
		}
	case *ast.ImplicitCastExpr:
		if v.cfg.InlayHint.EnableImplicitCastHint {
			v.emitImplicitCast(e)
		}
	case *ast.FunctionDecl:
		if v.cfg.InlayHint.EnableBlockEndHint {
			v.emitBlockEnd(e)
		}
	}
}

func (v *inlayHintVisitor) emitArgumentNames(call *ast.CallExpr) {
	for i, arg := range call.Args {
		if i >= len(call.ResolvedFunction.Params) {
			break
		}
		param := call.ResolvedFunction.Params[i]
		name := param.Type.NameToken.Text
		if name == "" {
			continue
		}
		if param.QType.Qualifiers.Storage == ast.StorageOut || param.QType.Qualifiers.Storage == ast.StorageInout {
			name = "&" + name
		}
		r := v.info.LookupSpelledTextRange(arg.Base().Range)
		v.hints = append(v.hints, InlayHint{Pos: r.Start, Label: name + ":", Kind: HintArgumentName})
	}
}

func (v *inlayHintVisitor) emitImplicitCast(cast *ast.ImplicitCastExpr) {
	rng := cast.Base().Range
	if !rng.Empty() {
		return // only a zero-width (single-token-start) source range gets a cast hint
	}
	if cast.DeducedType() == nil {
		return
	}
	r := v.info.LookupSpelledTextRange(rng)
	v.hints = append(v.hints, InlayHint{Pos: r.Start, Label: fmt.Sprintf("(%s)", cast.DeducedType()), Kind: HintImplicitCast})
}

func (v *inlayHintVisitor) emitBlockEnd(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}
	r := v.info.LookupSpelledTextRange(fn.Body.Base().Range)
	lines := r.End.Line - r.Start.Line
	if lines < v.cfg.InlayHint.BlockEndHintLineThreshold {
		return
	}
	v.hints = append(v.hints, InlayHint{Pos: r.End, Label: "// " + fn.Name.Text, Kind: HintBlockEnd})
}
