package features

import (
	"sort"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
)

// TokenType enumerates the semantic-token legend advertised at
// initialize, in the fixed order the LSP response indexes into.
type TokenType int

const (
	TokNamespace TokenType = iota
	TokType
	TokClass
	TokEnum
	TokParameter
	TokVariable
	TokProperty
	TokFunction
	TokMethod
	TokMacro
	TokKeyword
	TokModifier
	TokString
	TokNumber
	TokOperator
)

// TokenModifier bits, OR-combined into one modifier mask per token.
const (
	ModDeclaration uint32 = 1 << iota
	ModReadonly
	ModDefaultLibrary
)

// SemanticToken is one (line, startChar, length, type, modifiers)
// record before delta encoding.
type SemanticToken struct {
	Line, StartChar, Length int
	Type                    TokenType
	Modifiers               uint32
}

// SemanticTokens walks the AST emitting one record per identifier-like
// leaf, then returns them sorted by position ready for delta encoding
// (the delta arithmetic itself is a transport-layer concern, since it
// depends on the exact LSP int array shape).
func SemanticTokens(cfg Config, info *query.Info) []SemanticToken {
	if !cfg.SemanticTokenEnable {
		return nil
	}
	v := &semanticTokenVisitor{info: info}
	ast.Walk(v, info.Root)
	sort.Slice(v.toks, func(i, j int) bool {
		if v.toks[i].Line != v.toks[j].Line {
			return v.toks[i].Line < v.toks[j].Line
		}
		return v.toks[i].StartChar < v.toks[j].StartChar
	})
	return v.toks
}

type semanticTokenVisitor struct {
	ast.BaseVisitor
	info *query.Info
	toks []SemanticToken
}

func (v *semanticTokenVisitor) Visit(n ast.Node) {
	switch e := n.(type) {
	case *ast.IdentExpr:
		v.emit(e.Name, classify(e.ResolvedDecl), modifiersFor(e.ResolvedDecl))
	case *ast.FieldExpr:
		v.emit(e.Name, TokProperty, modifiersFor(e.ResolvedDecl))
	case *ast.CallExpr:
		if e.ResolvedFunction != nil {
			v.emit(e.Callee, TokFunction, 0)
		} else {
			v.emit(e.Callee, TokFunction, ModDefaultLibrary)
		}
	case *ast.FunctionDecl:
		v.emit(e.Name, TokFunction, ModDeclaration)
	case *ast.StructDecl:
		v.emit(e.Name, TokType, ModDeclaration)
	}
}

func (v *semanticTokenVisitor) emit(tok ast.SyntaxToken, typ TokenType, mods uint32) {
	if !tok.ID.Valid() || tok.Text == "" {
		return
	}
	r := v.info.LookupSpelledTextRange(ast.SyntaxRange{TU: tok.ID.TU, Begin: tok.ID.Index, End: tok.ID.Index + 1})
	v.toks = append(v.toks, SemanticToken{
		Line: r.Start.Line, StartChar: r.Start.Character, Length: r.End.Character - r.Start.Character,
		Type: typ, Modifiers: mods,
	})
}

func classify(v *ast.DeclView) TokenType {
	if v == nil {
		return TokVariable
	}
	switch v.Decl.(type) {
	case *ast.ParamDecl:
		return TokParameter
	case *ast.FunctionDecl:
		return TokFunction
	case *ast.StructDecl:
		return TokType
	}
	return TokVariable
}

func modifiersFor(v *ast.DeclView) uint32 {
	if v == nil {
		return 0
	}
	if vd, ok := v.Decl.(*ast.VarDecl); ok && vd.Type.Qualifiers.Storage == ast.StorageConst {
		return ModReadonly
	}
	return 0
}
