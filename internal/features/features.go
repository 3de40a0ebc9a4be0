// Package features implements every language-feature handler
// (completion, hover, definition, references, semantic tokens, inlay
// hints, document symbol, signature help, folding range, diagnostics)
// as a pure function of (Config, *query.Info, params) -> response,
// reusing the AST walk machinery the query package exposes instead of
// re-deriving position handling per handler.
package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// InlayHintConfig gates the three independent inlay-hint emitters.
type InlayHintConfig struct {
	Enable                  bool
	EnableArgumentNameHint   bool
	EnableImplicitCastHint   bool
	EnableBlockEndHint       bool
	BlockEndHintLineThreshold int
}

// Config mirrors the recognized configuration options, gating each
// provider independently so a client can disable expensive features.
type Config struct {
	CompletionEnable     bool
	HoverEnable          bool
	SignatureHelpEnable  bool
	DeclarationEnable    bool
	DefinitionEnable     bool
	ReferenceEnable      bool
	DocumentSymbolEnable bool
	SemanticTokenEnable  bool
	FoldingRangeEnable   bool
	DiagnosticEnable     bool
	InlayHint            InlayHintConfig
}

// Location pairs a range with the file it is expressed in — the
// feature-layer analogue of LSP's Location, kept transport-agnostic so
// internal/langserver is the only package that knows about glsp types.
type Location struct {
	File  string
	Range source.Range
}

// SymbolKind mirrors the subset of LSP's SymbolKind this server emits.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolStruct
	SymbolField
	SymbolInterfaceBlock
	SymbolParameter
)

// CompletionItemKind mirrors the subset of LSP's CompletionItemKind.
type CompletionItemKind int

const (
	ItemKeyword CompletionItemKind = iota
	ItemVariable
	ItemFunction
	ItemField
	ItemStruct
	ItemMethod
	ItemTypeParameter
)

// CompletionItem is one suggestion, with an optional replacement range
// (nil means "insert at cursor", matching the after-`.` case).
type CompletionItem struct {
	Label      string
	Kind       CompletionItemKind
	Detail     string
	ReplaceRange *source.Range
}

// CompletionList is the response to a completion request; Incomplete
// signals the client should re-request on further typing (used for
// the swizzle-extension suggestion set).
type CompletionList struct {
	Incomplete bool
	Items      []CompletionItem
}

// findEnclosing returns the innermost node whose range contains pos in
// info's translation unit, or nil.
func findEnclosing(info *query.Info, pos source.Position) ast.Node {
	return info.QueryNodeByPosition(pos)
}

// declViewOf extracts the DeclView an expression node resolved to, if
// any — the single choke point every symbol-based feature goes through.
func declViewOf(n ast.Node) (ast.DeclView, bool) {
	switch e := n.(type) {
	case *ast.IdentExpr:
		if e.ResolvedDecl != nil {
			return *e.ResolvedDecl, true
		}
	case *ast.FieldExpr:
		if e.ResolvedDecl != nil {
			return *e.ResolvedDecl, true
		}
	}
	return ast.DeclView{}, false
}

// declNameToken returns the SyntaxToken spelling the given declared
// name's identifier, used both to compute its range and to compare
// occurrences for References.
func declNameToken(v ast.DeclView) ast.SyntaxToken {
	switch d := v.Decl.(type) {
	case *ast.VarDecl:
		if v.Index >= 0 && v.Index < len(d.Declarators) {
			return d.Declarators[v.Index].NameToken
		}
	case *ast.ParamDecl:
		return d.Type.NameToken
	case *ast.FunctionDecl:
		return d.Name
	case *ast.StructDecl:
		return d.Name
	case *ast.InterfaceBlockDecl:
		if d.InstanceName.Text == "" && v.Index >= 0 {
			memberIdx, declIdx := v.Index/1000, v.Index%1000
			if memberIdx < len(d.Members) && declIdx < len(d.Members[memberIdx].Declarators) {
				return d.Members[memberIdx].Declarators[declIdx].NameToken
			}
		}
		return d.InstanceName
	}
	return ast.SyntaxToken{}
}
