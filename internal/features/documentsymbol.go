package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// DocumentSymbol is one outline entry; Children holds struct/interface
// block members nested under their owning declaration.
type DocumentSymbol struct {
	Name     string
	Kind     SymbolKind
	Range    source.Range
	Children []DocumentSymbol
}

// DocumentSymbols returns one entry per global declaration in the main
// file, clipped to its expanded text range.
func DocumentSymbols(cfg Config, info *query.Info) []DocumentSymbol {
	if !cfg.DocumentSymbolEnable {
		return nil
	}
	var out []DocumentSymbol
	for _, d := range info.Root.Decls {
		if sym, ok := symbolFor(info, d); ok {
			out = append(out, sym)
		}
	}
	return out
}

func symbolFor(info *query.Info, d ast.Decl) (DocumentSymbol, bool) {
	switch n := d.(type) {
	case *ast.FunctionDecl:
		return DocumentSymbol{Name: n.Name.Text, Kind: SymbolFunction, Range: info.LookupSpelledTextRange(n.Base().Range)}, true
	case *ast.StructDecl:
		sym := DocumentSymbol{Name: n.Name.Text, Kind: SymbolStruct, Range: info.LookupSpelledTextRange(n.Base().Range)}
		for _, m := range n.Members {
			for _, decl := range m.Declarators {
				sym.Children = append(sym.Children, DocumentSymbol{
					Name: decl.NameToken.Text, Kind: SymbolField,
					Range: info.LookupSpelledTextRange(ast.SyntaxRange{TU: decl.NameToken.ID.TU, Begin: decl.NameToken.ID.Index, End: decl.NameToken.ID.Index + 1}),
				})
			}
		}
		return sym, true
	case *ast.InterfaceBlockDecl:
		sym := DocumentSymbol{Name: n.Name.Text, Kind: SymbolInterfaceBlock, Range: info.LookupSpelledTextRange(n.Base().Range)}
		for _, m := range n.Members {
			for _, decl := range m.Declarators {
				sym.Children = append(sym.Children, DocumentSymbol{
					Name: decl.NameToken.Text, Kind: SymbolField,
					Range: info.LookupSpelledTextRange(ast.SyntaxRange{TU: decl.NameToken.ID.TU, Begin: decl.NameToken.ID.Index, End: decl.NameToken.ID.Index + 1}),
				})
			}
		}
		return sym, true
	case *ast.VarDecl:
		if len(n.Declarators) == 0 {
			return DocumentSymbol{}, false
		}
		name := n.Declarators[0].NameToken.Text
		if name == "" {
			return DocumentSymbol{}, false
		}
		return DocumentSymbol{Name: name, Kind: SymbolVariable, Range: info.LookupSpelledTextRange(n.Base().Range)}, true
	}
	return DocumentSymbol{}, false
}
