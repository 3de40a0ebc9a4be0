package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// Definition resolves the symbol under pos and returns the location of
// its declaration: a macro's #define site, or an AST decl's name
// token's spelled-in-main-file range. Returns ok=false when nothing
// resolves, or the decl's name token was spelled outside the main
// file (so the client cannot navigate to it directly).
func Definition(cfg Config, info *query.Info, mainPath string, pos source.Position) (Location, bool) {
	if !cfg.DefinitionEnable {
		return Location{}, false
	}
	return resolveDefinitionLocation(info, mainPath, pos)
}

// Declaration is the same resolution Definition performs; GLSL has no
// separate forward-declaration concept for the server to distinguish,
// so both LSP methods share one implementation.
func Declaration(cfg Config, info *query.Info, mainPath string, pos source.Position) (Location, bool) {
	if !cfg.DeclarationEnable {
		return Location{}, false
	}
	return resolveDefinitionLocation(info, mainPath, pos)
}

func resolveDefinitionLocation(info *query.Info, mainPath string, pos source.Position) (Location, bool) {
	idx := info.LookupTokenByPosition(pos)
	if idx < 0 {
		return Location{}, false
	}
	if occ, ok := info.QuerySymbolByPosition(mainPath, info.Tokens[idx].SpelledRange.ByteOffset); ok {
		if occ.Kind == preprocessor.OccMacroDefinition {
			return Location{File: mainPath, Range: source.Range{
				Start: source.Position{Line: occ.Range.LineStart, Character: occ.Range.ColStart},
				End:   source.Position{Line: occ.Range.LineEnd, Character: occ.Range.ColEnd},
			}}, true
		}
	}

	n := findEnclosing(info, pos)
	if n == nil {
		return Location{}, false
	}
	decl, ok := declViewOf(n)
	if !ok {
		return Location{}, false
	}
	tok := declNameToken(decl)
	if !tok.ID.Valid() {
		return Location{}, false
	}
	r, ok := info.LookupSpelledTextRangeInMainFile(ast.SyntaxRange{TU: tok.ID.TU, Begin: tok.ID.Index, End: tok.ID.Index + 1}, mainPath)
	if !ok {
		return Location{}, false
	}
	return Location{File: mainPath, Range: r}, true
}
