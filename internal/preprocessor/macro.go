// Package preprocessor implements GLSL's lexical preprocessor: macro
// expansion with blue-painting, conditional inclusion, #include
// resolution with cycle detection, and the dual spelled/expanded
// position model every later stage addresses into.
package preprocessor

import "github.com/teranos/glslls/internal/lexer"

// Macro is one #define'd object-like or function-like macro.
type Macro struct {
	Name            string
	Params          []string // nil for an object-like macro
	IsVariadic      bool
	IsFunctionLike  bool
	Replacement     []lexer.RawToken
	DefinitionLine  int
	DefinitionFile  string
}

// OccurrenceKind tags the kind of use recorded for a macro-name
// occurrence, per the spec's PPSymbolOccurrence union.
type OccurrenceKind int

const (
	OccHeaderName OccurrenceKind = iota
	OccMacroDefinition
	OccMacroExpand
	OccMacroIfDef
	OccMacroIfNDef
	OccMacroUndef
)

// SymbolOccurrence is a tagged record at a spelled text range, the Go
// expression of the spec's PPSymbolOccurrence union. Exactly the
// fields relevant to Kind are populated.
type SymbolOccurrence struct {
	Kind OccurrenceKind

	// Range is the spelled range of the occurrence itself (the macro
	// name token, or the header-name token).
	Range SpelledRange

	// HeaderName / ResolvedPath: valid when Kind == OccHeaderName.
	HeaderName   string
	ResolvedPath string

	// MacroName: valid for every macro-related Kind.
	MacroName string
	// Macro: the resolved definition, nil if undefined at use site
	// (e.g. #ifdef testing a name that was never defined).
	Macro *Macro
	// ExpansionRange: valid when Kind == OccMacroExpand; the full
	// expanded-stream span the expansion replaced.
	ExpansionRange ExpandedRange
}

// SpelledRange locates text in the file it was actually written in.
type SpelledRange struct {
	File       string
	LineStart  int
	ColStart   int
	LineEnd    int
	ColEnd     int
	ByteOffset int
	ByteEnd    int
}

// ExpandedRange locates a token's position in the synthesized
// main-file token stream after macro expansion and include inlining.
type ExpandedRange struct {
	Start int // index into the emitted RawToken array
	End   int
}
