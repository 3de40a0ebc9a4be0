package preprocessor

import "github.com/teranos/glslls/internal/lexer"

// Token is one post-preprocessing token: a raw lexical token carrying
// both its spelled location (where it was actually written, possibly
// inside an included file or a macro body) and its expanded location
// (its position in the synthesized main-file stream). For a token
// that passed through untouched, Spelled and Expanded coincide modulo
// file identity.
type Token struct {
	Klass lexer.Kind
	Text  string

	SpelledFile  string
	SpelledRange SpelledRange

	// ExpandedIndex is this token's own index in the emitted stream;
	// ExpandedRange narrows to a single-token span built from it, kept
	// alongside for callers that want a range rather than an index.
	ExpandedIndex int
	ExpandedRange ExpandedRange

	// FromMacro is set when this token was produced by expanding a
	// macro rather than copied verbatim from the source.
	FromMacro bool
}

func spelledRangeOf(file string, t lexer.RawToken) SpelledRange {
	return SpelledRange{
		File: file,
		LineStart: t.LineStart, ColStart: t.ColStart,
		LineEnd: t.LineEnd, ColEnd: t.ColEnd,
		ByteOffset: t.ByteOffset, ByteEnd: t.ByteEnd,
	}
}
