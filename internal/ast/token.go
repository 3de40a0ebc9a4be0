// Package ast defines the node hierarchy produced by the parser: a
// closed tagged-variant node set whose nodes are linked by pointer,
// plus the token identity model (TranslationUnitID, SyntaxTokenID,
// SyntaxRange) every node's range is expressed in.
package ast

import "github.com/teranos/glslls/internal/lexer"

// TranslationUnitID names one of the three token streams a compilation
// ever addresses into.
type TranslationUnitID int

const (
	SystemPreamble TranslationUnitID = iota
	UserPreamble
	UserFile
)

func (tu TranslationUnitID) String() string {
	switch tu {
	case SystemPreamble:
		return "system-preamble"
	case UserPreamble:
		return "user-preamble"
	case UserFile:
		return "user-file"
	}
	return "?"
}

// SyntaxTokenID is the only identity used inside the AST: a token
// index into one translation unit's RawToken array.
type SyntaxTokenID struct {
	TU    TranslationUnitID
	Index int
}

// InvalidTokenID is the "no token" sentinel (Index -1) used where a
// pointer-based AST would use nil. The zero SyntaxTokenID is not
// invalid: it names token 0 and reports Valid.
var InvalidTokenID = SyntaxTokenID{TU: UserFile, Index: -1}

func (id SyntaxTokenID) Valid() bool { return id.Index >= 0 }

// SyntaxRange is a half-open [Begin, End) range of token indices into
// one translation unit. An empty range still carries Begin, pointing
// at the first token after the range's position.
type SyntaxRange struct {
	TU    TranslationUnitID
	Begin int
	End   int
}

// Empty reports whether the range spans zero tokens.
func (r SyntaxRange) Empty() bool { return r.Begin >= r.End }

// BackID returns the index of the range's last token (End-1).
func (r SyntaxRange) BackID() SyntaxTokenID { return SyntaxTokenID{TU: r.TU, Index: r.End - 1} }

// BeginTokenID returns the identity of the range's first token.
func (r SyntaxRange) BeginTokenID() SyntaxTokenID { return SyntaxTokenID{TU: r.TU, Index: r.Begin} }

// Contains reports whether r wholly contains s (both in the same TU).
func (r SyntaxRange) Contains(s SyntaxRange) bool {
	return r.TU == s.TU && r.Begin <= s.Begin && s.End <= r.End
}

// SyntaxToken is a cheap value struct used directly in AST leaves
// (identifiers, numeric literals, operators) instead of a token index,
// since leaves need the spelling immediately and copying one token is
// cheaper than an indirection through the TU's token array.
type SyntaxToken struct {
	ID    SyntaxTokenID
	Klass lexer.Kind
	Text  string
}
