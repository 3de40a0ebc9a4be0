// Package query provides read-only lookups over one compiled
// translation unit — token-by-position, node-by-position, and
// spelled/expanded range projection — that every feature handler
// builds on instead of re-walking the AST itself.
package query

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/internal/source"
)

// Info answers position/range questions about one translation unit's
// compiled form: its token stream (for spelled-location lookups) and
// its AST root (for node-containment lookups).
type Info struct {
	TU     ast.TranslationUnitID
	Tokens []preprocessor.Token
	Root   *ast.TranslationUnit
	Store  *preprocessor.SymbolStore
}

// New wraps one TU's compiled token stream and AST for querying.
func New(tu ast.TranslationUnitID, tokens []preprocessor.Token, root *ast.TranslationUnit, store *preprocessor.SymbolStore) *Info {
	return &Info{TU: tu, Tokens: tokens, Root: root, Store: store}
}

// LookupTokenByPosition returns the index of the token whose spelled
// range contains pos in the main file, or -1 if none does (pos falls
// in whitespace/a comment, or past the end of the file).
func (q *Info) LookupTokenByPosition(pos source.Position) int {
	for i, t := range q.Tokens {
		r := spelledRange(t)
		if r.ContainsExtended(pos) {
			return i
		}
	}
	return -1
}

// LookupToken returns the SyntaxToken at index i, or the zero value
// with ok=false if i is out of range.
func (q *Info) LookupToken(i int) (ast.SyntaxToken, bool) {
	if i < 0 || i >= len(q.Tokens) {
		return ast.SyntaxToken{}, false
	}
	t := q.Tokens[i]
	return ast.SyntaxToken{ID: ast.SyntaxTokenID{TU: q.TU, Index: i}, Klass: t.Klass, Text: t.Text}, true
}

// LookupTokens returns the SyntaxTokens for [begin, end).
func (q *Info) LookupTokens(begin, end int) []ast.SyntaxToken {
	if begin < 0 {
		begin = 0
	}
	if end > len(q.Tokens) {
		end = len(q.Tokens)
	}
	out := make([]ast.SyntaxToken, 0, end-begin)
	for i := begin; i < end; i++ {
		t, ok := q.LookupToken(i)
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// LookupSpelledTextRange converts an ast.SyntaxRange (token indices in
// this TU) to its spelled source.Range, as written by the user,
// possibly inside an included file — callers that need "is this range
// in the main file" should pair this with LookupSpelledTextRangeInMainFile.
func (q *Info) LookupSpelledTextRange(r ast.SyntaxRange) source.Range {
	if len(q.Tokens) == 0 || r.Begin < 0 || r.Begin >= len(q.Tokens) {
		return source.Range{}
	}
	endIdx := r.End - 1
	if endIdx < r.Begin || endIdx >= len(q.Tokens) {
		endIdx = r.Begin
	}
	start := spelledRange(q.Tokens[r.Begin])
	end := spelledRange(q.Tokens[endIdx])
	return source.Range{Start: start.Start, End: end.End}
}

// LookupSpelledTextRangeInMainFile is LookupSpelledTextRange but
// returns ok=false when the range's tokens were spelled inside an
// included file rather than the main file itself.
func (q *Info) LookupSpelledTextRangeInMainFile(r ast.SyntaxRange, mainPath string) (source.Range, bool) {
	if r.Begin < 0 || r.Begin >= len(q.Tokens) {
		return source.Range{}, false
	}
	if q.Tokens[r.Begin].SpelledFile != mainPath {
		return source.Range{}, false
	}
	return q.LookupSpelledTextRange(r), true
}

// LookupExpandedTextRange converts r to a range over the synthesized
// expanded-token stream's index space (begin/end token indices), the
// addressing space macro-expansion-aware features (semantic tokens,
// folding) generally want instead of spelled positions.
func (q *Info) LookupExpandedTextRange(r ast.SyntaxRange) (begin, end int) {
	return r.Begin, r.End
}

// LookupExpandedTextRangeExtended is LookupExpandedTextRange but
// treats the end index as inclusive of one more token, matching
// completion's "cursor sits right after this token" semantics.
func (q *Info) LookupExpandedTextRangeExtended(r ast.SyntaxRange) (begin, end int) {
	return r.Begin, r.End + 1
}

func spelledRange(t preprocessor.Token) source.Range {
	return source.Range{
		Start: source.Position{Line: t.SpelledRange.LineStart, Character: t.SpelledRange.ColStart},
		End:   source.Position{Line: t.SpelledRange.LineEnd, Character: t.SpelledRange.ColEnd},
	}
}

// ContainsPosition reports whether n's syntactic range contains the
// token index corresponding to pos.
func (q *Info) ContainsPosition(n ast.Node, pos source.Position) bool {
	idx := q.LookupTokenByPosition(pos)
	if idx < 0 {
		return false
	}
	r := n.Base().Range
	return r.Begin <= idx && idx < r.End
}

// PrecedesPosition reports whether n's range lies wholly before pos.
func (q *Info) PrecedesPosition(n ast.Node, pos source.Position) bool {
	idx := q.LookupTokenByPosition(pos)
	if idx < 0 {
		return false
	}
	return n.Base().Range.End <= idx
}

// SucceedsPosition reports whether n's range lies wholly after pos.
func (q *Info) SucceedsPosition(n ast.Node, pos source.Position) bool {
	idx := q.LookupTokenByPosition(pos)
	if idx < 0 {
		return false
	}
	return n.Base().Range.Begin > idx
}

// LookupDotTokenIndex returns the token index of the `.` immediately
// before pos, or -1 if the token at/just-before pos is not a Dot —
// used by completion to detect "the user just typed a field access".
// Both `v.|` (cursor right after the dot) and `v.x|` are recognized.
func (q *Info) LookupDotTokenIndex(pos source.Position) int {
	idx := q.LookupTokenByPosition(pos)
	if idx < 0 {
		return -1
	}
	if q.Tokens[idx].Text == "." && spelledRange(q.Tokens[idx]).End.Equal(pos) {
		return idx
	}
	if idx > 0 && q.Tokens[idx-1].Text == "." {
		return idx - 1
	}
	return -1
}

// nodeFinder walks the AST collecting the innermost node whose range
// contains the target token index, using ContainsPolicy for pruning.
type nodeFinder struct {
	ast.BaseVisitor
	target int
	found  ast.Node
}

// Enter prunes with ContainsPolicy but turns its Halt into Leave: a Halt
// ends the whole walk before the post-order Visit of the nodes that
// contain the target whenever one of their children follows it.
func (f *nodeFinder) Enter(n ast.Node) ast.Policy {
	if p := ast.ContainsPolicy(n, f.target); p != ast.Halt {
		return p
	}
	return ast.Leave
}

// Visit fires in post-order, so on the single ancestor chain that
// contains the target token the innermost node's Visit call happens
// first; keep that one instead of letting an ancestor overwrite it.
func (f *nodeFinder) Visit(n ast.Node) {
	if f.found == nil {
		f.found = n
	}
}

// QueryNodeByPosition returns the innermost AST node whose range
// contains the token at pos, or nil if pos falls before/after every
// top-level declaration or in unreachable trivia.
func (q *Info) QueryNodeByPosition(pos source.Position) ast.Node {
	idx := q.LookupTokenByPosition(pos)
	if idx < 0 {
		return nil
	}
	f := &nodeFinder{target: idx}
	ast.Walk(f, q.Root)
	return f.found
}

// QuerySymbolByPosition returns the preprocessor symbol occurrence
// (header name, macro definition/expansion/undef) covering the given
// spelled offset in the main file, delegating to the SymbolStore
// built during preprocessing.
func (q *Info) QuerySymbolByPosition(file string, byteOffset int) (preprocessor.SymbolOccurrence, bool) {
	if q.Store == nil {
		return preprocessor.SymbolOccurrence{}, false
	}
	return q.Store.Query(file, byteOffset)
}
