package preprocessor

import (
	"strconv"
	"strings"

	"github.com/teranos/glslls/internal/lexer"
)

// hideSet is the blue-painting set attached to each token during
// expansion: a macro name present in a token's hide set may not be
// re-expanded through that token, preventing infinite recursion on
// directly or indirectly self-referential macros.
type hideSet map[string]bool

func (h hideSet) with(name string) hideSet {
	n := make(hideSet, len(h)+1)
	for k := range h {
		n[k] = true
	}
	n[name] = true
	return n
}

func unionHide(a, b hideSet) hideSet {
	n := make(hideSet, len(a)+len(b))
	for k := range a {
		n[k] = true
	}
	for k := range b {
		n[k] = true
	}
	return n
}

// expTok is one token mid-expansion: a raw lexical token, its
// blue-painting hide set, and the spelled-location metadata that
// expansion carries forward unchanged from the macro-use site so that
// every produced token still has a meaningful spelled range.
type expTok struct {
	raw         lexer.RawToken
	hide        hideSet
	spelledFile string
	useSite     lexer.RawToken // the token that triggered the expansion producing this one
}

// expander expands one token stream to fixed point, consulting macros
// and recording OnMacroExpansion-equivalent bookkeeping through
// recordExpansion. recursionLimit guards against runaway expansions
// that blue-painting alone doesn't catch (e.g. mutually recursive
// macros with distinct names forming a long but finite chain which
// this still bounds defensively).
type expander struct {
	macros         map[string]*Macro
	recursionLimit int
	steps          int
	onError        func(msg string)
}

func (e *expander) expand(in []expTok) []expTok {
	out := make([]expTok, 0, len(in))
	i := 0
	for i < len(in) {
		e.steps++
		if e.steps > e.recursionLimit*max(1, len(in)) {
			if e.onError != nil {
				e.onError("macro expansion recursion limit exceeded")
			}
			out = append(out, in[i:]...)
			return out
		}
		t := in[i]
		if t.raw.Klass == lexer.Identifier {
			if m, ok := e.macros[t.raw.Text]; ok && !t.hide[t.raw.Text] {
				if !m.IsFunctionLike {
					repl := e.instantiate(m, nil, t.hide.with(m.Name), t.raw)
					in = spliceTokens(in, i, i+1, repl)
					continue
				}
				if j := nextNonSpaceIdx(in, i+1); j < len(in) && in[j].raw.Klass == lexer.LParen {
					args, _, end, ok := collectArgs(in, j, m.IsVariadic)
					if ok {
						endHide := hideSet{}
						if end-1 >= 0 && end-1 < len(in) {
							endHide = in[end-1].hide
						}
						combinedHide := unionHide(t.hide, endHide).with(m.Name)
						repl := e.instantiate(m, args, combinedHide, t.raw)
						in = spliceTokens(in, i, end, repl)
						continue
					}
				}
			}
		}
		out = append(out, t)
		i++
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func nextNonSpaceIdx(ts []expTok, i int) int { return i } // tokenizer already strips trivia

func spliceTokens(ts []expTok, from, to int, repl []expTok) []expTok {
	out := make([]expTok, 0, len(ts)-(to-from)+len(repl))
	out = append(out, ts[:from]...)
	out = append(out, repl...)
	out = append(out, ts[to:]...)
	return out
}

// collectArgs parses a parenthesized, comma-separated argument list
// starting at the '(' index lp, honoring nested parens. Returns the
// per-argument raw token slices, the same slices duplicated as
// rawArgs (kept distinct so callers can choose pre-expanded vs raw
// per parameter use), the index just past the matching ')', and
// whether parsing succeeded.
func collectArgs(ts []expTok, lp int, variadic bool) (args [][]expTok, rawArgs [][]expTok, end int, ok bool) {
	depth := 0
	i := lp
	var cur []expTok
	for i < len(ts) {
		t := ts[i]
		switch t.raw.Klass {
		case lexer.LParen:
			depth++
			if depth > 1 {
				cur = append(cur, t)
			}
		case lexer.RParen:
			depth--
			if depth == 0 {
				if len(cur) > 0 || len(args) > 0 {
					args = append(args, cur)
				}
				i++
				return args, args, i, true
			}
			cur = append(cur, t)
		case lexer.Comma:
			if depth == 1 {
				args = append(args, cur)
				cur = nil
			} else {
				cur = append(cur, t)
			}
		default:
			cur = append(cur, t)
		}
		i++
	}
	return nil, nil, lp, false
}

// instantiate substitutes a macro's replacement list for one use,
// applying stringize (#) and paste (##) where the grammar requires,
// and pre-expanding each argument before substitution except where it
// appears in a stringize or paste position, per the spec.
func (e *expander) instantiate(m *Macro, args [][]expTok, hide hideSet, useSite lexer.RawToken) []expTok {
	paramIndex := func(name string) int {
		for i, p := range m.Params {
			if p == name {
				return i
			}
		}
		return -1
	}
	argFor := func(idx int) []expTok {
		if idx < 0 {
			return nil
		}
		if m.IsVariadic && idx == len(m.Params)-1 {
			var joined []expTok
			for i := idx; i < len(args); i++ {
				if i > idx {
					joined = append(joined, expTok{raw: lexer.RawToken{Klass: lexer.Comma, Text: ","}})
				}
				joined = append(joined, args[i]...)
			}
			return joined
		}
		if idx >= len(args) {
			return nil
		}
		return args[idx]
	}

	var out []expTok
	repl := m.Replacement
	for i := 0; i < len(repl); i++ {
		rt := repl[i]
		if rt.Klass == lexer.Hash && m.IsFunctionLike && i+1 < len(repl) && repl[i+1].Klass == lexer.Identifier {
			if pi := paramIndex(repl[i+1].Text); pi >= 0 {
				str := stringizeArg(argFor(pi))
				out = append(out, expTok{raw: lexer.RawToken{Klass: lexer.Identifier, Text: str}, hide: hide, useSite: useSite})
				i++
				continue
			}
		}
		if rt.Klass == lexer.Identifier {
			if pi := paramIndex(rt.Text); pi >= 0 {
				pasteBefore := i > 0 && repl[i-1].Klass == lexer.HashHash
				pasteAfter := i+1 < len(repl) && repl[i+1].Klass == lexer.HashHash
				var substituted []expTok
				if pasteBefore || pasteAfter {
					for _, a := range argFor(pi) {
						substituted = append(substituted, expTok{raw: a.raw, hide: hide, useSite: useSite})
					}
				} else {
					expanded := e.expand(wrapUseSite(argFor(pi), hide, useSite))
					substituted = expanded
				}
				out = append(out, substituted...)
				continue
			}
		}
		if rt.Klass == lexer.HashHash {
			if len(out) > 0 && i+1 < len(repl) {
				continue // handled by pasting with the next emitted token below
			}
		}
		tok := expTok{raw: rt, hide: hide, useSite: useSite}
		if i > 0 && repl[i-1].Klass == lexer.HashHash && len(out) > 0 {
			out[len(out)-1] = pasteTokens(out[len(out)-1], tok)
			continue
		}
		out = append(out, tok)
	}
	return out
}

func wrapUseSite(ts []expTok, hide hideSet, useSite lexer.RawToken) []expTok {
	out := make([]expTok, len(ts))
	for i, t := range ts {
		out[i] = expTok{raw: t.raw, hide: unionHide(t.hide, hide), useSite: useSite}
	}
	return out
}

func stringizeArg(ts []expTok) string {
	var parts []string
	for _, t := range ts {
		parts = append(parts, t.raw.Text)
	}
	joined := strings.Join(parts, " ")
	return strconv.Quote(joined)
}

func pasteTokens(a, b expTok) expTok {
	merged := a.raw.Text + b.raw.Text
	toks := lexer.ScanAll(merged, false)
	klass := lexer.Identifier
	if len(toks) > 0 {
		klass = toks[0].Klass
	}
	a.raw.Text = merged
	a.raw.Klass = klass
	return a
}
