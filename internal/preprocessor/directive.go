package preprocessor

import (
	"strconv"
	"strings"

	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/lexer"
	"github.com/teranos/glslls/internal/source"
)

// handleDirective parses and executes one `#...` logical line. It
// returns any tokens that should be spliced into the caller's output
// stream (non-empty only for #include, whose nested processFile call
// emits the included file's fully preprocessed tokens).
func (pp *Preprocessor) handleDirective(path, trimmed string, cond *condStack, depth int) []Token {
	body := strings.TrimPrefix(trimmed, "#")
	body = strings.TrimLeft(body, " \t")
	name, rest := splitDirectiveName(body)

	toks := lexer.ScanAll(rest, pp.opts.CountUTF16)
	// drop the trailing EOF marker every ScanAll call appends
	if len(toks) > 0 && toks[len(toks)-1].Klass == lexer.EOF {
		toks = toks[:len(toks)-1]
	}

	switch name {
	case "define":
		if cond.Emitting() {
			pp.handleDefine(toks)
		}
	case "undef":
		if cond.Emitting() && len(toks) > 0 {
			delete(pp.macros, toks[0].Text)
		}
	case "ifdef":
		_, ok := pp.macros[firstIdent(toks)]
		cond.PushIf(ok)
	case "ifndef":
		_, ok := pp.macros[firstIdent(toks)]
		cond.PushIf(!ok)
	case "if":
		v, errMsg := pp.evalIfTokens(toks)
		if errMsg != "" {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeMalformedIf, errMsg)
		}
		cond.PushIf(v != 0)
	case "elif":
		v, errMsg := pp.evalIfTokens(toks)
		if errMsg != "" {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeMalformedIf, errMsg)
		}
		if !cond.Elif(v != 0) {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeMalformedIf, "#elif without matching #if")
		}
	case "else":
		if !cond.Else() {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeMalformedIf, "#else without matching #if")
		}
	case "endif":
		if !cond.Pop() {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeMalformedIf, "#endif without matching #if")
		}
	case "include":
		return pp.handleInclude(path, rest, depth)
	case "version":
		if n, err := strconv.Atoi(firstIdent(toks)); err == nil {
			pp.version = n
		}
		if len(toks) > 1 {
			pp.stage = toks[1].Text
		}
	case "extension":
		// recorded for completeness; no behavior gates on it today
	case "pragma":
		// no-op: GLSL pragmas (e.g. optimize, debug) don't affect analysis
	case "line":
		// line-number remapping is not surfaced to feature handlers
	case "error":
		pp.diags.Addf(source.Range{}, diag.Fatal, diag.CodeUserError, strings.TrimSpace(rest))
	default:
		pp.diags.Addf(source.Range{}, diag.Warning, diag.CodeUnknownDirective, "unknown directive #"+name)
	}
	return nil
}

func splitDirectiveName(body string) (name, rest string) {
	i := 0
	for i < len(body) && (isIdentByte(body[i])) {
		i++
	}
	return body[:i], strings.TrimLeft(body[i:], " \t")
}

func isIdentByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z') || (b >= '0' && b <= '9')
}

func firstIdent(toks []lexer.RawToken) string {
	if len(toks) == 0 {
		return ""
	}
	return toks[0].Text
}

func (pp *Preprocessor) handleDefine(toks []lexer.RawToken) {
	if len(toks) == 0 {
		return
	}
	m := &Macro{Name: toks[0].Text}
	rest := toks[1:]
	if len(rest) > 0 && rest[0].Klass == lexer.LParen {
		m.IsFunctionLike = true
		rest = rest[1:]
		for len(rest) > 0 && rest[0].Klass != lexer.RParen {
			if rest[0].Klass == lexer.Identifier {
				if rest[0].Text == "__VA_ARGS__" {
					m.IsVariadic = true
				}
				m.Params = append(m.Params, rest[0].Text)
			}
			rest = rest[1:]
			if len(rest) > 0 && rest[0].Klass == lexer.Comma {
				rest = rest[1:]
			}
		}
		if len(rest) > 0 && rest[0].Klass == lexer.RParen {
			rest = rest[1:]
		}
	}
	m.Replacement = rest
	pp.macros[m.Name] = m
	pp.store.Record(SymbolOccurrence{Kind: OccMacroDefinition, MacroName: m.Name, Macro: m})
}

// evalIfTokens resolves `defined(NAME)`/`defined NAME` against the
// live macro table (before expansion, since `defined` must see the
// raw identifier), macro-expands everything else, then evaluates the
// resulting constant expression.
func (pp *Preprocessor) evalIfTokens(toks []lexer.RawToken) (int64, string) {
	resolved := make([]lexer.RawToken, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if toks[i].Klass == lexer.Identifier && toks[i].Text == "defined" {
			var name string
			if i+1 < len(toks) && toks[i+1].Klass == lexer.LParen && i+2 < len(toks) {
				name = toks[i+2].Text
				i += 3
				if i < len(toks) && toks[i].Klass == lexer.RParen {
					// consumed by caller's loop increment
				} else {
					i--
				}
			} else if i+1 < len(toks) {
				name = toks[i+1].Text
				i++
			}
			_, ok := pp.macros[name]
			v := int64(0)
			if ok {
				v = 1
			}
			resolved = append(resolved, lexer.RawToken{Klass: lexer.IntConstant, Text: strconv.FormatInt(v, 10)})
			continue
		}
		resolved = append(resolved, toks[i])
	}

	ets := make([]expTok, len(resolved))
	for i, t := range resolved {
		ets[i] = expTok{raw: t, hide: hideSet{}}
	}
	ex := &expander{macros: pp.macros, recursionLimit: pp.opts.MaxMacroRecursion}
	expanded := ex.expand(ets)
	final := make([]lexer.RawToken, len(expanded))
	for i, t := range expanded {
		final[i] = t.raw
	}
	return evalIf(final)
}

func (pp *Preprocessor) handleInclude(fromPath, rest string, depth int) []Token {
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 {
		pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "malformed #include")
		return nil
	}
	angled := rest[0] == '<'
	var name string
	if angled {
		end := strings.IndexByte(rest, '>')
		if end < 0 {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "malformed #include")
			return nil
		}
		name = rest[1:end]
	} else if rest[0] == '"' {
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "malformed #include")
			return nil
		}
		name = rest[1 : 1+end]
	} else {
		pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "malformed #include")
		return nil
	}

	if pp.loader == nil {
		pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "no include resolver configured")
		return nil
	}
	resolvedPath, ok := pp.loader.Resolve(name, angled, resolveIncludeDir(fromPath), pp.opts.IncludePaths)
	if !ok {
		pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "cannot find include file "+name)
		return nil
	}
	text, err := pp.loader.Read(resolvedPath)
	if err != nil {
		pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeNotFound, "cannot read include file "+name)
		return nil
	}
	pp.store.Record(SymbolOccurrence{Kind: OccHeaderName, HeaderName: name, ResolvedPath: resolvedPath})
	return pp.processFile(resolvedPath, text, depth+1)
}
