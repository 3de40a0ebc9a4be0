// Package parser implements predictive recursive-descent parsing of
// the post-preprocessing GLSL token stream into an AST, with
// four-mode error recovery so that one malformed construct never
// aborts the whole file.
package parser

import (
	"fmt"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/lexer"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/internal/source"
)

// Result is returned by a Parse* method: success=false means the
// caller should engage recovery rather than trust Node.
type Result[T any] struct {
	OK   bool
	Node T
}

func ok[T any](n T) Result[T]   { return Result[T]{OK: true, Node: n} }
func fail[T any]() Result[T]    { var z T; return Result[T]{OK: false, Node: z} }

// Parser holds the token cursor and shared state for one translation
// unit's parse. A small lookahead (k ≤ 2) suffices for GLSL's grammar;
// Parser never looks further than peekAt(2).
type Parser struct {
	TU     ast.TranslationUnitID
	toks   []preprocessor.Token
	pos    int
	Arena  *ast.Arena
	Diags  *diag.List
	MainFile string
}

// New creates a Parser over one translation unit's post-PP token
// stream.
func New(tu ast.TranslationUnitID, toks []preprocessor.Token, mainFile string, diags *diag.List) *Parser {
	return &Parser{TU: tu, toks: toks, Arena: ast.NewArena(), Diags: diags, MainFile: mainFile}
}

func (p *Parser) at(i int) preprocessor.Token {
	if i < 0 || i >= len(p.toks) {
		return preprocessor.Token{Klass: lexer.EOF}
	}
	return p.toks[i]
}

func (p *Parser) cur() preprocessor.Token    { return p.at(p.pos) }
func (p *Parser) peekAt(n int) preprocessor.Token { return p.at(p.pos + n) }
func (p *Parser) atEnd() bool                { return p.cur().Klass == lexer.EOF }

func (p *Parser) curID() ast.SyntaxTokenID { return ast.SyntaxTokenID{TU: p.TU, Index: p.pos} }

func (p *Parser) curSyntaxToken() ast.SyntaxToken {
	t := p.cur()
	return ast.SyntaxToken{ID: p.curID(), Klass: t.Klass, Text: t.Text}
}

// advance consumes and returns the current token's SyntaxToken form.
func (p *Parser) advance() ast.SyntaxToken {
	t := p.curSyntaxToken()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// accept consumes and returns (token, true) if the current token's
// Klass matches k, else returns (zero, false) without advancing.
func (p *Parser) accept(k lexer.Kind) (ast.SyntaxToken, bool) {
	if p.cur().Klass == k {
		return p.advance(), true
	}
	return ast.SyntaxToken{}, false
}

// expect consumes the current token if it matches k, else records a
// syntax-error diagnostic at the current position and returns false
// without advancing, so the caller can choose a recovery mode.
func (p *Parser) expect(k lexer.Kind) (ast.SyntaxToken, bool) {
	if t, okTok := p.accept(k); okTok {
		return t, true
	}
	p.errorf(diag.CodeSyntaxError, "expected %s, found %s", k, p.cur().Klass)
	return ast.SyntaxToken{}, false
}

func (p *Parser) errorf(code diag.Code, format string, args ...any) {
	r := p.currentRange()
	p.Diags.Addf(r, diag.Error, code, fmt.Sprintf(format, args...))
}

func (p *Parser) currentRange() source.Range {
	t := p.cur()
	return source.Range{
		Start: source.Position{Line: t.SpelledRange.LineStart, Character: t.SpelledRange.ColStart},
		End:   source.Position{Line: t.SpelledRange.LineEnd, Character: t.SpelledRange.ColEnd},
	}
}

func (p *Parser) rangeFrom(begin int) ast.SyntaxRange {
	return ast.SyntaxRange{TU: p.TU, Begin: begin, End: p.pos}
}

// ParseTranslationUnit parses the whole token stream as a sequence of
// top-level declarations, recovering after each failure so that one
// malformed declaration does not prevent the rest of the file from
// being analyzed.
func (p *Parser) ParseTranslationUnit() *ast.TranslationUnit {
	begin := p.pos
	tu := &ast.TranslationUnit{DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindTranslationUnit}}}
	for !p.atEnd() {
		start := p.pos
		d := p.parseTopLevelDecl()
		if d.OK {
			tu.Decls = append(tu.Decls, d.Node)
		} else {
			p.recover(RecoverSemi)
			if p.pos == start {
				p.advance() // ensure forward progress
			}
		}
	}
	tu.Range = p.rangeFrom(begin)
	p.Arena.Add(tu)
	return tu
}
