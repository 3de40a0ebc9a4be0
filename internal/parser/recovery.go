package parser

import "github.com/teranos/glslls/internal/lexer"

// Mode names the four recovery strategies, keyed by the token that
// would close the current construct.
type Mode int

const (
	RecoverParen Mode = iota
	RecoverBracket
	RecoverBrace
	RecoverSemi
)

// recover scans forward skipping balanced ()/[]/{} until it finds the
// requested closer at the outermost level or reaches a `;`, matching
// the spec's four recovery modes. It never deletes tokens: every
// token skipped here is still covered by the ErrorExpr/ErrorStmt range
// the caller builds from the recovery's start/end positions.
func (p *Parser) recover(mode Mode) {
	depthParen, depthBracket, depthBrace := 0, 0, 0
	for !p.atEnd() {
		k := p.cur().Klass
		switch k {
		case lexer.LParen:
			depthParen++
		case lexer.RParen:
			if depthParen == 0 && mode == RecoverParen {
				p.advance()
				return
			}
			if depthParen > 0 {
				depthParen--
			}
		case lexer.LBracket:
			depthBracket++
		case lexer.RBracket:
			if depthBracket == 0 && mode == RecoverBracket {
				p.advance()
				return
			}
			if depthBracket > 0 {
				depthBracket--
			}
		case lexer.LBrace:
			depthBrace++
		case lexer.RBrace:
			if depthBrace == 0 && mode == RecoverBrace {
				p.advance()
				return
			}
			if depthBrace > 0 {
				depthBrace--
			}
		case lexer.Semicolon:
			if depthParen == 0 && depthBracket == 0 && depthBrace == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
