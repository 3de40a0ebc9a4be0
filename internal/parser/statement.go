package parser

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/lexer"
)

// ParseStatement parses one statement, dispatching on the leading
// token and falling back to the expression-statement/declaration
// disambiguation when nothing more specific matches.
func (p *Parser) ParseStatement() Result[ast.Stmt] {
	begin := p.pos
	switch p.cur().Klass {
	case lexer.LBrace:
		return p.parseCompound()
	case lexer.KwIf:
		return p.parseIf(begin)
	case lexer.KwWhile:
		return p.parseWhile(begin)
	case lexer.KwDo:
		return p.parseDoWhile(begin)
	case lexer.KwFor:
		return p.parseFor(begin)
	case lexer.KwSwitch:
		return p.parseSwitch(begin)
	case lexer.KwCase:
		return p.parseCaseLabel(begin, false)
	case lexer.KwDefault:
		return p.parseCaseLabel(begin, true)
	case lexer.KwBreak:
		p.advance()
		p.expect(lexer.Semicolon)
		n := &ast.BreakStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindBreakStmt, Range: p.rangeFrom(begin)}}}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	case lexer.KwContinue:
		p.advance()
		p.expect(lexer.Semicolon)
		n := &ast.ContinueStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindContinueStmt, Range: p.rangeFrom(begin)}}}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	case lexer.KwDiscard:
		p.advance()
		p.expect(lexer.Semicolon)
		n := &ast.DiscardStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindDiscardStmt, Range: p.rangeFrom(begin)}}}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	case lexer.KwReturn:
		p.advance()
		var val ast.Expr
		if p.cur().Klass != lexer.Semicolon {
			v := p.ParseExpression()
			if v.OK {
				val = v.Node
			}
		}
		p.expect(lexer.Semicolon)
		n := &ast.ReturnStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindReturnStmt, Range: p.rangeFrom(begin)}}, Value: val}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	case lexer.Semicolon:
		p.advance()
		n := &ast.ExprStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindExprStmt, Range: p.rangeFrom(begin)}}}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	}

	if p.looksLikeDeclaration() {
		d := p.parseVarDecl()
		if !d.OK {
			return fail[ast.Stmt]()
		}
		n := &ast.DeclStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindDeclStmt, Range: p.rangeFrom(begin)}}, Decl: d.Node}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	}

	e := p.ParseExpression()
	if !e.OK {
		p.recover(RecoverSemi)
		n := &ast.ErrorStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindErrorStmt, Range: p.rangeFrom(begin)}}}
		p.Arena.Add(n)
		return ok[ast.Stmt](n)
	}
	p.expect(lexer.Semicolon)
	n := &ast.ExprStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindExprStmt, Range: p.rangeFrom(begin)}}, Expr: e.Node}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

// looksLikeDeclaration disambiguates a declaration from an expression
// statement with a bounded two-token lookahead: a leading qualifier
// keyword, a builtin type name, or `Identifier Identifier` (a
// user-defined type name followed by a declarator name) all start a
// declaration; anything else starts an expression.
func (p *Parser) looksLikeDeclaration() bool {
	k := p.cur().Klass
	if isQualifierKeyword(k) || k == lexer.KwStruct || k == lexer.KwPrecision {
		return true
	}
	if lexer.IsBuiltinTypeName(k) {
		return true
	}
	if k == lexer.Identifier && p.peekAt(1).Klass == lexer.Identifier {
		return true
	}
	return false
}

func (p *Parser) parseCompound() Result[ast.Stmt] {
	begin := p.pos
	if _, okTok := p.expect(lexer.LBrace); !okTok {
		return fail[ast.Stmt]()
	}
	var stmts []ast.Stmt
	for p.cur().Klass != lexer.RBrace && !p.atEnd() {
		start := p.pos
		s := p.ParseStatement()
		if s.OK {
			stmts = append(stmts, s.Node)
		} else {
			p.recover(RecoverSemi)
			if p.pos == start {
				p.advance()
			}
		}
	}
	p.expect(lexer.RBrace)
	n := &ast.CompoundStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindCompoundStmt, Range: p.rangeFrom(begin)}}, Stmts: stmts}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

func (p *Parser) parseParenCond() ast.Expr {
	if _, okTok := p.expect(lexer.LParen); !okTok {
		p.recover(RecoverParen)
		return nil
	}
	e := p.ParseExpression()
	if !e.OK {
		p.recover(RecoverParen)
		return nil
	}
	p.expect(lexer.RParen)
	return e.Node
}

func (p *Parser) parseIf(begin int) Result[ast.Stmt] {
	p.advance()
	cond := p.parseParenCond()
	then := p.ParseStatement()
	if !then.OK {
		return fail[ast.Stmt]()
	}
	var elseS ast.Stmt
	if _, okTok := p.accept(lexer.KwElse); okTok {
		e := p.ParseStatement()
		if e.OK {
			elseS = e.Node
		}
	}
	n := &ast.IfStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindIfStmt, Range: p.rangeFrom(begin)}}, Cond: cond, Then: then.Node, Else: elseS}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

func (p *Parser) parseWhile(begin int) Result[ast.Stmt] {
	p.advance()
	cond := p.parseParenCond()
	body := p.ParseStatement()
	if !body.OK {
		return fail[ast.Stmt]()
	}
	n := &ast.WhileStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindWhileStmt, Range: p.rangeFrom(begin)}}, Cond: cond, Body: body.Node}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

func (p *Parser) parseDoWhile(begin int) Result[ast.Stmt] {
	p.advance()
	body := p.ParseStatement()
	if !body.OK {
		return fail[ast.Stmt]()
	}
	p.expect(lexer.KwWhile)
	cond := p.parseParenCond()
	p.expect(lexer.Semicolon)
	n := &ast.DoWhileStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindDoWhileStmt, Range: p.rangeFrom(begin)}}, Body: body.Node, Cond: cond}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

func (p *Parser) parseFor(begin int) Result[ast.Stmt] {
	p.advance()
	p.expect(lexer.LParen)
	var initS ast.Stmt
	if p.cur().Klass != lexer.Semicolon {
		i := p.ParseStatement() // consumes its own trailing ';'
		if i.OK {
			initS = i.Node
		}
	} else {
		p.advance()
	}
	var cond ast.Expr
	if p.cur().Klass != lexer.Semicolon {
		c := p.ParseExpression()
		if c.OK {
			cond = c.Node
		}
	}
	p.expect(lexer.Semicolon)
	var post ast.Expr
	if p.cur().Klass != lexer.RParen {
		ps := p.ParseExpression()
		if ps.OK {
			post = ps.Node
		}
	}
	p.expect(lexer.RParen)
	body := p.ParseStatement()
	if !body.OK {
		return fail[ast.Stmt]()
	}
	n := &ast.ForStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindForStmt, Range: p.rangeFrom(begin)}}, Init: initS, Cond: cond, Post: post, Body: body.Node}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

func (p *Parser) parseSwitch(begin int) Result[ast.Stmt] {
	p.advance()
	cond := p.parseParenCond()
	p.expect(lexer.LBrace)
	var cases []ast.Stmt
	for p.cur().Klass != lexer.RBrace && !p.atEnd() {
		start := p.pos
		s := p.ParseStatement()
		if s.OK {
			cases = append(cases, s.Node)
		} else {
			p.recover(RecoverSemi)
			if p.pos == start {
				p.advance()
			}
		}
	}
	p.expect(lexer.RBrace)
	n := &ast.SwitchStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindSwitchStmt, Range: p.rangeFrom(begin)}}, Cond: cond, Cases: cases}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}

func (p *Parser) parseCaseLabel(begin int, isDefault bool) Result[ast.Stmt] {
	p.advance()
	var e ast.Expr
	if !isDefault {
		v := p.ParseExpression()
		if v.OK {
			e = v.Node
		}
	}
	p.expect(lexer.Colon)
	n := &ast.CaseLabelStmt{StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Tag: ast.KindCaseLabelStmt, Range: p.rangeFrom(begin)}}, Expr: e}
	p.Arena.Add(n)
	return ok[ast.Stmt](n)
}
