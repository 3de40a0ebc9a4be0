package parser

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/lexer"
)

// ParseExpression parses a full comma expression: the entry point for
// any expression context that permits the comma operator (statement
// expressions, for-loop clauses).
func (p *Parser) ParseExpression() Result[ast.Expr] {
	begin := p.pos
	first := p.parseAssignment()
	if !first.OK {
		return fail[ast.Expr]()
	}
	items := []ast.Expr{first.Node}
	for {
		if _, okTok := p.accept(lexer.Comma); !okTok {
			break
		}
		next := p.parseAssignment()
		if !next.OK {
			return fail[ast.Expr]()
		}
		items = append(items, next.Node)
	}
	if len(items) == 1 {
		return ok(items[0])
	}
	n := &ast.CommaExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindCommaExpr, Range: p.rangeFrom(begin)}}, Items: items}
	p.Arena.Add(n)
	return ok[ast.Expr](n)
}

// parseAssignment handles the right-associative assignment operators,
// falling through to the ternary conditional when no `=`-family
// operator follows the first assignment-candidate subexpression.
func (p *Parser) parseAssignment() Result[ast.Expr] {
	begin := p.pos
	lhs := p.parseConditional()
	if !lhs.OK {
		return fail[ast.Expr]()
	}
	opTok, okOp := assignOps[p.cur().Klass]
	if !okOp {
		return lhs
	}
	opSyn := p.advance()
	rhs := p.parseAssignment()
	if !rhs.OK {
		return fail[ast.Expr]()
	}
	n := &ast.AssignExpr{
		ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindAssignExpr, Range: p.rangeFrom(begin)}},
		Op:       opTok, OpTok: opSyn, Target: lhs.Node, Value: rhs.Node,
	}
	p.Arena.Add(n)
	return ok[ast.Expr](n)
}

// parseConditional handles `cond ? then : else`, right-associative in
// the else branch, between assignment and logical-OR in precedence.
func (p *Parser) parseConditional() Result[ast.Expr] {
	begin := p.pos
	cond := p.parseBinary(0)
	if !cond.OK {
		return fail[ast.Expr]()
	}
	if _, okTok := p.accept(lexer.Question); !okTok {
		return cond
	}
	thenE := p.ParseExpression()
	if !thenE.OK {
		return fail[ast.Expr]()
	}
	if _, okTok := p.expect(lexer.Colon); !okTok {
		return fail[ast.Expr]()
	}
	elseE := p.parseAssignment()
	if !elseE.OK {
		return fail[ast.Expr]()
	}
	n := &ast.ConditionalExpr{
		ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindConditionalExpr, Range: p.rangeFrom(begin)}},
		Cond: cond.Node, Then: thenE.Node, Else: elseE.Node,
	}
	p.Arena.Add(n)
	return ok[ast.Expr](n)
}

// parseBinary implements precedence climbing over the left-associative
// binary operator table, minPrec being the lowest precedence level
// this call is willing to consume.
func (p *Parser) parseBinary(minPrec int) Result[ast.Expr] {
	begin := p.pos
	lhs := p.parseUnary()
	if !lhs.OK {
		return fail[ast.Expr]()
	}
	for {
		info, okOp := binaryOps[p.cur().Klass]
		if !okOp || info.prec < minPrec {
			return lhs
		}
		opSyn := p.advance()
		rhs := p.parseBinary(info.prec + 1)
		if !rhs.OK {
			return fail[ast.Expr]()
		}
		n := &ast.BinaryExpr{
			ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindBinaryExpr, Range: p.rangeFrom(begin)}},
			Op: info.op, OpTok: opSyn, Left: lhs.Node, Right: rhs.Node,
		}
		p.Arena.Add(n)
		lhs = ok[ast.Expr](n)
	}
}

var prefixUnaryOps = map[lexer.Kind]ast.UnaryOp{
	lexer.Plus:       ast.UnaryPlus,
	lexer.Minus:      ast.UnaryMinus,
	lexer.Bang:       ast.UnaryNot,
	lexer.Tilde:      ast.UnaryBitNot,
	lexer.PlusPlus:   ast.UnaryPreInc,
	lexer.MinusMinus: ast.UnaryPreDec,
}

func (p *Parser) parseUnary() Result[ast.Expr] {
	begin := p.pos
	if opv, okOp := prefixUnaryOps[p.cur().Klass]; okOp {
		opSyn := p.advance()
		sub := p.parseUnary()
		if !sub.OK {
			return fail[ast.Expr]()
		}
		n := &ast.UnaryExpr{
			ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindUnaryExpr, Range: p.rangeFrom(begin)}},
			Op: opv, OpTok: opSyn, Sub: sub.Node,
		}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() Result[ast.Expr] {
	begin := p.pos
	base := p.parsePrimary()
	if !base.OK {
		return fail[ast.Expr]()
	}
	cur := base.Node
	for {
		switch p.cur().Klass {
		case lexer.LBracket:
			p.advance()
			idx := p.ParseExpression()
			if !idx.OK {
				p.recover(RecoverBracket)
				errN := &ast.ErrorExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindErrorExpr, Range: p.rangeFrom(begin)}}}
				p.Arena.Add(errN)
				return ok[ast.Expr](errN)
			}
			if _, okTok := p.expect(lexer.RBracket); !okTok {
				p.recover(RecoverBracket)
			}
			n := &ast.IndexExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindIndexExpr, Range: p.rangeFrom(begin)}}, BaseExpr: cur, Index: idx.Node}
			p.Arena.Add(n)
			cur = n
		case lexer.Dot:
			p.advance()
			name, okTok := p.expect(lexer.Identifier)
			if !okTok {
				name = p.curSyntaxToken()
			}
			n := &ast.FieldExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindFieldExpr, Range: p.rangeFrom(begin)}}, BaseExpr: cur, Name: name}
			p.Arena.Add(n)
			cur = n
		case lexer.LParen:
			p.advance()
			var args []ast.Expr
			if p.cur().Klass != lexer.RParen {
				for {
					a := p.parseAssignment()
					if !a.OK {
						p.recover(RecoverParen)
						break
					}
					args = append(args, a.Node)
					if _, okTok := p.accept(lexer.Comma); !okTok {
						break
					}
				}
			}
			p.expect(lexer.RParen)
			n := &ast.CallExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindCallExpr, Range: p.rangeFrom(begin)}}, Args: args}
			p.Arena.Add(n)
			cur = n
		case lexer.PlusPlus, lexer.MinusMinus:
			opv := ast.PostfixInc
			if p.cur().Klass == lexer.MinusMinus {
				opv = ast.PostfixDec
			}
			p.advance()
			n := &ast.PostfixExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindPostfixExpr, Range: p.rangeFrom(begin)}}, Op: opv, Sub: cur}
			p.Arena.Add(n)
			cur = n
		default:
			return ok(cur)
		}
	}
}

// parsePrimary parses identifiers, literals, parenthesized
// expressions, and the constructor-call forms distinguished by a
// leading builtin-type-name token (e.g. `vec3(...)`, `S[2](1,2)`).
func (p *Parser) parsePrimary() Result[ast.Expr] {
	begin := p.pos
	t := p.cur()
	switch {
	case t.Klass == lexer.IntConstant:
		tok := p.advance()
		n := &ast.IntLit{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindIntLit, Range: p.rangeFrom(begin)}}, Tok: tok}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	case t.Klass == lexer.UintConstant:
		tok := p.advance()
		n := &ast.UintLit{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindUintLit, Range: p.rangeFrom(begin)}}, Tok: tok}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	case t.Klass == lexer.FloatConstant:
		tok := p.advance()
		n := &ast.FloatLit{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindFloatLit, Range: p.rangeFrom(begin)}}, Tok: tok}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	case t.Klass == lexer.DoubleConstant:
		tok := p.advance()
		n := &ast.DoubleLit{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindDoubleLit, Range: p.rangeFrom(begin)}}, Tok: tok}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	case t.Klass == lexer.KwTrue || t.Klass == lexer.KwFalse:
		tok := p.advance()
		n := &ast.BoolLit{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindBoolLit, Range: p.rangeFrom(begin)}}, Tok: tok, Value: t.Klass == lexer.KwTrue}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	case lexer.IsBuiltinTypeName(t.Klass):
		return p.parseConstructorOrArrayConstructor(begin)
	case t.Klass == lexer.Identifier:
		// A user-defined struct name followed directly by '(' is a
		// constructor call; otherwise it's a plain identifier reference.
		if p.peekAt(1).Klass == lexer.LParen {
			return p.parseConstructorOrArrayConstructor(begin)
		}
		tok := p.advance()
		n := &ast.IdentExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindIdentExpr, Range: p.rangeFrom(begin)}}, Name: tok}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	case t.Klass == lexer.LParen:
		p.advance()
		inner := p.ParseExpression()
		if !inner.OK {
			p.recover(RecoverParen)
			errN := &ast.ErrorExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindErrorExpr, Range: p.rangeFrom(begin)}}}
			p.Arena.Add(errN)
			return ok[ast.Expr](errN)
		}
		p.expect(lexer.RParen)
		n := &ast.ParenExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindParenExpr, Range: p.rangeFrom(begin)}}, Sub: inner.Node}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	default:
		p.errorf(diag.CodeSyntaxError, "unexpected token %s in expression", t.Klass)
		return fail[ast.Expr]()
	}
}

// parseConstructorOrArrayConstructor handles both `Type(args...)` and
// the array-constructor-call form `Type[len](args...)` / `Type[](args...)`.
func (p *Parser) parseConstructorOrArrayConstructor(begin int) Result[ast.Expr] {
	typeTok := p.advance()
	if p.cur().Klass == lexer.LBracket {
		p.advance()
		var length ast.Expr
		if p.cur().Klass != lexer.RBracket {
			l := p.ParseExpression()
			if l.OK {
				length = l.Node
			}
		}
		p.expect(lexer.RBracket)
		args, parenOK := p.parseArgList()
		if !parenOK {
			errN := &ast.ErrorExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindErrorExpr, Range: p.rangeFrom(begin)}}}
			p.Arena.Add(errN)
			return ok[ast.Expr](errN)
		}
		n := &ast.ArrayConstructorExpr{
			ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindArrayConstructorExpr, Range: p.rangeFrom(begin)}},
			ElemTypeTok: typeTok, Length: length, Args: args,
		}
		p.Arena.Add(n)
		return ok[ast.Expr](n)
	}
	args, parenOK := p.parseArgList()
	if !parenOK {
		errN := &ast.ErrorExpr{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindErrorExpr, Range: p.rangeFrom(begin)}}}
		p.Arena.Add(errN)
		return ok[ast.Expr](errN)
	}
	n := &ast.ConstructorCallExpr{
		ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Tag: ast.KindConstructorCallExpr, Range: p.rangeFrom(begin)}},
		TypeTok: typeTok, Args: args,
	}
	p.Arena.Add(n)
	return ok[ast.Expr](n)
}

func (p *Parser) parseArgList() ([]ast.Expr, bool) {
	if _, okTok := p.expect(lexer.LParen); !okTok {
		p.recover(RecoverParen)
		return nil, false
	}
	var args []ast.Expr
	if p.cur().Klass != lexer.RParen {
		for {
			a := p.parseAssignment()
			if !a.OK {
				p.recover(RecoverParen)
				return args, true
			}
			args = append(args, a.Node)
			if _, okTok := p.accept(lexer.Comma); !okTok {
				break
			}
		}
	}
	p.expect(lexer.RParen)
	return args, true
}
