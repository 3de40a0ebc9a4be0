package parser

import (
	"strconv"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/lexer"
)

var qualifierKeywords = map[lexer.Kind]bool{
	lexer.KwConst: true, lexer.KwUniform: true, lexer.KwBuffer: true, lexer.KwShared: true,
	lexer.KwAttribute: true, lexer.KwVarying: true, lexer.KwIn: true, lexer.KwOut: true, lexer.KwInout: true,
	lexer.KwCentroid: true, lexer.KwFlat: true, lexer.KwSmooth: true, lexer.KwNoperspective: true,
	lexer.KwPatch: true, lexer.KwSample: true, lexer.KwInvariant: true, lexer.KwPrecise: true,
	lexer.KwLayout: true, lexer.KwLowp: true, lexer.KwMediump: true, lexer.KwHighp: true,
}

func isQualifierKeyword(k lexer.Kind) bool { return qualifierKeywords[k] }

// parseTopLevelDecl parses one top-level construct: a precision
// statement, a standalone struct declaration, an interface block, or a
// qualified-type declaration that resolves to either a function or a
// variable declaration depending on what follows the first declarator
// name.
func (p *Parser) parseTopLevelDecl() Result[ast.Decl] {
	begin := p.pos
	if p.cur().Klass == lexer.Semicolon {
		p.advance()
		return p.parseTopLevelDecl()
	}
	if p.cur().Klass == lexer.KwPrecision {
		return p.parsePrecisionDecl(begin)
	}

	qual := p.parseQualifierSeq()

	if p.cur().Klass == lexer.KwStruct && p.peekAt(1).Klass == lexer.Identifier &&
		(p.peekAt(2).Klass == lexer.LBrace || p.peekAt(2).Klass == lexer.Semicolon) {
		sd := p.parseStructDecl(begin)
		if !sd.OK {
			return fail[ast.Decl]()
		}
		// A bare `struct S { ... };` with no trailing declarator list.
		if p.cur().Klass == lexer.Semicolon {
			p.advance()
			return ok[ast.Decl](sd.Node)
		}
		return p.parseVarDeclFromStruct(begin, qual, sd.Node)
	}

	// Interface block: `qualifier Name { members } [instance[array]];`
	if p.cur().Klass == lexer.Identifier && p.peekAt(1).Klass == lexer.LBrace && qual.Storage != ast.StorageNone {
		return p.parseInterfaceBlock(begin, qual)
	}

	qtype := p.parseTypeSpecifier(qual)
	if p.cur().Klass != lexer.Identifier {
		p.errorf(diag.CodeSyntaxError, "expected declarator name, found %s", p.cur().Klass)
		return fail[ast.Decl]()
	}
	name := p.curSyntaxToken()
	if p.peekAt(1).Klass == lexer.LParen {
		return p.parseFunctionDecl(begin, qtype, name)
	}
	return p.parseVarDeclRest(begin, qtype, name)
}

func (p *Parser) parsePrecisionDecl(begin int) Result[ast.Decl] {
	p.advance()
	var prec ast.PrecisionQualifier
	switch p.cur().Klass {
	case lexer.KwLowp:
		prec = ast.PrecisionLow
	case lexer.KwMediump:
		prec = ast.PrecisionMedium
	case lexer.KwHighp:
		prec = ast.PrecisionHigh
	}
	p.advance()
	typeTok := p.curSyntaxToken()
	p.advance()
	p.expect(lexer.Semicolon)
	n := &ast.PrecisionDecl{DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindPrecisionDecl, Range: p.rangeFrom(begin)}}, Precision: prec, TypeTok: typeTok}
	p.Arena.Add(n)
	return ok[ast.Decl](n)
}

// parseQualifierSeq consumes a (possibly empty) run of qualifier
// keywords, recording layout-qualifier key/value pairs when present.
func (p *Parser) parseQualifierSeq() ast.TypeQualifierSeq {
	var q ast.TypeQualifierSeq
	for {
		switch p.cur().Klass {
		case lexer.KwConst:
			q.Storage = ast.StorageConst
		case lexer.KwUniform:
			q.Storage = ast.StorageUniform
		case lexer.KwBuffer:
			q.Storage = ast.StorageBuffer
		case lexer.KwShared:
			q.Storage = ast.StorageShared
		case lexer.KwAttribute:
			q.Storage = ast.StorageAttribute
		case lexer.KwVarying:
			q.Storage = ast.StorageVarying
		case lexer.KwIn:
			q.Storage = ast.StorageIn
		case lexer.KwOut:
			q.Storage = ast.StorageOut
		case lexer.KwInout:
			q.Storage = ast.StorageInout
		case lexer.KwCentroid:
			q.Centroid = true
		case lexer.KwFlat:
			q.Interpolation = ast.InterpolationFlat
		case lexer.KwSmooth:
			q.Interpolation = ast.InterpolationSmooth
		case lexer.KwNoperspective:
			q.Interpolation = ast.InterpolationNoperspective
		case lexer.KwPatch:
			q.Patch = true
		case lexer.KwSample:
			q.Sample = true
		case lexer.KwInvariant:
			q.Invariant = true
		case lexer.KwPrecise:
			q.Precise = true
		case lexer.KwLowp:
			q.Precision = ast.PrecisionLow
		case lexer.KwMediump:
			q.Precision = ast.PrecisionMedium
		case lexer.KwHighp:
			q.Precision = ast.PrecisionHigh
		case lexer.KwLayout:
			p.advance()
			p.expect(lexer.LParen)
			for p.cur().Klass != lexer.RParen && !p.atEnd() {
				keyTok := p.curSyntaxToken()
				p.advance()
				lq := ast.LayoutQualifier{Key: keyTok}
				if _, okTok := p.accept(lexer.Equal); okTok {
					if p.cur().Klass == lexer.IntConstant || p.cur().Klass == lexer.UintConstant {
						if v, err := strconv.ParseInt(p.cur().Text, 0, 64); err == nil {
							lq.HasValue = true
							lq.Value = v
						}
						p.advance()
					}
				}
				q.Layout = append(q.Layout, lq)
				if _, okTok := p.accept(lexer.Comma); !okTok {
					break
				}
			}
			p.expect(lexer.RParen)
			continue // layout already advanced past its own tokens
		default:
			return q
		}
		p.advance()
	}
}

// parseTypeSpecifier consumes the type-name token (builtin or
// user-defined) and any array suffix is left for the declarator, per
// GLSL grammar placing array brackets after the name.
func (p *Parser) parseTypeSpecifier(qual ast.TypeQualifierSeq) ast.QualType {
	tok := p.curSyntaxToken()
	if p.cur().Klass == lexer.KwStruct {
		sd := p.parseStructDecl(p.pos)
		if sd.OK {
			return ast.QualType{Qualifiers: qual, TypeTok: tok, StructDecl: sd.Node}
		}
	}
	p.advance()
	return ast.QualType{Qualifiers: qual, TypeTok: tok}
}

func (p *Parser) parseArraySpec() *ast.ArraySpec {
	if p.cur().Klass != lexer.LBracket {
		return nil
	}
	spec := &ast.ArraySpec{}
	for {
		if _, okTok := p.accept(lexer.LBracket); !okTok {
			break
		}
		if p.cur().Klass == lexer.RBracket {
			spec.Lengths = append(spec.Lengths, nil)
		} else {
			e := p.ParseExpression()
			if e.OK {
				spec.Lengths = append(spec.Lengths, e.Node)
			} else {
				spec.Lengths = append(spec.Lengths, nil)
				p.recover(RecoverBracket)
				continue
			}
		}
		p.expect(lexer.RBracket)
	}
	return spec
}

// parseVarDeclRest parses the comma-separated declarator list and
// trailing `;` once the type specifier and first declarator name are
// already known.
func (p *Parser) parseVarDeclRest(begin int, qtype ast.QualType, firstName ast.SyntaxToken) Result[ast.Decl] {
	p.advance() // consume firstName
	var decls []ast.Declarator
	decls = append(decls, p.finishDeclarator(firstName))
	for {
		if _, okTok := p.accept(lexer.Comma); !okTok {
			break
		}
		nameTok, okTok := p.expect(lexer.Identifier)
		if !okTok {
			break
		}
		decls = append(decls, p.finishDeclarator(nameTok))
	}
	p.expect(lexer.Semicolon)
	n := &ast.VarDecl{DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindVarDecl, Range: p.rangeFrom(begin)}}, Type: qtype, Declarators: decls}
	p.Arena.Add(n)
	return ok[ast.Decl](n)
}

func (p *Parser) finishDeclarator(name ast.SyntaxToken) ast.Declarator {
	d := ast.Declarator{NameToken: name, Array: p.parseArraySpec()}
	if _, okTok := p.accept(lexer.Equal); okTok {
		init := p.parseAssignment()
		if init.OK {
			d.Initializer = init.Node
		}
	}
	return d
}

func (p *Parser) parseVarDeclFromStruct(begin int, qual ast.TypeQualifierSeq, sd *ast.StructDecl) Result[ast.Decl] {
	qtype := ast.QualType{Qualifiers: qual, TypeTok: sd.Name, StructDecl: sd}
	if p.cur().Klass != lexer.Identifier {
		p.errorf(diag.CodeSyntaxError, "expected declarator name, found %s", p.cur().Klass)
		return fail[ast.Decl]()
	}
	nameTok := p.curSyntaxToken()
	return p.parseVarDeclRest(begin, qtype, nameTok)
}

func (p *Parser) parseStructDecl(begin int) Result[*ast.StructDecl] {
	p.advance() // 'struct'
	var name ast.SyntaxToken
	if p.cur().Klass == lexer.Identifier {
		name = p.advance()
	}
	if _, okTok := p.expect(lexer.LBrace); !okTok {
		p.recover(RecoverBrace)
		return Result[*ast.StructDecl]{}
	}
	var members []*ast.VarDecl
	for p.cur().Klass != lexer.RBrace && !p.atEnd() {
		start := p.pos
		m := p.parseStructMember()
		if m.OK {
			members = append(members, m.Node)
		} else {
			p.recover(RecoverSemi)
			if p.pos == start {
				p.advance()
			}
		}
	}
	p.expect(lexer.RBrace)
	n := &ast.StructDecl{DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindStructDecl, Range: p.rangeFrom(begin)}}, Name: name, Members: members}
	p.Arena.Add(n)
	return ok(n)
}

func (p *Parser) parseStructMember() Result[*ast.VarDecl] {
	begin := p.pos
	qual := p.parseQualifierSeq()
	qtype := p.parseTypeSpecifier(qual)
	nameTok, okTok := p.expect(lexer.Identifier)
	if !okTok {
		return Result[*ast.VarDecl]{}
	}
	var decls []ast.Declarator
	decls = append(decls, p.finishDeclarator(nameTok))
	for {
		if _, okTok2 := p.accept(lexer.Comma); !okTok2 {
			break
		}
		n2, okTok3 := p.expect(lexer.Identifier)
		if !okTok3 {
			break
		}
		decls = append(decls, p.finishDeclarator(n2))
	}
	p.expect(lexer.Semicolon)
	n := &ast.VarDecl{DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindVarDecl, Range: p.rangeFrom(begin)}}, Type: qtype, Declarators: decls}
	p.Arena.Add(n)
	return ok(n)
}

func (p *Parser) parseInterfaceBlock(begin int, qual ast.TypeQualifierSeq) Result[ast.Decl] {
	name := p.advance()
	if _, okTok := p.expect(lexer.LBrace); !okTok {
		p.recover(RecoverBrace)
		return fail[ast.Decl]()
	}
	var members []*ast.VarDecl
	for p.cur().Klass != lexer.RBrace && !p.atEnd() {
		start := p.pos
		m := p.parseStructMember()
		if m.OK {
			members = append(members, m.Node)
		} else {
			p.recover(RecoverSemi)
			if p.pos == start {
				p.advance()
			}
		}
	}
	p.expect(lexer.RBrace)
	var instance ast.SyntaxToken
	var arr *ast.ArraySpec
	if p.cur().Klass == lexer.Identifier {
		instance = p.advance()
		arr = p.parseArraySpec()
	}
	p.expect(lexer.Semicolon)
	n := &ast.InterfaceBlockDecl{
		DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindInterfaceBlockDecl, Range: p.rangeFrom(begin)}},
		Qualifiers: qual, Name: name, Members: members, InstanceName: instance, Array: arr,
	}
	p.Arena.Add(n)
	return ok[ast.Decl](n)
}

func (p *Parser) parseFunctionDecl(begin int, retType ast.QualType, name ast.SyntaxToken) Result[ast.Decl] {
	p.advance() // consume name
	p.expect(lexer.LParen)
	var params []*ast.ParamDecl
	if !(p.cur().Klass == lexer.RParen) && !(p.cur().Klass == lexer.KwVoid && p.peekAt(1).Klass == lexer.RParen) {
		for {
			pd := p.parseParamDecl()
			if pd.OK {
				params = append(params, pd.Node)
			}
			if _, okTok := p.accept(lexer.Comma); !okTok {
				break
			}
		}
	} else if p.cur().Klass == lexer.KwVoid {
		p.advance()
	}
	p.expect(lexer.RParen)

	var body *ast.CompoundStmt
	if p.cur().Klass == lexer.LBrace {
		b := p.parseCompound()
		if b.OK {
			body = b.Node.(*ast.CompoundStmt)
		}
	} else {
		p.expect(lexer.Semicolon)
	}
	n := &ast.FunctionDecl{
		DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindFunctionDecl, Range: p.rangeFrom(begin)}},
		ReturnType: retType, Name: name, Params: params, Body: body,
	}
	p.Arena.Add(n)
	return ok[ast.Decl](n)
}

func (p *Parser) parseParamDecl() Result[*ast.ParamDecl] {
	begin := p.pos
	qual := p.parseQualifierSeq()
	qtype := p.parseTypeSpecifier(qual)
	var declTok ast.Declarator
	if p.cur().Klass == lexer.Identifier {
		nameTok := p.advance()
		declTok = ast.Declarator{NameToken: nameTok, Array: p.parseArraySpec()}
	}
	n := &ast.ParamDecl{DeclBase: ast.DeclBase{NodeBase: ast.NodeBase{Tag: ast.KindParamDecl, Range: p.rangeFrom(begin)}}, Type: declTok, QType: qtype, Array: declTok.Array}
	p.Arena.Add(n)
	return ok(n)
}

// parseVarDecl parses a local (statement-scope) variable declaration,
// reusing the same qualifier/type/declarator-list grammar as top level.
func (p *Parser) parseVarDecl() Result[*ast.VarDecl] {
	begin := p.pos
	qual := p.parseQualifierSeq()
	qtype := p.parseTypeSpecifier(qual)
	if p.cur().Klass != lexer.Identifier {
		return Result[*ast.VarDecl]{}
	}
	nameTok := p.curSyntaxToken()
	d := p.parseVarDeclRest(begin, qtype, nameTok)
	if !d.OK {
		return Result[*ast.VarDecl]{}
	}
	return ok(d.Node.(*ast.VarDecl))
}
