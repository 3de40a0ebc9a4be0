package sema

import (
	"fmt"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/internal/source"
	"github.com/teranos/glslls/internal/types"
)

// Analyzer walks one translation unit's AST bottom-up, resolving
// names, deducing expression types, inserting ImplicitCastExpr nodes
// where a context required a widening/broadcast conversion, and
// recording diagnostics for anything it cannot make sense of. Analysis
// never aborts on an individual failure: every node that cannot be
// typed is assigned types.ErrorType and its surrounding expression
// keeps analyzing with that as its operand, matching the "best-effort,
// never abort the whole file" rule the parser's recovery already
// follows one layer down.
type Analyzer struct {
	Interner *types.Interner
	Builtins *Builtins
	Diags    *diag.List
	Arena    *ast.Arena
	Tokens   []preprocessor.Token // this TU's post-preprocessing token stream, for range projection

	Global *Scope
	scope  *Scope

	structTypes map[*ast.StructDecl]*types.Desc
}

// NewAnalyzer creates an Analyzer sharing in (so its builtin and
// user-defined type Descs are pointer-comparable with each other) and
// recording diagnostics into diags. tokens is the same stream the
// parser consumed, used to project an ast.SyntaxRange's token indices
// back to a spelled source.Range when reporting a diagnostic.
func NewAnalyzer(in *types.Interner, diags *diag.List, arena *ast.Arena, tokens []preprocessor.Token) *Analyzer {
	global := NewScope(nil)
	return &Analyzer{
		Interner: in, Builtins: NewBuiltins(in), Diags: diags, Arena: arena, Tokens: tokens,
		Global: global, scope: global, structTypes: map[*ast.StructDecl]*types.Desc{},
	}
}

// Analyze runs full semantic analysis over tu: a first pass registers
// every top-level name (so mutually referencing globals and forward-
// referenced functions resolve regardless of declaration order), then
// a second pass deduces types through every function body and
// initializer.
func (a *Analyzer) Analyze(tu *ast.TranslationUnit) {
	for _, d := range tu.Decls {
		a.registerTopLevel(d)
	}
	for _, d := range tu.Decls {
		a.analyzeTopLevel(d)
	}
}

func (a *Analyzer) registerTopLevel(d ast.Decl) {
	switch n := d.(type) {
	case *ast.StructDecl:
		a.registerStruct(n)
	case *ast.VarDecl:
		a.registerVarDecl(n, a.Global)
	case *ast.FunctionDecl:
		a.Global.DeclareFunc(n.Name.Text, n)
	case *ast.InterfaceBlockDecl:
		a.registerInterfaceBlock(n)
	}
}

func (a *Analyzer) registerStruct(sd *ast.StructDecl) {
	var members []types.Member
	for _, m := range sd.Members {
		mt := a.resolveQualType(&m.Type)
		for _, decl := range m.Declarators {
			members = append(members, types.Member{Name: decl.NameToken.Text, Type: arrayWrap(a.Interner, mt, decl.Array)})
		}
	}
	desc := a.Interner.Struct(sd.Name.Text, members, sd.Range.Begin)
	sd.Resolved = desc
	a.structTypes[sd] = desc
}

func (a *Analyzer) registerVarDecl(vd *ast.VarDecl, sc *Scope) {
	base := a.resolveQualType(&vd.Type)
	for i, decl := range vd.Declarators {
		t := arrayWrap(a.Interner, base, decl.Array)
		if decl.NameToken.Text == "" {
			continue
		}
		if !sc.Declare(decl.NameToken.Text, ast.DeclView{Decl: vd, Index: i}) {
			a.errorfAt(vd.Range, diag.CodeRedefinition, "redefinition of %q", decl.NameToken.Text)
		}
		_ = t
	}
}

func (a *Analyzer) registerInterfaceBlock(ib *ast.InterfaceBlockDecl) {
	var members []types.Member
	for _, m := range ib.Members {
		mt := a.resolveQualType(&m.Type)
		for _, decl := range m.Declarators {
			members = append(members, types.Member{Name: decl.NameToken.Text, Type: arrayWrap(a.Interner, mt, decl.Array)})
		}
	}
	blockType := a.Interner.Struct(ib.Name.Text, members, ib.Range.Begin)
	if ib.InstanceName.Text != "" {
		a.Global.Declare(ib.InstanceName.Text, ast.DeclView{Decl: ib, Index: 0})
	} else {
		// Anonymous instance: every member is visible as a bare name at
		// global scope, per the interface-block bare-name access rule.
		for i, m := range ib.Members {
			for j, decl := range m.Declarators {
				if decl.NameToken.Text == "" {
					continue
				}
				a.Global.Declare(decl.NameToken.Text, ast.DeclView{Decl: ib, Index: i*1000 + j})
			}
		}
	}
	_ = blockType
}

// resolveQualType maps a QualType's TypeTok (or inline StructDecl) to
// an interned Desc, registering the inline struct first if needed.
func (a *Analyzer) resolveQualType(q *ast.QualType) *types.Desc {
	if q.StructDecl != nil {
		if d, ok := a.structTypes[q.StructDecl]; ok {
			q.Resolved = d
			return d
		}
		a.registerStruct(q.StructDecl)
		q.Resolved = a.structTypes[q.StructDecl]
		return q.Resolved
	}
	d := a.builtinTypeDesc(q.TypeTok.Text)
	if d == nil {
		// Not a builtin keyword spelling: look up a previously
		// registered struct by name.
		for sd, desc := range a.structTypes {
			if sd.Name.Text == q.TypeTok.Text {
				d = desc
				break
			}
		}
	}
	if d == nil {
		tokRange := ast.SyntaxRange{TU: q.TypeTok.ID.TU, Begin: q.TypeTok.ID.Index, End: q.TypeTok.ID.Index + 1}
		a.errorfAt(tokRange, diag.CodeUnknownType, "unknown type %q", q.TypeTok.Text)
		d = types.ErrorType
	}
	q.Resolved = d
	return d
}

func (a *Analyzer) builtinTypeDesc(name string) *types.Desc {
	in := a.Interner
	switch name {
	case "void":
		return types.VoidType
	case "bool":
		return in.Scalar(types.Bool)
	case "int":
		return in.Scalar(types.Int)
	case "uint":
		return in.Scalar(types.Uint)
	case "float":
		return in.Scalar(types.Float)
	case "double":
		return in.Scalar(types.Double)
	case "vec2":
		return in.Vector(types.Float, 2)
	case "vec3":
		return in.Vector(types.Float, 3)
	case "vec4":
		return in.Vector(types.Float, 4)
	case "ivec2":
		return in.Vector(types.Int, 2)
	case "ivec3":
		return in.Vector(types.Int, 3)
	case "ivec4":
		return in.Vector(types.Int, 4)
	case "uvec2":
		return in.Vector(types.Uint, 2)
	case "uvec3":
		return in.Vector(types.Uint, 3)
	case "uvec4":
		return in.Vector(types.Uint, 4)
	case "bvec2":
		return in.Vector(types.Bool, 2)
	case "bvec3":
		return in.Vector(types.Bool, 3)
	case "bvec4":
		return in.Vector(types.Bool, 4)
	case "mat2":
		return in.Matrix(types.Float, 2, 2)
	case "mat3":
		return in.Matrix(types.Float, 3, 3)
	case "mat4":
		return in.Matrix(types.Float, 4, 4)
	case "sampler2D":
		return in.Sampler(types.Sampler2D)
	case "samplerCube":
		return in.Sampler(types.SamplerCube)
	case "sampler3D":
		return in.Sampler(types.Sampler3D)
	}
	return nil
}

// arrayWrap applies a declarator's array suffix (if any) on top of
// base, innermost dimension first as GLSL's `T a[4][2]` layout dictates
// (the first bracket is the outermost/array-of dimension).
func arrayWrap(in *types.Interner, base *types.Desc, spec *ast.ArraySpec) *types.Desc {
	if spec == nil || len(spec.Lengths) == 0 {
		return base
	}
	t := base
	for i := len(spec.Lengths) - 1; i >= 0; i-- {
		length, lenSet := arrayLenOf(spec.Lengths[i])
		t = in.Array(t, length, lenSet)
	}
	return t
}

func arrayLenOf(e ast.Expr) (int, bool) {
	lit, ok := e.(*ast.IntLit)
	if !ok {
		return -1, false
	}
	return int(lit.Value), true
}

// errorfAt projects r's token-index range back to a spelled
// source.Range via a.Tokens and records an Error diagnostic there.
// An empty range (r.Begin==r.End, e.g. from a synthesized node) is
// projected onto its Begin token's range; a Begin outside a.Tokens
// falls back to a zero Range rather than indexing out of bounds.
func (a *Analyzer) errorfAt(r ast.SyntaxRange, code diag.Code, format string, args ...any) {
	a.Diags.Addf(a.projectRange(r), diag.Error, code, fmt.Sprintf(format, args...))
}

func (a *Analyzer) projectRange(r ast.SyntaxRange) source.Range {
	if len(a.Tokens) == 0 || r.Begin < 0 || r.Begin >= len(a.Tokens) {
		return source.Range{}
	}
	endIdx := r.End - 1
	if endIdx < r.Begin || endIdx >= len(a.Tokens) {
		endIdx = r.Begin
	}
	start := a.Tokens[r.Begin].SpelledRange
	end := a.Tokens[endIdx].SpelledRange
	return source.Range{
		Start: source.Position{Line: start.LineStart, Character: start.ColStart},
		End:   source.Position{Line: end.LineEnd, Character: end.ColEnd},
	}
}
