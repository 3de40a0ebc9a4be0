package features

import (
	"fmt"
	"strings"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// Hover is the markdown content returned for a hover request.
type Hover struct {
	Markdown string
	Range    source.Range
}

// Hover resolves the symbol under pos and reconstructs a single-line
// source form of its declaration (e.g. "void foo(int x, out int y)").
// Builtin functions looked up by name get their prepared doc string
// instead, since they have no declaration node to reprint.
func Hover(cfg Config, info *query.Info, pos source.Position) (Hover, bool) {
	if !cfg.HoverEnable {
		return Hover{}, false
	}
	n := findEnclosing(info, pos)
	if n == nil {
		return Hover{}, false
	}

	if call, ok := n.(*ast.CallExpr); ok && call.ResolvedFunction == nil {
		if doc, ok := builtinDocs[call.Callee.Text]; ok {
			r := info.LookupSpelledTextRange(call.Base().Range)
			return Hover{Markdown: doc, Range: r}, true
		}
	}

	decl, ok := declViewOf(n)
	if !ok {
		return Hover{}, false
	}
	r := info.LookupSpelledTextRange(n.Base().Range)
	return Hover{Markdown: "```glsl\n" + reprintDecl(decl) + "\n```", Range: r}, true
}

// reprintDecl rebuilds a single-line textual form of a DeclView's
// owning declaration, the way hover presents it.
func reprintDecl(v ast.DeclView) string {
	switch d := v.Decl.(type) {
	case *ast.VarDecl:
		if v.Index < 0 || v.Index >= len(d.Declarators) {
			return reprintQualType(d.Type)
		}
		return fmt.Sprintf("%s %s", reprintQualType(d.Type), d.Declarators[v.Index].NameToken.Text)
	case *ast.ParamDecl:
		return fmt.Sprintf("%s %s", reprintQualType(d.QType), d.Type.NameToken.Text)
	case *ast.FunctionDecl:
		return reprintFunctionSignature(d)
	case *ast.StructDecl:
		return "struct " + d.Name.Text
	case *ast.InterfaceBlockDecl:
		return reprintInterfaceBlockHeader(d)
	}
	return ""
}

func reprintFunctionSignature(fn *ast.FunctionDecl) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = reprintParam(p)
	}
	return fmt.Sprintf("%s %s(%s)", reprintQualType(fn.ReturnType), fn.Name.Text, strings.Join(params, ", "))
}

func reprintParam(p *ast.ParamDecl) string {
	prefix := storagePrefix(p.QType.Qualifiers.Storage)
	name := p.Type.NameToken.Text
	if prefix != "" {
		return fmt.Sprintf("%s %s %s", prefix, reprintQualType(p.QType), name)
	}
	if name == "" {
		return reprintQualType(p.QType)
	}
	return fmt.Sprintf("%s %s", reprintQualType(p.QType), name)
}

func storagePrefix(s ast.StorageQualifier) string {
	switch s {
	case ast.StorageIn:
		return "in"
	case ast.StorageOut:
		return "out"
	case ast.StorageInout:
		return "inout"
	case ast.StorageConst:
		return "const"
	}
	return ""
}

func reprintQualType(q ast.QualType) string {
	if q.StructDecl != nil {
		return "struct " + q.StructDecl.Name.Text
	}
	return q.TypeTok.Text
}

func reprintInterfaceBlockHeader(ib *ast.InterfaceBlockDecl) string {
	prefix := storagePrefix(ib.Qualifiers.Storage)
	if prefix == "" {
		prefix = "uniform"
	}
	return fmt.Sprintf("%s %s { ... }", prefix, ib.Name.Text)
}

// builtinDocs holds prepared one-line documentation for a handful of
// frequently hovered builtin functions; an exhaustive catalog belongs
// in a generated data file, not hand-maintained Go source.
var builtinDocs = map[string]string{
	"normalize":  "genType normalize(genType x) — returns a vector in the same direction with length 1",
	"dot":        "float dot(vec x, vec y) — the dot product of x and y",
	"cross":      "vec3 cross(vec3 x, vec3 y) — the cross product of x and y",
	"reflect":    "vec reflect(vec I, vec N) — reflects I about N",
	"texture":    "vec4 texture(sampler s, vec coord) — samples s at coord",
	"mix":        "genType mix(genType x, genType y, genType a) — linear interpolation between x and y",
	"clamp":      "genType clamp(genType x, genType minVal, genType maxVal) — constrains x to [minVal, maxVal]",
	"length":     "float length(genType x) — the Euclidean length of x",
	"distance":   "float distance(genType p0, genType p1) — the distance between p0 and p1",
}
