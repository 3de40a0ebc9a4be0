package features

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/lexer"
	"github.com/teranos/glslls/internal/query"
	"github.com/teranos/glslls/internal/source"
)

// SignatureInformation is one overload's reconstructed label.
type SignatureInformation struct {
	Label string
}

// SignatureHelp is the response to a signature-help request: every
// overload of the enclosing call's callee, plus which parameter index
// the cursor currently sits in.
type SignatureHelp struct {
	Signatures      []SignatureInformation
	ActiveParameter int
}

// SignatureHelp finds the innermost CallExpr enclosing pos and counts
// commas at call depth 0 to find the active parameter. It answers only
// for a call that overload resolution bound to a user-defined function,
// listing the main file's top-level FunctionDecls of that name; builtin
// and preamble overloads are not listed, and an unresolved call gets no
// result.
func SignatureHelp(cfg Config, info *query.Info, pos source.Position) (SignatureHelp, bool) {
	if !cfg.SignatureHelpEnable {
		return SignatureHelp{}, false
	}
	idx := info.LookupTokenByPosition(pos)
	if idx < 0 {
		return SignatureHelp{}, false
	}
	call := enclosingCall(info, idx)
	if call == nil {
		return SignatureHelp{}, false
	}

	active := activeParameter(info, call, idx)

	var sigs []SignatureInformation
	if call.ResolvedFunction != nil {
		name := call.Callee.Text
		for _, d := range info.Root.Decls {
			fn, ok := d.(*ast.FunctionDecl)
			if !ok || fn.Name.Text != name {
				continue
			}
			sigs = append(sigs, SignatureInformation{Label: reprintFunctionSignature(fn)})
		}
	}
	if len(sigs) == 0 {
		return SignatureHelp{}, false
	}
	return SignatureHelp{Signatures: sigs, ActiveParameter: active}, true
}

// enclosingCall finds the innermost CallExpr whose range contains the
// token at idx, by pruning the same way query.Info's node lookup does
// but keeping only CallExpr nodes as candidates (a nested call's range
// is wholly contained in its outer call's, so the first one visited by
// the post-order walk is the innermost).
func enclosingCall(info *query.Info, idx int) *ast.CallExpr {
	v := &callFinder{target: idx}
	ast.Walk(v, info.Root)
	return v.found
}

type callFinder struct {
	ast.BaseVisitor
	target int
	found  *ast.CallExpr
}

// Enter prunes with ContainsPolicy but turns its Halt into Leave: a Halt
// ends the whole walk before the post-order Visit of the calls that
// contain the target whenever one of their children follows it.
func (f *callFinder) Enter(n ast.Node) ast.Policy {
	if p := ast.ContainsPolicy(n, f.target); p != ast.Halt {
		return p
	}
	return ast.Leave
}
func (f *callFinder) Visit(n ast.Node) {
	// Post-order Visit means the innermost containing CallExpr on the
	// single pos-containing ancestor chain fires first; keep it.
	if f.found != nil {
		return
	}
	if call, ok := n.(*ast.CallExpr); ok {
		f.found = call
	}
}

// activeParameter counts commas at call-argument depth 0 strictly
// between the call's open paren and the cursor's token index.
func activeParameter(info *query.Info, call *ast.CallExpr, cursorIdx int) int {
	begin := call.Base().Range.Begin
	end := call.Base().Range.End
	if cursorIdx < begin || cursorIdx > end {
		cursorIdx = end
	}
	depth := 0
	active := 0
	for i := begin; i < cursorIdx && i < len(info.Tokens); i++ {
		switch info.Tokens[i].Klass {
		case lexer.LParen:
			depth++
		case lexer.RParen:
			depth--
		case lexer.Comma:
			if depth == 1 {
				active++
			}
		}
	}
	return active
}
