// Package compiler drives one file's end-to-end compilation: running
// the preprocessor, parser, and semantic analyzer over the shared
// system/user preamble and the main file, and assembling the results
// into the immutable structure the query engine and feature handlers
// consume.
package compiler

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/parser"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/internal/sema"
	"github.com/teranos/glslls/internal/types"
)

// PreambleSource supplies the fixed system preamble text (built-in
// declarations the language server injects ahead of every file) and
// an optional per-workspace user preamble.
type PreambleSource struct {
	System string
	User   string
}

// Invocation configures one compilation, mirroring the parameters a
// CLI or LSP request can vary per file: include search paths, UTF-16
// position counting (negotiated once per client connection), and the
// workspace's configured GLSL language version (languageConfig.version),
// checked against whatever #version the main file itself declares.
type Invocation struct {
	IncludePaths    []string
	CountUTF16      bool
	Loader          preprocessor.FileLoader
	ExpectedVersion string
}

// TranslationUnitResult bundles one TU's output: its post-PP token
// stream (for range projection), its AST root, the arena owning every
// node reachable from Root, and the #version directive it declared (0
// if none).
type TranslationUnitResult struct {
	TU      ast.TranslationUnitID
	Tokens  []preprocessor.Token
	Root    *ast.TranslationUnit
	Arena   *ast.Arena
	Store   *preprocessor.SymbolStore
	Version int
}

// Result is the complete, immutable output of compiling one main file
// against its preamble: three translation units (system preamble, user
// preamble, main file) whose types all come from the same Compiler-
// owned Interner, plus the combined diagnostic list.
type Result struct {
	SystemPreamble *TranslationUnitResult
	UserPreamble   *TranslationUnitResult
	Main           *TranslationUnitResult
	Interner       *types.Interner
	Diagnostics    *diag.List
	Analyzer       *sema.Analyzer
}

// preambleEntry caches one preamble text's parsed form: the expensive
// preprocess+parse pass runs once per distinct preamble text and is
// shared by every later Compile call. Each call still runs semantic
// analysis over the cached AST itself (registering its globals into
// that call's fresh Analyzer/Scope and re-deducing its expression
// types against the shared Interner); that pass is cheap relative to
// preprocessing and re-running it is what lets every compilation see
// the preamble's declarations without a second scope-sharing mechanism.
type preambleEntry struct {
	tu *TranslationUnitResult
}

// Compiler owns the preamble cache and the single type Interner for
// one workspace; every document the language server holds open shares
// one Compiler, matching the "preamble compiled once, shared" rule and
// the invariant that *types.Desc values are only comparable within the
// Interner that produced them.
type Compiler struct {
	Interner *types.Interner

	group singleflight.Group
	mu    sync.Mutex
	byKey map[string]*preambleEntry
}

// New creates a Compiler with an empty preamble cache and a fresh
// Interner shared by every compilation this Compiler performs.
func New() *Compiler {
	return &Compiler{Interner: types.NewInterner(), byKey: map[string]*preambleEntry{}}
}

// Compile runs a full compilation of the given preamble plus
// mainPath/mainText, reusing a cached preamble parse when the same
// (kind, text) pair was already compiled for this Compiler.
func (c *Compiler) Compile(inv Invocation, preamble PreambleSource, mainPath, mainText string) *Result {
	diags := &diag.List{}

	sysEntry := c.buildPreamble(ast.SystemPreamble, inv, preamble.System)
	userEntry := c.buildPreamble(ast.UserPreamble, inv, preamble.User)

	mainTU := compileTU(ast.UserFile, inv, mainPath, mainText, diags)
	if inv.ExpectedVersion != "" && mainTU.Version != 0 {
		checkVersionConstraint(mainTU.Version, inv.ExpectedVersion, diags)
	}

	analyzer := sema.NewAnalyzer(c.Interner, diags, mainTU.Arena, mainTU.Tokens)
	if sysEntry != nil {
		analyzer.Analyze(sysEntry.tu.Root)
	}
	if userEntry != nil {
		analyzer.Analyze(userEntry.tu.Root)
	}
	analyzer.Analyze(mainTU.Root)

	res := &Result{Main: mainTU, Interner: c.Interner, Diagnostics: diags, Analyzer: analyzer}
	if sysEntry != nil {
		res.SystemPreamble = sysEntry.tu
	}
	if userEntry != nil {
		res.UserPreamble = userEntry.tu
	}
	return res
}

// buildPreamble compiles one preamble text once per distinct content,
// regardless of how many concurrent Compile calls request it:
// singleflight.Group collapses the first wave of callers racing the
// same key onto one in-flight preprocess+parse pass.
func (c *Compiler) buildPreamble(tu ast.TranslationUnitID, inv Invocation, text string) *preambleEntry {
	if text == "" {
		return nil
	}
	key := tu.String() + ":" + text
	v, _, _ := c.group.Do(key, func() (any, error) {
		if e := c.lookup(key); e != nil {
			return e, nil
		}
		diags := &diag.List{}
		res := compileTU(tu, inv, "<preamble>", text, diags)
		entry := &preambleEntry{tu: res}
		c.store(key, entry)
		return entry, nil
	})
	entry, _ := v.(*preambleEntry)
	return entry
}

func (c *Compiler) lookup(key string) *preambleEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byKey[key]
}

func (c *Compiler) store(key string, e *preambleEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey[key] = e
}

func compileTU(tu ast.TranslationUnitID, inv Invocation, path, text string, diags *diag.List) *TranslationUnitResult {
	pp := preprocessor.New(inv.Loader, preprocessor.Options{
		IncludePaths: inv.IncludePaths, CountUTF16: inv.CountUTF16,
	})
	ppResult := pp.Run(path, text)
	for _, m := range ppResult.Diagnostics.All() {
		diags.Add(m)
	}

	p := parser.New(tu, ppResult.Tokens, path, diags)
	root := p.ParseTranslationUnit()

	return &TranslationUnitResult{
		TU: tu, Tokens: ppResult.Tokens, Root: root, Arena: p.Arena,
		Store: ppResult.Store, Version: ppResult.Version,
	}
}
