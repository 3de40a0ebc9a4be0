package preprocessor

import (
	"path/filepath"
	"strings"

	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/lexer"
	"github.com/teranos/glslls/internal/source"
)

// FileLoader resolves and reads the contents of an #include target.
// OSFileLoader, the filesystem-backed implementation, is the one used
// by production code and tests alike. Watching included headers for
// edits is done by langserver's IncludeWatcher, not by the loader.
type FileLoader interface {
	// Resolve returns the absolute path an include should map to.
	// angled is true for `#include <x>`, false for `#include "x"`.
	Resolve(name string, angled bool, currentDir string, searchPaths []string) (path string, ok bool)
	// Read returns the contents of an already-resolved path.
	Read(path string) (string, error)
}

// Options configures one preprocessor run.
type Options struct {
	IncludePaths      []string
	MaxIncludeDepth   int // default 200, per the spec's recursion limit
	MaxMacroRecursion int
	CountUTF16        bool
}

func (o Options) withDefaults() Options {
	if o.MaxIncludeDepth == 0 {
		o.MaxIncludeDepth = 200
	}
	if o.MaxMacroRecursion == 0 {
		o.MaxMacroRecursion = 200
	}
	return o
}

// Result is the output of one preprocessor run: the final post-
// expansion token stream plus the bookkeeping feature handlers read.
type Result struct {
	Tokens      []Token
	Diagnostics *diag.List
	Store       *SymbolStore
	Macros      map[string]*Macro
	Version     int // parsed #version argument, 0 if none seen
	Stage       string
}

// Preprocessor drives one compilation's lexical preprocessing pass: it
// owns the macro table, the include-cycle guard, and the symbol store
// that feature handlers query.
type Preprocessor struct {
	opts    Options
	loader  FileLoader
	macros  map[string]*Macro
	store   *SymbolStore
	diags   *diag.List
	version int
	stage   string

	includeStack []string // absolute paths, for cycle detection
}

// New creates a Preprocessor for one compilation.
func New(loader FileLoader, opts Options) *Preprocessor {
	return &Preprocessor{
		opts:   opts.withDefaults(),
		loader: loader,
		macros: make(map[string]*Macro),
		store:  NewSymbolStore(),
		diags:  &diag.List{},
	}
}

// Define pre-registers a macro, used to seed command-line-equivalent
// defines (e.g. `GL_core_profile`) before processing begins.
func (pp *Preprocessor) Define(m *Macro) { pp.macros[m.Name] = m }

// Run preprocesses mainPath/mainText to completion and returns the
// synthesized token stream plus diagnostics, macro table and symbol
// store gathered along the way.
func (pp *Preprocessor) Run(mainPath, mainText string) *Result {
	out := pp.processFile(mainPath, mainText, 0)
	return &Result{
		Tokens: out, Diagnostics: pp.diags, Store: pp.store,
		Macros: pp.macros, Version: pp.version, Stage: pp.stage,
	}
}

func (pp *Preprocessor) processFile(path, text string, depth int) []Token {
	if depth > pp.opts.MaxIncludeDepth {
		pp.diags.Addf(source.Range{}, diag.Fatal, diag.CodeIncludeDepth, "include depth exceeded")
		return nil
	}
	for _, p := range pp.includeStack {
		if p == path {
			pp.diags.Addf(source.Range{}, diag.Error, diag.CodeIncludeCycle, "include cycle detected for "+path)
			return nil
		}
	}
	pp.includeStack = append(pp.includeStack, path)
	defer func() { pp.includeStack = pp.includeStack[:len(pp.includeStack)-1] }()

	lines := splitLogicalLines(text)
	cond := &condStack{}
	var raw []lexer.RawToken
	var out []Token

	flushExpand := func() {
		if len(raw) == 0 {
			return
		}
		ets := make([]expTok, len(raw))
		for i, t := range raw {
			ets[i] = expTok{raw: t, hide: hideSet{}, spelledFile: path}
		}
		ex := &expander{macros: pp.macros, recursionLimit: pp.opts.MaxMacroRecursion, onError: func(msg string) {
			pp.diags.Addf(source.Range{}, diag.Fatal, diag.CodeMacroRecursion, msg)
		}}
		expanded := ex.expand(ets)
		for _, t := range expanded {
			idx := len(out)
			spelledFile := t.spelledFile
			if spelledFile == "" {
				spelledFile = path
			}
			out = append(out, Token{
				Klass: t.raw.Klass, Text: t.raw.Text,
				SpelledFile:  spelledFile,
				SpelledRange: spelledRangeOf(spelledFile, t.raw),
				ExpandedIndex: idx,
				ExpandedRange: ExpandedRange{Start: idx, End: idx + 1},
				FromMacro: len(t.hide) > 0,
			})
		}
		raw = raw[:0]
	}

	for _, ln := range lines {
		trimmed := strings.TrimLeft(ln.text, " \t")
		if strings.HasPrefix(trimmed, "#") {
			flushExpand()
			if cond.Emitting() || isConditionalDirective(trimmed) {
				included := pp.handleDirective(path, trimmed, cond, depth)
				base := len(out)
				for _, t := range included {
					t.ExpandedIndex += base
					t.ExpandedRange.Start += base
					t.ExpandedRange.End += base
					out = append(out, t)
				}
			}
			continue
		}
		if !cond.Emitting() {
			continue
		}
		toks := lexer.ScanAll(ln.text, pp.opts.CountUTF16)
		for _, t := range toks {
			if t.Klass == lexer.EOF {
				continue
			}
			t.LineStart += ln.lineOffset
			t.LineEnd += ln.lineOffset
			raw = append(raw, t)
		}
	}
	flushExpand()

	if cond.Depth() != 0 {
		pp.diags.Addf(source.Range{}, diag.Error, diag.CodeMalformedIf, "unterminated #if at end of file")
	}
	return out
}

type logicalLine struct {
	text       string
	lineOffset int
}

// splitLogicalLines splits text into directive-significant lines,
// first splicing backslash-newline continuations so that a directive
// spread across multiple physical lines is seen as one logical line,
// matching the tokenizer's own line-continuation handling.
func splitLogicalLines(text string) []logicalLine {
	spliced := spliceContinuationsTracking(text)
	var out []logicalLine
	start := 0
	line := 0
	for i := 0; i <= len(spliced); i++ {
		if i == len(spliced) || spliced[i] == '\n' {
			out = append(out, logicalLine{text: spliced[start:i], lineOffset: line})
			start = i + 1
			line++
		}
	}
	return out
}

func spliceContinuationsTracking(src string) string {
	if !strings.Contains(src, "\\\n") && !strings.Contains(src, "\\\r\n") {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		if src[i] == '\\' {
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
				continue
			}
			if i+2 < len(src) && src[i+1] == '\r' && src[i+2] == '\n' {
				i += 2
				continue
			}
		}
		b.WriteByte(src[i])
	}
	return b.String()
}

func isConditionalDirective(trimmedLine string) bool {
	for _, kw := range []string{"#if", "#ifdef", "#ifndef", "#else", "#elif", "#endif"} {
		if strings.HasPrefix(trimmedLine, kw) {
			return true
		}
	}
	return false
}

// resolveIncludeDir returns the directory component used as the "."
// search root for a `#include "x"` relative to path.
func resolveIncludeDir(path string) string {
	return filepath.Dir(path)
}
