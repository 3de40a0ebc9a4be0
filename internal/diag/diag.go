// Package diag defines the single diagnostic record type shared by
// the preprocessor, parser, and semantic analyzer, and the severity
// ladder from the error-handling design.
package diag

import "github.com/teranos/glslls/internal/source"

// Severity orders diagnostics from informational to fatal.
type Severity int

const (
	Hint Severity = iota
	Info
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Hint:
		return "hint"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	}
	return "?"
}

// Code is a short, stable identifier for a diagnostic's category,
// independent of the human-readable message text, so feature handlers
// and tests can match on it without string-comparing prose.
type Code string

const (
	CodeUnknownDirective   Code = "pp-unknown-directive"
	CodeIncludeNotFound    Code = "pp-include-not-found"
	CodeIncludeCycle       Code = "pp-include-cycle"
	CodeIncludeDepth       Code = "pp-include-depth"
	CodeMacroRecursion     Code = "pp-macro-recursion"
	CodeMalformedIf        Code = "pp-malformed-if"
	CodeUserError          Code = "pp-error-directive"
	CodeUnterminatedMacroArgs Code = "pp-unterminated-args"
	CodeVersionMismatch    Code = "pp-version-mismatch"

	CodeSyntaxError   Code = "parse-syntax-error"
	CodeUnexpectedEOF Code = "parse-unexpected-eof"

	CodeUnknownType       Code = "sema-unknown-type"
	CodeUnknownIdentifier Code = "sema-unknown-identifier"
	CodeTypeMismatch      Code = "sema-type-mismatch"
	CodeOverloadNotFound  Code = "sema-no-matching-overload"
	CodeOverloadAmbiguous Code = "sema-ambiguous-overload"
	CodeNotAnLValue       Code = "sema-not-lvalue"
	CodeRedefinition      Code = "sema-redefinition"
)

// Message is one diagnostic. Parser and analyzer diagnostics carry the
// spelled range of the offending token(s) in whichever file those were
// spelled in; a range inside an included file is not moved onto the
// #include directive. Preprocessor diagnostics carry a zero Range.
type Message struct {
	Range    source.Range
	Severity Severity
	Code     Code
	Text     string
}

// List accumulates diagnostics for one compilation. It is not
// goroutine-safe; each compilation owns one instance.
type List struct {
	items []Message
}

// Add records a diagnostic.
func (l *List) Add(m Message) { l.items = append(l.items, m) }

// Addf is a convenience wrapper building the Message inline.
func (l *List) Addf(r source.Range, sev Severity, code Code, text string) {
	l.Add(Message{Range: r, Severity: sev, Code: code, Text: text})
}

// All returns every recorded diagnostic in insertion order.
func (l *List) All() []Message { return l.items }

// HasErrors reports whether any recorded diagnostic is Error or Fatal.
func (l *List) HasErrors() bool {
	for _, m := range l.items {
		if m.Severity >= Error {
			return true
		}
	}
	return false
}
