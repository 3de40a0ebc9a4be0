// Package lexer implements raw lexical analysis of GLSL source: the
// tokenizer turns a UTF-8 buffer into a stream of RawTokens, tracking
// line/column position (both byte and UTF-16) as it goes. It knows
// nothing about directives or macros; that is the preprocessor's job.
package lexer

// Kind enumerates the raw token classes the tokenizer produces.
type Kind int

const (
	Invalid Kind = iota
	EOF
	Error // a single unrecognized byte

	Identifier
	IntConstant
	UintConstant
	FloatConstant
	DoubleConstant
	BoolConstant

	// Punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Dot
	Comma
	Colon
	Semicolon
	Question

	Plus
	Minus
	Star
	Slash
	Percent
	Tilde
	Bang
	Amp
	Pipe
	Caret
	LAngle
	RAngle
	Equal

	PlusPlus
	MinusMinus
	LShift
	RShift
	LE
	GE
	EqEq
	NotEq
	AmpAmp
	PipePipe
	CaretCaret

	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	LShiftEq
	RShiftEq
	AmpEq
	CaretEq
	PipeEq

	Hash     // '#' at the start of a logical line
	HashHash // '##' inside a macro body

	// Keywords are a distinct range so the parser can test
	// k >= KeywordBegin to recognize "is this a reserved word".
	KeywordBegin
	KwConst
	KwUniform
	KwBuffer
	KwShared
	KwAttribute
	KwVarying
	KwIn
	KwOut
	KwInout
	KwCentroid
	KwFlat
	KwSmooth
	KwNoperspective
	KwPatch
	KwSample
	KwInvariant
	KwPrecise
	KwLayout
	KwLowp
	KwMediump
	KwHighp
	KwPrecision
	KwStruct
	KwVoid
	KwBool
	KwInt
	KwUint
	KwFloat
	KwDouble
	KwVec2
	KwVec3
	KwVec4
	KwIVec2
	KwIVec3
	KwIVec4
	KwUVec2
	KwUVec3
	KwUVec4
	KwBVec2
	KwBVec3
	KwBVec4
	KwMat2
	KwMat3
	KwMat4
	KwSampler2D
	KwSamplerCube
	KwSampler3D
	KwTrue
	KwFalse
	KwIf
	KwElse
	KwWhile
	KwDo
	KwFor
	KwSwitch
	KwCase
	KwDefault
	KwBreak
	KwContinue
	KwDiscard
	KwReturn
	KeywordEnd
)

var keywordText = map[Kind]string{
	KwConst: "const", KwUniform: "uniform", KwBuffer: "buffer", KwShared: "shared",
	KwAttribute: "attribute", KwVarying: "varying", KwIn: "in", KwOut: "out", KwInout: "inout",
	KwCentroid: "centroid", KwFlat: "flat", KwSmooth: "smooth", KwNoperspective: "noperspective",
	KwPatch: "patch", KwSample: "sample", KwInvariant: "invariant", KwPrecise: "precise",
	KwLayout: "layout", KwLowp: "lowp", KwMediump: "mediump", KwHighp: "highp",
	KwPrecision: "precision", KwStruct: "struct", KwVoid: "void", KwBool: "bool",
	KwInt: "int", KwUint: "uint", KwFloat: "float", KwDouble: "double",
	KwVec2: "vec2", KwVec3: "vec3", KwVec4: "vec4",
	KwIVec2: "ivec2", KwIVec3: "ivec3", KwIVec4: "ivec4",
	KwUVec2: "uvec2", KwUVec3: "uvec3", KwUVec4: "uvec4",
	KwBVec2: "bvec2", KwBVec3: "bvec3", KwBVec4: "bvec4",
	KwMat2: "mat2", KwMat3: "mat3", KwMat4: "mat4",
	KwSampler2D: "sampler2D", KwSamplerCube: "samplerCube", KwSampler3D: "sampler3D",
	KwTrue: "true", KwFalse: "false",
	KwIf: "if", KwElse: "else", KwWhile: "while", KwDo: "do", KwFor: "for",
	KwSwitch: "switch", KwCase: "case", KwDefault: "default",
	KwBreak: "break", KwContinue: "continue", KwDiscard: "discard", KwReturn: "return",
}

var textToKeyword map[string]Kind

func init() {
	textToKeyword = make(map[string]Kind, len(keywordText))
	for k, s := range keywordText {
		textToKeyword[s] = k
	}
}

// LookupKeyword returns the keyword Kind for an identifier's spelling,
// or (Invalid, false) if it is not a reserved word.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := textToKeyword[text]
	return k, ok
}

// IsKeyword reports whether k is one of the reserved-word kinds.
func IsKeyword(k Kind) bool { return k > KeywordBegin && k < KeywordEnd }

// IsBuiltinTypeName reports whether k names a builtin scalar/vector/
// matrix/sampler type, as opposed to a qualifier or control keyword.
func IsBuiltinTypeName(k Kind) bool {
	switch k {
	case KwVoid, KwBool, KwInt, KwUint, KwFloat, KwDouble,
		KwVec2, KwVec3, KwVec4, KwIVec2, KwIVec3, KwIVec4,
		KwUVec2, KwUVec3, KwUVec4, KwBVec2, KwBVec3, KwBVec4,
		KwMat2, KwMat3, KwMat4, KwSampler2D, KwSamplerCube, KwSampler3D:
		return true
	}
	return false
}

// String renders a Kind's name for diagnostics and tests.
func (k Kind) String() string {
	if s, ok := keywordText[k]; ok {
		return s
	}
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Error: "error",
	Identifier: "identifier", IntConstant: "int", UintConstant: "uint",
	FloatConstant: "float", DoubleConstant: "double", BoolConstant: "bool",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Dot: ".", Comma: ",", Colon: ":", Semicolon: ";", Question: "?",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Tilde: "~", Bang: "!",
	Amp: "&", Pipe: "|", Caret: "^", LAngle: "<", RAngle: ">", Equal: "=",
	PlusPlus: "++", MinusMinus: "--", LShift: "<<", RShift: ">>",
	LE: "<=", GE: ">=", EqEq: "==", NotEq: "!=", AmpAmp: "&&", PipePipe: "||", CaretCaret: "^^",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	LShiftEq: "<<=", RShiftEq: ">>=", AmpEq: "&=", CaretEq: "^=", PipeEq: "|=",
	Hash: "#", HashHash: "##",
}

// RawToken is the tokenizer's output unit: a token class, its spelled
// text as a string, and its
// start/end position within the file it was lexed from. The
// preprocessor wraps these into the dual spelled/expanded model; the
// tokenizer itself only ever deals in one coordinate space.
type RawToken struct {
	Klass       Kind
	Text        string
	LineStart   int
	ColStart    int // byte column
	LineEnd     int
	ColEnd      int
	UTF16Start  int
	UTF16End    int
	ByteOffset  int // start offset into the source buffer
	ByteEnd     int
}
