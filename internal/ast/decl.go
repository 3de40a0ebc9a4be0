package ast

import "github.com/teranos/glslls/internal/types"

// StorageQualifier enumerates the storage class part of a type
// qualifier sequence.
type StorageQualifier int

const (
	StorageNone StorageQualifier = iota
	StorageConst
	StorageIn
	StorageOut
	StorageInout
	StorageUniform
	StorageBuffer
	StorageShared
	StorageAttribute
	StorageVarying
)

// PrecisionQualifier enumerates lowp/mediump/highp.
type PrecisionQualifier int

const (
	PrecisionNone PrecisionQualifier = iota
	PrecisionLow
	PrecisionMedium
	PrecisionHigh
)

// InterpolationQualifier enumerates flat/smooth/noperspective.
type InterpolationQualifier int

const (
	InterpolationNone InterpolationQualifier = iota
	InterpolationFlat
	InterpolationSmooth
	InterpolationNoperspective
)

// LayoutQualifier is one `key = value` (or bare `key`) entry inside a
// `layout(...)` qualifier list, e.g. `binding = 0` or `std140`.
type LayoutQualifier struct {
	Key      SyntaxToken
	HasValue bool
	Value    int64
}

// TypeQualifierSeq bundles every qualifier category GLSL allows on a
// declaration: storage, precision, auxiliary (centroid/sample/patch),
// memory (coherent/volatile/restrict/readonly/writeonly), invariance,
// precise, and an ordered layout-qualifier list.
type TypeQualifierSeq struct {
	Storage       StorageQualifier
	Precision     PrecisionQualifier
	Interpolation InterpolationQualifier
	Centroid      bool
	Sample        bool
	Patch         bool
	Invariant     bool
	Precise       bool
	Coherent      bool
	Volatile      bool
	RestrictQ     bool
	ReadOnly      bool
	WriteOnly     bool
	Layout        []LayoutQualifier
}

// ArraySpec is a (possibly chained) array suffix, e.g. `[4][]`. Each
// entry is nil for an unsized/implicit dimension.
type ArraySpec struct {
	Lengths []Expr
}

// QualType is a type specifier together with its qualifier sequence,
// before array suffixes and declarators are applied. TypeTok names a
// builtin type or a struct/user type name; StructDecl is set when the
// specifier is an inline `struct { ... }` definition.
type QualType struct {
	Qualifiers TypeQualifierSeq
	TypeTok    SyntaxToken
	StructDecl *StructDecl // non-nil for an inline struct specifier
	Resolved   *types.Desc // filled in by semantic analysis
}

// Declarator is a single `(name, arraySpec?, initializer?)` inside a
// declaration that may declare many names; name resolution to "the
// Nth declarator of this decl" is a DeclView.
type Declarator struct {
	NameToken   SyntaxToken
	Array       *ArraySpec
	Initializer Expr
}

// DeclView is the canonical identity of one declared name: the owning
// declaration node plus the index of its declarator. Two DeclViews are
// the same declared name iff Decl and Index are both equal; Decl is
// compared by the underlying node's identity (pointer equality of the
// interface value), matching the arena's "addressed by index" model
// one layer up.
type DeclView struct {
	Decl  Decl
	Index int
}

// Equal reports whether v and o name the same declared entity.
func (v DeclView) Equal(o DeclView) bool { return v.Decl == o.Decl && v.Index == o.Index }

// VarDecl declares one or more variables (or, at global scope with no
// declarators, only registers its QualType's struct if any) sharing a
// QualType, e.g. `uniform vec3 a, b[4] = vec3(0);`.
type VarDecl struct {
	DeclBase
	Type        QualType
	Declarators []Declarator
}

// ParamDecl is one function parameter.
type ParamDecl struct {
	DeclBase
	Type Declarator // NameToken may be the zero value for an unnamed parameter
	QType QualType
	Array *ArraySpec
}

// FunctionDecl is a function declaration or definition; Body is nil
// for a prototype (`;` instead of `{ ... }`).
type FunctionDecl struct {
	DeclBase
	ReturnType QualType
	Name       SyntaxToken
	Params     []*ParamDecl
	Body       *CompoundStmt
}

// StructDecl is a struct type's declaration, per the spec's redesign:
// structs are their own top-level declaration node (reachable directly
// for document symbol / go-to-definition) rather than being hidden
// inside whichever VarDecl happens to use them. A StructDecl may still
// be referenced from a VarDecl's QualType.StructDecl when the struct
// specifier appears inline with a trailing declarator list; in that
// case the two nodes share the same *StructDecl value rather than
// duplicating it, so hover/definition on the struct name resolve
// identically either way.
type StructDecl struct {
	DeclBase
	Name    SyntaxToken // zero value for an anonymous struct
	Members []*VarDecl
	Resolved *types.Desc
}

// InterfaceBlockDecl is a `qualifier Name { members } instanceName[n];`
// block (uniform/buffer/in/out block).
type InterfaceBlockDecl struct {
	DeclBase
	Qualifiers   TypeQualifierSeq
	Name         SyntaxToken
	Members      []*VarDecl
	InstanceName SyntaxToken // zero value for an unnamed instance (members visible as bare names)
	Array        *ArraySpec
}

// PrecisionDecl is a top-level `precision highp float;` statement.
type PrecisionDecl struct {
	DeclBase
	Precision PrecisionQualifier
	TypeTok   SyntaxToken
}

// TranslationUnit is the root declaration list for one TU.
type TranslationUnit struct {
	DeclBase
	Decls []Decl
}
