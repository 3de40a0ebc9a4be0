// Package types implements GLSL's structural type system: scalar,
// vector, matrix, sampler/image, array and struct descriptors,
// structurally interned so that two descriptors compare equal iff
// their pointers are equal.
package types

import "fmt"

// Kind discriminates the category of a Desc.
type Kind int

const (
	Error Kind = iota
	Void
	ScalarType
	Vector
	Matrix
	Sampler
	Array
	Struct
)

// Scalar is the base component type of a Scalar/Vector/Matrix Desc.
type Scalar int

const (
	ScalarNone Scalar = iota
	Bool
	Int
	Uint
	Float
	Double
)

// convertRank orders scalars for the "scalar → larger scalar" ladder:
// bool→int→uint→float→double. A higher rank can be reached from a
// lower one by an implicit conversion in arithmetic contexts.
var convertRank = map[Scalar]int{
	Bool: 0, Int: 1, Uint: 2, Float: 3, Double: 4,
}

// SamplerKind distinguishes the sampler/image/texture/subpass variants.
type SamplerKind int

const (
	Sampler2D SamplerKind = iota
	Sampler3D
	SamplerCube
	Sampler2DArray
	SamplerCubeArray
	Image2D
	Subpass
)

// Member describes one field of a Struct-kind Desc.
type Member struct {
	Name string
	Type *Desc
}

// Desc is a structurally interned type descriptor. Construct instances
// only through an Interner so that equal shapes collapse to one
// pointer; never compare two *Desc values from different Interners.
type Desc struct {
	Kind Kind

	Scalar Scalar // valid for Scalar, Vector, Matrix (component type)
	Cols   int    // Vector: component count (2-4); Matrix: column count
	Rows   int    // Matrix: row count (2-4); 0 for non-matrix

	Sampler SamplerKind // valid for Kind == Sampler

	Elem        *Desc // valid for Kind == Array
	ArrayLen    int   // -1 means unsized
	ArrayLenSet bool  // false for an implicit-size trailing parameter dimension

	StructName string   // valid for Kind == Struct
	Members    []Member // valid for Kind == Struct, in declaration order

	key string // memoized interning key
}

// ErrorType is the single shared instance returned whenever type
// deduction cannot produce a meaningful result; analysis continues
// using it rather than aborting.
var ErrorType = &Desc{Kind: Error, key: "<error>"}

// VoidType is the single shared instance for function return type void.
var VoidType = &Desc{Kind: Void, key: "void"}

// IsError reports whether d is the shared error type (or nil).
func IsError(d *Desc) bool { return d == nil || d.Kind == Error }

func (d *Desc) String() string {
	if d == nil {
		return "<nil>"
	}
	switch d.Kind {
	case Error:
		return "<error>"
	case Void:
		return "void"
	case ScalarType:
		return scalarName(d.Scalar)
	case Vector:
		return vectorName(d.Scalar, d.Cols)
	case Matrix:
		return matrixName(d.Scalar, d.Cols, d.Rows)
	case Sampler:
		return samplerName(d.Sampler)
	case Array:
		if d.ArrayLenSet {
			return fmt.Sprintf("%s[%d]", d.Elem, d.ArrayLen)
		}
		return fmt.Sprintf("%s[]", d.Elem)
	case Struct:
		return d.StructName
	}
	return "?"
}

func scalarName(s Scalar) string {
	switch s {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Float:
		return "float"
	case Double:
		return "double"
	}
	return "?"
}

func vectorName(s Scalar, n int) string {
	prefix := ""
	switch s {
	case Int:
		prefix = "i"
	case Uint:
		prefix = "u"
	case Bool:
		prefix = "b"
	case Double:
		prefix = "d"
	}
	return fmt.Sprintf("%svec%d", prefix, n)
}

func matrixName(s Scalar, cols, rows int) string {
	prefix := ""
	if s == Double {
		prefix = "d"
	}
	if cols == rows {
		return fmt.Sprintf("%smat%d", prefix, cols)
	}
	return fmt.Sprintf("%smat%dx%d", prefix, cols, rows)
}

func samplerName(k SamplerKind) string {
	switch k {
	case Sampler2D:
		return "sampler2D"
	case Sampler3D:
		return "sampler3D"
	case SamplerCube:
		return "samplerCube"
	case Sampler2DArray:
		return "sampler2DArray"
	case SamplerCubeArray:
		return "samplerCubeArray"
	case Image2D:
		return "image2D"
	case Subpass:
		return "subpassInput"
	}
	return "?"
}

// CanImplicitlyConvert reports whether a value of type from may be used
// where a value of type to is expected via an implicit scalar-widening
// or scalar-broadcast conversion. Identity is always allowed.
func CanImplicitlyConvert(from, to *Desc) bool {
	if from == to {
		return true
	}
	if IsError(from) || IsError(to) {
		return true // don't cascade errors
	}
	switch {
	case from.Kind == ScalarType && to.Kind == ScalarType:
		return convertRank[from.Scalar] < convertRank[to.Scalar]
	case from.Kind == ScalarType && (to.Kind == Vector || to.Kind == Matrix):
		// broadcast is legal only in constructor/arithmetic positions;
		// the caller (overload resolution) restricts where it applies.
		return from.Scalar == to.Scalar || convertRank[from.Scalar] < convertRank[to.Scalar]
	}
	return false
}

// ConversionCost returns a small non-negative integer ranking how
// "far" an implicit conversion from from to to is, for overload
// resolution's best-match rule; 0 means identical types. Returns -1 if
// no implicit conversion exists.
func ConversionCost(from, to *Desc) int {
	if from == to {
		return 0
	}
	if !CanImplicitlyConvert(from, to) {
		return -1
	}
	if from.Kind == ScalarType && to.Kind == ScalarType {
		return convertRank[to.Scalar] - convertRank[from.Scalar]
	}
	return 1
}
