package types

import (
	"fmt"
	"strings"
)

// Interner constructs Desc values, collapsing structurally identical
// shapes to a single pointer. One Interner is owned per compilation,
// matching the spec's "the compiler interns on construction" rule and
// the prohibition on cross-compilation type pointer comparisons.
type Interner struct {
	scalars  map[Scalar]*Desc
	vectors  map[string]*Desc
	matrices map[string]*Desc
	samplers map[SamplerKind]*Desc
	arrays   map[string]*Desc
	structs  map[string]*Desc
}

// NewInterner creates an empty type interner.
func NewInterner() *Interner {
	return &Interner{
		scalars:  make(map[Scalar]*Desc),
		vectors:  make(map[string]*Desc),
		matrices: make(map[string]*Desc),
		samplers: make(map[SamplerKind]*Desc),
		arrays:   make(map[string]*Desc),
		structs:  make(map[string]*Desc),
	}
}

// Scalar returns the interned scalar Desc for s.
func (in *Interner) Scalar(s Scalar) *Desc {
	if d, ok := in.scalars[s]; ok {
		return d
	}
	d := &Desc{Kind: ScalarType, Scalar: s}
	d.key = scalarName(s)
	in.scalars[s] = d
	return d
}

// Vector returns the interned vector Desc of component type s and n
// components (2-4).
func (in *Interner) Vector(s Scalar, n int) *Desc {
	key := fmt.Sprintf("v%d:%d", s, n)
	if d, ok := in.vectors[key]; ok {
		return d
	}
	d := &Desc{Kind: Vector, Scalar: s, Cols: n, key: key}
	in.vectors[key] = d
	return d
}

// Matrix returns the interned matrix Desc with the given component
// type, column count and row count.
func (in *Interner) Matrix(s Scalar, cols, rows int) *Desc {
	key := fmt.Sprintf("m%d:%d:%d", s, cols, rows)
	if d, ok := in.matrices[key]; ok {
		return d
	}
	d := &Desc{Kind: Matrix, Scalar: s, Cols: cols, Rows: rows, key: key}
	in.matrices[key] = d
	return d
}

// Sampler returns the interned sampler/image/subpass Desc for k.
func (in *Interner) Sampler(k SamplerKind) *Desc {
	if d, ok := in.samplers[k]; ok {
		return d
	}
	d := &Desc{Kind: Sampler, Sampler: k, key: samplerName(k)}
	in.samplers[k] = d
	return d
}

// Array returns the interned array Desc with the given element type
// and length; pass lenSet=false for an unsized/implicit dimension.
func (in *Interner) Array(elem *Desc, length int, lenSet bool) *Desc {
	key := fmt.Sprintf("a%s:%d:%v", elem.key, length, lenSet)
	if d, ok := in.arrays[key]; ok {
		return d
	}
	d := &Desc{Kind: Array, Elem: elem, ArrayLen: length, ArrayLenSet: lenSet, key: key}
	in.arrays[key] = d
	return d
}

// Struct returns the interned struct Desc for the named type with the
// given ordered member list. Structs are keyed by name plus declaration
// site (declSiteID); the member list is not part of the key. Two
// declarations at different sites never collapse to one pointer, even
// with an identical shape, since each carries its own declaring
// StructDecl identity upstream.
func (in *Interner) Struct(name string, members []Member, declSiteID int) *Desc {
	var b strings.Builder
	b.WriteString("s")
	b.WriteString(name)
	fmt.Fprintf(&b, ":%d", declSiteID)
	key := b.String()
	if d, ok := in.structs[key]; ok {
		return d
	}
	d := &Desc{Kind: Struct, StructName: name, Members: members, key: key}
	in.structs[key] = d
	return d
}
