package sema

import "github.com/teranos/glslls/internal/types"

// swizzleSets are the three interchangeable component-naming
// alphabets GLSL allows; a single field access must draw every letter
// from exactly one set.
var swizzleSets = []string{"xyzw", "rgba", "stpq"}

// resolveSwizzle reports whether name is a valid swizzle on a vector
// of baseCols components, and if so the resulting component count
// (1 for field access that deduces to the scalar component type).
func resolveSwizzle(name string, baseCols int) (count int, ok bool) {
	if len(name) == 0 || len(name) > 4 {
		return 0, false
	}
	var set string
	for _, s := range swizzleSets {
		if containsAny(s, name) {
			set = s
			break
		}
	}
	if set == "" {
		return 0, false
	}
	for _, c := range name {
		idx := indexByte(set, byte(c))
		if idx < 0 || idx >= baseCols {
			return 0, false
		}
	}
	return len(name), true
}

func containsAny(set, name string) bool {
	return indexByte(set, name[0]) >= 0
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

// swizzleResultType returns the Desc a swizzle of count components on
// a vector with scalar component type comp deduces to: the bare scalar
// for a single-letter swizzle (`v.x`), else a same-length vector.
func swizzleResultType(in *types.Interner, comp types.Scalar, count int) *types.Desc {
	if count == 1 {
		return in.Scalar(comp)
	}
	return in.Vector(comp, count)
}
