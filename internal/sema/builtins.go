package sema

import "github.com/teranos/glslls/internal/types"

// Overload is one concrete signature of a builtin function.
type Overload struct {
	Params []*types.Desc
	Return *types.Desc
}

// Builtins is the catalog of builtin function overload sets, keyed by
// name. It is built once per Interner (builtin Descs must come from
// the same Interner as every other type the analyzer produces, so
// that pointer-identity comparisons in overload resolution hold).
type Builtins struct {
	in    *types.Interner
	sets  map[string][]Overload
}

// NewBuiltins constructs the standard-library function catalog. It
// covers the common trigonometric/exponential/common/geometric/matrix/
// vector-relational/texture families generically over genType (float,
// vec2, vec3, vec4), rather than enumerating GLSL's full built-in list;
// an unrecognized call falls back to best-effort treatment by the
// caller (inferCall reports it and deduces an error type rather than
// failing the compilation).
func NewBuiltins(in *types.Interner) *Builtins {
	b := &Builtins{in: in, sets: map[string][]Overload{}}
	b.registerGenType()
	b.registerGeometric()
	b.registerMatrix()
	b.registerRelational()
	b.registerTexture()
	return b
}

// Lookup returns name's overload set, or nil if name is not a
// recognized builtin.
func (b *Builtins) Lookup(name string) []Overload { return b.sets[name] }

func (b *Builtins) genTypes() []*types.Desc {
	return []*types.Desc{
		b.in.Scalar(types.Float),
		b.in.Vector(types.Float, 2),
		b.in.Vector(types.Float, 3),
		b.in.Vector(types.Float, 4),
	}
}

func (b *Builtins) add1(name string) {
	for _, t := range b.genTypes() {
		b.sets[name] = append(b.sets[name], Overload{Params: []*types.Desc{t}, Return: t})
	}
}

func (b *Builtins) add2(name string) {
	for _, t := range b.genTypes() {
		b.sets[name] = append(b.sets[name], Overload{Params: []*types.Desc{t, t}, Return: t})
	}
}

func (b *Builtins) add2ScalarSecond(name string) {
	for _, t := range b.genTypes() {
		b.sets[name] = append(b.sets[name], Overload{Params: []*types.Desc{t, t}, Return: t})
		if t != b.in.Scalar(types.Float) {
			b.sets[name] = append(b.sets[name], Overload{Params: []*types.Desc{t, b.in.Scalar(types.Float)}, Return: t})
		}
	}
}

func (b *Builtins) add3(name string) {
	for _, t := range b.genTypes() {
		b.sets[name] = append(b.sets[name], Overload{Params: []*types.Desc{t, t, t}, Return: t})
	}
}

// registerGenType registers the "genType" family: functions whose
// parameters and return are all the same float/vecN shape.
func (b *Builtins) registerGenType() {
	for _, n := range []string{"sin", "cos", "tan", "asin", "acos", "exp", "log", "exp2", "log2",
		"sqrt", "inversesqrt", "abs", "sign", "floor", "ceil", "fract", "radians", "degrees", "normalize"} {
		b.add1(n)
	}
	for _, n := range []string{"atan", "pow", "min", "max", "mod", "step"} {
		b.add2ScalarSecond(n)
	}
	for _, n := range []string{"mix", "clamp", "smoothstep"} {
		b.add3(n)
	}
	// mix(genType, genType, bool) and the boolean-mix-per-component form
	// are omitted: GLSL's bvec-selector mix overload is rare enough in
	// practice that an unresolved call here just skips a cast-insertion
	// opportunity rather than producing a wrong diagnostic.
}

func (b *Builtins) registerGeometric() {
	for _, t := range b.genTypes() {
		b.sets["length"] = append(b.sets["length"], Overload{Params: []*types.Desc{t}, Return: b.in.Scalar(types.Float)})
		b.sets["distance"] = append(b.sets["distance"], Overload{Params: []*types.Desc{t, t}, Return: b.in.Scalar(types.Float)})
		b.sets["dot"] = append(b.sets["dot"], Overload{Params: []*types.Desc{t, t}, Return: b.in.Scalar(types.Float)})
		b.sets["normalize"] = append(b.sets["normalize"], Overload{Params: []*types.Desc{t}, Return: t})
		b.sets["reflect"] = append(b.sets["reflect"], Overload{Params: []*types.Desc{t, t}, Return: t})
		b.sets["faceforward"] = append(b.sets["faceforward"], Overload{Params: []*types.Desc{t, t, t}, Return: t})
	}
	v3 := b.in.Vector(types.Float, 3)
	b.sets["cross"] = []Overload{{Params: []*types.Desc{v3, v3}, Return: v3}}
}

func (b *Builtins) registerMatrix() {
	for _, n := range []int{2, 3, 4} {
		m := b.in.Matrix(types.Float, n, n)
		b.sets["matrixCompMult"] = append(b.sets["matrixCompMult"], Overload{Params: []*types.Desc{m, m}, Return: m})
		b.sets["transpose"] = append(b.sets["transpose"], Overload{Params: []*types.Desc{m}, Return: m})
		b.sets["determinant"] = append(b.sets["determinant"], Overload{Params: []*types.Desc{m}, Return: b.in.Scalar(types.Float)})
		b.sets["inverse"] = append(b.sets["inverse"], Overload{Params: []*types.Desc{m}, Return: m})
	}
}

func (b *Builtins) registerRelational() {
	boolv := func(n int) *types.Desc { return b.in.Vector(types.Bool, n) }
	for _, n := range []int{2, 3, 4} {
		fv := b.in.Vector(types.Float, n)
		iv := b.in.Vector(types.Int, n)
		for _, t := range []*types.Desc{fv, iv} {
			for _, name := range []string{"lessThan", "lessThanEqual", "greaterThan", "greaterThanEqual", "equal", "notEqual"} {
				b.sets[name] = append(b.sets[name], Overload{Params: []*types.Desc{t, t}, Return: boolv(n)})
			}
		}
		b.sets["any"] = append(b.sets["any"], Overload{Params: []*types.Desc{boolv(n)}, Return: b.in.Scalar(types.Bool)})
		b.sets["all"] = append(b.sets["all"], Overload{Params: []*types.Desc{boolv(n)}, Return: b.in.Scalar(types.Bool)})
		b.sets["not"] = append(b.sets["not"], Overload{Params: []*types.Desc{boolv(n)}, Return: boolv(n)})
	}
}

func (b *Builtins) registerTexture() {
	vec4f := b.in.Vector(types.Float, 4)
	samplers := map[types.SamplerKind]*types.Desc{
		types.Sampler2D:   b.in.Vector(types.Float, 2),
		types.Sampler3D:   b.in.Vector(types.Float, 3),
		types.SamplerCube: b.in.Vector(types.Float, 3),
	}
	for kind, coord := range samplers {
		s := b.in.Sampler(kind)
		b.sets["texture"] = append(b.sets["texture"], Overload{Params: []*types.Desc{s, coord}, Return: vec4f})
		b.sets["textureLod"] = append(b.sets["textureLod"], Overload{Params: []*types.Desc{s, coord, b.in.Scalar(types.Float)}, Return: vec4f})
		b.sets["textureSize"] = append(b.sets["textureSize"], Overload{Params: []*types.Desc{s, b.in.Scalar(types.Int)}, Return: b.in.Vector(types.Int, coord.Cols)})
	}
}
