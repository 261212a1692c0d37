package gfx

type Uniforms struct {
	Projection Mat4
	ModelView  Mat4
}

// Varying is the per-vertex output that gets interpolated across a triangle.
type Varying struct {
	Color Color
}

func (v Varying) scale(s float32) Varying {
	return Varying{Color: v.Color.Scale(s)}
}

func (v Varying) add(o Varying) Varying {
	return Varying{Color: v.Color.Add(o.Color)}
}

type VertexShader func(u *Uniforms, v Vertex) (Vec4, Varying)

type FragmentShader func(in Varying) Color

type Program struct {
	Vertex   VertexShader
	Fragment FragmentShader
}

// DefaultProgram transforms by projection*modelview and shades with the interpolated vertex color.
var DefaultProgram = Program{
	Vertex:   TransformVertex,
	Fragment: VertexColor,
}

func TransformVertex(u *Uniforms, v Vertex) (Vec4, Varying) {
	p := Vec4{v.Position[0], v.Position[1], v.Position[2], 1}
	return u.Projection.MulVec4(u.ModelView.MulVec4(p)), Varying{Color: v.Color}
}

func VertexColor(in Varying) Color {
	return in.Color
}
