package gfx

import "fmt"

// Mode is the primitive type a VertexBuffer is assembled into.
type Mode int

const (
	Triangles Mode = iota
	Quads
)

func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	case Quads:
		return "quads"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m Mode) stride() int {
	if m == Quads {
		return 4
	}
	return 3
}

type Vertex struct {
	Position Vec3
	Color    Color
}

// VertexBuffer holds vertex data that is uploaded once and drawn every frame.
type VertexBuffer struct {
	mode     Mode
	vertices []Vertex
}

func NewVertexBuffer(mode Mode, vertices ...Vertex) (*VertexBuffer, error) {
	if mode != Triangles && mode != Quads {
		return nil, fmt.Errorf("unknown primitive %s", mode)
	}
	if len(vertices) == 0 || len(vertices)%mode.stride() != 0 {
		return nil, fmt.Errorf("%s need a multiple of %d vertices, got %d", mode, mode.stride(), len(vertices))
	}

	return &VertexBuffer{
		mode:     mode,
		vertices: append([]Vertex(nil), vertices...),
	}, nil
}

func (b *VertexBuffer) Mode() Mode {
	return b.mode
}

func (b *VertexBuffer) Len() int {
	return len(b.vertices)
}

// Vertices returns a copy of the buffer contents.
func (b *VertexBuffer) Vertices() []Vertex {
	return append([]Vertex(nil), b.vertices...)
}

// triangles returns the vertex indices of every triangle. Quads are split along the 0-2 diagonal.
func (b *VertexBuffer) triangles() [][3]int {
	stride := b.mode.stride()
	tris := make([][3]int, 0, len(b.vertices)/stride*(stride-2))
	for i := 0; i < len(b.vertices); i += stride {
		tris = append(tris, [3]int{i, i + 1, i + 2})
		if b.mode == Quads {
			tris = append(tris, [3]int{i, i + 2, i + 3})
		}
	}
	return tris
}
