// Package scene draws a color-interpolated triangle and a blue quad side by
// side under a perspective projection.
package scene

import (
	"fmt"

	"github.com/ItsNotGoodName/x-shapes/internal/core"
	"github.com/ItsNotGoodName/x-shapes/internal/gfx"
)

// Camera distance to the shapes and their horizontal offset from the center.
const (
	Depth  = -6
	Offset = 1.5
)

// Renderer is the part of a render context used to draw a frame.
type Renderer interface {
	Clear() error
	SetModelView(m gfx.Mat4)
	Draw(b *gfx.VertexBuffer) error
	Flush() error
}

type Scene struct {
	Triangle *gfx.VertexBuffer
	Quad     *gfx.VertexBuffer
}

func New() *Scene {
	return &Scene{
		Triangle: core.Must2(gfx.NewVertexBuffer(gfx.Triangles,
			gfx.Vertex{Position: gfx.Vec3{0, 1, 0}, Color: gfx.Red},
			gfx.Vertex{Position: gfx.Vec3{-1, -1, 0}, Color: gfx.Green},
			gfx.Vertex{Position: gfx.Vec3{1, -1, 0}, Color: gfx.Blue},
		)),
		Quad: core.Must2(gfx.NewVertexBuffer(gfx.Quads,
			gfx.Vertex{Position: gfx.Vec3{1, 1, 0}, Color: gfx.Blue},
			gfx.Vertex{Position: gfx.Vec3{-1, 1, 0}, Color: gfx.Blue},
			gfx.Vertex{Position: gfx.Vec3{-1, -1, 0}, Color: gfx.Blue},
			gfx.Vertex{Position: gfx.Vec3{1, -1, 0}, Color: gfx.Blue},
		)),
	}
}

// Display renders one frame and presents it.
func (s *Scene) Display(r Renderer) error {
	if err := r.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	r.SetModelView(gfx.Translate(-Offset, 0, Depth))
	if err := r.Draw(s.Triangle); err != nil {
		return fmt.Errorf("draw triangle: %w", err)
	}

	r.SetModelView(gfx.Translate(Offset, 0, Depth))
	if err := r.Draw(s.Quad); err != nil {
		return fmt.Errorf("draw quad: %w", err)
	}

	return r.Flush()
}
