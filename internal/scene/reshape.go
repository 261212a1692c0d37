package scene

import (
	"github.com/ItsNotGoodName/x-shapes/internal/core"
	"github.com/ItsNotGoodName/x-shapes/internal/gfx"
)

const (
	FieldOfView = 45
	Near        = 0.1
	Far         = 100
)

// Target receives the viewport and transforms set by Reshape.
type Target interface {
	Viewport(x, y, width, height int)
	SetProjection(m gfx.Mat4)
	SetModelView(m gfx.Mat4)
}

// Projection is what Reshape applied.
type Projection struct {
	Viewport   gfx.Rect
	Aspect     float32
	Projection gfx.Mat4
}

// Reshape fits the viewport and projection to a drawable of width by height.
// Sizes below 1 are treated as 1.
func Reshape(t Target, width, height int) Projection {
	width, height = core.AtLeast(width, 1), core.AtLeast(height, 1)

	p := Projection{
		Viewport: gfx.Rect{W: width, H: height},
		Aspect:   float32(width) / float32(height),
	}
	p.Projection = gfx.Perspective(FieldOfView, p.Aspect, Near, Far)

	t.Viewport(0, 0, width, height)
	t.SetProjection(p.Projection)
	t.SetModelView(gfx.Identity())

	return p
}
