package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/ItsNotGoodName/x-shapes/internal/gfx"
)

type nopSurface struct {
	presents int
}

func (s *nopSurface) Present(*image.RGBA) error {
	s.presents++
	return nil
}

func (s *nopSurface) Release() error {
	return nil
}

func render(t *testing.T, width, height int) (*gfx.Context, *nopSurface) {
	t.Helper()

	ctx := gfx.NewContext(width, height)
	surface := &nopSurface{}
	if err := ctx.MakeCurrent(surface); err != nil {
		t.Fatal(err)
	}
	Reshape(ctx, width, height)

	if err := New().Display(ctx); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	return ctx, surface
}

func TestReshapeIdempotent(t *testing.T) {
	ctx := gfx.NewContext(800, 600)

	first := Reshape(ctx, 800, 600)
	second := Reshape(ctx, 800, 600)
	if first != second {
		t.Fatalf("Reshape() not idempotent: %+v != %+v", first, second)
	}
	if ctx.ViewportRect() != (gfx.Rect{W: 800, H: 600}) {
		t.Fatalf("viewport = %+v", ctx.ViewportRect())
	}
	if ctx.ModelView() != gfx.Identity() {
		t.Fatalf("model-view not reset")
	}
	if ctx.Projection() != gfx.Perspective(45, 800.0/600.0, 0.1, 100) {
		t.Fatalf("projection = %v", ctx.Projection())
	}
}

func TestReshapeClampsZero(t *testing.T) {
	ctx := gfx.NewContext(1, 1)

	p := Reshape(ctx, 0, 0)
	if p.Viewport != (gfx.Rect{W: 1, H: 1}) {
		t.Fatalf("viewport = %+v, want 1x1", p.Viewport)
	}
	if p.Aspect != 1 {
		t.Fatalf("aspect = %v, want 1", p.Aspect)
	}
	if p != Reshape(ctx, 1, 1) {
		t.Fatalf("Reshape(0, 0) differs from Reshape(1, 1)")
	}
}

func TestDisplayBatches(t *testing.T) {
	ctx, surface := render(t, 800, 600)

	stats := ctx.Stats()
	if surface.presents != 1 || stats.Frames != 1 {
		t.Fatalf("presents = %d, frames = %d", surface.presents, stats.Frames)
	}
	if len(stats.Batches) != 2 {
		t.Fatalf("batches = %d, want 2", len(stats.Batches))
	}

	tri, quad := stats.Batches[0], stats.Batches[1]
	if tri.Mode != gfx.Triangles || tri.Count() != 3 {
		t.Fatalf("first batch = %s x%d", tri.Mode, tri.Count())
	}
	if quad.Mode != gfx.Quads || quad.Count() != 4 {
		t.Fatalf("second batch = %s x%d", quad.Mode, quad.Count())
	}

	wantTri := []gfx.Vertex{
		{Position: gfx.Vec3{0, 1, 0}, Color: gfx.RGB(1, 0, 0)},
		{Position: gfx.Vec3{-1, -1, 0}, Color: gfx.RGB(0, 1, 0)},
		{Position: gfx.Vec3{1, -1, 0}, Color: gfx.RGB(0, 0, 1)},
	}
	for i, v := range wantTri {
		if tri.Vertices[i] != v {
			t.Errorf("triangle[%d] = %+v, want %+v", i, tri.Vertices[i], v)
		}
	}

	wantQuad := []gfx.Vec3{{1, 1, 0}, {-1, 1, 0}, {-1, -1, 0}, {1, -1, 0}}
	for i, p := range wantQuad {
		v := quad.Vertices[i]
		if v.Position != p || v.Color != gfx.RGB(0, 0, 1) {
			t.Errorf("quad[%d] = %+v", i, v)
		}
	}

	if tri.ModelView != gfx.Translate(-1.5, 0, -6) {
		t.Errorf("triangle model-view = %v", tri.ModelView)
	}
	if quad.ModelView != gfx.Translate(1.5, 0, -6) {
		t.Errorf("quad model-view = %v", quad.ModelView)
	}
	if stats.Triangles != 3 {
		t.Errorf("triangles = %d, want 3", stats.Triangles)
	}
}

func TestDisplayPixels(t *testing.T) {
	ctx, _ := render(t, 800, 600)
	img := ctx.ColorBuffer()

	dominant := func(c color.RGBA) string {
		switch {
		case c.R > c.G && c.R > c.B:
			return "red"
		case c.G > c.R && c.G > c.B:
			return "green"
		case c.B > c.R && c.B > c.G:
			return "blue"
		default:
			return "none"
		}
	}

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"triangle apex", 219, 185, "red"},
		{"triangle bottom left", 105, 415, "green"},
		{"triangle bottom right", 330, 415, "blue"},
		{"quad center", 581, 300, "blue"},
		{"quad corner", 465, 185, "blue"},
		{"between shapes", 400, 300, "none"},
		{"above triangle", 219, 100, "none"},
	}

	for _, tt := range tests {
		c := img.RGBAAt(tt.x, tt.y)
		if got := dominant(c); got != tt.want {
			t.Errorf("%s (%d,%d) = %v, want %s", tt.name, tt.x, tt.y, c, tt.want)
		}
	}

	if c := img.RGBAAt(581, 300); c != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("quad center = %v, want pure blue", c)
	}
	if c := img.RGBAAt(400, 300); c != (color.RGBA{}) {
		t.Errorf("background = %v, want the zero clear color", c)
	}
}
