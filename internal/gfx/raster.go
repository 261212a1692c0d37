package gfx

import (
	"image"
	"math"
)

// Clip-space w at or below this is behind the eye and gets culled.
const minW = 1e-6

type rasterVertex struct {
	clip    Vec4
	varying Varying
}

type screenVertex struct {
	x, y, invW float32
	varying    Varying
}

// rasterize fills a triangle and returns the number of fragments written.
func (c *Context) rasterize(a, b, d rasterVertex) int {
	if a.clip[3] <= minW || b.clip[3] <= minW || d.clip[3] <= minW {
		return 0
	}

	bounds := c.buffer.Bounds()
	v0, v1, v2 := c.toScreen(a, bounds), c.toScreen(b, bounds), c.toScreen(d, bounds)

	area := edge(v0, v1, v2.x, v2.y)
	if area == 0 {
		return 0
	}
	// No face culling, so normalize the winding.
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	clip := c.scissor(bounds)
	minX := max(clip.Min.X, int(floor(min(v0.x, v1.x, v2.x))))
	maxX := min(clip.Max.X-1, int(ceil(max(v0.x, v1.x, v2.x))))
	minY := max(clip.Min.Y, int(floor(min(v0.y, v1.y, v2.y))))
	maxY := min(clip.Max.Y-1, int(ceil(max(v0.y, v1.y, v2.y))))

	bias0, bias1, bias2 := topLeftBias(v1, v2), topLeftBias(v2, v0), topLeftBias(v0, v1)

	fragments := 0
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5

			w0 := edge(v1, v2, px, py)
			w1 := edge(v2, v0, px, py)
			w2 := edge(v0, v1, px, py)
			if w0+bias0 <= 0 || w1+bias1 <= 0 || w2+bias2 <= 0 {
				continue
			}

			// Perspective-correct weights.
			p0, p1, p2 := w0*v0.invW, w1*v1.invW, w2*v2.invW
			sum := p0 + p1 + p2
			if sum == 0 {
				continue
			}
			in := v0.varying.scale(p0 / sum).add(v1.varying.scale(p1 / sum)).add(v2.varying.scale(p2 / sum))

			c.buffer.SetRGBA(x, y, c.program.Fragment(in).RGBA8())
			fragments++
		}
	}

	return fragments
}

// toScreen does the perspective divide and the viewport transform. Window y
// grows upwards while image rows grow downwards, so y is flipped.
func (c *Context) toScreen(v rasterVertex, bounds image.Rectangle) screenVertex {
	invW := 1 / v.clip[3]
	nx, ny := v.clip[0]*invW, v.clip[1]*invW
	vp := c.viewport

	return screenVertex{
		x:       float32(vp.X) + (nx+1)*float32(vp.W)/2,
		y:       float32(bounds.Dy()) - (float32(vp.Y) + (ny+1)*float32(vp.H)/2),
		invW:    invW,
		varying: v.varying,
	}
}

// scissor is the viewport in image coordinates, limited to the buffer.
func (c *Context) scissor(bounds image.Rectangle) image.Rectangle {
	vp := c.viewport
	top := bounds.Dy() - (vp.Y + vp.H)
	return image.Rect(vp.X, top, vp.X+vp.W, top+vp.H).Intersect(bounds)
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// topLeftBias lets pixels exactly on a top or left edge pass, and rejects
// them on the other edges, so shared edges are filled once.
func topLeftBias(a, b screenVertex) float32 {
	dx, dy := b.x-a.x, b.y-a.y
	if (dy == 0 && dx < 0) || dy > 0 {
		return float32(math.SmallestNonzeroFloat32)
	}
	return 0
}

func floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func ceil(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
