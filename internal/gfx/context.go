package gfx

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

var (
	ErrNoSurface = errors.New("render context is not current")
	ErrDestroyed = errors.New("render context destroyed")
)

// Surface is where a Context presents finished frames.
type Surface interface {
	Present(img *image.RGBA) error
	// Release frees the server side resources backing the surface.
	Release() error
}

type Rect struct {
	X, Y, W, H int
}

// Batch records one Draw call.
type Batch struct {
	Mode      Mode
	Vertices  []Vertex
	ModelView Mat4
}

func (b Batch) Count() int {
	return len(b.Vertices)
}

type Stats struct {
	// Frames is the number of flushes since the context was created.
	Frames uint64
	// Batches drawn since the last Clear.
	Batches   []Batch
	Triangles int
	Fragments int
}

// Context is a software render context. It owns a color buffer, the
// transform state and the bound program, and presents to a Surface on Flush.
type Context struct {
	buffer    *image.RGBA
	viewport  Rect
	clear     Color
	uniforms  Uniforms
	program   Program
	surface   Surface
	stats     Stats
	destroyed bool
}

func NewContext(width, height int) *Context {
	c := &Context{
		buffer:   image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))),
		viewport: Rect{W: max(width, 1), H: max(height, 1)},
		program:  DefaultProgram,
		uniforms: Uniforms{
			Projection: Identity(),
			ModelView:  Identity(),
		},
	}
	return c
}

// MakeCurrent binds the context to s. A previously bound surface is released.
func (c *Context) MakeCurrent(s Surface) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.surface != nil && c.surface != s {
		if err := c.Release(); err != nil {
			return err
		}
	}
	c.surface = s
	return nil
}

func (c *Context) IsCurrent() bool {
	return c.surface != nil
}

// Release unbinds the context and releases its surface.
func (c *Context) Release() error {
	if c.surface == nil {
		return nil
	}
	s := c.surface
	c.surface = nil
	if err := s.Release(); err != nil {
		return fmt.Errorf("release surface: %w", err)
	}
	return nil
}

// Destroy frees the color buffer. Any later drawing returns ErrDestroyed.
func (c *Context) Destroy() {
	c.destroyed = true
	c.buffer = nil
	c.stats.Batches = nil
}

func (c *Context) Destroyed() bool {
	return c.destroyed
}

// Resize reallocates the color buffer to match the drawable size.
func (c *Context) Resize(width, height int) {
	if c.destroyed {
		return
	}
	width, height = max(width, 1), max(height, 1)
	if b := c.buffer.Bounds(); b.Dx() == width && b.Dy() == height {
		return
	}
	c.buffer = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (c *Context) Viewport(x, y, width, height int) {
	c.viewport = Rect{X: x, Y: y, W: width, H: height}
}

func (c *Context) ViewportRect() Rect {
	return c.viewport
}

func (c *Context) SetProjection(m Mat4) {
	c.uniforms.Projection = m
}

func (c *Context) Projection() Mat4 {
	return c.uniforms.Projection
}

func (c *Context) SetModelView(m Mat4) {
	c.uniforms.ModelView = m
}

func (c *Context) ModelView() Mat4 {
	return c.uniforms.ModelView
}

func (c *Context) ClearColor(col Color) {
	c.clear = col
}

func (c *Context) UseProgram(p Program) {
	c.program = p
}

// Clear fills the color buffer with the clear color and starts a new batch list.
func (c *Context) Clear() error {
	if c.destroyed {
		return ErrDestroyed
	}
	draw.Draw(c.buffer, c.buffer.Bounds(), image.NewUniform(c.clear.RGBA8()), image.Point{}, draw.Src)
	c.stats.Batches = c.stats.Batches[:0]
	c.stats.Triangles = 0
	c.stats.Fragments = 0
	return nil
}

// Draw runs the bound program over every primitive in b.
func (c *Context) Draw(b *VertexBuffer) error {
	if c.destroyed {
		return ErrDestroyed
	}

	out := make([]rasterVertex, len(b.vertices))
	for i, v := range b.vertices {
		out[i].clip, out[i].varying = c.program.Vertex(&c.uniforms, v)
	}
	for _, tri := range b.triangles() {
		c.stats.Triangles++
		c.stats.Fragments += c.rasterize(out[tri[0]], out[tri[1]], out[tri[2]])
	}

	c.stats.Batches = append(c.stats.Batches, Batch{
		Mode:      b.mode,
		Vertices:  b.Vertices(),
		ModelView: c.uniforms.ModelView,
	})
	return nil
}

// Flush presents the color buffer to the bound surface.
func (c *Context) Flush() error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.surface == nil {
		return ErrNoSurface
	}
	c.stats.Frames++
	return c.surface.Present(c.buffer)
}

// Stats returns a snapshot of the frame statistics.
func (c *Context) Stats() Stats {
	s := c.stats
	s.Batches = append([]Batch(nil), c.stats.Batches...)
	return s
}

// ColorBuffer returns the color buffer. It is only valid until the next Resize.
func (c *Context) ColorBuffer() *image.RGBA {
	return c.buffer
}
