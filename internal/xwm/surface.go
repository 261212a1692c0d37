package xwm

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Surface presents RGBA frames on a window with PutImage.
type Surface struct {
	conn       *xgb.Conn
	window     xproto.Window
	gc         xproto.Gcontext
	depth      byte
	layout     pixelLayout
	maxRequest int
	buf        []byte
}

func NewSurface(d *Display, window xproto.Window, v *Visual) (*Surface, error) {
	layout, err := newPixelLayout(v, d.setup.ImageByteOrder)
	if err != nil {
		return nil, err
	}

	gc, err := xproto.NewGcontextId(d.conn)
	if err != nil {
		return nil, err
	}

	if err := xproto.CreateGCChecked(d.conn, gc, xproto.Drawable(window),
		xproto.GcGraphicsExposures, []uint32{0}).Check(); err != nil {
		return nil, fmt.Errorf("failed to create GC: %w", err)
	}

	return &Surface{
		conn:       d.conn,
		window:     window,
		gc:         gc,
		depth:      v.Depth,
		layout:     layout,
		maxRequest: int(d.setup.MaximumRequestLength) * 4,
	}, nil
}

func (s *Surface) String() string {
	return fmt.Sprintf("xwm.Surface(window=%d)", s.window)
}

// Present uploads img in bands that each fit in one request.
func (s *Surface) Present(img *image.RGBA) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	for _, r := range s.layout.bands(s.maxRequest, width, height) {
		s.buf = s.layout.pack(s.buf, img, r)

		xproto.PutImage(s.conn, xproto.ImageFormatZPixmap, xproto.Drawable(s.window), s.gc,
			uint16(r.Dx()), uint16(r.Dy()), int16(r.Min.X), int16(r.Min.Y), 0, s.depth, s.buf)
	}

	// Round trip so the server has drawn the frame before the next one starts.
	if _, err := xproto.GetInputFocus(s.conn).Reply(); err != nil {
		return fmt.Errorf("%s: present: %w", s, connError(err))
	}

	return nil
}

// Release frees the GC. The window is owned by the caller.
func (s *Surface) Release() error {
	if s.gc == 0 {
		return nil
	}
	gc := s.gc
	s.gc = 0
	return xproto.FreeGCChecked(s.conn, gc).Check()
}
