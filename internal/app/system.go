package app

import (
	"github.com/ItsNotGoodName/x-shapes/internal/gfx"
	"github.com/ItsNotGoodName/x-shapes/internal/xwm"
	"github.com/jezek/xgb/xproto"
)

// WindowSystem is the display server connection the demo draws through.
type WindowSystem interface {
	ChooseVisual(req xwm.VisualRequest) (*xwm.Visual, error)
	CreateColormap(v *xwm.Visual) (xproto.Colormap, error)
	CreateWindow(opts xwm.WindowOptions) (xproto.Window, error)
	NewSurface(window xproto.Window, v *xwm.Visual) (gfx.Surface, error)
	RequestFullscreen(window xproto.Window, enable bool) error
	// PollEvent returns nil when no event is queued.
	PollEvent() (xwm.Event, error)
	DestroyWindow(window xproto.Window) error
	FreeColormap(cmap xproto.Colormap) error
	Close()
}

// Opener connects to the named display.
type Opener func(display string) (WindowSystem, error)

// OpenX11 connects to an X server.
func OpenX11(display string) (WindowSystem, error) {
	d, err := xwm.Open(display)
	if err != nil {
		return nil, err
	}
	return x11{Display: d}, nil
}

type x11 struct {
	*xwm.Display
}

func (x x11) NewSurface(window xproto.Window, v *xwm.Visual) (gfx.Surface, error) {
	s, err := xwm.NewSurface(x.Display, window, v)
	if err != nil {
		return nil, err
	}
	return s, nil
}
