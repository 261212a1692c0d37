// Package app runs the demo: it owns the window, the render context and the
// event loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-shapes/internal/config"
	"github.com/ItsNotGoodName/x-shapes/internal/gfx"
	"github.com/ItsNotGoodName/x-shapes/internal/scene"
	"github.com/ItsNotGoodName/x-shapes/internal/xwm"
	"github.com/jezek/xgb/xproto"
)

var (
	ErrSetup    = errors.New("setup failed")
	ErrNotSetup = errors.New("demo is not set up")
)

// Visual requirements of the color buffer.
var visualRequest = xwm.VisualRequest{RGBA: true, Red: 1, Green: 1, Blue: 1, Alpha: 1}

// Resources counts what the demo currently holds.
type Resources struct {
	Connection int
	Visual     int
	Colormap   int
	Window     int
	Context    int
	Surface    int
}

// Live is the total number of held resources.
func (r Resources) Live() int {
	return r.Connection + r.Visual + r.Colormap + r.Window + r.Context + r.Surface
}

// Demo owns every resource of the running demo. It is not safe for
// concurrent use.
type Demo struct {
	cfg   config.Config
	open  Opener
	scene *scene.Scene
	pacer *Pacer

	ws       WindowSystem
	visual   *xwm.Visual
	colormap xproto.Colormap
	window   xproto.Window
	ctx      *gfx.Context

	width      int
	height     int
	fullscreen bool
	done       bool
	closed     bool
	// lost is set once the X connection has dropped.
	lost bool
}

func New(cfg config.Config, open Opener) *Demo {
	return &Demo{
		cfg:   cfg,
		open:  open,
		scene: scene.New(),
		pacer: NewPacer(cfg.FPS()),
	}
}

func (d *Demo) String() string {
	return fmt.Sprintf("app.Demo(window=%d)", d.window)
}

// Setup connects to display and creates the window and its render context.
// On failure everything created so far is released.
func (d *Demo) Setup(display string) (err error) {
	defer func() {
		if err != nil {
			d.Teardown()
			err = fmt.Errorf("%w: %w", ErrSetup, err)
		}
	}()

	ws, err := d.open(display)
	if err != nil {
		return err
	}
	d.ws = ws

	d.visual, err = ws.ChooseVisual(visualRequest)
	if err != nil {
		return err
	}
	slog.Debug("Chose visual", "package", "app", "visual", d.visual.String())

	d.colormap, err = ws.CreateColormap(d.visual)
	if err != nil {
		return err
	}

	d.window, err = ws.CreateWindow(xwm.WindowOptions{
		Title:    d.cfg.Title,
		Width:    uint16(d.cfg.Width),
		Height:   uint16(d.cfg.Height),
		Visual:   d.visual,
		Colormap: d.colormap,
	})
	if err != nil {
		return err
	}

	surface, err := ws.NewSurface(d.window, d.visual)
	if err != nil {
		return fmt.Errorf("failed to create surface: %w", err)
	}

	ctx := gfx.NewContext(d.cfg.Width, d.cfg.Height)
	if err := ctx.MakeCurrent(surface); err != nil {
		surface.Release()
		return err
	}
	d.ctx = ctx

	rgba := d.cfg.Clear()
	ctx.ClearColor(gfx.Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]})
	d.Resize(d.cfg.Width, d.cfg.Height)

	slog.Info("Window created", "package", "app", "window", d.window, "width", d.width, "height", d.height)

	return nil
}

// Run drains pending events and renders one frame per iteration until the
// demo is done, the window is closed or ctx is cancelled. Resources are
// released before it returns.
func (d *Demo) Run(ctx context.Context) error {
	if d.ws == nil {
		return ErrNotSetup
	}
	defer d.Teardown()

	d.pacer.Reset()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := d.drain(); err != nil {
			return err
		}
		if d.closed {
			slog.Info("Window closed", "package", "app")
			return nil
		}

		if err := d.Display(); err != nil {
			if errors.Is(err, xwm.ErrConnectionClosed) {
				d.lost = true
				return err
			}
			slog.Warn("Failed to render frame", "package", "app", "error", err)
		}

		if d.done {
			slog.Debug("Done", "package", "app")
			return nil
		}

		d.pacer.Wait(ctx)
	}
}

// Serve runs the demo as a service.
func (d *Demo) Serve(ctx context.Context) error {
	return d.Run(ctx)
}

func (d *Demo) drain() error {
	for d.ws != nil {
		ev, err := d.ws.PollEvent()
		if err != nil {
			if errors.Is(err, xwm.ErrConnectionClosed) {
				d.lost = true
				return err
			}
			slog.Error("X error", "package", "app", "error", err)
			continue
		}
		if ev == nil {
			return nil
		}
		d.HandleEvent(ev)
	}
	return nil
}

// HandleEvent applies one window system event.
func (d *Demo) HandleEvent(ev xwm.Event) {
	switch ev := ev.(type) {
	case xwm.MapEvent:
		slog.Debug("MapEvent", "package", "app", "window", ev.Window)
	case xwm.KeyPressEvent:
		switch ev.Keysym {
		case xwm.KeysymEscape:
			d.done = true
		case xwm.KeysymLowerF, xwm.KeysymUpperF:
			if err := d.ToggleFullscreen(); err != nil {
				slog.Error("Failed to toggle fullscreen", "package", "app", "error", err)
			}
		}
	case xwm.ButtonPressEvent, xwm.MotionEvent:
		// Unused.
	case xwm.ConfigureEvent:
		d.Resize(int(ev.Width), int(ev.Height))
	case xwm.CloseEvent:
		d.Teardown()
		d.closed = true
	case xwm.DestroyEvent:
		// Some window managers destroy the window but keep the connection open.
		if ev.Window == d.window {
			d.window = 0
			d.done = true
		}
	case xwm.KeymapEvent:
		slog.Debug("Keyboard mapping changed", "package", "app")
	}
}

// ToggleFullscreen asks the window manager to enter or leave fullscreen.
// The state flips as soon as the request is sent.
func (d *Demo) ToggleFullscreen() error {
	if d.ws == nil || d.window == 0 {
		return ErrNotSetup
	}

	if err := d.ws.RequestFullscreen(d.window, !d.fullscreen); err != nil {
		return err
	}
	d.fullscreen = !d.fullscreen

	slog.Debug("Toggled fullscreen", "package", "app", "fullscreen", d.fullscreen)

	return nil
}

// Resize records the new drawable size and refits the projection.
func (d *Demo) Resize(width, height int) {
	d.width, d.height = width, height
	if d.ctx == nil {
		return
	}

	d.ctx.Resize(width, height)
	scene.Reshape(d.ctx, width, height)
}

// Display renders and presents one frame.
func (d *Demo) Display() error {
	if d.ctx == nil {
		return gfx.ErrNoSurface
	}
	return d.scene.Display(d.ctx)
}

// Teardown releases everything in reverse order of creation. It is safe to
// call more than once. After the connection is lost only the client side
// state is dropped, the server has already freed the rest.
func (d *Demo) Teardown() {
	if d.ctx != nil {
		if d.ctx.IsCurrent() && !d.lost {
			if err := d.ctx.Release(); err != nil {
				slog.Warn("Failed to release context", "package", "app", "error", err)
			}
		}
		d.ctx.Destroy()
		d.ctx = nil
	}

	if d.window != 0 && !d.lost {
		if err := d.ws.DestroyWindow(d.window); err != nil {
			slog.Warn("Failed to destroy window", "package", "app", "error", err)
		}
	}
	d.window = 0

	if d.colormap != 0 && !d.lost {
		if err := d.ws.FreeColormap(d.colormap); err != nil {
			slog.Warn("Failed to free colormap", "package", "app", "error", err)
		}
	}
	d.colormap = 0

	d.visual = nil

	if d.ws != nil {
		d.ws.Close()
		d.ws = nil
	}
}

func (d *Demo) Resources() Resources {
	var r Resources
	if d.ws != nil {
		r.Connection = 1
	}
	if d.visual != nil {
		r.Visual = 1
	}
	if d.colormap != 0 {
		r.Colormap = 1
	}
	if d.window != 0 {
		r.Window = 1
	}
	if d.ctx != nil {
		r.Context = 1
		if d.ctx.IsCurrent() {
			r.Surface = 1
		}
	}
	return r
}

func (d *Demo) Fullscreen() bool {
	return d.fullscreen
}

func (d *Demo) Done() bool {
	return d.done
}

func (d *Demo) Size() (width, height int) {
	return d.width, d.height
}

// Stats returns the render statistics, zero once torn down.
func (d *Demo) Stats() gfx.Stats {
	if d.ctx == nil {
		return gfx.Stats{}
	}
	return d.ctx.Stats()
}
