package xwm

import (
	"fmt"
	"log/slog"

	"github.com/ItsNotGoodName/x-shapes/internal/xcursor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// EventMask is everything the demo window listens to.
const EventMask = xproto.EventMaskExposure |
	xproto.EventMaskVisibilityChange |
	xproto.EventMaskButtonPress |
	xproto.EventMaskKeyPress |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskStructureNotify

type WindowOptions struct {
	Title    string
	Width    uint16
	Height   uint16
	Visual   *Visual
	Colormap xproto.Colormap
}

func (d *Display) CreateColormap(v *Visual) (xproto.Colormap, error) {
	cmap, err := xproto.NewColormapId(d.conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.CreateColormapChecked(d.conn, xproto.ColormapAllocNone, cmap, d.screen.Root, v.ID).Check(); err != nil {
		return 0, fmt.Errorf("failed to create colormap: %w", err)
	}

	return cmap, nil
}

func (d *Display) FreeColormap(cmap xproto.Colormap) error {
	return xproto.FreeColormapChecked(d.conn, cmap).Check()
}

// CreateWindow creates, names and maps a top-level window that the window
// manager may close through WM_DELETE_WINDOW.
func (d *Display) CreateWindow(opts WindowOptions) (xproto.Window, error) {
	wid, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return 0, err
	}

	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap)
	values := []uint32{
		d.screen.BlackPixel,
		0,
		EventMask,
		uint32(opts.Colormap),
	}

	cursor, err := xcursor.CreateCursor(d.conn, xcursor.LeftPtr)
	if err != nil {
		slog.Warn("Failed to create cursor", "package", "xwm", "error", err)
	} else {
		defer xcursor.FreeCursor(d.conn, cursor)
		mask |= xproto.CwCursor
		values = append(values, uint32(cursor))
	}

	if err := xproto.CreateWindowChecked(d.conn, opts.Visual.Depth,
		wid, d.screen.Root,
		0, 0, opts.Width, opts.Height, 0,
		xproto.WindowClassInputOutput, opts.Visual.ID,
		mask, values).Check(); err != nil {
		return 0, fmt.Errorf("failed to create window: %w", err)
	}

	if err := d.setupWindow(wid, opts.Title); err != nil {
		xproto.DestroyWindow(d.conn, wid)
		return 0, err
	}

	return wid, nil
}

func (d *Display) setupWindow(wid xproto.Window, title string) error {
	if err := d.SetTitle(wid, title); err != nil {
		return err
	}

	if err := d.SetWMProtocols(wid, d.atoms.WMDeleteWindow); err != nil {
		return err
	}

	if err := xproto.MapWindowChecked(d.conn, wid).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}

	return nil
}

// SetTitle sets both the ICCCM and the EWMH window name.
func (d *Display) SetTitle(wid xproto.Window, title string) error {
	if err := xproto.ChangePropertyChecked(d.conn, xproto.PropModeReplace, wid,
		xproto.AtomWmName, xproto.AtomString, 8,
		uint32(len(title)), []byte(title)).Check(); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}

	if err := xproto.ChangePropertyChecked(d.conn, xproto.PropModeReplace, wid,
		d.atoms.NetWMName, d.atoms.UTF8String, 8,
		uint32(len(title)), []byte(title)).Check(); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}

	return nil
}

func (d *Display) SetWMProtocols(wid xproto.Window, protocols ...xproto.Atom) error {
	data := make([]byte, 4*len(protocols))
	for i, atom := range protocols {
		xgb.Put32(data[i*4:], uint32(atom))
	}

	if err := xproto.ChangePropertyChecked(d.conn, xproto.PropModeReplace, wid,
		d.atoms.WMProtocols, xproto.AtomAtom, 32,
		uint32(len(protocols)), data).Check(); err != nil {
		return fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	return nil
}

func (d *Display) DestroyWindow(wid xproto.Window) error {
	return xproto.DestroyWindowChecked(d.conn, wid).Check()
}
