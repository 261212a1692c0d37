package xwm

import (
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Event is a window system event the demo reacts to.
type Event interface {
	event()
}

type (
	MapEvent struct {
		Window xproto.Window
	}
	KeyPressEvent struct {
		Keycode xproto.Keycode
		Keysym  xproto.Keysym
	}
	ButtonPressEvent struct {
		Button xproto.Button
	}
	MotionEvent struct {
		X, Y int16
	}
	ConfigureEvent struct {
		Window xproto.Window
		Width  uint16
		Height uint16
	}
	// CloseEvent is the window manager asking the window to close.
	CloseEvent struct {
		Window xproto.Window
	}
	// KeymapEvent means the keyboard mapping changed and has been reloaded.
	KeymapEvent struct{}
	DestroyEvent struct {
		Window xproto.Window
	}
	ExposeEvent struct {
		Window xproto.Window
	}
	UnknownEvent struct {
		Raw xgb.Event
	}
)

func (MapEvent) event()         {}
func (KeyPressEvent) event()    {}
func (ButtonPressEvent) event() {}
func (MotionEvent) event()      {}
func (ConfigureEvent) event()   {}
func (CloseEvent) event()       {}
func (KeymapEvent) event()      {}
func (DestroyEvent) event()     {}
func (ExposeEvent) event()      {}
func (UnknownEvent) event()     {}

// Translate converts a core protocol event. Key presses are decoded with the
// unshifted column of km.
func Translate(ev xgb.Event, atoms Atoms, km *Keymap) Event {
	switch ev := ev.(type) {
	case xproto.MapNotifyEvent:
		return MapEvent{Window: ev.Window}
	case xproto.KeyPressEvent:
		return KeyPressEvent{Keycode: ev.Detail, Keysym: km.Lookup(ev.Detail, 0)}
	case xproto.ButtonPressEvent:
		return ButtonPressEvent{Button: ev.Detail}
	case xproto.MotionNotifyEvent:
		return MotionEvent{X: ev.EventX, Y: ev.EventY}
	case xproto.ConfigureNotifyEvent:
		return ConfigureEvent{Window: ev.Window, Width: ev.Width, Height: ev.Height}
	case xproto.ClientMessageEvent:
		if ev.Format == 32 && ev.Type == atoms.WMProtocols && len(ev.Data.Data32) > 0 &&
			xproto.Atom(ev.Data.Data32[0]) == atoms.WMDeleteWindow {
			return CloseEvent{Window: ev.Window}
		}
		return UnknownEvent{Raw: ev}
	case xproto.MappingNotifyEvent:
		return KeymapEvent{}
	case xproto.DestroyNotifyEvent:
		return DestroyEvent{Window: ev.Window}
	case xproto.ExposeEvent:
		return ExposeEvent{Window: ev.Window}
	default:
		return UnknownEvent{Raw: ev}
	}
}

// PollEvent returns the next queued event without blocking. It returns nil
// and no error when the queue is empty. Errors are replies to unchecked requests.
func (d *Display) PollEvent() (Event, error) {
	ev, xerr := d.conn.PollForEvent()
	if xerr != nil {
		return nil, xerr
	}
	if ev == nil {
		return nil, nil
	}

	return d.dispatch(ev), nil
}

// dispatch translates ev and reloads the keymap when the keyboard mapping changed.
func (d *Display) dispatch(ev xgb.Event) Event {
	out := Translate(ev, d.atoms, d.keymap)
	if _, ok := out.(KeymapEvent); ok {
		keymap, err := d.loadKeymap()
		if err != nil {
			slog.Error("Failed to reload keymap", "package", "xwm", "error", err)
		} else {
			d.keymap = keymap
		}
	}

	return out
}
