// Package xwm binds the demo to an X11 server through the core protocol.
package xwm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ErrConnectionClosed means the X server went away. Nothing sent afterwards
// will be answered.
var ErrConnectionClosed = errors.New("X connection closed")

// connError marks errors caused by a dropped connection with ErrConnectionClosed.
func connError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrConnectionClosed, err)
	}
	return err
}

// Display is a client connection to an X server and its default screen.
type Display struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	atoms  Atoms
	keymap *Keymap

	loadKeymap func() (*Keymap, error)
}

// Open connects to the named display. An empty name uses $DISPLAY.
func Open(name string) (*Display, error) {
	conn, err := xgb.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("unable to open X display %q: %w", name, err)
	}

	setup := xproto.Setup(conn)
	d := &Display{
		conn:   conn,
		setup:  setup,
		screen: setup.DefaultScreen(conn),
	}

	d.atoms, err = InternAtoms(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	d.loadKeymap = func() (*Keymap, error) {
		return LoadKeymap(conn, setup)
	}

	d.keymap, err = d.loadKeymap()
	if err != nil {
		conn.Close()
		return nil, err
	}

	slog.Debug("Connected to X server",
		"package", "xwm",
		"vendor", setup.Vendor,
		"root", d.screen.Root,
		"root-depth", d.screen.RootDepth,
		"max-request-length", setup.MaximumRequestLength)

	return d, nil
}

func (d *Display) Conn() *xgb.Conn {
	return d.conn
}

func (d *Display) Root() xproto.Window {
	return d.screen.Root
}

func (d *Display) Atoms() Atoms {
	return d.atoms
}

// Close drops the connection. The server frees anything the client still owns.
func (d *Display) Close() {
	d.conn.Close()
}
