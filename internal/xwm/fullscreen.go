package xwm

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
)

// _NET_WM_STATE actions.
const (
	wmStateRemove = 0
	wmStateAdd    = 1
)

// Source indication for requests from normal applications.
const sourceApplication = 1

// FullscreenRequest builds the _NET_WM_STATE client message that adds or
// removes the fullscreen state of window.
func FullscreenRequest(window xproto.Window, atoms Atoms, enable bool) xproto.ClientMessageEvent {
	action := uint32(wmStateRemove)
	if enable {
		action = wmStateAdd
	}

	return xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   atoms.NetWMState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{action, uint32(atoms.NetWMStateFullscreen), 0, sourceApplication, 0}),
	}
}

// RequestFullscreen asks the window manager to change the fullscreen state.
// The window manager answers with a ConfigureNotify, if at all.
func (d *Display) RequestFullscreen(window xproto.Window, enable bool) error {
	ev := FullscreenRequest(window, d.atoms, enable)

	if err := xproto.SendEventChecked(
		d.conn,
		false,
		d.screen.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check(); err != nil {
		return fmt.Errorf("failed to send _NET_WM_STATE: %w", err)
	}

	return nil
}
