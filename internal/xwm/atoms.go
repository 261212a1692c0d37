package xwm

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

type Atoms struct {
	WMProtocols          xproto.Atom
	WMDeleteWindow       xproto.Atom
	NetWMName            xproto.Atom
	NetWMState           xproto.Atom
	NetWMStateFullscreen xproto.Atom
	UTF8String           xproto.Atom
}

// InternAtoms sends every InternAtom request before waiting on the first reply.
func InternAtoms(conn *xgb.Conn) (Atoms, error) {
	var atoms Atoms
	requests := []struct {
		name string
		atom *xproto.Atom
	}{
		{"WM_PROTOCOLS", &atoms.WMProtocols},
		{"WM_DELETE_WINDOW", &atoms.WMDeleteWindow},
		{"_NET_WM_NAME", &atoms.NetWMName},
		{"_NET_WM_STATE", &atoms.NetWMState},
		{"_NET_WM_STATE_FULLSCREEN", &atoms.NetWMStateFullscreen},
		{"UTF8_STRING", &atoms.UTF8String},
	}

	cookies := make([]xproto.InternAtomCookie, len(requests))
	for i, r := range requests {
		cookies[i] = xproto.InternAtom(conn, false, uint16(len(r.name)), r.name)
	}

	for i, r := range requests {
		reply, err := cookies[i].Reply()
		if err != nil {
			return Atoms{}, fmt.Errorf("failed to intern %s: %w", r.name, err)
		}
		*r.atom = reply.Atom
	}

	return atoms, nil
}
