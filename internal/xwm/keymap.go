package xwm

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// https://gitlab.freedesktop.org/xorg/proto/xorgproto/-/blob/master/include/X11/keysymdef.h
const (
	KeysymEscape xproto.Keysym = 0xff1b
	KeysymUpperF xproto.Keysym = 0x0046
	KeysymLowerF xproto.Keysym = 0x0066
)

// Keymap maps keycodes to keysyms, one row of columns per keycode.
type Keymap struct {
	min     xproto.Keycode
	columns int
	keysyms []xproto.Keysym
}

func NewKeymap(min xproto.Keycode, columns int, keysyms []xproto.Keysym) *Keymap {
	return &Keymap{
		min:     min,
		columns: columns,
		keysyms: keysyms,
	}
}

func LoadKeymap(conn *xgb.Conn, setup *xproto.SetupInfo) (*Keymap, error) {
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get keyboard mapping: %w", err)
	}

	return NewKeymap(setup.MinKeycode, int(reply.KeysymsPerKeycode), reply.Keysyms), nil
}

// Lookup returns the keysym in column of the keycode's row, 0 if there is none.
// Column 0 is the unshifted symbol. A nil Keymap knows no keysyms.
func (k *Keymap) Lookup(keycode xproto.Keycode, column int) xproto.Keysym {
	if k == nil || keycode < k.min || column < 0 || column >= k.columns {
		return 0
	}
	idx := int(keycode-k.min)*k.columns + column
	if idx >= len(k.keysyms) {
		return 0
	}
	return k.keysyms[idx]
}
