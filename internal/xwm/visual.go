package xwm

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/jezek/xgb/xproto"
)

var ErrNoVisual = errors.New("no visual matches the requested buffer sizes")

// VisualRequest is the minimum pixel format a window visual must offer.
type VisualRequest struct {
	// RGBA limits the choice to TrueColor and DirectColor visuals.
	RGBA  bool
	Red   int
	Green int
	Blue  int
	Alpha int
}

// Visual describes the pixel format of a window.
type Visual struct {
	ID           xproto.Visualid
	Class        byte
	Depth        byte
	BitsPerPixel byte
	ScanlinePad  byte
	RedMask      uint32
	GreenMask    uint32
	BlueMask     uint32
}

func (v Visual) String() string {
	r, g, b, a := v.Sizes()
	return fmt.Sprintf("xwm.Visual(id=%d depth=%d rgba=%d/%d/%d/%d)", v.ID, v.Depth, r, g, b, a)
}

// AlphaMask is every bit of the depth that no color channel uses.
func (v Visual) AlphaMask() uint32 {
	var depthMask uint32 = 0xffffffff
	if v.Depth < 32 {
		depthMask = 1<<v.Depth - 1
	}
	return depthMask &^ (v.RedMask | v.GreenMask | v.BlueMask)
}

// Sizes returns the bit count of each channel.
func (v Visual) Sizes() (red, green, blue, alpha int) {
	return bits.OnesCount32(v.RedMask),
		bits.OnesCount32(v.GreenMask),
		bits.OnesCount32(v.BlueMask),
		bits.OnesCount32(v.AlphaMask())
}

func (v Visual) satisfies(req VisualRequest) bool {
	if req.RGBA && v.Class != xproto.VisualClassTrueColor && v.Class != xproto.VisualClassDirectColor {
		return false
	}
	r, g, b, a := v.Sizes()
	return r >= req.Red && g >= req.Green && b >= req.Blue && a >= req.Alpha
}

// ChooseVisual picks the visual that best matches req. The root visual wins
// when it qualifies, then the shallowest depth, then the lowest id.
func ChooseVisual(depths []xproto.DepthInfo, formats []xproto.Format, root xproto.Visualid, req VisualRequest) (*Visual, error) {
	var candidates []Visual
	for _, depth := range depths {
		format, ok := findFormat(formats, depth.Depth)
		if !ok {
			continue
		}
		for _, info := range depth.Visuals {
			v := Visual{
				ID:           info.VisualId,
				Class:        info.Class,
				Depth:        depth.Depth,
				BitsPerPixel: format.BitsPerPixel,
				ScanlinePad:  format.ScanlinePad,
				RedMask:      info.RedMask,
				GreenMask:    info.GreenMask,
				BlueMask:     info.BlueMask,
			}
			if v.satisfies(req) {
				candidates = append(candidates, v)
			}
		}
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: red>=%d green>=%d blue>=%d alpha>=%d", ErrNoVisual, req.Red, req.Green, req.Blue, req.Alpha)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if (a.ID == root) != (b.ID == root) {
			return a.ID == root
		}
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.ID < b.ID
	})

	v := candidates[0]
	return &v, nil
}

func findFormat(formats []xproto.Format, depth byte) (xproto.Format, bool) {
	for _, f := range formats {
		if f.Depth == depth {
			return f, true
		}
	}
	return xproto.Format{}, false
}

// ChooseVisual picks a visual on the default screen.
func (d *Display) ChooseVisual(req VisualRequest) (*Visual, error) {
	return ChooseVisual(d.screen.AllowedDepths, d.setup.PixmapFormats, d.screen.RootVisual, req)
}
