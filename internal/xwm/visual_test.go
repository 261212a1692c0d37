package xwm

import (
	"errors"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func trueColor(id xproto.Visualid, r, g, b uint32) xproto.VisualInfo {
	return xproto.VisualInfo{
		VisualId:        id,
		Class:           xproto.VisualClassTrueColor,
		BitsPerRgbValue: 8,
		ColormapEntries: 256,
		RedMask:         r,
		GreenMask:       g,
		BlueMask:        b,
	}
}

var testFormats = []xproto.Format{
	{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
	{Depth: 8, BitsPerPixel: 8, ScanlinePad: 32},
	{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
	{Depth: 32, BitsPerPixel: 32, ScanlinePad: 32},
}

func testDepths() []xproto.DepthInfo {
	return []xproto.DepthInfo{
		{Depth: 24, Visuals: []xproto.VisualInfo{
			trueColor(0x21, 0xff0000, 0x00ff00, 0x0000ff),
			trueColor(0x22, 0xff0000, 0x00ff00, 0x0000ff),
		}},
		{Depth: 32, Visuals: []xproto.VisualInfo{
			trueColor(0x60, 0xff0000, 0x00ff00, 0x0000ff),
			trueColor(0x5f, 0xff0000, 0x00ff00, 0x0000ff),
		}},
		{Depth: 8, Visuals: []xproto.VisualInfo{
			trueColor(0x10, 0xe0, 0x1c, 0x03),
		}},
	}
}

func TestVisualSizes(t *testing.T) {
	v := Visual{Depth: 32, RedMask: 0xff0000, GreenMask: 0x00ff00, BlueMask: 0x0000ff}
	if v.AlphaMask() != 0xff000000 {
		t.Fatalf("AlphaMask() = %#x", v.AlphaMask())
	}
	r, g, b, a := v.Sizes()
	if r != 8 || g != 8 || b != 8 || a != 8 {
		t.Fatalf("Sizes() = %d %d %d %d", r, g, b, a)
	}

	v.Depth = 24
	if v.AlphaMask() != 0 {
		t.Fatalf("AlphaMask() at depth 24 = %#x", v.AlphaMask())
	}
}

func TestChooseVisual(t *testing.T) {
	rgb := VisualRequest{RGBA: true, Red: 1, Green: 1, Blue: 1}
	rgba := VisualRequest{RGBA: true, Red: 1, Green: 1, Blue: 1, Alpha: 1}

	tests := []struct {
		name string
		root xproto.Visualid
		req  VisualRequest
		want xproto.Visualid
	}{
		{"root visual wins", 0x22, rgb, 0x22},
		{"shallowest depth", 0x99, rgb, 0x10},
		{"alpha needs depth 32", 0x21, rgba, 0x5f},
		{"alpha root", 0x60, rgba, 0x60},
		{"eight bits per channel", 0x10, VisualRequest{RGBA: true, Red: 8, Green: 8, Blue: 8}, 0x21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ChooseVisual(testDepths(), testFormats, tt.root, tt.req)
			if err != nil {
				t.Fatal(err)
			}
			if v.ID != tt.want {
				t.Fatalf("ChooseVisual() = %s, want id %d", v, tt.want)
			}
			if v.BitsPerPixel != 32 && v.Depth != 8 {
				t.Fatalf("BitsPerPixel = %d", v.BitsPerPixel)
			}
		})
	}
}

func TestChooseVisualNoMatch(t *testing.T) {
	depths := testDepths()[:1]
	_, err := ChooseVisual(depths, testFormats, 0x21, VisualRequest{RGBA: true, Red: 1, Green: 1, Blue: 1, Alpha: 1})
	if !errors.Is(err, ErrNoVisual) {
		t.Fatalf("err = %v, want ErrNoVisual", err)
	}
}

func TestChooseVisualSkipsPseudoColor(t *testing.T) {
	pseudo := xproto.VisualInfo{VisualId: 0x30, Class: xproto.VisualClassPseudoColor}
	depths := []xproto.DepthInfo{{Depth: 24, Visuals: []xproto.VisualInfo{pseudo}}}
	if _, err := ChooseVisual(depths, testFormats, 0x30, VisualRequest{RGBA: true}); !errors.Is(err, ErrNoVisual) {
		t.Fatalf("err = %v, want ErrNoVisual", err)
	}
}

func TestChooseVisualNeedsPixmapFormat(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32}}
	v, err := ChooseVisual(testDepths(), formats, 0x60, VisualRequest{RGBA: true, Red: 1, Green: 1, Blue: 1})
	if err != nil {
		t.Fatal(err)
	}
	if v.Depth != 24 {
		t.Fatalf("Depth = %d, want 24", v.Depth)
	}
}
