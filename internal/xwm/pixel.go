package xwm

import (
	"encoding/binary"
	"fmt"
	"image"
	"math/bits"

	"github.com/jezek/xgb/xproto"
)

type channel struct {
	shift uint
	max   uint32
}

func newChannel(mask uint32) channel {
	if mask == 0 {
		return channel{}
	}
	shift := uint(bits.TrailingZeros32(mask))
	return channel{shift: shift, max: mask >> shift}
}

func (c channel) pack(v uint8) uint32 {
	if c.max == 0 {
		return 0
	}
	return (uint32(v)*c.max + 127) / 255 << c.shift
}

// pixelLayout converts RGBA pixels to the ZPixmap format of a visual.
type pixelLayout struct {
	red, green, blue, alpha channel
	bytesPerPixel           int
	scanlinePad             int
	order                   binary.ByteOrder
}

func newPixelLayout(v *Visual, imageByteOrder byte) (pixelLayout, error) {
	if v.RedMask == 0 || v.GreenMask == 0 || v.BlueMask == 0 {
		return pixelLayout{}, fmt.Errorf("%s: visual has no color masks", v)
	}
	switch v.BitsPerPixel {
	case 16, 24, 32:
	default:
		return pixelLayout{}, fmt.Errorf("%s: unsupported %d bits per pixel", v, v.BitsPerPixel)
	}

	var order binary.ByteOrder = binary.LittleEndian
	if imageByteOrder == xproto.ImageOrderMSBFirst {
		order = binary.BigEndian
	}

	return pixelLayout{
		red:           newChannel(v.RedMask),
		green:         newChannel(v.GreenMask),
		blue:          newChannel(v.BlueMask),
		alpha:         newChannel(v.AlphaMask()),
		bytesPerPixel: int(v.BitsPerPixel) / 8,
		scanlinePad:   int(v.ScanlinePad),
		order:         order,
	}, nil
}

// stride is the padded length of one row of width pixels.
func (l pixelLayout) stride(width int) int {
	bitsPerRow := width * l.bytesPerPixel * 8
	pad := max(l.scanlinePad, 8)
	return (bitsPerRow + pad - 1) / pad * pad / 8
}

// pack writes the pixels of r into dst and returns the written bytes. r is
// relative to the image bounds.
func (l pixelLayout) pack(dst []byte, img *image.RGBA, r image.Rectangle) []byte {
	b := img.Bounds()
	width := r.Dx()
	stride := l.stride(width)
	size := stride * r.Dy()
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := dst[(y-r.Min.Y)*stride : (y-r.Min.Y+1)*stride]
		src := img.Pix[img.PixOffset(b.Min.X+r.Min.X, b.Min.Y+y):]
		for x := 0; x < width; x++ {
			s := src[x*4 : x*4+4]
			p := l.red.pack(s[0]) | l.green.pack(s[1]) | l.blue.pack(s[2]) | l.alpha.pack(s[3])
			out := row[x*l.bytesPerPixel:]
			switch l.bytesPerPixel {
			case 4:
				l.order.PutUint32(out, p)
			case 2:
				l.order.PutUint16(out, uint16(p))
			case 3:
				if l.order == binary.ByteOrder(binary.BigEndian) {
					out[0], out[1], out[2] = byte(p>>16), byte(p>>8), byte(p)
				} else {
					out[0], out[1], out[2] = byte(p), byte(p>>8), byte(p>>16)
				}
			}
		}
	}

	return dst
}

// PutImage request header size in bytes.
const putImageHeader = 24

// bands splits a width by height image into rectangles that each fit into
// one request of at most maxRequestBytes. Whole rows are grouped when a row
// fits, otherwise every row is cut into column spans.
func (l pixelLayout) bands(maxRequestBytes, width, height int) []image.Rectangle {
	room := maxRequestBytes - putImageHeader
	if width <= 0 || height <= 0 {
		return nil
	}

	if stride := l.stride(width); stride <= room {
		rows := max(1, min(room/stride, height))
		bands := make([]image.Rectangle, 0, (height+rows-1)/rows)
		for y := 0; y < height; y += rows {
			bands = append(bands, image.Rect(0, y, width, min(y+rows, height)))
		}
		return bands
	}

	cols := max(1, room/l.bytesPerPixel)
	for cols > 1 && l.stride(cols) > room {
		cols--
	}

	spans := (width + cols - 1) / cols
	bands := make([]image.Rectangle, 0, spans*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x += cols {
			bands = append(bands, image.Rect(x, y, min(x+cols, width), y+1))
		}
	}
	return bands
}
