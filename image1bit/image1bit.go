// Package image1bit provides a 1-bit image format matching page-addressed
// monochrome display RAM.
//
// Pixels are packed 8 per byte along the vertical axis. Bit 0 is the top row
// of a page. This package provides the Bit color type and the VerticalLSB
// image implementation.
package image1bit

import (
	"image"
	"image/color"
)

// Bit represents a monochrome pixel. On is a lit pixel.
type Bit bool

const (
	Off = Bit(false)
	On  = Bit(true)
)

// RGBA converts the Bit to standard RGBA. A lit pixel is white.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image stored as 8-row pages.
// Each byte holds one column of one page: bit 0 is the top row of the page.
type VerticalLSB struct {
	Pix    []byte          // Pixel data, page-major then column
	Stride int             // Bytes per page (equal to the image width)
	Rect   image.Rectangle // Image bounds
}

// NewVerticalLSB creates a new VerticalLSB image with the specified bounds.
// The height does not need to be a multiple of 8; the last page is padded.
func NewVerticalLSB(r image.Rectangle) *VerticalLSB {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &VerticalLSB{Rect: r}
	}

	pages := (h + 7) / 8
	return &VerticalLSB{
		Pix:    make([]byte, w*pages),
		Stride: w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y).
// Pixels outside the bounds read as Off.
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return Bit(p.Pix[offset]&mask != 0)
}

// Set sets the color of the pixel at (x, y).
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
// Writes outside the bounds are ignored.
func (p *VerticalLSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Opaque reports that every pixel is fully opaque.
func (p *VerticalLSB) Opaque() bool {
	return true
}

// Pages returns the number of 8-row pages backing the image.
func (p *VerticalLSB) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// Clone returns a deep copy of the image.
func (p *VerticalLSB) Clone() *VerticalLSB {
	c := &VerticalLSB{Stride: p.Stride, Rect: p.Rect}
	if p.Pix != nil {
		c.Pix = make([]byte, len(p.Pix))
		copy(c.Pix, p.Pix)
	}
	return c
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *VerticalLSB) pixOffset(x, y int) (offset int, mask byte) {
	ry := y - p.Rect.Min.Y
	offset = (ry/8)*p.Stride + (x - p.Rect.Min.X)
	mask = 1 << uint(ry&7)
	return
}
