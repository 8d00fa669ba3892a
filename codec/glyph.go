package codec

import (
	"fmt"
	"image"
	"strings"

	"github.com/flavioheleno/glyphpack/image1bit"
)

// Format selects the literal syntax of generated output.
type Format uint8

const (
	FormatHex    Format = iota // {0xAA, 0xBB}
	FormatBin                  // 0bAAAAAAAA, 0bBBBBBBBB
	FormatStatus               // gStatusLine[NAME + i] |= 0xHH;
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatHex:
		return "HEX"
	case FormatBin:
		return "BIN"
	case FormatStatus:
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HEX":
		return FormatHex, nil
	case "BIN":
		return FormatBin, nil
	case "STATUS":
		return FormatStatus, nil
	}
	return 0, fmt.Errorf("codec: unknown format %q", s)
}

// Dims is the column width and row height of a glyph in pixels.
// The height is a multiple of 8.
type Dims struct {
	Width  int
	Height int
}

// Pages returns the number of 8-row pages.
func (d Dims) Pages() int {
	return d.Height / 8
}

// Size returns the byte count of a glyph with these dimensions.
func (d Dims) Size() int {
	return d.Width * d.Pages()
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Glyph is a decoded bitmap: page-packed bytes plus their dimensions.
// len(Bytes) is always Width * Height/8.
type Glyph struct {
	Bytes []byte
	Dims
}

// NewGlyph builds a glyph from values, dropping any trailing bytes that do
// not fit d.
func NewGlyph(values []byte, d Dims) Glyph {
	n := min(len(values), d.Size())
	b := make([]byte, n)
	copy(b, values)
	return Glyph{Bytes: b, Dims: d}
}

// Points returns the lit cells of the glyph with its top-left corner at
// origin, page by page, column by column.
func (g Glyph) Points(origin image.Point) []image.Point {
	var points []image.Point
	for i, v := range g.Bytes {
		col := origin.X + i%g.Width
		base := origin.Y + (i/g.Width)*8
		for b := 0; b < 8; b++ {
			if v>>uint(b)&1 == 1 {
				points = append(points, image.Pt(col, base+b))
			}
		}
	}
	return points
}

// Draw lights the glyph's pixels in dst with its top-left corner at origin.
// Pixels outside dst are skipped; unlit glyph pixels leave dst untouched.
func (g Glyph) Draw(dst *image1bit.VerticalLSB, origin image.Point) {
	for _, p := range g.Points(origin) {
		dst.SetBit(p.X, p.Y, image1bit.On)
	}
}

// Layout places glyphs left to right starting at anchor, leaving spacing
// empty columns between them, and returns every lit cell.
// Negative spacing is treated as zero.
func Layout(glyphs []Glyph, anchor image.Point, spacing int) []image.Point {
	spacing = max(spacing, 0)
	var points []image.Point
	x := anchor.X
	for _, g := range glyphs {
		points = append(points, g.Points(image.Pt(x, anchor.Y))...)
		x += g.Width + spacing
	}
	return points
}
