package codec

import (
	"image"

	"github.com/flavioheleno/glyphpack/image1bit"
)

// Source is a 1-bit pixel grid the encoder reads.
// Pixels outside Bounds must read as Off.
type Source interface {
	Bounds() image.Rectangle
	BitAt(x, y int) image1bit.Bit
}

// EncodeRegion packs the d-sized region of src whose top-left corner is
// origin. For each page, for each column, bit b of the byte is the pixel on
// row page*8+b. Output is page-major, column-minor.
func EncodeRegion(src Source, origin image.Point, d Dims) []byte {
	return pack(src, origin, d.Width, d.Pages())
}

// Autocrop packs the bounding box of the lit pixels of src.
// The box is rounded up to whole pages. ok is false when nothing is lit.
func Autocrop(src Source) (data []byte, d Dims, ok bool) {
	box, ok := litBounds(src)
	if !ok {
		return nil, Dims{}, false
	}
	pages := (box.Dy() + 7) / 8
	d = Dims{Width: box.Dx(), Height: pages * 8}
	return pack(src, box.Min, d.Width, pages), d, true
}

func pack(src Source, origin image.Point, width, pages int) []byte {
	if width <= 0 || pages <= 0 {
		return nil
	}
	data := make([]byte, 0, width*pages)
	for p := 0; p < pages; p++ {
		y0 := origin.Y + p*8
		for x := 0; x < width; x++ {
			var v byte
			for b := 0; b < 8; b++ {
				if src.BitAt(origin.X+x, y0+b) {
					v |= 1 << uint(b)
				}
			}
			data = append(data, v)
		}
	}
	return data
}

// litBounds returns the smallest rectangle holding every lit pixel.
func litBounds(src Source) (image.Rectangle, bool) {
	r := src.Bounds()
	minX, minY := r.Max.X, r.Max.Y
	maxX, maxY := r.Min.X-1, r.Min.Y-1
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !src.BitAt(x, y) {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}
