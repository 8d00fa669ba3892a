package codec

// Glyph dimensions are inferred from the number of literals in a source
// fragment. Three call sites use three slightly different rules, and each is
// kept as firmware sources in the wild were produced against it.

// DecodeDims infers dimensions when loading literals onto the canvas:
// 14 -> 7x16, 20 -> 10x16, up to 12 -> one page n wide, else two pages of
// n/2 columns.
func DecodeDims(n int) Dims {
	switch {
	case n == 14:
		return Dims{Width: 7, Height: 16}
	case n == 20:
		return Dims{Width: 10, Height: 16}
	case n <= 12:
		return Dims{Width: n, Height: 8}
	default:
		return Dims{Width: n / 2, Height: 16}
	}
}

// GenerateDims infers dimensions when regenerating bytes for an existing
// template. Unlike DecodeDims it maps 6 to 6x8 explicitly and switches to
// two pages from 10 literals on.
//
// TODO: confirm with firmware owners whether the 10 vs 12 threshold split
// from DecodeDims is intended; 10, 11 and 12 literal templates decode as one
// page but regenerate as two.
func GenerateDims(n int) Dims {
	switch {
	case n == 14:
		return Dims{Width: 7, Height: 16}
	case n == 20:
		return Dims{Width: 10, Height: 16}
	case n == 6:
		return Dims{Width: 6, Height: 8}
	case n < 10:
		return Dims{Width: n, Height: 8}
	default:
		return Dims{Width: n / 2, Height: 16}
	}
}

// QueueDims infers dimensions for each block queued in multi-glyph mode.
func QueueDims(n int) Dims {
	if n <= 12 {
		return Dims{Width: n, Height: 8}
	}
	return Dims{Width: n / 2, Height: 16}
}
