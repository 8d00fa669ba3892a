package codec

// Decode parses the literals of text into a single glyph sized with
// DecodeDims. It returns false when text holds no literal.
func Decode(text string) (Glyph, bool) {
	values, _, ok := Literals(text)
	if !ok {
		return Glyph{}, false
	}
	return NewGlyph(values, DecodeDims(len(values))), true
}

// DecodeBlocks parses every {...} block of text into its own glyph sized
// with QueueDims. Without any block the whole text is one block. Blocks
// without literals are skipped.
func DecodeBlocks(text string) []Glyph {
	blocks := Blocks(text)
	if len(blocks) == 0 {
		blocks = []string{text}
	}

	var glyphs []Glyph
	for _, block := range blocks {
		values, _, ok := Literals(block)
		if !ok {
			continue
		}
		glyphs = append(glyphs, NewGlyph(values, QueueDims(len(values))))
	}
	return glyphs
}
