// Package glyphpack edits 1-bit glyphs for page-addressed monochrome LCDs
// and converts them to and from C byte-array literals.
//
// Firmware for small displays such as the ST7565 (used by the UV-K5 radio
// family) stores icons and fonts as byte arrays in which every byte is one
// column of eight vertically stacked pixels. Bit 0 is the topmost pixel. A
// glyph taller than eight pixels is stored page by page: all columns of the
// first eight rows, then all columns of the next eight rows.
//
// # Canvas
//
// The editor owns a fixed 128×64 canvas with a centered work area. Decoding a
// glyph sizes the work area to the glyph and draws it there; generating code
// reads the work area back. Every change that modifies the canvas records a
// snapshot first, so the last 10 changes can be undone.
//
// # Requests
//
// All edits go through Editor.Dispatch:
//
//	e := glyphpack.New(nil)
//
//	e.Dispatch(glyphpack.Decode("const uint8_t gIcon[] = {0x7E, 0x81, 0x81, 0x7E};"))
//	e.Dispatch(glyphpack.Line(image.Pt(60, 28), image.Pt(63, 35)))
//
//	res, _ := e.Dispatch(glyphpack.Generate(template, codec.FormatHex))
//	fmt.Println(res.Output)
//
// Result.Changed lists the cells a request touched so that a view only has to
// redraw those; Result.Redraw asks for a full redraw.
//
// # Output Formats
//
// Three formats are supported:
//
//	HEX     {0x7E, 0x81, 0x81, 0x7E}
//	BIN     0b01111110, 0b10000001, 0b10000001, 0b01111110
//	STATUS  gStatusLine[indicator_x + 0] |= 0x7E;
//
// When the template passed to Generate already holds literals of the
// requested kind, only those literals are replaced, in place and at fixed
// width, so comments, names and layout survive a round trip.
//
// # Multiple Glyphs
//
// In queueing mode a decode splits the text into {...} blocks and keeps one
// glyph per block. Placing the queue draws the glyphs left to right from an
// anchor, separated by the configured spacing.
//
// # Configuration
//
// Defaults can be overridden from a YAML file:
//
//	history_depth: 10
//	spacing: 1
//	label: indicator_x
//	status_interface: gStatusLine
//	log_level: info
//	display:
//	  spi: ""
//	  dc: GPIO25
//	  rst: GPIO24
//	  contrast: 31
//	  rotated: false
//
// The display section is used by the st7565 package to mirror the canvas on
// real hardware.
package glyphpack
