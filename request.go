package glyphpack

import (
	"image"

	"github.com/flavioheleno/glyphpack/codec"
)

// Kind identifies an editor request.
type Kind uint8

const (
	KindSetPixel  Kind = iota // set one cell to Lit
	KindLine                  // light the line From-To
	KindClear                 // turn every cell off
	KindUndo                  // restore the previous snapshot
	KindResize                // set the work area to Width x Height
	KindDecode                // load the literals in Text
	KindGenerate              // render the canvas in Format against the template in Text
	KindQueueMode             // enter (On) or leave queueing mode
	KindPlace                 // place the queued glyphs at At
	KindSetLabel              // set the STATUS offset name to Label
	KindSettings              // apply the typed Settings
)

// String returns the request kind name.
func (k Kind) String() string {
	switch k {
	case KindSetPixel:
		return "set-pixel"
	case KindLine:
		return "line"
	case KindClear:
		return "clear"
	case KindUndo:
		return "undo"
	case KindResize:
		return "resize"
	case KindDecode:
		return "decode"
	case KindGenerate:
		return "generate"
	case KindQueueMode:
		return "queue-mode"
	case KindPlace:
		return "place"
	case KindSetLabel:
		return "set-label"
	case KindSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Request is one editor operation. Only the fields its Kind names are read.
type Request struct {
	Kind   Kind
	At     image.Point // pixel, line start or placement anchor
	To     image.Point // line end
	Lit    bool
	Width  int
	Height int
	Text   string
	Format codec.Format
	On     bool
	Label  string

	Settings Settings
}

// Settings holds numeric settings as typed by a user. Empty fields are left
// unchanged.
type Settings struct {
	Width   string
	Height  string
	Spacing string
}

// SetPixel returns a request setting (x, y) to lit.
func SetPixel(x, y int, lit bool) Request {
	return Request{Kind: KindSetPixel, At: image.Pt(x, y), Lit: lit}
}

// Line returns a request lighting the line from a to b.
func Line(a, b image.Point) Request {
	return Request{Kind: KindLine, At: a, To: b}
}

// Clear returns a request turning every cell off.
func Clear() Request {
	return Request{Kind: KindClear}
}

// Undo returns a request restoring the previous snapshot.
func Undo() Request {
	return Request{Kind: KindUndo}
}

// Resize returns a request setting the work area size.
func Resize(w, h int) Request {
	return Request{Kind: KindResize, Width: w, Height: h}
}

// Decode returns a request loading the literals of text.
func Decode(text string) Request {
	return Request{Kind: KindDecode, Text: text}
}

// Generate returns a request rendering the canvas in format f, reusing
// template when it holds matching literals.
func Generate(template string, f codec.Format) Request {
	return Request{Kind: KindGenerate, Text: template, Format: f}
}

// QueueMode returns a request entering or leaving queueing mode. Entering
// with a non-empty text decodes it into the queue right away.
func QueueMode(on bool, text string) Request {
	return Request{Kind: KindQueueMode, On: on, Text: text}
}

// Place returns a request placing the queued glyphs at (x, y).
func Place(x, y int) Request {
	return Request{Kind: KindPlace, At: image.Pt(x, y)}
}

// SetLabel returns a request naming the STATUS offset.
func SetLabel(label string) Request {
	return Request{Kind: KindSetLabel, Label: label}
}

// ApplySettings returns a request applying s. If any field fails to parse
// nothing is applied and the result is marked Ignored. Sizes are clamped to
// the canvas and a negative spacing falls back to 1.
func ApplySettings(s Settings) Request {
	return Request{Kind: KindSettings, Settings: s}
}

// Result reports what a request did.
type Result struct {
	// Changed lists the cells to redraw when Redraw is false.
	Changed []image.Point
	// Redraw asks for the whole canvas to be redrawn.
	Redraw bool

	// Output is the generated text; Generated is false when nothing was
	// produced, for example when autocropping a blank canvas.
	Output    string
	Generated bool

	// Dims is the glyph size a decode or generate used.
	Dims codec.Dims
	// Queued is the number of glyphs waiting for placement.
	Queued int
	// Label is the current STATUS offset name.
	Label string
	// Ignored is set when a request was rejected as a whole, such as
	// settings that do not parse.
	Ignored bool
}
