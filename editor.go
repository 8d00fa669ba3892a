package glyphpack

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/flavioheleno/glyphpack/canvas"
	"github.com/flavioheleno/glyphpack/codec"
	"github.com/flavioheleno/glyphpack/image1bit"
	"github.com/flavioheleno/glyphpack/raster"
)

// ErrUnknownRequest is returned by Dispatch for a request kind it does not handle.
var ErrUnknownRequest = errors.New("glyphpack: unknown request kind")

// Editor owns the canvas, its history and the pending glyph queue.
// All access goes through Dispatch and the accessors below, which serialize
// on one mutex.
type Editor struct {
	mu sync.Mutex

	canvas   *canvas.Canvas
	queue    []codec.Glyph
	queueing bool

	label   string
	spacing int
	iface   string

	logger *slog.Logger
}

// New creates an editor with an empty canvas.
// cfg can be nil to use DefaultConfig.
func New(cfg *Config) *Editor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.defaults()

	return &Editor{
		canvas:  canvas.New(c.HistoryDepth),
		label:   c.Label,
		spacing: c.Spacing,
		iface:   c.StatusInterface,
		logger:  c.Logger,
	}
}

// Dispatch applies req and reports its effects. Requests never leave the
// canvas half-changed: each one either pushes a snapshot and then mutates,
// or changes nothing.
func (e *Editor) Dispatch(req Request) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res Result
	switch req.Kind {
	case KindSetPixel:
		if p, ok := e.canvas.SetPixel(req.At.X, req.At.Y, req.Lit); ok {
			res.Changed = []image.Point{p}
		}
	case KindLine:
		res.Changed = e.canvas.Plot(raster.Line(req.At, req.To), true)
	case KindClear:
		e.canvas.ClearAll()
		res.Redraw = true
	case KindUndo:
		res.Redraw = e.canvas.Undo()
	case KindResize:
		e.canvas.Resize(req.Width, req.Height)
		res.Redraw = true
	case KindDecode:
		res = e.decode(req.Text)
	case KindGenerate:
		res = e.generate(req.Text, req.Format)
	case KindQueueMode:
		e.queueing = req.On
		if !req.On {
			e.queue = nil
		} else if req.Text != "" {
			res = e.decode(req.Text)
		}
	case KindPlace:
		res.Changed = e.place(req.At)
	case KindSetLabel:
		e.label = strings.TrimSpace(req.Label)
	case KindSettings:
		res = e.applySettings(req.Settings)
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownRequest, req.Kind)
	}

	res.Queued = len(e.queue)
	res.Label = e.labelOrDefault()
	e.logger.Debug("glyphpack: dispatch",
		"kind", req.Kind,
		"changed", len(res.Changed),
		"redraw", res.Redraw,
		"ignored", res.Ignored,
		"history", e.canvas.History().Len(),
		"queued", res.Queued,
	)
	return res, nil
}

// decode loads the literals of text. In queueing mode every {...} block
// becomes a pending glyph and the canvas is left alone; otherwise the work
// area is sized to the glyph, and the canvas is cleared and the glyph drawn
// at the work area as one history step.
func (e *Editor) decode(text string) Result {
	if e.queueing {
		glyphs := codec.DecodeBlocks(text)
		if len(glyphs) == 0 {
			return Result{}
		}
		e.inferLabel(text)
		e.queue = glyphs
		return Result{}
	}

	g, ok := codec.Decode(text)
	if !ok {
		return Result{}
	}
	e.inferLabel(text)

	e.canvas.Resize(g.Width, g.Height)
	next := image1bit.NewVerticalLSB(e.canvas.Bounds())
	g.Draw(next, e.canvas.Offset())
	e.canvas.Replace(next)
	return Result{Redraw: true, Dims: g.Dims}
}

// generate renders the canvas in format f. When template holds literals the
// work area region of the size they imply is encoded and written back into
// template; otherwise the lit bounding box is encoded into a fresh list.
func (e *Editor) generate(template string, f codec.Format) Result {
	img := e.canvas.Image()

	var (
		data []byte
		d    codec.Dims
	)
	if values, _, ok := codec.Literals(template); ok {
		d = codec.GenerateDims(len(values))
		data = codec.EncodeRegion(img, e.canvas.Offset(), d)
	} else {
		var ok bool
		data, d, ok = codec.Autocrop(img)
		if !ok {
			e.logger.Debug("glyphpack: nothing to generate, canvas is blank")
			return Result{}
		}
	}

	out := codec.Rewrite(template, f, data, codec.RewriteOptions{
		Interface: e.iface,
		Label:     e.label,
	})
	return Result{Output: out, Generated: true, Dims: d}
}

// place lights the queued glyphs left to right from anchor as one history
// step and empties the queue.
func (e *Editor) place(anchor image.Point) []image.Point {
	if !e.queueing || len(e.queue) == 0 {
		return nil
	}
	points := codec.Layout(e.queue, anchor, e.spacing)
	e.queue = nil
	return e.canvas.Plot(points, true)
}

func (e *Editor) inferLabel(text string) {
	if label, ok := codec.InferLabel(text, e.iface); ok {
		e.label = label
	}
}

func (e *Editor) labelOrDefault() string {
	if e.label == "" {
		return codec.DefaultLabel
	}
	return e.label
}

// applySettings parses every field of s before applying any of them.
func (e *Editor) applySettings(s Settings) Result {
	w, wok, err := parseSetting(s.Width)
	if err != nil {
		return Result{Ignored: true}
	}
	h, hok, err := parseSetting(s.Height)
	if err != nil {
		return Result{Ignored: true}
	}
	sp, sok, err := parseSetting(s.Spacing)
	if err != nil {
		return Result{Ignored: true}
	}

	var res Result
	if wok || hok {
		cw, ch := e.canvas.WorkSize()
		if wok {
			cw = w
		}
		if hok {
			ch = h
		}
		e.canvas.Resize(cw, ch)
		res.Redraw = true
	}
	if sok {
		if sp < 0 {
			sp = 1
		}
		e.spacing = sp
	}
	return res
}

func parseSetting(s string) (v int, set bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Image returns a copy of the canvas.
func (e *Editor) Image() *image1bit.VerticalLSB {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvas.Image()
}

// WorkArea returns the work area rectangle in canvas coordinates.
func (e *Editor) WorkArea() image.Rectangle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvas.WorkArea()
}

// Lit reports whether the cell at (x, y) is set.
func (e *Editor) Lit(x, y int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvas.Lit(x, y)
}

// Label returns the STATUS offset name.
func (e *Editor) Label() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.labelOrDefault()
}

// Spacing returns the number of empty columns left between placed glyphs.
func (e *Editor) Spacing() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.spacing
}

// Queue returns a copy of the glyphs waiting for placement.
func (e *Editor) Queue() []codec.Glyph {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]codec.Glyph, len(e.queue))
	copy(out, e.queue)
	return out
}

// Queueing reports whether the editor is in queueing mode.
func (e *Editor) Queueing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queueing
}

// HistoryLen returns the number of undo snapshots held.
func (e *Editor) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canvas.History().Len()
}
