// Package canvas holds the fixed-size 1-bit drawing surface, its centered
// work area and the undo history.
//
// Every mutation pushes a snapshot of the whole canvas before changing any
// cell, and only when at least one cell actually changes. ClearAll is the
// one exception: it always pushes.
package canvas

import (
	"bytes"
	"image"
	"image/draw"

	"github.com/flavioheleno/glyphpack/image1bit"
)

// Canvas dimensions in pixels.
const (
	Width  = 128
	Height = 64
)

// Canvas is the editable bitmap plus its history.
// A Canvas is not safe for concurrent use; callers serialize access.
type Canvas struct {
	img     *image1bit.VerticalLSB
	workW   int
	workH   int
	history *History
}

// New creates an empty canvas keeping historyDepth undo snapshots.
// The work area starts as the full canvas.
func New(historyDepth int) *Canvas {
	return &Canvas{
		img:     image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
		workW:   Width,
		workH:   Height,
		history: NewHistory(historyDepth),
	}
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Rect
}

// Lit reports whether the cell at (x, y) is set. Cells outside the canvas
// are never lit.
func (c *Canvas) Lit(x, y int) bool {
	return bool(c.img.BitAt(x, y))
}

// Image returns a copy of the canvas contents.
func (c *Canvas) Image() *image1bit.VerticalLSB {
	return c.img.Clone()
}

// History returns the undo history.
func (c *Canvas) History() *History {
	return c.history
}

// SetPixel sets the cell at (x, y) to lit. It returns the changed point and
// true, or false when the cell already held the value or lies outside the
// canvas. Nothing is pushed to the history in the latter case.
func (c *Canvas) SetPixel(x, y int, lit bool) (image.Point, bool) {
	p := image.Pt(x, y)
	if !p.In(c.img.Rect) || c.Lit(x, y) == lit {
		return image.Point{}, false
	}
	c.history.Push(c.img.Pix)
	c.img.SetBit(x, y, image1bit.Bit(lit))
	return p, true
}

// Plot sets every in-bounds point to lit as a single history step.
// It returns the cells that changed, in input order, without duplicates.
func (c *Canvas) Plot(points []image.Point, lit bool) []image.Point {
	dirty := false
	for _, p := range points {
		if p.In(c.img.Rect) && c.Lit(p.X, p.Y) != lit {
			dirty = true
			break
		}
	}
	if !dirty {
		return nil
	}

	c.history.Push(c.img.Pix)
	var changed []image.Point
	for _, p := range points {
		if !p.In(c.img.Rect) || c.Lit(p.X, p.Y) == lit {
			continue
		}
		c.img.SetBit(p.X, p.Y, image1bit.Bit(lit))
		changed = append(changed, p)
	}
	return changed
}

// ClearAll pushes a snapshot and turns every cell off.
func (c *Canvas) ClearAll() {
	c.history.Push(c.img.Pix)
	clear(c.img.Pix)
}

// Replace swaps the canvas contents for src as a single history step.
// src is read over the canvas bounds; pixels it does not cover are off.
// It returns false, pushing nothing, when the contents would not change.
func (c *Canvas) Replace(src image.Image) bool {
	next := image1bit.NewVerticalLSB(c.img.Rect)
	if v, ok := src.(*image1bit.VerticalLSB); ok && v.Rect == next.Rect {
		copy(next.Pix, v.Pix)
	} else {
		draw.Draw(next, next.Rect, src, next.Rect.Min, draw.Src)
	}

	if bytes.Equal(next.Pix, c.img.Pix) {
		return false
	}
	c.history.Push(c.img.Pix)
	copy(c.img.Pix, next.Pix)
	return true
}

// Undo restores the most recent snapshot. It returns false when there is
// nothing to undo.
func (c *Canvas) Undo() bool {
	snap, ok := c.history.Pop()
	if !ok {
		return false
	}
	copy(c.img.Pix, snap)
	return true
}

// Resize sets the work area size, clamped to [1, Width] x [1, Height].
func (c *Canvas) Resize(w, h int) {
	c.workW = min(max(w, 1), Width)
	c.workH = min(max(h, 1), Height)
}

// WorkSize returns the work area width and height.
func (c *Canvas) WorkSize() (int, int) {
	return c.workW, c.workH
}

// Offset returns the top-left corner of the centered work area.
func (c *Canvas) Offset() image.Point {
	return image.Pt((Width-c.workW)/2, (Height-c.workH)/2)
}

// WorkArea returns the work area rectangle in canvas coordinates.
func (c *Canvas) WorkArea() image.Rectangle {
	off := c.Offset()
	return image.Rect(off.X, off.Y, off.X+c.workW, off.Y+c.workH)
}
