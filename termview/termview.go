// Package termview shows 1-bit images in a terminal, two pixel rows per
// character cell.
package termview

import (
	"context"
	"image"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/flavioheleno/glyphpack/image1bit"
)

// Source is a readable 1-bit image.
type Source interface {
	Bounds() image.Rectangle
	BitAt(x, y int) image1bit.Bit
}

const (
	blockEmpty = ' '
	blockUpper = '▀'
	blockLower = '▄'
	blockFull  = '█'
)

// Cell returns the half-block rune showing a top and a bottom pixel.
func Cell(top, bottom bool) rune {
	switch {
	case top && bottom:
		return blockFull
	case top:
		return blockUpper
	case bottom:
		return blockLower
	default:
		return blockEmpty
	}
}

// Lines renders the r region of src as text, one line per two pixel rows.
// An odd last row is paired with an unlit row.
func Lines(src Source, r image.Rectangle) []string {
	var lines []string
	var sb strings.Builder
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		sb.Reset()
		for x := r.Min.X; x < r.Max.X; x++ {
			bottom := y+1 < r.Max.Y && bool(src.BitAt(x, y+1))
			sb.WriteRune(Cell(bool(src.BitAt(x, y)), bottom))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// View draws a canvas on a tcell screen. The work area is drawn in the
// default style and the rest of the canvas dimmed.
type View struct {
	screen tcell.Screen
	mu     sync.Mutex

	title string
	src   Source
	work  image.Rectangle
}

// New creates a view on the terminal.
func New() (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a view on screen, which is not initialized yet.
func NewWithScreen(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Init initializes the screen.
func (v *View) Init() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.screen.Init(); err != nil {
		return err
	}
	v.screen.HideCursor()
	return nil
}

// Close restores the terminal.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Fini()
}

// Draw shows src with a title line above it and the work rectangle
// highlighted.
func (v *View) Draw(title string, src Source, work image.Rectangle) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.title, v.src, v.work = title, src, work
	v.render()
}

func (v *View) render() {
	v.screen.Clear()

	x := 0
	for _, r := range v.title {
		v.screen.SetContent(x, 0, r, nil, tcell.StyleDefault.Bold(true))
		x++
	}

	if v.src == nil {
		v.screen.Show()
		return
	}

	b := v.src.Bounds()
	dim := tcell.StyleDefault.Dim(true)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		row := 1 + (y-b.Min.Y)/2
		for x := b.Min.X; x < b.Max.X; x++ {
			bottom := y+1 < b.Max.Y && bool(v.src.BitAt(x, y+1))
			style := tcell.StyleDefault
			if !image.Pt(x, y).In(v.work) && !image.Pt(x, y+1).In(v.work) {
				style = dim
			}
			v.screen.SetContent(x-b.Min.X, row, Cell(bool(v.src.BitAt(x, y)), bottom), nil, style)
		}
	}
	v.screen.Show()
}

// Wait blocks until a key is pressed, the screen is closed or ctx is done.
// Resizes redraw the last image.
func (v *View) Wait(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; wakes PollEvent
		case <-done:
		}
	}()

	for {
		switch v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			v.mu.Lock()
			v.screen.Sync()
			v.render()
			v.mu.Unlock()
		}
	}
}
