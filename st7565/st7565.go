package st7565

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/glyphpack/image1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Controller RAM is 132 columns wide and 65 rows tall (8 pages plus the icon row).
const (
	ramColumns = 132
	maxHeight  = 64
)

// DefaultContrast is the electronic volume used when Opts is nil.
const DefaultContrast = 0x1F

var (
	errHalted     = errors.New("st7565: halted")
	errBufferSize = errors.New("st7565: invalid buffer size")
)

// Opts is the configuration for the ST7565 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤132)
	H int // Height (default: 64, must be ≤64)

	// 180° rotation: reverses both the segment and the COM scan direction
	Rotated bool

	// Electronic volume (0-63)
	Contrast byte

	// Optional hardware reset pin
	RST gpio.PinIO
}

// Dev is the device handle for the ST7565 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin (A0)
	rst gpio.PinIO  // Reset pin (optional)

	// Display geometry
	rect         image.Rectangle
	pages        int
	columnOffset int // First visible RAM column; non-zero when the segment order is reversed

	// Pixel buffers
	buffer []byte                 // Last frame sent to the controller
	next   *image1bit.VerticalLSB // Frame being composed by Draw

	// State
	halted bool
}

var _ display.Drawer = (*Dev)(nil)

// NewSPI creates a new ST7565 device connected via SPI.
//
// The SPI port is configured for 4MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (A0) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (128x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 128, H: 64, Contrast: DefaultContrast}
	}

	if opts.W <= 0 || opts.W > ramColumns {
		return nil, fmt.Errorf("st7565: width must be between 1 and %d", ramColumns)
	}
	if opts.H <= 0 || opts.H > maxHeight {
		return nil, fmt.Errorf("st7565: height must be between 1 and %d", maxHeight)
	}
	if opts.Contrast > 0x3F {
		return nil, errors.New("st7565: contrast must be between 0 and 63")
	}

	// The controller samples on the rising edge; 20MHz is the datasheet limit at 3.3V
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("st7565: %w", err)
	}

	d := newDev(c, dc, opts)
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) *Dev {
	rect := image.Rect(0, 0, opts.W, opts.H)
	d := &Dev{
		c:    c,
		dc:   dc,
		rst:  opts.RST,
		rect: rect,
		next: image1bit.NewVerticalLSB(rect),
	}
	d.pages = d.next.Pages()
	d.buffer = make([]byte, len(d.next.Pix))
	if opts.Rotated {
		d.columnOffset = ramColumns - opts.W
	}
	return d
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7565: failed to pull RST low: %w", err)
		}
		time.Sleep(time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("st7565: failed to pull RST high: %w", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := d.sendCommands(initSequence(opts)); err != nil {
		return err
	}

	if err := d.clearRAM(); err != nil {
		return err
	}

	// Display ON
	return d.sendCommand(0xAF)
}

// initSequence returns the power-up commands for opts.
func initSequence(opts *Opts) []byte {
	adc, com := byte(0xA0), byte(0xC8) // Segment normal, COM reversed
	if opts.Rotated {
		adc, com = 0xA1, 0xC0
	}
	contrast := opts.Contrast & 0x3F
	return []byte{
		0xE2,     // Internal reset
		0xA2,     // LCD bias 1/9
		adc,      // Segment driver direction
		com,      // COM output scan direction
		0x24,     // Regulation resistor ratio
		0x81,     // Electronic volume mode set
		contrast, // Electronic volume
		0x2F,     // Booster, regulator and follower on
		0x40,     // Start line 0
		0xA6,     // Normal display
		0xA4,     // Display RAM contents
	}
}

// clearRAM clears all pixels in the display RAM.
func (d *Dev) clearRAM() error {
	zeros := make([]byte, d.rect.Dx())
	for p := 0; p < d.pages; p++ {
		if err := d.writePage(p, 0, zeros); err != nil {
			return err
		}
	}
	return nil
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

// sendCommands sends a slice of command bytes.
func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

// sendData sends a slice of data bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writePage writes column bytes to one page starting at column col.
func (d *Dev) writePage(page, col int, data []byte) error {
	ramCol := col + d.columnOffset
	commands := []byte{
		0xB0 | byte(page&0x0F),      // Page address
		0x10 | byte(ramCol>>4&0x0F), // Column address, high nibble
		byte(ramCol & 0x0F),         // Column address, low nibble
	}
	if err := d.sendCommands(commands); err != nil {
		return err
	}
	return d.sendData(data)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw page data to the display in VerticalLSB format.
// The data must be exactly d.rect.Dx() * pages bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != len(d.buffer) {
		return 0, errBufferSize
	}
	if err := d.writeFullFrame(pixels); err != nil {
		return 0, err
	}
	copy(d.buffer, pixels)
	copy(d.next.Pix, pixels)
	return len(pixels), nil
}

// Draw draws an image onto the display, sending only the changed columns of
// each page.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: source already in display layout at full size
	if img, ok := src.(*image1bit.VerticalLSB); ok && dst == d.rect && sp == img.Rect.Min && img.Rect.Size() == d.rect.Size() {
		copy(d.next.Pix, img.Pix)
	} else {
		draw.Draw(d.next, dst, src, sp, draw.Src)
	}

	w := d.rect.Dx()
	for p := 0; p < d.pages; p++ {
		start, end, ok := diffSpan(d.buffer[p*w:(p+1)*w], d.next.Pix[p*w:(p+1)*w])
		if !ok {
			continue
		}
		if err := d.writePage(p, start, d.next.Pix[p*w+start:p*w+end]); err != nil {
			return err
		}
		copy(d.buffer[p*w+start:p*w+end], d.next.Pix[p*w+start:p*w+end])
	}
	return nil
}

// diffSpan returns the smallest [start, end) column span where prev and next
// differ, or false when they are equal.
func diffSpan(prev, next []byte) (start, end int, ok bool) {
	if bytes.Equal(prev, next) {
		return 0, 0, false
	}
	start = 0
	for prev[start] == next[start] {
		start++
	}
	end = len(next)
	for prev[end-1] == next[end-1] {
		end--
	}
	return start, end, true
}

// writeFullFrame writes every page of pixels to the display.
func (d *Dev) writeFullFrame(pixels []byte) error {
	w := d.rect.Dx()
	for p := 0; p < d.pages; p++ {
		if err := d.writePage(p, 0, pixels[p*w:(p+1)*w]); err != nil {
			return err
		}
	}
	return nil
}

// SetContrast sets the electronic volume (0-63).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	if contrast > 0x3F {
		return errors.New("st7565: contrast must be between 0 and 63")
	}
	return d.sendCommands([]byte{0x81, contrast})
}

// Invert inverts the display colors (lit pixels become dark and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6) // Normal display
	if invert {
		mode = 0xA7 // Reverse display
	}
	return d.sendCommand(mode)
}

// AllOn lights every pixel regardless of RAM contents when on is true.
func (d *Dev) AllOn(on bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA4)
	if on {
		mode = 0xA5
	}
	return d.sendCommand(mode)
}

// Halt turns the display off and enters sleep mode.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommands([]byte{0xAE, 0xA5}) // Display OFF, all points ON: sleep
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7565.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
