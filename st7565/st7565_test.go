package st7565

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/flavioheleno/glyphpack/image1bit"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"
)

func newTestDev(t *testing.T, opts *Opts) (*Dev, *spitest.Record, *gpiotest.Pin) {
	t.Helper()
	rec := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	dev, err := NewSPI(rec, dc, opts)
	if err != nil {
		t.Fatalf("NewSPI failed: %v", err)
	}
	return dev, rec, dc
}

func TestOptsValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Opts
		wantErr bool
	}{
		{"nil options (uses defaults)", nil, false},
		{"valid 128x64", &Opts{W: 128, H: 64}, false},
		{"valid 132x64 (full RAM)", &Opts{W: 132, H: 64}, false},
		{"valid 128x32", &Opts{W: 128, H: 32}, false},
		{"odd height", &Opts{W: 96, H: 60}, false},
		{"width zero", &Opts{W: 0, H: 64}, true},
		{"width > 132", &Opts{W: 133, H: 64}, true},
		{"height zero", &Opts{W: 128, H: 0}, true},
		{"height > 64", &Opts{W: 128, H: 65}, true},
		{"contrast > 63", &Opts{W: 128, H: 64, Contrast: 64}, true},
		{"rotated (valid)", &Opts{W: 128, H: 64, Rotated: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSPI(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSPI() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitSequence(t *testing.T) {
	dev, rec, dc := newTestDev(t, nil)

	// init commands, one address and one data write per page, display on
	if len(rec.Ops) != 1+2*8+1 {
		t.Fatalf("%d SPI transfers, want %d", len(rec.Ops), 1+2*8+1)
	}
	want := []byte{0xE2, 0xA2, 0xA0, 0xC8, 0x24, 0x81, DefaultContrast, 0x2F, 0x40, 0xA6, 0xA4}
	if !bytes.Equal(rec.Ops[0].W, want) {
		t.Errorf("init = % X, want % X", rec.Ops[0].W, want)
	}
	if got := rec.Ops[1].W; !bytes.Equal(got, []byte{0xB0, 0x10, 0x00}) {
		t.Errorf("first page address = % X", got)
	}
	if got := rec.Ops[2].W; len(got) != 128 || !bytes.Equal(got, make([]byte, 128)) {
		t.Errorf("first page data = % X", got)
	}
	if got := rec.Ops[len(rec.Ops)-1].W; !bytes.Equal(got, []byte{0xAF}) {
		t.Errorf("last command = % X, want AF", got)
	}
	if dc.L != gpio.Low {
		t.Error("DC should be low after a command")
	}
	if dev.String() != "st7565.Dev{128x64}" {
		t.Errorf("String() = %q", dev.String())
	}
}

func TestInitRotated(t *testing.T) {
	_, rec, _ := newTestDev(t, &Opts{W: 128, H: 64, Rotated: true, Contrast: 0x20})

	want := []byte{0xE2, 0xA2, 0xA1, 0xC0, 0x24, 0x81, 0x20, 0x2F, 0x40, 0xA6, 0xA4}
	if !bytes.Equal(rec.Ops[0].W, want) {
		t.Errorf("init = % X, want % X", rec.Ops[0].W, want)
	}
	// Reversed segments skip the first 4 RAM columns
	if got := rec.Ops[1].W; !bytes.Equal(got, []byte{0xB0, 0x10, 0x04}) {
		t.Errorf("first page address = % X, want B0 10 04", got)
	}
}

func TestInitReset(t *testing.T) {
	rst := &gpiotest.Pin{N: "RST", L: gpio.Low}
	if _, err := NewSPI(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, &Opts{W: 128, H: 64, RST: rst}); err != nil {
		t.Fatalf("NewSPI failed: %v", err)
	}
	if rst.L != gpio.High {
		t.Error("RST should be released high after reset")
	}
}

func TestDrawSendsChangedColumns(t *testing.T) {
	dev, rec, dc := newTestDev(t, nil)
	rec.Ops = nil

	img := image1bit.NewVerticalLSB(dev.Bounds())
	img.SetBit(5, 10, image1bit.On)
	img.SetBit(7, 10, image1bit.On)
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if len(rec.Ops) != 2 {
		t.Fatalf("%d SPI transfers, want 2", len(rec.Ops))
	}
	if got := rec.Ops[0].W; !bytes.Equal(got, []byte{0xB1, 0x10, 0x05}) {
		t.Errorf("address = % X, want B1 10 05", got)
	}
	if got := rec.Ops[1].W; !bytes.Equal(got, []byte{0x04, 0x00, 0x04}) {
		t.Errorf("data = % X, want 04 00 04", got)
	}
	if dc.L != gpio.High {
		t.Error("DC should be high after data")
	}

	// Same frame again: nothing to send
	rec.Ops = nil
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("unchanged frame sent %d transfers", len(rec.Ops))
	}
}

func TestDrawConvertsColors(t *testing.T) {
	dev, rec, _ := newTestDev(t, nil)
	rec.Ops = nil

	src := image.NewGray(image.Rect(0, 0, 128, 64))
	src.SetGray(20, 63, color.Gray{Y: 0xFF})
	src.SetGray(21, 63, color.Gray{Y: 0x10})
	if err := dev.Draw(dev.Bounds(), src, image.Point{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	if len(rec.Ops) != 2 {
		t.Fatalf("%d SPI transfers, want 2", len(rec.Ops))
	}
	if got := rec.Ops[0].W; !bytes.Equal(got, []byte{0xB7, 0x11, 0x04}) {
		t.Errorf("address = % X, want B7 11 04", got)
	}
	if got := rec.Ops[1].W; !bytes.Equal(got, []byte{0x80}) {
		t.Errorf("data = % X, want 80", got)
	}
}

func TestDrawOutsideBounds(t *testing.T) {
	dev, rec, _ := newTestDev(t, nil)
	rec.Ops = nil

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 8, 8))
	if err := dev.Draw(image.Rect(200, 200, 208, 208), img, image.Point{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("off-screen draw sent %d transfers", len(rec.Ops))
	}
}

func TestWrite(t *testing.T) {
	dev, rec, _ := newTestDev(t, &Opts{W: 16, H: 16})
	rec.Ops = nil

	pixels := make([]byte, 32)
	pixels[0] = 0xFF
	pixels[31] = 0x01
	if n, err := dev.Write(pixels); err != nil || n != 32 {
		t.Fatalf("Write() = (%d, %v)", n, err)
	}
	if len(rec.Ops) != 4 {
		t.Fatalf("%d SPI transfers, want 4", len(rec.Ops))
	}
	if !bytes.Equal(rec.Ops[3].W, pixels[16:]) {
		t.Errorf("page 1 = % X", rec.Ops[3].W)
	}

	// Drawing the same frame afterwards is a no-op
	rec.Ops = nil
	img := &image1bit.VerticalLSB{Pix: pixels, Stride: 16, Rect: dev.Bounds()}
	if err := dev.Draw(dev.Bounds(), img, image.Point{}); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("Draw after Write sent %d transfers", len(rec.Ops))
	}
}

func TestWriteBufferSizeValidation(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		bufferSize int
	}{
		{"128x64 too small", 128, 64, 128*8 - 1},
		{"128x64 too large", 128, 64, 128*8 + 1},
		{"128x60 unpadded", 128, 60, 128 * 60 / 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, _, _ := newTestDev(t, &Opts{W: tt.width, H: tt.height})
			_, err := dev.Write(make([]byte, tt.bufferSize))
			if err == nil {
				t.Fatal("Write should fail with invalid buffer size")
			}
			if err.Error() != "st7565: invalid buffer size" {
				t.Errorf("Write error = %v, want 'st7565: invalid buffer size'", err)
			}
		})
	}
}

func TestDevHalt(t *testing.T) {
	dev, rec, _ := newTestDev(t, nil)
	rec.Ops = nil

	if err := dev.Halt(); err != nil {
		t.Fatalf("Halt failed: %v", err)
	}
	if len(rec.Ops) != 1 || !bytes.Equal(rec.Ops[0].W, []byte{0xAE, 0xA5}) {
		t.Errorf("Halt sent %v", rec.Ops)
	}

	if err := dev.SetContrast(10); err == nil {
		t.Error("SetContrast should fail when halted")
	}
	if err := dev.Invert(true); err == nil {
		t.Error("Invert should fail when halted")
	}
	if err := dev.AllOn(true); err == nil {
		t.Error("AllOn should fail when halted")
	}
	if _, err := dev.Write(make([]byte, 128*8)); err == nil {
		t.Error("Write should fail when halted")
	}
	if err := dev.Draw(dev.Bounds(), image.NewGray(dev.Bounds()), image.Point{}); err == nil {
		t.Error("Draw should fail when halted")
	}
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(d *Dev) error
		want []byte
	}{
		{"contrast", func(d *Dev) error { return d.SetContrast(0x2A) }, []byte{0x81, 0x2A}},
		{"invert", func(d *Dev) error { return d.Invert(true) }, []byte{0xA7}},
		{"normal", func(d *Dev) error { return d.Invert(false) }, []byte{0xA6}},
		{"all on", func(d *Dev) error { return d.AllOn(true) }, []byte{0xA5}},
		{"all off", func(d *Dev) error { return d.AllOn(false) }, []byte{0xA4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, rec, _ := newTestDev(t, nil)
			rec.Ops = nil
			if err := tt.run(dev); err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if len(rec.Ops) != 1 || !bytes.Equal(rec.Ops[0].W, tt.want) {
				t.Errorf("sent %v, want % X", rec.Ops, tt.want)
			}
		})
	}

	dev, _, _ := newTestDev(t, nil)
	if err := dev.SetContrast(64); err == nil {
		t.Error("SetContrast(64) should fail")
	}
}

func TestDiffSpan(t *testing.T) {
	tests := []struct {
		name       string
		prev, next []byte
		start, end int
		ok         bool
	}{
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, 0, 0, false},
		{"first", []byte{0, 2, 3}, []byte{1, 2, 3}, 0, 1, true},
		{"last", []byte{1, 2, 3}, []byte{1, 2, 4}, 2, 3, true},
		{"middle span", []byte{1, 2, 3, 4}, []byte{1, 0, 0, 4}, 1, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := diffSpan(tt.prev, tt.next)
			if start != tt.start || end != tt.end || ok != tt.ok {
				t.Errorf("diffSpan = (%d, %d, %v), want (%d, %d, %v)", start, end, ok, tt.start, tt.end, tt.ok)
			}
		})
	}
}

func TestDevBoundsAndColorModel(t *testing.T) {
	dev, _, _ := newTestDev(t, &Opts{W: 96, H: 32})
	if got := dev.Bounds(); got != image.Rect(0, 0, 96, 32) {
		t.Errorf("Bounds() = %v", got)
	}
	if dev.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}
