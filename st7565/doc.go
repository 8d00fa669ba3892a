// Package st7565 controls a ST7565 monochrome LCD via SPI.
//
// The ST7565 is a 132×65 dot-matrix LCD controller found in many small
// handheld devices, including the UV-K5 radio family. This driver implements
// the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 1-bit monochrome, page-addressed RAM (8 rows per byte, bit 0 at the top)
// - 132 RAM columns; 128×64 panels are the common configuration
// - Adjustable electronic volume (contrast, 0-63)
// - Display inversion and all-points-on test mode
// - Reversible segment and COM scan direction for 180° mounting
//
// # Hardware Connection
//
// Connect the ST7565 display to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VDD         → 3.3V
//	SCL         → SPI Clock (SCLK)
//	SI          → SPI Data (MOSI)
//	A0          → GPIO (any available pin)
//	CS1         → SPI Chip Select (or GND if always selected)
//	RST         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	host.Init()
//
//	spiBus, _ := spireg.Open("")
//	dcPin := gpioreg.ByName("GPIO25")
//
//	dev, _ := st7565.NewSPI(spiBus, dcPin, nil)
//	defer dev.Halt()
//
//	img := image1bit.NewVerticalLSB(dev.Bounds())
//	img.SetBit(10, 20, image1bit.On)
//
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Drawing Modes
//
// Write sends a full frame of page data, exactly as it sits in a
// image1bit.VerticalLSB:
//
//	dev.Write(img.Pix)
//
// Draw accepts any image.Image, converts it to 1-bit, and only sends the
// columns of each page that differ from the previous frame. Pixels brighter
// than mid-gray are lit.
//
// # Display Resolution
//
//	Opts{W: 128, H: 64} // most panels
//	Opts{W: 128, H: 32} // half-height panels
//
// Width must be ≤132. Height must be ≤64; heights that are not a multiple of
// 8 still use a full last page.
package st7565
