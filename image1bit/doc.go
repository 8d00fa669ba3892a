// Package image1bit provides a 1-bit monochrome image format laid out the
// way page-addressed display controllers store it.
//
// Page-addressed controllers (ST7565, SSD1306, SH1106 and friends) split the
// panel into horizontal pages of 8 rows. Each byte of display RAM covers one
// column of one page, with bit 0 at the top row of the page and bit 7 at the
// bottom. Bytes are stored page by page, column by column.
//
// Memory layout example for a 3x10 image (two pages):
//
//	Page 0 (rows 0-7): Pix[0] Pix[1] Pix[2]
//	Page 1 (rows 8-9): Pix[3] Pix[4] Pix[5]
//
//	Pixel (1, 9) lives in Pix[3+1], bit 9-8 = 1.
//
// This package provides:
//
// - Bit: A color type representing a lit or unlit pixel
// - BitModel: A color model for converting standard Go colors to Bit
// - VerticalLSB: An image.Image implementation using the page layout
//
// Example usage:
//
//	// Create a 128x64 image
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Read it back
//	lit := img.BitAt(10, 20)
//	println(lit) // Output: true
//
//	// The page bytes can be sent to the controller as-is
//	dev.Write(img.Pix)
package image1bit
