// Package raster converts geometric primitives to grid cells.
package raster

import "image"

// Line returns the cells of the line from a to b, both ends included,
// using integer Bresenham stepping.
//
// The endpoints are ordered before stepping, so Line(a, b) and Line(b, a)
// cover the same cells. Cells are returned in order from the lower endpoint
// (smaller X, then smaller Y) to the other one.
func Line(a, b image.Point) []image.Point {
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}

	x0, y0 := a.X, a.Y
	dx := abs(b.X - x0)
	dy := abs(b.Y - y0)

	sx := -1
	if x0 < b.X {
		sx = 1
	}
	sy := -1
	if y0 < b.Y {
		sy = 1
	}

	points := make([]image.Point, 0, max(dx, dy)+1)
	err := dx - dy
	for {
		points = append(points, image.Pt(x0, y0))
		if x0 == b.X && y0 == b.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

// Clip keeps the points that lie inside r, preserving order.
func Clip(points []image.Point, r image.Rectangle) []image.Point {
	out := points[:0:0]
	for _, p := range points {
		if p.In(r) {
			out = append(out, p)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
