// ABOUTME: Maps RGBA pixel buffers to palette indices through the lookup table.
// ABOUTME: Pure per-pixel function; rows are independent, so callers may fan out.

package render

import "image"

// Quantize returns one palette index per pixel, row-major, order
// preserved. It is a pure function of the lookup table and the input:
// no shared mutable state, so pixel ranges can be processed in
// parallel without changing the result.
func Quantize(l *Lookup, img *image.RGBA) []uint8 {
	b := img.Bounds()
	out := make([]uint8, b.Dx()*b.Dy())
	quantizeRows(l, img, out, 0, b.Dy())
	return out
}

// quantizeRows fills out for pixel rows [y0, y1). out is indexed by
// absolute position, so disjoint row ranges never race.
func quantizeRows(l *Lookup, img *image.RGBA, out []uint8, y0, y1 int) {
	width := img.Bounds().Dx()
	for y := y0; y < y1; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		base := y * width
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+3 : x*4+4]
			out[base+x] = l.Index(px[0], px[1], px[2])
		}
	}
}
