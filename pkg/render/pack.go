// ABOUTME: Packs two vertically stacked palette indices into one half-block cell.
// ABOUTME: Foreground carries the upper pixel, background the lower.

package render

import (
	"github.com/mauromedda/glimpse/pkg/term"
)

// HalfBlock is the upper half block glyph every packed cell carries.
// With foreground = upper pixel and background = lower pixel it yields
// two independently colored pixels per character cell.
const HalfBlock = '▀'

// Pack combines quantized pixels into a cell grid of width columns and
// ceil(height/2) rows. The pixel at (2·row, col) becomes the cell's
// foreground, the pixel at (2·row+1, col) its background. An odd
// height is padded by duplicating the last row, so a buffer of height
// h packs identically to one of height h+1 with its final row doubled.
func Pack(indices []uint8, width, height int) *term.Grid {
	rows := (height + 1) / 2
	grid := term.NewGrid(width, rows)
	packRows(indices, width, height, grid, 0, rows)
	return grid
}

// packRows fills cell rows [r0, r1) of grid. Each cell row reads only
// its own two pixel rows and writes only its own cells, so disjoint
// ranges are safe to fill concurrently.
func packRows(indices []uint8, width, height int, grid *term.Grid, r0, r1 int) {
	for row := r0; row < r1; row++ {
		upper := indices[2*row*width : (2*row+1)*width]
		lower := upper
		if 2*row+1 < height {
			lower = indices[(2*row+1)*width : (2*row+2)*width]
		}
		base := row * grid.Cols
		for col := 0; col < width; col++ {
			grid.Cells[base+col] = term.Cell{
				Glyph: HalfBlock,
				Fg:    upper[col],
				Bg:    lower[col],
			}
		}
	}
}
