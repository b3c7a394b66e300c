// ABOUTME: Grid-of-cells frame buffer and the row-major differ driving updates.
// ABOUTME: Zero-valued cells act as a repaint sentinel no packer ever emits.

package term

import (
	"fmt"
	"strings"
)

// Cell is one renderable character cell: a glyph plus 256-color
// foreground and background palette indices. Two cells are equal iff
// all three fields are equal.
//
// The zero Cell (glyph 0) is the repaint sentinel: rendering always
// produces printable glyphs, so diffing against a zero-filled grid
// marks every cell as changed.
type Cell struct {
	Glyph rune
	Fg    uint8
	Bg    uint8
}

// Grid is a row-major cols×rows buffer of cells. Dimensions are fixed
// for the grid's lifetime; resizes allocate a fresh grid.
type Grid struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewGrid returns a zero-filled (sentinel) grid.
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &Grid{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]Cell, cols*rows),
	}
}

// At returns the cell at (col, row). Callers must stay in bounds.
func (g *Grid) At(col, row int) Cell {
	return g.Cells[row*g.Cols+col]
}

// Set stores a cell at (col, row), ignoring out-of-range coordinates.
func (g *Grid) Set(col, row int, c Cell) {
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return
	}
	g.Cells[row*g.Cols+col] = c
}

// Clear resets every cell to the sentinel value.
func (g *Grid) Clear() {
	for i := range g.Cells {
		g.Cells[i] = Cell{}
	}
}

// Lines renders the grid as one ANSI-styled string per row, each ending
// with a style reset. Used by the one-shot render mode and tests; the
// live path goes through Presenter instead.
func (g *Grid) Lines() []string {
	lines := make([]string, 0, g.Rows)
	for row := 0; row < g.Rows; row++ {
		var b strings.Builder
		lastFg, lastBg := -1, -1
		for col := 0; col < g.Cols; col++ {
			c := g.At(col, row)
			if int(c.Fg) != lastFg {
				fmt.Fprintf(&b, "\x1b[38;5;%dm", c.Fg)
				lastFg = int(c.Fg)
			}
			if int(c.Bg) != lastBg {
				fmt.Fprintf(&b, "\x1b[48;5;%dm", c.Bg)
				lastBg = int(c.Bg)
			}
			b.WriteRune(c.Glyph)
		}
		b.WriteString(resetStyle)
		lines = append(lines, b.String())
	}
	return lines
}

// Change is one cell update at a grid coordinate.
type Change struct {
	Col  int
	Row  int
	Cell Cell
}

// Diff returns the cells where cur differs from prev, ordered row-major
// (top-to-bottom, left-to-right) so the presenter only ever moves the
// cursor forward. A nil prev, or a prev with different dimensions,
// yields a full repaint.
func Diff(prev, cur *Grid) []Change {
	if cur == nil {
		return nil
	}

	full := prev == nil || prev.Cols != cur.Cols || prev.Rows != cur.Rows
	var changes []Change
	for row := 0; row < cur.Rows; row++ {
		base := row * cur.Cols
		for col := 0; col < cur.Cols; col++ {
			c := cur.Cells[base+col]
			if !full && prev.Cells[base+col] == c {
				continue
			}
			changes = append(changes, Change{Col: col, Row: row, Cell: c})
		}
	}
	return changes
}
