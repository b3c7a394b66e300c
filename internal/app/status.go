// ABOUTME: Status row stamped onto the bottom line of the grid.
// ABOUTME: Shows the page URL, capture cadence, and the quit hint.

package app

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/glimpse/pkg/term"
)

const (
	statusFg uint8 = 15  // bright white
	statusBg uint8 = 236 // dark gray
)

// stampStatus writes one line of status text into row of g, padded
// and truncated to the grid width. Runes wider than one column would
// desynchronize the differ's cursor math, so they are replaced.
func stampStatus(g *term.Grid, row int, text string) {
	if row < 0 || row >= g.Rows {
		return
	}
	text = runewidth.Truncate(text, g.Cols, "…")

	col := 0
	for _, r := range text {
		if col >= g.Cols {
			break
		}
		if runewidth.RuneWidth(r) != 1 {
			r = '?'
		}
		g.Set(col, row, term.Cell{Glyph: r, Fg: statusFg, Bg: statusBg})
		col++
	}
	for ; col < g.Cols; col++ {
		g.Set(col, row, term.Cell{Glyph: ' ', Fg: statusFg, Bg: statusBg})
	}
}

// statusText renders the standard status line contents.
func statusText(url string, fps int) string {
	return fmt.Sprintf(" %s  %d fps  q to quit", url, fps)
}
