// ABOUTME: Presenter emits differential cell updates as one buffered ANSI burst.
// ABOUTME: Owns the committed "previous" grid; single-threaded by design.

package term

import (
	"bytes"
	"fmt"
	"strconv"
)

// Presenter writes grid updates to a terminal. It holds the previously
// committed grid and emits only the cells that changed since, as a
// single Write wrapped in a synchronized-output guard (CSI 2026) so
// terminals apply the frame atomically.
//
// The presenter is not safe for concurrent use: exactly one goroutine
// drives Present, which is what keeps cycles strictly ordered.
type Presenter struct {
	w    Terminal
	prev *Grid
	buf  bytes.Buffer
}

// NewPresenter returns a Presenter writing to t.
func NewPresenter(t Terminal) *Presenter {
	return &Presenter{w: t}
}

// Invalidate discards the committed grid so the next Present repaints
// every cell. Called on resize and before the first frame.
func (p *Presenter) Invalidate() {
	p.prev = nil
}

// Present diffs cur against the committed grid, writes the changed
// cells, and commits cur. It returns the displaced previous grid so
// the caller can recycle its storage, and a non-nil error only on
// output failure, which is fatal: once the display is gone there is
// nothing left to recover to.
func (p *Presenter) Present(cur *Grid) (*Grid, error) {
	changes := Diff(p.prev, cur)
	displaced := p.prev
	if len(changes) == 0 {
		p.prev = cur
		return displaced, nil
	}

	p.buf.Reset()
	p.buf.WriteString("\x1b[?2026h")

	// Track cursor and SGR state so runs of same-row changes collapse
	// into one cursor move and colors are only re-emitted on change.
	nextCol, nextRow := -1, -1
	curFg, curBg := -1, -1
	for _, ch := range changes {
		if ch.Row != nextRow || ch.Col != nextCol {
			p.buf.WriteString("\x1b[")
			p.buf.WriteString(strconv.Itoa(ch.Row + 1))
			p.buf.WriteByte(';')
			p.buf.WriteString(strconv.Itoa(ch.Col + 1))
			p.buf.WriteByte('H')
		}
		if int(ch.Cell.Fg) != curFg {
			p.buf.WriteString("\x1b[38;5;")
			p.buf.WriteString(strconv.Itoa(int(ch.Cell.Fg)))
			p.buf.WriteByte('m')
			curFg = int(ch.Cell.Fg)
		}
		if int(ch.Cell.Bg) != curBg {
			p.buf.WriteString("\x1b[48;5;")
			p.buf.WriteString(strconv.Itoa(int(ch.Cell.Bg)))
			p.buf.WriteByte('m')
			curBg = int(ch.Cell.Bg)
		}
		p.buf.WriteRune(ch.Cell.Glyph)
		nextCol, nextRow = ch.Col+1, ch.Row
	}

	p.buf.WriteString(resetStyle)
	p.buf.WriteString("\x1b[?2026l")

	if _, err := p.w.Write(p.buf.Bytes()); err != nil {
		return displaced, fmt.Errorf("presenting frame: %w", err)
	}

	p.prev = cur
	return displaced, nil
}

// Committed returns the currently committed grid, or nil right after
// an invalidate. Exposed for tests.
func (p *Presenter) Committed() *Grid {
	return p.prev
}
