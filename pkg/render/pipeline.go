// ABOUTME: Composes decode → scale → quantize → pack into one per-frame call.
// ABOUTME: Fans cell rows out over an errgroup; output grid is position-indexed.

package render

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/glimpse/pkg/term"
)

// Pipeline converts captures into cell grids. It holds only immutable
// state (the lookup table, filter choice, worker count) and is safe to
// call from a single render goroutine cycle after cycle.
type Pipeline struct {
	lookup  *Lookup
	filter  Filter
	workers int
}

// NewPipeline returns a pipeline using the given lookup table and
// filter. workers <= 0 selects one worker per CPU.
func NewPipeline(l *Lookup, f Filter, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{lookup: l, filter: f, workers: workers}
}

// Render decodes a capture and produces a cols×rows cell grid. reuse
// is recycled as the output when its dimensions match, avoiding a
// per-frame allocation; pass nil to allocate.
//
// Quantize and pack are fused per cell row: each worker reads two
// pixel rows and writes one disjoint grid row, so the result is
// identical regardless of worker count or scheduling.
func (p *Pipeline) Render(c Capture, cols, rows int, reuse *term.Grid) (*term.Grid, error) {
	img, err := Decode(c)
	if err != nil {
		return nil, err
	}
	return p.convert(img, cols, rows, reuse), nil
}

// RenderImage is the decode-free entry point used by the one-shot file
// mode, where the caller already holds a pixel buffer.
func (p *Pipeline) RenderImage(img *image.RGBA, cols, rows int) *term.Grid {
	return p.convert(img, cols, rows, nil)
}

func (p *Pipeline) convert(img *image.RGBA, cols, rows int, reuse *term.Grid) *term.Grid {
	grid := reuse
	if grid == nil || grid.Cols != cols || grid.Rows != rows {
		grid = term.NewGrid(cols, rows)
	}
	if cols <= 0 || rows <= 0 {
		return grid
	}

	// Two pixel rows per cell row; Scale returns exactly this size.
	scaled := Scale(img, cols, rows*2, p.filter)

	workers := p.workers
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		convertRows(p.lookup, scaled, grid, 0, rows)
		return grid
	}

	var g errgroup.Group
	chunk := (rows + workers - 1) / workers
	for r0 := 0; r0 < rows; r0 += chunk {
		r1 := r0 + chunk
		if r1 > rows {
			r1 = rows
		}
		g.Go(func() error {
			convertRows(p.lookup, scaled, grid, r0, r1)
			return nil
		})
	}
	_ = g.Wait() // workers cannot fail
	return grid
}

// convertRows quantizes and packs cell rows [r0, r1). Each cell row
// touches only its own pair of pixel rows and its own grid cells.
func convertRows(l *Lookup, img *image.RGBA, grid *term.Grid, r0, r1 int) {
	for row := r0; row < r1; row++ {
		top := 2 * row * img.Stride
		bot := (2*row + 1) * img.Stride
		base := row * grid.Cols
		for col := 0; col < grid.Cols; col++ {
			o := top + col*4
			fg := l.Index(img.Pix[o], img.Pix[o+1], img.Pix[o+2])
			o = bot + col*4
			bg := l.Index(img.Pix[o], img.Pix[o+1], img.Pix[o+2])
			grid.Cells[base+col] = term.Cell{Glyph: HalfBlock, Fg: fg, Bg: bg}
		}
	}
}
