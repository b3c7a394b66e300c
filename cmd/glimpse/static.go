// ABOUTME: One-shot file mode: render a local image to stdout and exit.
// ABOUTME: Fits the image to the terminal preserving aspect ratio.

package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/mauromedda/glimpse/pkg/render"
)

// renderFile decodes path and prints it as half-block rows. There is
// no frame deadline here, so the slower high-quality kernel is used.
func renderFile(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	img, err := render.Decode(render.Capture{Data: data})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}

	cols, rows := outputSize()
	b := img.Bounds()
	cols, rows = fitCells(b.Dx(), b.Dy(), cols, rows)

	pipeline := render.NewPipeline(render.NewLookup(), render.FilterStatic, 0)
	grid := pipeline.RenderImage(img, cols, rows)

	for _, line := range grid.Lines() {
		fmt.Fprintln(w, line)
	}
	return nil
}

// outputSize probes the controlling terminal, falling back to 80×24
// when stdout is a pipe.
func outputSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	// Leave the prompt a line.
	if rows > 1 {
		rows--
	}
	return cols, rows
}

// fitCells shrinks an image into the available cell grid preserving
// aspect ratio. A cell covers one column and two pixel rows.
func fitCells(imgW, imgH, cols, rows int) (c, r int) {
	if imgW <= 0 || imgH <= 0 || cols <= 0 || rows <= 0 {
		return 1, 1
	}
	availW, availH := cols, rows*2

	var pw, ph int
	if imgW*availH <= imgH*availW {
		// Height-bound: fill the rows.
		ph = availH
		pw = imgW * availH / imgH
	} else {
		pw = availW
		ph = imgH * availW / imgW
	}
	c = max(pw, 1)
	r = max((ph+1)/2, 1)
	return c, r
}
