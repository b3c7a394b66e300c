// ABOUTME: The live render loop: ticker-driven captures, latest-frame-wins
// ABOUTME: handoff, differential presentation, and resize/quit handling.

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/glimpse/internal/input"
	"github.com/mauromedda/glimpse/internal/log"
	"github.com/mauromedda/glimpse/pkg/render"
	"github.com/mauromedda/glimpse/pkg/term"
)

// Source produces captures. Closed signals that no further captures
// will ever succeed.
type Source interface {
	Capture(ctx context.Context) (render.Capture, error)
	Closed() <-chan struct{}
}

// Options configures a live session.
type Options struct {
	URL       string
	FPS       int
	Period    time.Duration
	StatusBar bool
}

// App drives captures from a source onto a terminal until the user
// quits or the source dies.
type App struct {
	terminal term.Terminal
	source   Source
	pipeline *render.Pipeline
	stdin    io.Reader
	opts     Options

	size atomic.Uint64 // cols<<32 | rows, updated on resize
}

func New(t term.Terminal, src Source, p *render.Pipeline, stdin io.Reader, opts Options) *App {
	return &App{
		terminal: t,
		source:   src,
		pipeline: p,
		stdin:    stdin,
		opts:     opts,
	}
}

var errQuit = errors.New("quit requested")

// Run owns the terminal until the session ends. It returns nil on a
// user-initiated quit.
func (a *App) Run(ctx context.Context) error {
	if err := term.Setup(a.terminal); err != nil {
		return fmt.Errorf("terminal setup: %w", err)
	}
	defer term.Teardown(a.terminal)

	cols, rows, err := a.terminal.Size()
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}
	a.storeSize(cols, rows)
	a.terminal.OnResize(func(cols, rows int) {
		a.storeSize(cols, rows)
	})

	slot := NewSlot()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return a.captureLoop(ctx, slot) })
	g.Go(func() error { return a.renderLoop(ctx, slot) })
	if a.stdin != nil {
		g.Go(func() error { return a.inputLoop(ctx) })
	}

	err = g.Wait()
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// captureLoop asks the source for a frame at the configured cadence.
// A failed capture is logged and skipped; the next tick retries.
func (a *App) captureLoop(ctx context.Context, slot *Slot) error {
	ticker := time.NewTicker(a.opts.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.source.Closed():
			return errors.New("browser connection closed")
		case <-ticker.C:
		}

		c, err := a.source.Capture(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Debug("capture failed, skipping tick: %v", err)
			continue
		}
		slot.Put(c)
	}
}

// renderLoop consumes the newest frame, converts it, and presents the
// difference. Decode or size errors drop the frame; a write failure
// to the terminal ends the session.
func (a *App) renderLoop(ctx context.Context, slot *Slot) error {
	presenter := term.NewPresenter(a.terminal)
	status := statusText(a.opts.URL, a.opts.FPS)

	var spare *term.Grid
	lastCols, lastRows := 0, 0

	for {
		c, err := slot.Take(ctx)
		if err != nil {
			return err
		}

		cols, rows := a.loadSize()
		if cols != lastCols || rows != lastRows {
			presenter.Invalidate()
			spare = nil
			lastCols, lastRows = cols, rows
		}
		if cols <= 0 || rows <= 0 {
			continue
		}

		grid, err := a.pipeline.Render(c, cols, rows, spare)
		if err != nil {
			log.Debug("dropping frame %d: %v", c.Seq, err)
			continue
		}
		if a.opts.StatusBar {
			stampStatus(grid, grid.Rows-1, status)
		}

		spare, err = presenter.Present(grid)
		if err != nil {
			return err
		}
	}
}

// inputLoop watches for the quit keys. All other input is ignored.
func (a *App) inputLoop(ctx context.Context) error {
	keys := input.Keys(a.stdin)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-keys:
			if !ok {
				return errors.New("input stream closed")
			}
			if isQuit(k) {
				return errQuit
			}
		}
	}
}

func isQuit(k input.Key) bool {
	switch k.Type {
	case input.KeyCtrlC, input.KeyEscape:
		return true
	case input.KeyRune:
		return k.Rune == 'q' || k.Rune == 'Q'
	}
	return false
}

func (a *App) storeSize(cols, rows int) {
	a.size.Store(uint64(uint32(cols))<<32 | uint64(uint32(rows)))
}

func (a *App) loadSize() (cols, rows int) {
	v := a.size.Load()
	return int(uint32(v >> 32)), int(uint32(v))
}
