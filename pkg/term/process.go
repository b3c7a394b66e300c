// ABOUTME: ProcessTerminal implements Terminal using os.Stdout and golang.org/x/term.
// ABOUTME: Manages raw mode state and delegates platform-specific resize handling.

package term

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ProcessTerminal is the real controlling terminal backed by os.Stdout
// and x/term.
type ProcessTerminal struct {
	mu       sync.Mutex
	oldState *term.State
	resizeFn func(cols, rows int)
}

// NewProcessTerminal returns a ProcessTerminal ready for use.
func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{}
}

// EnterRawMode switches stdin to raw mode, saving the previous state.
func (t *ProcessTerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	t.oldState = state
	return nil
}

// ExitRawMode restores the terminal to its saved state. It is a no-op
// when raw mode was never entered, so teardown is safe on every path.
func (t *ProcessTerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(os.Stdin.Fd()), t.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	t.oldState = nil
	return nil
}

// Size returns the current terminal dimensions in character cells.
func (t *ProcessTerminal) Size() (cols, rows int, err error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal size: %w", err)
	}
	return w, h, nil
}

// Write sends bytes to os.Stdout.
func (t *ProcessTerminal) Write(p []byte) (int, error) {
	n, err := os.Stdout.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to stdout: %w", err)
	}
	return n, nil
}

// OnResize registers a callback invoked with the new dimensions when
// the terminal is resized. Platform-specific signal handling is set up
// by startResizeListener.
func (t *ProcessTerminal) OnResize(fn func(cols, rows int)) {
	t.mu.Lock()
	t.resizeFn = fn
	t.mu.Unlock()

	t.startResizeListener()
}
