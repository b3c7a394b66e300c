// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output in a buffer and simulates resize events.

package term

import (
	"bytes"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests. It records written
// output, tracks raw-mode transitions, and can simulate resizes.
type VirtualTerminal struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	cols     int
	rows     int
	rawMode  bool
	resizeFn func(cols, rows int)
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(cols, rows int) *VirtualTerminal {
	return &VirtualTerminal{cols: cols, rows: rows}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = true
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = false
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (cols, rows int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cols, v.rows, nil
}

// Write appends data to the internal buffer.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.Write(p)
}

// OnResize stores the resize callback.
func (v *VirtualTerminal) OnResize(fn func(cols, rows int)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.resizeFn = fn
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// SetSize updates the terminal dimensions and, if a resize callback is
// registered, invokes it with the new size.
func (v *VirtualTerminal) SetSize(cols, rows int) {
	v.mu.Lock()
	v.cols = cols
	v.rows = rows
	fn := v.resizeFn
	v.mu.Unlock()

	if fn != nil {
		fn(cols, rows)
	}
}
