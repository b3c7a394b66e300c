// ABOUTME: Defines the Terminal interface plus session setup/teardown helpers.
// ABOUTME: Abstracts raw mode, size queries, output, and resize notifications.

package term

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Terminal abstracts the display the renderer draws on: raw mode,
// size queries, byte output, and resize notifications. ProcessTerminal
// targets the controlling TTY; VirtualTerminal backs unit tests.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (cols, rows int, err error)
	Write(p []byte) (n int, err error)
	OnResize(fn func(cols, rows int))
}

// Control sequences for session setup and teardown.
const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	clearScreen    = "\x1b[2J\x1b[H"
	resetStyle     = "\x1b[0m"
)

// Setup claims the terminal for full-screen rendering: raw mode,
// alternate screen, hidden cursor, cleared display.
func Setup(t Terminal) error {
	if err := t.EnterRawMode(); err != nil {
		return err
	}
	if _, err := t.Write([]byte(enterAltScreen + hideCursor + clearScreen)); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	return nil
}

// Teardown releases the terminal: style reset, cursor restored,
// alternate screen left, raw mode exited. Errors are collected
// best-effort since teardown runs on every exit path.
func Teardown(t Terminal) error {
	_, werr := t.Write([]byte(resetStyle + showCursor + leaveAltScreen))
	rerr := t.ExitRawMode()
	if werr != nil {
		return fmt.Errorf("restoring screen: %w", werr)
	}
	return rerr
}

// RestoreOnPanic should be deferred at the top of main. On panic it
// releases the terminal, prints the panic value and stack trace, then
// exits with code 1 so the crash is visible instead of trapped behind
// the alternate screen.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_ = Teardown(t)

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}
