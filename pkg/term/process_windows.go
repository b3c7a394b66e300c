// ABOUTME: Windows stub for ProcessTerminal resize handling.
// ABOUTME: Placeholder; Windows does not use SIGWINCH signals.

//go:build windows

package term

// startResizeListener is a no-op on Windows. Resize detection there
// needs SetConsoleMode and ReadConsoleInput; until then the grid keeps
// the dimensions measured at startup.
func (t *ProcessTerminal) startResizeListener() {
}
