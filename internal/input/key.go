// ABOUTME: Raw-terminal keyboard parsing for lifecycle keys.
// ABOUTME: Recognizes CSI/SS3 sequences so arrows never read as a bare Escape.

package input

import "unicode/utf8"

// Key represents a parsed keyboard input event.
type Key struct {
	Type KeyType
	Rune rune // for printable characters
}

// KeyType enumerates the key events the renderer reacts to. Arrow and
// page keys are parsed even though the app ignores them: their escape
// sequences must be consumed whole, or a stray 0x1b would look like
// Escape and quit the session.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyEscape
	KeyCtrlC
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyUnknown
)

// escapeSequences maps standard CSI and SS3 key encodings.
var escapeSequences = map[string]Key{
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[C":  {Type: KeyRight},
	"\x1b[D":  {Type: KeyLeft},
	"\x1b[5~": {Type: KeyPageUp},
	"\x1b[6~": {Type: KeyPageDown},

	// SS3 variants sent by some terminals in application mode.
	"\x1bOA": {Type: KeyUp},
	"\x1bOB": {Type: KeyDown},
	"\x1bOC": {Type: KeyRight},
	"\x1bOD": {Type: KeyLeft},
}

// Parse turns one raw input chunk into a Key. Terminals deliver a full
// escape sequence in a single read, so a chunk either is a sequence or
// starts with a printable/control byte.
func Parse(data []byte) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		if k, ok := escapeSequences[string(data)]; ok {
			return k
		}
		return Key{Type: KeyUnknown}
	}

	r, _ := utf8.DecodeRune(data)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

func parseSingleByte(b byte) Key {
	switch {
	case b == 0x03:
		return Key{Type: KeyCtrlC}
	case b == 0x0d:
		return Key{Type: KeyEnter}
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	}
	return Key{Type: KeyUnknown}
}
