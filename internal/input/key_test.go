// ABOUTME: Tests for raw key parsing and the channel-based reader.
// ABOUTME: Escape sequences must parse whole, never as a bare Escape.

package input

import (
	"io"
	"testing"
	"time"
)

func TestParse_SingleBytes(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want Key
	}{
		{"ctrl-c", []byte{0x03}, Key{Type: KeyCtrlC}},
		{"enter", []byte{0x0d}, Key{Type: KeyEnter}},
		{"escape", []byte{0x1b}, Key{Type: KeyEscape}},
		{"q", []byte{'q'}, Key{Type: KeyRune, Rune: 'q'}},
		{"space", []byte{' '}, Key{Type: KeyRune, Rune: ' '}},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); got != tc.want {
			t.Errorf("%s: Parse = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestParse_EscapeSequences(t *testing.T) {
	cases := []struct {
		in   string
		want KeyType
	}{
		{"\x1b[A", KeyUp},
		{"\x1b[B", KeyDown},
		{"\x1b[C", KeyRight},
		{"\x1b[D", KeyLeft},
		{"\x1b[5~", KeyPageUp},
		{"\x1b[6~", KeyPageDown},
		{"\x1bOA", KeyUp},
	}
	for _, tc := range cases {
		got := Parse([]byte(tc.in))
		if got.Type != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got.Type, tc.want)
		}
		if got.Type == KeyEscape {
			t.Errorf("Parse(%q) collapsed to bare Escape", tc.in)
		}
	}
}

func TestParse_UnknownSequence(t *testing.T) {
	if got := Parse([]byte("\x1b[99Z")); got.Type != KeyUnknown {
		t.Errorf("unknown sequence parsed as %v", got.Type)
	}
}

func TestParse_MultiByteRune(t *testing.T) {
	got := Parse([]byte("é"))
	if got.Type != KeyRune || got.Rune != 'é' {
		t.Errorf("Parse(é) = %+v", got)
	}
}

type chunkReader struct {
	chunks [][]byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

func TestKeys_DeliversAndCloses(t *testing.T) {
	r := &chunkReader{chunks: [][]byte{{'q'}, []byte("\x1b[A"), {0x03}}}
	ch := Keys(r)

	want := []KeyType{KeyRune, KeyUp, KeyCtrlC}
	for i, wt := range want {
		select {
		case k, ok := <-ch:
			if !ok {
				t.Fatalf("channel closed before key %d", i)
			}
			if k.Type != wt {
				t.Errorf("key %d = %v, want %v", i, k.Type, wt)
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for key %d", i)
		}
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel close after EOF")
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for channel close")
	}
}
