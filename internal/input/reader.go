// ABOUTME: Reads raw terminal bytes and delivers parsed keys on a channel.
// ABOUTME: One chunk per read; the goroutine exits when the source closes.

package input

import "io"

// Keys reads raw input chunks from r and sends parsed keys on the
// returned channel. The channel closes when r reports any error
// (stdin closing during shutdown lands here). The reader goroutine is
// the only consumer of r.
func Keys(r io.Reader) <-chan Key {
	ch := make(chan Key, 8)
	go func() {
		defer close(ch)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				ch <- Parse(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}
