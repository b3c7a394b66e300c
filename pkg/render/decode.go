// ABOUTME: Decodes captured frame bytes into RGBA pixel buffers.
// ABOUTME: Distinguishes malformed data from declared-dimension mismatches.

package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"

	// Register decoders for the formats captures arrive in.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decode error taxonomy. Both are transient from the pipeline's point
// of view: the scheduler drops the frame and keeps the previous grid.
var (
	// ErrMalformed marks capture bytes that are not a valid image.
	ErrMalformed = errors.New("malformed capture")
	// ErrSizeMismatch marks a decoded image whose dimensions disagree
	// with the capture's declared dimensions.
	ErrSizeMismatch = errors.New("capture size mismatch")
)

// Capture is one raw frame from the capture source: compressed image
// bytes, the dimensions the source declared, and a monotonically
// increasing sequence number. Consumed once by Decode, then discarded.
type Capture struct {
	Data   []byte
	Width  int
	Height int
	Seq    uint64
}

// Decode turns a capture into a dense RGBA pixel buffer. When the
// capture declares dimensions, they are validated — first cheaply
// against the header, then against the decoded bounds.
func Decode(c Capture) (*image.RGBA, error) {
	if len(c.Data) == 0 {
		return nil, fmt.Errorf("empty capture: %w", ErrMalformed)
	}

	// Header probe catches truncated or mislabeled frames before
	// paying for a full decode.
	if c.Width > 0 && c.Height > 0 {
		if dim, err := ProbeDimensions(c.Data); err == nil {
			if dim.Width != c.Width || dim.Height != c.Height {
				return nil, fmt.Errorf("header %dx%d, declared %dx%d: %w",
					dim.Width, dim.Height, c.Width, c.Height, ErrSizeMismatch)
			}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(c.Data))
	if err != nil {
		return nil, fmt.Errorf("decoding capture %d: %v: %w", c.Seq, err, ErrMalformed)
	}

	b := img.Bounds()
	if c.Width > 0 && c.Height > 0 && (b.Dx() != c.Width || b.Dy() != c.Height) {
		return nil, fmt.Errorf("decoded %dx%d, declared %dx%d: %w",
			b.Dx(), b.Dy(), c.Width, c.Height, ErrSizeMismatch)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}
