// ABOUTME: Resamples pixel buffers to the exact dimensions the cell grid needs.
// ABOUTME: ApproxBiLinear on the live path, CatmullRom for one-shot rendering.

package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Filter selects the resampling kernel.
type Filter int

const (
	// FilterLive is a fast bilinear approximation. At the large
	// downscale ratios of a browser viewport to a character grid the
	// difference from a convolution kernel disappears under 256-color
	// quantization, and it fits the frame deadline.
	FilterLive Filter = iota
	// FilterStatic is CatmullRom, used by the one-shot file mode where
	// there is no deadline.
	FilterStatic
)

func (f Filter) kernel() draw.Scaler {
	if f == FilterStatic {
		return draw.CatmullRom
	}
	return draw.ApproxBiLinear
}

// Scale resamples src to exactly width×height, regardless of the input
// aspect ratio — the grid dictates the shape. Zero or negative targets
// return an empty buffer without error (terminal hidden or minimized).
// If src already has the target dimensions it is returned as-is;
// buffers transfer ownership stage to stage, so no copy is needed.
func Scale(src *image.RGBA, width, height int, f Filter) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}

	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if b.Dx() == 0 || b.Dy() == 0 {
		return dst
	}
	f.kernel().Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
