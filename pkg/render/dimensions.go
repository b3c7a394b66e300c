// ABOUTME: Header-only pixel dimension probe for PNG and JPEG capture bytes.
// ABOUTME: Lets the decoder validate declared dimensions before a full decode.

package render

import (
	"encoding/binary"
	"fmt"
)

// Dimensions holds the pixel width and height of an image.
type Dimensions struct {
	Width  int
	Height int
}

// ProbeDimensions extracts width and height from image header bytes
// without decoding pixel data. Captures arrive as JPEG or PNG; other
// formats return an error.
func ProbeDimensions(data []byte) (Dimensions, error) {
	if len(data) < 8 {
		return Dimensions{}, fmt.Errorf("data too short (%d bytes)", len(data))
	}

	// PNG: 8-byte signature 0x89 P N G \r \n 0x1A \n
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return probePNG(data)
	}

	// JPEG: starts with 0xFF 0xD8
	if data[0] == 0xFF && data[1] == 0xD8 {
		return probeJPEG(data)
	}

	return Dimensions{}, fmt.Errorf("unrecognized image format")
}

// probePNG reads width/height from the IHDR chunk, which the format
// guarantees immediately follows the signature.
func probePNG(data []byte) (Dimensions, error) {
	if len(data) < 24 {
		return Dimensions{}, fmt.Errorf("PNG data too short for IHDR")
	}
	w := int(binary.BigEndian.Uint32(data[16:20]))
	h := int(binary.BigEndian.Uint32(data[20:24]))
	return Dimensions{Width: w, Height: h}, nil
}

// probeJPEG scans segment markers for SOF0-SOF2, which carry the frame
// dimensions.
func probeJPEG(data []byte) (Dimensions, error) {
	i := 2
	for i < len(data)-1 {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]

		if marker >= 0xC0 && marker <= 0xC2 {
			if i+9 >= len(data) {
				return Dimensions{}, fmt.Errorf("JPEG SOF truncated")
			}
			h := int(binary.BigEndian.Uint16(data[i+5 : i+7]))
			w := int(binary.BigEndian.Uint16(data[i+7 : i+9]))
			return Dimensions{Width: w, Height: h}, nil
		}

		// Skip non-SOF segments by their declared length.
		if i+3 >= len(data) {
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if segLen < 2 {
			break
		}
		i += 2 + segLen
	}
	return Dimensions{}, fmt.Errorf("JPEG SOF marker not found")
}
