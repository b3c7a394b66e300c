// ABOUTME: Prints the 256-color chart: base colors, the 6x6x6 cube,
// ABOUTME: and the grayscale ramp, each cell as a background swatch.

package main

import (
	"fmt"
	"io"
)

// printPalette writes the full indexed palette as colored swatches so
// the mapping can be eyeballed against a color picker.
func printPalette(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "base colors (0-15):"); err != nil {
		return err
	}
	for i := 0; i < 16; i++ {
		swatch(w, uint8(i))
	}
	fmt.Fprint(w, "\n\n")

	fmt.Fprintln(w, "color cube (16-231):")
	for row := 0; row < 6; row++ {
		for col := 0; col < 36; col++ {
			swatch(w, uint8(16+row*36+col))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "grayscale ramp (232-255):")
	for i := 232; i < 256; i++ {
		swatch(w, uint8(i))
	}
	fmt.Fprintln(w)
	return nil
}

func swatch(w io.Writer, idx uint8) {
	fmt.Fprintf(w, "\x1b[48;5;%dm  \x1b[0m", idx)
}
