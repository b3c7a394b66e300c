// ABOUTME: Fixed 256-color terminal palette and the precomputed nearest-color LUT.
// ABOUTME: 32KB RGB555 table built once at startup; CIE Lab distance, O(1) queries.

package render

import "math"

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Palette is the standard 256-color terminal palette: 16 base colors,
// the 6×6×6 color cube (16-231), and the 24-step grayscale ramp
// (232-255). Fixed for the process lifetime.
var Palette = buildPalette()

func buildPalette() [256]RGB {
	var p [256]RGB

	// 16 base colors.
	base := [16]RGB{
		{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
		{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
		{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	copy(p[:16], base[:])

	// 6×6×6 color cube: channel value is 0 for level 0, else 55+40·level.
	cube := func(level int) uint8 {
		if level == 0 {
			return 0
		}
		return uint8(55 + level*40)
	}
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[idx] = RGB{cube(r), cube(g), cube(b)}
				idx++
			}
		}
	}

	// Grayscale ramp: 8, 18, ..., 238.
	for i := 0; i < 24; i++ {
		gray := uint8(8 + i*10)
		p[232+i] = RGB{gray, gray, gray}
	}

	return p
}

// lutBits is the per-channel resolution of the lookup table. 5 bits per
// channel gives a 32×32×32 table (32KiB) — every color resolves through
// its RGB555 bucket, and bucket-center colors map exactly to the true
// nearest palette entry.
const lutBits = 5

const lutSize = 1 << (3 * lutBits)

// Lookup maps any RGB color to the index of its nearest palette entry
// in O(1). Build it once with NewLookup and share it read-only; it is
// never mutated after construction.
type Lookup struct {
	table [lutSize]uint8
}

// NewLookup builds the lookup table by exhaustive nearest-neighbor
// search over the palette for every RGB555 bucket center, using
// Euclidean distance in CIE Lab (sRGB linearized, D65 white point).
// One-time cost of a few tens of milliseconds at startup.
func NewLookup() *Lookup {
	l := &Lookup{}

	// Palette entries converted once; the inner loop is 32768×256.
	var palLab [256]lab
	for i, c := range Palette {
		palLab[i] = rgbToLab(c)
	}

	for r5 := 0; r5 < 32; r5++ {
		for g5 := 0; g5 < 32; g5++ {
			for b5 := 0; b5 < 32; b5++ {
				// Expand RGB555 back to full-range RGB888.
				c := RGB{
					R: uint8(r5<<3 | r5>>2),
					G: uint8(g5<<3 | g5>>2),
					B: uint8(b5<<3 | b5>>2),
				}
				l.table[lutIndex(c.R, c.G, c.B)] = nearestIndex(c, &palLab)
			}
		}
	}
	return l
}

// Index returns the palette index nearest to (r, g, b).
func (l *Lookup) Index(r, g, b uint8) uint8 {
	return l.table[lutIndex(r, g, b)]
}

// lutIndex buckets 8-bit channels to 5 bits each and packs them.
func lutIndex(r, g, b uint8) int {
	return int(r>>3)<<10 | int(g>>3)<<5 | int(b>>3)
}

// nearestIndex scans all 256 palette entries for the perceptually
// closest one. Only used during table construction and in tests.
func nearestIndex(c RGB, palLab *[256]lab) uint8 {
	target := rgbToLab(c)
	best := 0
	bestDist := math.Inf(1)
	for i, pl := range palLab {
		d := labDistSq(target, pl)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// lab is a CIE L*a*b* color.
type lab struct {
	l, a, b float64
}

// rgbToLab converts sRGB to CIE Lab: gamma expansion, the D65 RGB→XYZ
// matrix, white-point normalization, then the Lab transfer function.
// The formula is a visible-behavior contract (it decides which palette
// index a pixel maps to), so the constants stay fixed.
func rgbToLab(c RGB) lab {
	r := gammaExpand(float64(c.R) / 255.0)
	g := gammaExpand(float64(c.G) / 255.0)
	b := gammaExpand(float64(c.B) / 255.0)

	x := r*0.4124564 + g*0.3575761 + b*0.1804375
	y := r*0.2126729 + g*0.7151522 + b*0.0721750
	z := r*0.0193339 + g*0.1191920 + b*0.9503041

	fx := labF(x / 0.95047)
	fy := labF(y)
	fz := labF(z / 1.08883)

	return lab{
		l: 116.0*fy - 16.0,
		a: 500.0 * (fx - fy),
		b: 200.0 * (fy - fz),
	}
}

func gammaExpand(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3.0*delta*delta) + 4.0/29.0
}

// labDistSq is squared Euclidean distance in Lab space. Squared is
// enough for argmin comparisons.
func labDistSq(p, q lab) float64 {
	dl := p.l - q.l
	da := p.a - q.a
	db := p.b - q.b
	return dl*dl + da*da + db*db
}
