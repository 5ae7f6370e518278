// Package colormap implements the dark red-yellow-white "hot" colour map
// shared by every renderer.
package colormap

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// Channel break points of the hot map: red starts at redStart and saturates
// first, then green, then blue.
const (
	redStart = 0.0416
	redEnd   = 0.365079
	greenEnd = 0.746032
)

// Hot maps v in [0,1] to a colour. Values outside the range are clamped and
// NaN maps like 0, to dark red.
func Hot(v float64) color.NRGBA {
	if math.IsNaN(v) {
		v = 0
	}
	v = clamp(v)
	return color.NRGBA{
		R: channel(redStart + (1-redStart)*v/redEnd),
		G: channel((v - redEnd) / (greenEnd - redEnd)),
		B: channel((v - greenEnd) / (1 - greenEnd)),
		A: 0xff,
	}
}

// Hex returns Hot(v) as a #rrggbb string.
func Hex(v float64) string {
	c := Hot(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Stops returns n evenly spaced colours of the map as hex strings, for
// renderers that interpolate between stops themselves.
func Stops(n int) []string {
	if n < 2 {
		n = 2
	}
	stops := make([]string, n)
	for i := range stops {
		stops[i] = Hex(float64(i) / float64(n-1))
	}
	return stops
}

type hotPalette []color.Color

func (p hotPalette) Colors() []color.Color { return p }

// Palette returns the map sampled into n colours.
func Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	p := make(hotPalette, n)
	for i := range p {
		p[i] = Hot(float64(i) / float64(n-1))
	}
	return p
}

// FillRGBA writes field into pix as RGBA rows of stride bytes. Row 0 of the
// field ends up at the bottom of the image.
func FillRGBA(pix []byte, stride int, field [][]float64) {
	h := len(field)
	for r, row := range field {
		off := (h - 1 - r) * stride
		for c, v := range row {
			col := Hot(v)
			i := off + 4*c
			pix[i] = col.R
			pix[i+1] = col.G
			pix[i+2] = col.B
			pix[i+3] = col.A
		}
	}
}

func channel(x float64) uint8 {
	return uint8(math.Round(clamp(x) * 0xff))
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
