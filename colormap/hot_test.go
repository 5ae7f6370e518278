package colormap

import (
	"image/color"
	"math"
	"testing"
)

func TestHot_Endpoints(t *testing.T) {
	tests := []struct {
		v    float64
		want color.NRGBA
	}{
		{0, color.NRGBA{0x0b, 0, 0, 0xff}},
		{1, color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{redEnd, color.NRGBA{0xff, 0, 0, 0xff}},
		{greenEnd, color.NRGBA{0xff, 0xff, 0, 0xff}},
		{-3, color.NRGBA{0x0b, 0, 0, 0xff}},
		{7, color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{math.NaN(), color.NRGBA{0x0b, 0, 0, 0xff}},
	}
	for _, tt := range tests {
		if got := Hot(tt.v); got != tt.want {
			t.Fatalf("Hot(%v)=%v want %v", tt.v, got, tt.want)
		}
	}
}

func TestHot_Monotonic(t *testing.T) {
	prev := Hot(0)
	for i := 1; i <= 100; i++ {
		c := Hot(float64(i) / 100)
		if c.R < prev.R || c.G < prev.G || c.B < prev.B {
			t.Fatalf("step %d: %v after %v", i, c, prev)
		}
		prev = c
	}
}

func TestStops(t *testing.T) {
	stops := Stops(5)
	if len(stops) != 5 || stops[0] != "#0b0000" || stops[4] != "#ffffff" {
		t.Fatalf("stops=%v", stops)
	}
	if len(Stops(0)) != 2 {
		t.Fatalf("minimum stop count not enforced")
	}
}

func TestPalette(t *testing.T) {
	p := Palette(16).Colors()
	if len(p) != 16 {
		t.Fatalf("colors=%d", len(p))
	}
	if p[0] != color.Color(Hot(0)) || p[15] != color.Color(Hot(1)) {
		t.Fatalf("palette ends %v %v", p[0], p[15])
	}
}

func TestFillRGBA_OriginLowerLeft(t *testing.T) {
	field := [][]float64{
		{1, 0},
		{0, 0},
	}
	pix := make([]byte, 2*2*4)
	FillRGBA(pix, 2*4, field)
	// field[0][0] is the bottom-left pixel: image row 1, column 0.
	if pix[8] != 0xff || pix[9] != 0xff || pix[10] != 0xff || pix[11] != 0xff {
		t.Fatalf("bottom-left=%v", pix[8:12])
	}
	if pix[0] != 0x0b || pix[1] != 0 || pix[3] != 0xff {
		t.Fatalf("top-left=%v", pix[0:4])
	}
}
