package diffraction

import (
	"errors"
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	xs, err := Linspace(-math.Pi/2, math.Pi/2, 1000)
	if err != nil {
		t.Fatalf("linspace: %v", err)
	}
	if len(xs) != 1000 {
		t.Fatalf("len=%d", len(xs))
	}
	if xs[0] != -math.Pi/2 || xs[999] != math.Pi/2 {
		t.Fatalf("endpoints=%v,%v", xs[0], xs[999])
	}
	step := math.Pi / 999
	for i := 1; i < len(xs); i++ {
		if math.Abs(xs[i]-xs[i-1]-step) > 1e-12 {
			t.Fatalf("step %d=%v", i, xs[i]-xs[i-1])
		}
	}
}

func TestLinspace_SymmetricMidpoint(t *testing.T) {
	for _, n := range []int{3, 21, 101, 1001} {
		xs, err := Linspace(-0.01, 0.01, n)
		if err != nil {
			t.Fatalf("linspace: %v", err)
		}
		if xs[n/2] != 0 {
			t.Fatalf("n=%d midpoint=%v", n, xs[n/2])
		}
	}
}

func TestLinspace_TooFewSamples(t *testing.T) {
	for _, n := range []int{-1, 0, 1} {
		if _, err := Linspace(0, 1, n); !errors.Is(err, ErrTooFewSamples) {
			t.Fatalf("n=%d err=%v", n, err)
		}
	}
}

func TestNewScreen(t *testing.T) {
	g, err := NewScreen(0.01, 500)
	if err != nil {
		t.Fatalf("screen: %v", err)
	}
	if g.Rows() != 500 || g.Cols() != 500 {
		t.Fatalf("shape=%dx%d", g.Rows(), g.Cols())
	}
	if g.X[0][0] != -0.01 || g.Y[0][0] != -0.01 || g.X[499][499] != 0.01 || g.Y[499][0] != 0.01 {
		t.Fatalf("corners x=%v y=%v", g.X[0][0], g.Y[499][0])
	}
	if g.X[10][3] != g.X[0][3] || g.Y[10][3] != g.Y[10][0] {
		t.Fatalf("meshgrid orientation broken")
	}

	if _, err := NewScreen(0, 500); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero size err=%v", err)
	}
	if _, err := NewScreen(0.01, 1); !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("resolution err=%v", err)
	}
}

func TestGrid_EmptyCols(t *testing.T) {
	var g Grid
	if g.Rows() != 0 || g.Cols() != 0 {
		t.Fatalf("shape=%dx%d", g.Rows(), g.Cols())
	}
}
