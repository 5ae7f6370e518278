package diffraction

import "fmt"

// Grid holds screen coordinates in metres. X[r][c] and Y[r][c] describe the
// same point; rows run along y and columns along x.
type Grid struct {
	X [][]float64
	Y [][]float64
}

// Linspace returns n evenly spaced samples over [start, stop], both included.
func Linspace(start, stop float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("linspace of %d: %w", n, ErrTooFewSamples)
	}
	span := stop - start
	xs := make([]float64, n)
	for i := range xs {
		// The midpoint of a symmetric range lands on exactly zero.
		xs[i] = start + float64(i)/float64(n-1)*span
	}
	xs[n-1] = stop
	return xs, nil
}

// Meshgrid expands the coordinate vectors into a len(ys) x len(xs) grid.
func Meshgrid(xs, ys []float64) *Grid {
	g := &Grid{
		X: make([][]float64, len(ys)),
		Y: make([][]float64, len(ys)),
	}
	for r, y := range ys {
		g.X[r] = make([]float64, len(xs))
		g.Y[r] = make([]float64, len(xs))
		for c, x := range xs {
			g.X[r][c] = x
			g.Y[r][c] = y
		}
	}
	return g
}

// NewScreen builds a square resolution x resolution grid spanning
// [-halfSize, halfSize] metres on both axes.
func NewScreen(halfSize float64, resolution int) (*Grid, error) {
	if !positive(halfSize) {
		return nil, fmt.Errorf("screen size %g: %w", halfSize, ErrInvalidParameter)
	}
	axis, err := Linspace(-halfSize, halfSize, resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to build screen axis: %w", err)
	}
	return Meshgrid(axis, axis), nil
}

// Rows returns the number of rows of the grid.
func (g *Grid) Rows() int {
	return len(g.X)
}

// Cols returns the number of columns of the first row, or 0 for an empty grid.
func (g *Grid) Cols() int {
	if len(g.X) == 0 {
		return 0
	}
	return len(g.X[0])
}

func (g *Grid) check() error {
	if g == nil {
		return fmt.Errorf("nil grid: %w", ErrShapeMismatch)
	}
	if len(g.X) != len(g.Y) {
		return fmt.Errorf("%d rows of x, %d rows of y: %w", len(g.X), len(g.Y), ErrShapeMismatch)
	}
	for r := range g.X {
		if len(g.X[r]) != len(g.Y[r]) {
			return fmt.Errorf("row %d has %d x and %d y: %w", r, len(g.X[r]), len(g.Y[r]), ErrShapeMismatch)
		}
	}
	return nil
}
