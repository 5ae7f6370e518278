// Package diffraction computes the Fraunhofer intensity pattern of a single slit.
package diffraction

import (
	"fmt"
	"math"
)

// IntensityAt returns (sin β / β)² for β = π·a·sin(θ)/λ.
// At β == 0 the removable singularity is replaced by its limit, 1, and an
// overflowing β by its limit, 0.
func IntensityAt(a, wavelength, theta float64) float64 {
	sin := math.Sin(theta)
	if sin == 0 {
		return 1
	}
	beta := math.Pi * a * sin / wavelength
	if beta == 0 {
		return 1
	}
	if math.IsInf(beta, 0) {
		return 0
	}
	s := math.Sin(beta) / beta
	return math.Min(s*s, 1)
}

// Intensity evaluates the normalized single-slit intensity for each angle (radians).
// The returned slice is always freshly allocated and has len(angles) elements.
func Intensity(a, wavelength float64, angles []float64) ([]float64, error) {
	if err := CheckParameters(a, wavelength); err != nil {
		return nil, err
	}
	values := make([]float64, len(angles))
	for i, theta := range angles {
		values[i] = IntensityAt(a, wavelength, theta)
	}
	return values, nil
}

// ScreenIntensity maps every screen point to the angle atan2(y, x) from the
// pattern centre and evaluates the single-slit intensity there.
func ScreenIntensity(a, wavelength float64, grid *Grid) ([][]float64, error) {
	if err := CheckParameters(a, wavelength); err != nil {
		return nil, err
	}
	if err := grid.check(); err != nil {
		return nil, err
	}
	field := make([][]float64, len(grid.X))
	for r := range grid.X {
		row := make([]float64, len(grid.X[r]))
		for c := range row {
			row[c] = IntensityAt(a, wavelength, math.Atan2(grid.Y[r][c], grid.X[r][c]))
		}
		field[r] = row
	}
	return field, nil
}

// CheckParameters reports whether a and wavelength can be fed to the formula.
func CheckParameters(a, wavelength float64) error {
	if !positive(a) {
		return fmt.Errorf("slit width %g: %w", a, ErrInvalidParameter)
	}
	if !positive(wavelength) {
		return fmt.Errorf("wavelength %g: %w", wavelength, ErrInvalidParameter)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
