package parameters

import (
	"errors"
	"fmt"
	"math"

	"github.com/AnkushinDaniil/diffraction/diffraction"
	"github.com/AnkushinDaniil/diffraction/entity/format"
	"github.com/AnkushinDaniil/diffraction/entity/mode"
)

const (
	DefaultSlitWidth  = 5e-6   // meters
	DefaultWavelength = 500e-9 // meters
	DefaultSamples    = 1000   // angles over [-π/2, π/2]
	DefaultScreenSize = 0.01   // meters, half width of the screen
	DefaultResolution = 500    // points per screen axis
	DefaultStride     = 5      // heatmap decimation
	DefaultAddr       = ":8080"
)

var (
	SlitWidthRange  = Range{Min: 1e-6, Max: 10e-6, Step: 1e-7}
	WavelengthRange = Range{Min: 400e-9, Max: 700e-9, Step: 10e-9}
)

type Parameters struct {
	Mode       mode.Mode
	Format     format.Format
	Addr       string
	SlitWidth  float64
	Wavelength float64
	Samples    int
	ScreenSize float64
	Resolution int
	Stride     int
}

func Default() *Parameters {
	return &Parameters{
		Mode:       mode.Render,
		Format:     format.HTML,
		Addr:       DefaultAddr,
		SlitWidth:  DefaultSlitWidth,
		Wavelength: DefaultWavelength,
		Samples:    DefaultSamples,
		ScreenSize: DefaultScreenSize,
		Resolution: DefaultResolution,
		Stride:     DefaultStride,
	}
}

// Validate checks the physical values and the sampling of the session grids.
func (p *Parameters) Validate() error {
	var errs []error
	if err := diffraction.CheckParameters(p.SlitWidth, p.Wavelength); err != nil {
		errs = append(errs, err)
	}
	if p.Samples < 2 {
		errs = append(errs, fmt.Errorf("samples must be at least 2, got %d", p.Samples))
	}
	if p.Resolution < 2 {
		errs = append(errs, fmt.Errorf("resolution must be at least 2, got %d", p.Resolution))
	}
	if !(p.ScreenSize > 0) || math.IsInf(p.ScreenSize, 1) {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %g", p.ScreenSize))
	}
	if p.Stride < 1 {
		errs = append(errs, fmt.Errorf("stride must be at least 1, got %d", p.Stride))
	}
	return errors.Join(errs...)
}

// Range describes a slider: values are kept in [Min, Max] on a grid of Step.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Snap moves v to the nearest Min + k*Step and clamps it.
func (r Range) Snap(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	k := math.Round((r.Clamp(v) - r.Min) / r.Step)
	return r.Clamp(r.Min + k*r.Step)
}

// Increment moves v by n steps, negative n moving down.
func (r Range) Increment(v float64, n int) float64 {
	return r.Snap(r.Snap(v) + float64(n)*r.Step)
}

// Fraction returns the position of v in the range, 0 at Min and 1 at Max.
func (r Range) Fraction(v float64) float64 {
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}
