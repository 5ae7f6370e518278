package diffraction

import "errors"

var (
	// ErrInvalidParameter is returned when a slit width or wavelength is not a
	// finite positive number.
	ErrInvalidParameter = errors.New("diffraction: parameter must be finite and positive")

	// ErrShapeMismatch is returned when the X and Y arrays of a grid differ in shape.
	ErrShapeMismatch = errors.New("diffraction: grid shape mismatch")

	ErrTooFewSamples = errors.New("diffraction: at least two samples required")
)
