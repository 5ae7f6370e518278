package session

import "github.com/AnkushinDaniil/diffraction/diffraction"

// recorder is a surface that keeps whatever it was last given.
type recorder struct {
	Angles  []float64
	Profile []float64
	Grid    *diffraction.Grid
	Field   [][]float64
	Updates int
}

func (r *recorder) SetProfile(angles, values []float64) {
	r.Angles = angles
	r.Profile = values
	r.Updates++
}

func (r *recorder) SetField(grid *diffraction.Grid, field [][]float64) {
	r.Grid = grid
	r.Field = field
}
