// Package session owns the fixed sampling grids of one diffraction view and
// recomputes both intensity outputs whenever the slit width or the wavelength
// change. A Session is not safe for concurrent use; hosts deliver updates one
// at a time.
package session

import (
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/diffraction/diffraction"
	"github.com/AnkushinDaniil/diffraction/entity/parameters"
)

// ProfileSurface displays the 1D intensity against angle.
type ProfileSurface interface {
	SetProfile(angles, values []float64)
}

// FieldSurface displays the 2D intensity over the screen grid.
type FieldSurface interface {
	SetField(grid *diffraction.Grid, field [][]float64)
}

// Snapshot is the result of one update. Profile and Field are never reused
// by a later update.
type Snapshot struct {
	SlitWidth  float64
	Wavelength float64
	Angles     []float64
	Profile    []float64
	Grid       *diffraction.Grid
	Field      [][]float64
}

type Session struct {
	angles  []float64
	grid    *diffraction.Grid
	profile ProfileSurface
	field   FieldSurface
	redraw  func()
	current *Snapshot
}

type Option func(*Session)

// WithProfileSurface attaches the surface receiving the 1D profile.
func WithProfileSurface(s ProfileSurface) Option {
	return func(sess *Session) { sess.profile = s }
}

// WithFieldSurface attaches the surface receiving the 2D field.
func WithFieldSurface(s FieldSurface) Option {
	return func(sess *Session) { sess.field = s }
}

// WithRedraw sets the hook called after both surfaces have new data.
func WithRedraw(fn func()) Option {
	return func(sess *Session) { sess.redraw = fn }
}

// New builds the angle sequence and screen grid described by params. No
// intensity is computed until the first Update.
func New(params *parameters.Parameters, opts ...Option) (*Session, error) {
	startTime := time.Now()
	angles, err := diffraction.Linspace(-math.Pi/2, math.Pi/2, params.Samples)
	if err != nil {
		return nil, fmt.Errorf("failed to build angles: %w", err)
	}
	grid, err := diffraction.NewScreen(params.ScreenSize, params.Resolution)
	if err != nil {
		return nil, fmt.Errorf("failed to build screen grid: %w", err)
	}
	s := &Session{angles: angles, grid: grid}
	for _, opt := range opts {
		opt(s)
	}
	log.WithFields(log.Fields{
		"samples":    len(angles),
		"resolution": grid.Rows(),
		"screen":     params.ScreenSize,
		"time":       time.Since(startTime),
	}).Debug("Session created")
	return s, nil
}

// Update recomputes the profile and the field for the given parameters and
// hands them to the surfaces. On error the previous snapshot stays current.
func (s *Session) Update(slitWidth, wavelength float64) error {
	startTime := time.Now()
	profile, err := diffraction.Intensity(slitWidth, wavelength, s.angles)
	if err != nil {
		return fmt.Errorf("failed to compute profile: %w", err)
	}
	field, err := diffraction.ScreenIntensity(slitWidth, wavelength, s.grid)
	if err != nil {
		return fmt.Errorf("failed to compute screen intensity: %w", err)
	}
	s.current = &Snapshot{
		SlitWidth:  slitWidth,
		Wavelength: wavelength,
		Angles:     s.angles,
		Profile:    profile,
		Grid:       s.grid,
		Field:      field,
	}

	if s.profile != nil {
		s.profile.SetProfile(s.angles, profile)
	}
	if s.field != nil {
		s.field.SetField(s.grid, field)
	}
	if s.redraw != nil {
		s.redraw()
	}
	log.WithFields(log.Fields{
		"slitWidth":  slitWidth,
		"wavelength": wavelength,
		"time":       time.Since(startTime),
	}).Debug("Session updated")
	return nil
}

// Snapshot returns the latest update, or nil before the first one.
func (s *Session) Snapshot() *Snapshot {
	return s.current
}

func (s *Session) Angles() []float64 {
	return s.angles
}

func (s *Session) Grid() *diffraction.Grid {
	return s.grid
}

// Sampled returns every stride-th column coordinate, row coordinate and field
// value, always keeping the last row and column.
func (s *Snapshot) Sampled(stride int) (xs, ys []float64, field [][]float64) {
	if stride < 1 {
		stride = 1
	}
	rows := sampleIndexes(s.Grid.Rows(), stride)
	cols := sampleIndexes(s.Grid.Cols(), stride)

	xs = make([]float64, len(cols))
	for i, c := range cols {
		xs[i] = s.Grid.X[0][c]
	}
	ys = make([]float64, len(rows))
	field = make([][]float64, len(rows))
	for i, r := range rows {
		ys[i] = s.Grid.Y[r][0]
		field[i] = make([]float64, len(cols))
		for j, c := range cols {
			field[i][j] = s.Field[r][c]
		}
	}
	return xs, ys, field
}

func sampleIndexes(n, stride int) []int {
	if n == 0 {
		return nil
	}
	idx := make([]int, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}
