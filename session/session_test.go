package session

import (
	"errors"
	"testing"

	"github.com/AnkushinDaniil/diffraction/diffraction"
	"github.com/AnkushinDaniil/diffraction/entity/parameters"
)

func smallParams() *parameters.Parameters {
	p := parameters.Default()
	p.Samples = 101
	p.Resolution = 21
	return p
}

func TestNew_FixedGrids(t *testing.T) {
	s, err := New(smallParams())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(s.Angles()) != 101 {
		t.Fatalf("angles=%d", len(s.Angles()))
	}
	if s.Grid().Rows() != 21 || s.Grid().Cols() != 21 {
		t.Fatalf("grid=%dx%d", s.Grid().Rows(), s.Grid().Cols())
	}
	if s.Snapshot() != nil {
		t.Fatalf("snapshot before first update")
	}
}

func TestNew_BadSampling(t *testing.T) {
	p := smallParams()
	p.Samples = 1
	if _, err := New(p); !errors.Is(err, diffraction.ErrTooFewSamples) {
		t.Fatalf("err=%v", err)
	}
}

func TestUpdate_DeliversToSurfaces(t *testing.T) {
	var rec recorder
	redraws := 0
	s, err := New(smallParams(),
		WithProfileSurface(&rec),
		WithFieldSurface(&rec),
		WithRedraw(func() { redraws++ }),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Update(5e-6, 500e-9); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Updates != 1 || redraws != 1 {
		t.Fatalf("updates=%d redraws=%d", rec.Updates, redraws)
	}
	if len(rec.Profile) != 101 || len(rec.Angles) != 101 {
		t.Fatalf("profile=%d angles=%d", len(rec.Profile), len(rec.Angles))
	}
	if len(rec.Field) != 21 || len(rec.Field[0]) != 21 || rec.Grid != s.Grid() {
		t.Fatalf("field shape=%dx%d", len(rec.Field), len(rec.Field[0]))
	}
	// 101 samples over [-π/2, π/2] put index 50 on θ = 0.
	if rec.Profile[50] != 1 {
		t.Fatalf("centre=%v", rec.Profile[50])
	}
	snap := s.Snapshot()
	if snap.SlitWidth != 5e-6 || snap.Wavelength != 500e-9 || &snap.Profile[0] != &rec.Profile[0] {
		t.Fatalf("snapshot out of sync")
	}
}

func TestUpdate_WavelengthChangeReplacesData(t *testing.T) {
	s, err := New(smallParams())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Update(5e-6, 500e-9); err != nil {
		t.Fatalf("first: %v", err)
	}
	first := s.Snapshot()
	if err := s.Update(5e-6, 650e-9); err != nil {
		t.Fatalf("second: %v", err)
	}
	second := s.Snapshot()

	if &first.Profile[0] == &second.Profile[0] || &first.Field[0][0] == &second.Field[0][0] {
		t.Fatalf("second update reused arrays of the first")
	}
	changed := false
	for i := range first.Profile {
		if first.Profile[i] != second.Profile[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatalf("profile unchanged after wavelength change")
	}
	changed = false
	for r := range first.Field {
		for c := range first.Field[r] {
			if first.Field[r][c] != second.Field[r][c] {
				changed = true
			}
		}
	}
	if !changed {
		t.Fatalf("field unchanged after wavelength change")
	}
}

func TestUpdate_InvalidKeepsPrevious(t *testing.T) {
	var rec recorder
	s, err := New(smallParams(), WithProfileSurface(&rec))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Update(5e-6, 500e-9); err != nil {
		t.Fatalf("update: %v", err)
	}
	prev := s.Snapshot()
	if err := s.Update(0, 500e-9); !errors.Is(err, diffraction.ErrInvalidParameter) {
		t.Fatalf("err=%v", err)
	}
	if s.Snapshot() != prev || rec.Updates != 1 {
		t.Fatalf("failed update touched state")
	}
}

func TestSnapshot_Sampled(t *testing.T) {
	s, err := New(smallParams())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Update(5e-6, 500e-9); err != nil {
		t.Fatalf("update: %v", err)
	}
	xs, ys, field := s.Snapshot().Sampled(5)
	// indexes 0, 5, 10, 15, 20
	if len(xs) != 5 || len(ys) != 5 || len(field) != 5 || len(field[0]) != 5 {
		t.Fatalf("sampled shape %d %d %dx%d", len(xs), len(ys), len(field), len(field[0]))
	}
	if xs[0] != -0.01 || xs[4] != 0.01 || ys[4] != 0.01 {
		t.Fatalf("sampled axes %v %v", xs, ys)
	}
	if field[2][2] != 1 {
		t.Fatalf("centre=%v", field[2][2])
	}

	xs, _, _ = s.Snapshot().Sampled(3)
	// indexes 0, 3, ..., 18, then 20
	if len(xs) != 8 || xs[7] != 0.01 {
		t.Fatalf("stride 3 xs=%v", xs)
	}
}
